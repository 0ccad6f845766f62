package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/MikeMC777/storex/internal/payment"
)

type PaymentRepository struct {
	mu    sync.RWMutex
	items map[string]*payment.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{items: make(map[string]*payment.Payment)}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; exists {
		return fmt.Errorf("payment repository: duplicate id %s", p.ID)
	}
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*payment.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, payment.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

// Len reports how many payments are stored.
func (r *PaymentRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
