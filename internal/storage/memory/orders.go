package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MikeMC777/storex/internal/order"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]*order.Order)}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_ = ctx
	if o == nil || o.ID == "" {
		return fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.ID]; exists {
		return fmt.Errorf("order repository: duplicate id %s", o.ID)
	}
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]order.Order, error) {
	_ = ctx

	r.mu.RLock()
	out := []order.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *cloneOrder(o))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, limit, offset), nil
}

func (r *OrderRepository) TransitionPayment(ctx context.Context, id string, from, to order.PaymentStatus, status order.Status) (bool, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok || o.PaymentStatus != from {
		return false, nil
	}
	o.PaymentStatus = to
	o.OrderStatus = status
	o.UpdatedAt = time.Now().UTC()
	return true, nil
}

// Len reports how many orders are stored.
func (r *OrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func cloneOrder(o *order.Order) *order.Order {
	clone := *o
	clone.Items = append([]order.Item(nil), o.Items...)
	return &clone
}

type AddressRepository struct {
	mu    sync.RWMutex
	items map[string]*order.Address
}

func NewAddressRepository() *AddressRepository {
	return &AddressRepository{items: make(map[string]*order.Address)}
}

func (r *AddressRepository) Create(ctx context.Context, a *order.Address) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[a.ID]; exists {
		return fmt.Errorf("address repository: duplicate id %s", a.ID)
	}
	clone := *a
	r.items[a.ID] = &clone
	return nil
}

func (r *AddressRepository) GetByID(ctx context.Context, id string) (*order.Address, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return nil, order.ErrAddressNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// Len reports how many addresses are stored.
func (r *AddressRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
