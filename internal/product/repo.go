// Package product provides the product model and its repositories.
package product

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("product not found")
)

const opTimeout = 5 * time.Second

type Query struct {
	Q          string
	CategoryID string
	Limit      int
	Offset     int
}

// Normalize clamps pagination the same way for every backend.
func (q Query) Normalize() Query {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q Query) ([]Product, error)
	Update(ctx context.Context, id string, patch Patch) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	StockStore
}

// StockStore is the inventory surface used by checkout.
type StockStore interface {
	SetStock(ctx context.Context, id string, stock int) (*Product, error)
	// DecrementStock subtracts qty only if stock >= qty, in one atomic update.
	// It reports false when the product is missing or short.
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
	IncrementStock(ctx context.Context, id string, qty int) error
}
