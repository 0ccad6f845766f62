// Package memory holds in-process repositories for DB_DRIVER=memory and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MikeMC777/storex/internal/product"
)

type ProductRepository struct {
	mu    sync.RWMutex
	items map[string]*product.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{items: make(map[string]*product.Product)}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; exists {
		return fmt.Errorf("product repository: duplicate id %s", p.ID)
	}
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *ProductRepository) List(ctx context.Context, q product.Query) ([]product.Product, error) {
	_ = ctx
	q = q.Normalize()
	needle := strings.ToLower(q.Q)

	r.mu.RLock()
	out := []product.Product{}
	for _, p := range r.items {
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		out = append(out, *p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, q.Limit, q.Offset), nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch product.Patch) (*product.Product, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	patch.Apply(p)
	p.UpdatedAt = time.Now().UTC()
	clone := *p
	return &clone, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.items {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepository) SetStock(ctx context.Context, id string, stock int) (*product.Product, error) {
	return r.Update(ctx, id, product.Patch{Stock: &stock})
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id string, qty int) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return product.ErrNotFound
	}
	p.Stock += qty
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
