package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MikeMC777/storex/internal/category"
)

type CategoryRepository struct {
	mu    sync.RWMutex
	items map[string]*category.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{items: make(map[string]*category.Category)}
}

// nameTaken must be called with mu held.
func (r *CategoryRepository) nameTaken(name, exceptID string) bool {
	for id, c := range r.items {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[c.ID]; exists {
		return fmt.Errorf("category repository: duplicate id %s", c.ID)
	}
	if r.nameTaken(c.Name, "") {
		return category.ErrDuplicate
	}
	clone := *c
	r.items[c.ID] = &clone
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, category.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	_ = ctx

	r.mu.RLock()
	out := make([]category.Category, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepository) Rename(ctx context.Context, id, name string) (*category.Category, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return nil, category.ErrNotFound
	}
	if r.nameTaken(name, id) {
		return nil, category.ErrDuplicate
	}
	c.Name = name
	c.UpdatedAt = time.Now().UTC()
	clone := *c
	return &clone, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
