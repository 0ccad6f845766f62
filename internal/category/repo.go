// Package category stores product categories.
package category

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrDuplicate = errors.New("category name already exists")
)

const opTimeout = 5 * time.Second

type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Rename(ctx context.Context, id, name string) (*Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}
