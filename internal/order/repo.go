package order

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrAddressNotFound = errors.New("address not found")
)

const opTimeout = 5 * time.Second

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error)
	// TransitionPayment moves the order from payment status `from` to `to` and sets its
	// order status, only if the order is currently in `from`. It reports whether it did.
	TransitionPayment(ctx context.Context, id string, from, to PaymentStatus, status Status) (bool, error)
}

type AddressRepository interface {
	Create(ctx context.Context, a *Address) error
	GetByID(ctx context.Context, id string) (*Address, error)
	Delete(ctx context.Context, id string) error
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
