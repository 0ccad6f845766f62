// Package storage assembles the repositories for the configured driver.
package storage

import (
	"context"
	"fmt"

	"github.com/MikeMC777/storex/internal/category"
	"github.com/MikeMC777/storex/internal/config"
	"github.com/MikeMC777/storex/internal/order"
	"github.com/MikeMC777/storex/internal/payment"
	"github.com/MikeMC777/storex/internal/product"
	"github.com/MikeMC777/storex/internal/storage/memory"
	"github.com/MikeMC777/storex/internal/storage/mongostore"
	"github.com/MikeMC777/storex/internal/storage/pgstore"
)

type Store struct {
	Products   product.Repository
	Categories category.Repository
	Orders     order.Repository
	Addresses  order.AddressRepository
	Payments   payment.Repository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the backend named by cfg.DBDriver and prepares its schema.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &Store{
			Products:   product.NewMongoRepo(db),
			Categories: category.NewMongoRepo(db),
			Orders:     order.NewMongoRepo(db),
			Addresses:  order.NewMongoAddressRepo(db),
			Payments:   payment.NewMongoRepo(db),
			ping:       func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:      client.Disconnect,
		}, nil

	case config.DriverPostgres:
		pool, err := pgstore.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Products:   product.NewPGRepo(pool),
			Categories: category.NewPGRepo(pool),
			Orders:     order.NewPGRepo(pool),
			Addresses:  order.NewPGAddressRepo(pool),
			Payments:   payment.NewPGRepo(pool),
			ping:       pool.Ping,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("storage: unknown driver %q", cfg.DBDriver)
}

// NewMemory returns a Store backed by in-process maps.
func NewMemory() *Store {
	return &Store{
		Products:   memory.NewProductRepository(),
		Categories: memory.NewCategoryRepository(),
		Orders:     memory.NewOrderRepository(),
		Addresses:  memory.NewAddressRepository(),
		Payments:   memory.NewPaymentRepository(),
	}
}
