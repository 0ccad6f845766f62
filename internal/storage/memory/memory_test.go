package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storex/internal/category"
	"github.com/MikeMC777/storex/internal/money"
	"github.com/MikeMC777/storex/internal/order"
	"github.com/MikeMC777/storex/internal/payment"
	"github.com/MikeMC777/storex/internal/product"
)

func TestCreate_RejectsDuplicateID(t *testing.T) {
	ctx := context.Background()

	t.Run("product", func(t *testing.T) {
		r := NewProductRepository()
		require.NoError(t, r.Create(ctx, &product.Product{ID: "p1", Name: "Lamp", Price: money.MustParse("20.00"), Stock: 3}))

		err := r.Create(ctx, &product.Product{ID: "p1", Name: "Other", Price: money.MustParse("1.00"), Stock: 0})
		require.Error(t, err)

		got, err := r.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Lamp", got.Name)
		assert.Equal(t, 3, got.Stock)
	})

	t.Run("category", func(t *testing.T) {
		r := NewCategoryRepository()
		require.NoError(t, r.Create(ctx, &category.Category{ID: "c1", Name: "Kits"}))
		assert.Error(t, r.Create(ctx, &category.Category{ID: "c1", Name: "Cables"}))
	})

	t.Run("order", func(t *testing.T) {
		r := NewOrderRepository()
		require.NoError(t, r.Create(ctx, &order.Order{ID: "o1", UserID: "u1"}))
		assert.Error(t, r.Create(ctx, &order.Order{ID: "o1", UserID: "u2"}))
		assert.Equal(t, 1, r.Len())
	})

	t.Run("address", func(t *testing.T) {
		r := NewAddressRepository()
		require.NoError(t, r.Create(ctx, &order.Address{ID: "a1", City: "Springfield"}))
		assert.Error(t, r.Create(ctx, &order.Address{ID: "a1", City: "Shelbyville"}))
		assert.Equal(t, 1, r.Len())
	})

	t.Run("payment", func(t *testing.T) {
		r := NewPaymentRepository()
		require.NoError(t, r.Create(ctx, &payment.Payment{ID: "pay1", OrderID: "o1"}))
		assert.Error(t, r.Create(ctx, &payment.Payment{ID: "pay1", OrderID: "o2"}))
		assert.Equal(t, 1, r.Len())
	})
}
