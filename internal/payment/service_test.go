package payment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storex/internal/apperr"
	"github.com/MikeMC777/storex/internal/money"
	"github.com/MikeMC777/storex/internal/order"
	"github.com/MikeMC777/storex/internal/payment"
	"github.com/MikeMC777/storex/internal/product"
	"github.com/MikeMC777/storex/internal/storage/memory"
	"github.com/MikeMC777/storex/internal/telemetry"
)

type fixture struct {
	orders   *order.Service
	payments *memory.PaymentRepository
	metrics  *telemetry.Metrics
	svc      *payment.Service
	orderID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	products := memory.NewProductRepository()
	require.NoError(t, products.Create(ctx, &product.Product{
		ID: "p1", Name: "Lamp", Price: money.MustParse("12.25"), Stock: 3, CreatedAt: time.Now().UTC(),
	}))

	m := telemetry.NewMetrics("test", prometheus.NewRegistry())
	orders := order.NewService(memory.NewOrderRepository(), memory.NewAddressRepository(), products, m)
	o, err := orders.Create(ctx, "owner", order.CreateOrderRequest{
		Items: []order.CreateOrderItem{{Product: order.ProductRef{ObjectID: "p1"}, Quantity: 2}},
		ShippingAddress: order.ShippingAddress{
			Line1: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Phone: "555-0100",
		},
	})
	require.NoError(t, err)

	payments := memory.NewPaymentRepository()
	return &fixture{
		orders:   orders,
		payments: payments,
		metrics:  m,
		svc:      payment.NewService(payments, orders, m),
		orderID:  o.ID,
	}
}

func TestPay_RecordsAndConfirms(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.Pay(context.Background(), "owner", payment.CreatePaymentRequest{OrderID: f.orderID, Method: "card"})
	require.NoError(t, err)
	assert.Equal(t, "24.50", p.Amount.String())
	assert.Equal(t, payment.StatusSucceeded, p.Status)
	assert.Equal(t, payment.DefaultCurrency, p.Currency)

	o, err := f.orders.Lookup(context.Background(), f.orderID)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, order.StatusConfirmed, o.OrderStatus)

	got, err := f.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, f.orderID, got.OrderID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PaymentsCreated.WithLabelValues("card")))
}

func TestPay_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Pay(ctx, "owner", payment.CreatePaymentRequest{OrderID: "missing", Method: "card"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = f.svc.Pay(ctx, "intruder", payment.CreatePaymentRequest{OrderID: f.orderID, Method: "card"})
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	_, err = f.svc.Pay(ctx, "owner", payment.CreatePaymentRequest{OrderID: f.orderID, Method: "card"})
	require.NoError(t, err)
	_, err = f.svc.Pay(ctx, "owner", payment.CreatePaymentRequest{OrderID: f.orderID, Method: "cash"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	assert.Equal(t, 1, f.payments.Len())
}

type brokenPayments struct{}

func (brokenPayments) Create(context.Context, *payment.Payment) error { return errors.New("disk full") }
func (brokenPayments) GetByID(context.Context, string) (*payment.Payment, error) {
	return nil, payment.ErrNotFound
}

func TestPay_StoreFailureRevertsOrder(t *testing.T) {
	f := newFixture(t)
	svc := payment.NewService(brokenPayments{}, f.orders, f.metrics)

	_, err := svc.Pay(context.Background(), "owner", payment.CreatePaymentRequest{OrderID: f.orderID, Method: "card"})
	require.Error(t, err)

	o, err := f.orders.Lookup(context.Background(), f.orderID)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPending, o.PaymentStatus)
	assert.Equal(t, order.StatusPending, o.OrderStatus)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
