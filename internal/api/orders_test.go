package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storex/internal/order"
	"github.com/MikeMC777/storex/internal/payment"
	"github.com/MikeMC777/storex/internal/storage"
)

const address = `"shippingAddress":{"line_1":"1 Main St","city":"Springfield","state":"IL","zip_code":"62701","phone":"555-0100"}`

func orderBody(items string) string {
	return `{"items":` + items + `,` + address + `}`
}

func TestCreateOrder_DecrementsStock(t *testing.T) {
	r, store := newTestRouter(t)
	seedProduct(t, store, "p1", "Keyboard", "50.00", 5)

	w := do(r, http.MethodPost, "/api/orders", aliceToken, orderBody(`[{"product":{"_id":"p1"},"quantity":2}]`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	o := decode[order.Order](t, w)
	assert.Equal(t, o.ID, decode[map[string]any](t, w)["_id"])
	assert.Equal(t, "user_alice", o.UserID)
	assert.Equal(t, "100.00", o.Total.String())
	assert.Equal(t, order.StatusPending, o.OrderStatus)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Keyboard", o.Items[0].Product.Name)

	p, err := store.Products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestCreateOrder_Rejections(t *testing.T) {
	r, store := newTestRouter(t)
	seedProduct(t, store, "p1", "Keyboard", "50.00", 1)

	cases := []struct {
		name  string
		token string
		body  string
		code  int
		msg   string
	}{
		{"no session", "", orderBody(`[{"product":{"_id":"p1"},"quantity":1}]`), http.StatusUnauthorized, "Unauthorized"},
		{"empty items", aliceToken, orderBody(`[]`), http.StatusBadRequest, "Invalid order data"},
		{"zero quantity", aliceToken, orderBody(`[{"product":{"_id":"p1"},"quantity":0}]`), http.StatusBadRequest, "Invalid order data"},
		{"quantity above cap", aliceToken, orderBody(`[{"product":{"_id":"p1"},"quantity":3000000000}]`), http.StatusBadRequest, "Invalid order data"},
		{"missing product ref", aliceToken, orderBody(`[{"product":{},"quantity":1}]`), http.StatusBadRequest, "Invalid order data"},
		{"missing address", aliceToken, `{"items":[{"product":{"_id":"p1"},"quantity":1}]}`, http.StatusBadRequest, "Invalid order data"},
		{"insufficient stock", aliceToken, orderBody(`[{"product":{"_id":"p1"},"quantity":2}]`), http.StatusBadRequest, "Insufficient stock for product p1"},
		{"unknown product", aliceToken, orderBody(`[{"product":{"_id":"ghost"},"quantity":1}]`), http.StatusBadRequest, "Insufficient stock for product ghost"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/orders", tc.token, tc.body)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
			assert.Equal(t, tc.msg, errorMessage(t, w))
		})
	}

	p, err := store.Products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)
	page, err := store.Orders.ListByUser(context.Background(), "user_alice", 100, 0)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestGetOrder_OwnerAdminAndOthers(t *testing.T) {
	r, store := newTestRouter(t)
	seedProduct(t, store, "p1", "Keyboard", "50.00", 5)

	w := do(r, http.MethodPost, "/api/orders", aliceToken, orderBody(`[{"product":{"id":"p1"},"quantity":1}]`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[order.Order](t, w).ID

	{
		w := do(r, http.MethodGet, "/api/orders/"+id, aliceToken, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		d := decode[order.Detail](t, w)
		require.NotNil(t, d.Address)
		assert.Equal(t, "1 Main St", d.Address.Line1)
		require.Len(t, d.Items, 1)
		require.NotNil(t, d.Items[0].Current)
		assert.Equal(t, 4, d.Items[0].Current.Stock)
	}
	{
		w := do(r, http.MethodGet, "/api/orders/"+id, adminToken, "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
	{
		w := do(r, http.MethodGet, "/api/orders/"+id, bobToken, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
	{
		w := do(r, http.MethodGet, "/api/orders/missing", aliceToken, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Order not found", errorMessage(t, w))
	}
}

type countingAddresses struct {
	order.AddressRepository
	reads atomic.Int32
}

func (a *countingAddresses) GetByID(ctx context.Context, id string) (*order.Address, error) {
	a.reads.Add(1)
	return a.AddressRepository.GetByID(ctx, id)
}

func TestGetOrder_ForbiddenBeforeExpansion(t *testing.T) {
	store := storage.NewMemory()
	addresses := &countingAddresses{AddressRepository: store.Addresses}
	store.Addresses = addresses
	r := newTestRouterWith(t, store)
	seedProduct(t, store, "p1", "Keyboard", "50.00", 5)

	w := do(r, http.MethodPost, "/api/orders", aliceToken, orderBody(`[{"product":{"_id":"p1"},"quantity":1}]`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[order.Order](t, w).ID

	w = do(r, http.MethodGet, "/api/orders/"+id, bobToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, addresses.reads.Load())

	w = do(r, http.MethodGet, "/api/orders/"+id, aliceToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), addresses.reads.Load())
}

func TestListOrders_CallerOnly(t *testing.T) {
	r, store := newTestRouter(t)
	seedProduct(t, store, "p1", "Keyboard", "50.00", 5)

	for _, tok := range []string{aliceToken, aliceToken, bobToken} {
		w := do(r, http.MethodPost, "/api/orders", tok, orderBody(`[{"product":{"_id":"p1"},"quantity":1}]`))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := do(r, http.MethodGet, "/api/orders?limit=10", aliceToken, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[order.ListResponse](t, w)
	assert.Equal(t, 10, page.Limit)
	assert.Len(t, page.Items, 2)
}

func TestPayments_Flow(t *testing.T) {
	r, store := newTestRouter(t)
	seedProduct(t, store, "p1", "Keyboard", "50.00", 5)

	w := do(r, http.MethodPost, "/api/orders", aliceToken, orderBody(`[{"product":{"_id":"p1"},"quantity":2}]`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := decode[order.Order](t, w).ID
	body := `{"orderId":"` + orderID + `","method":"card"}`

	w = do(r, http.MethodPost, "/api/payments", bobToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/api/payments", aliceToken, `{"orderId":"`+orderID+`","method":"barter"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/payments", aliceToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pay := decode[payment.Payment](t, w)
	assert.Equal(t, "100.00", pay.Amount.String())

	w = do(r, http.MethodPost, "/api/payments", aliceToken, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodGet, "/api/payments/"+pay.ID, aliceToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/api/payments/"+pay.ID, bobToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(r, http.MethodGet, "/api/payments/"+pay.ID, adminToken, "")
	assert.Equal(t, http.StatusOK, w.Code)

	o, err := store.Orders.GetByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, order.StatusConfirmed, o.OrderStatus)
}
