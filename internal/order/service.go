package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/MikeMC777/storex/internal/apperr"
	"github.com/MikeMC777/storex/internal/logging"
	"github.com/MikeMC777/storex/internal/money"
	"github.com/MikeMC777/storex/internal/product"
	"github.com/MikeMC777/storex/internal/telemetry"
)

// ProductStore is the product surface checkout needs.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
	product.StockStore
}

type Service struct {
	orders    Repository
	addresses AddressRepository
	products  ProductStore
	metrics   *telemetry.Metrics

	now   func() time.Time
	newID func() string
}

func NewService(orders Repository, addresses AddressRepository, products ProductStore, m *telemetry.Metrics) *Service {
	return &Service{
		orders:    orders,
		addresses: addresses,
		products:  products,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

type line struct {
	productID string
	quantity  int
}

// merge sums quantities of repeated products, keeping first-seen order.
func merge(items []CreateOrderItem) []line {
	idx := map[string]int{}
	out := make([]line, 0, len(items))
	for _, it := range items {
		key := it.Product.Key()
		if i, ok := idx[key]; ok {
			out[i].quantity += it.Quantity
			continue
		}
		idx[key] = len(out)
		out = append(out, line{productID: key, quantity: it.Quantity})
	}
	return out
}

// Create runs checkout: stock check, reservation, address, order.
// Stock reserved by a failed checkout is returned before the error is reported.
func (s *Service) Create(ctx context.Context, userID string, req CreateOrderRequest) (*Order, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "order.Create")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID), attribute.Int("order.items", len(req.Items)))

	o, outcome, err := s.create(ctx, userID, req)
	s.observe(outcome)
	if err != nil {
		span.SetStatus(codes.Error, outcome)
		if outcome == "error" {
			span.RecordError(err)
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("order.id", o.ID))
	return o, nil
}

func (s *Service) create(ctx context.Context, userID string, req CreateOrderRequest) (*Order, string, error) {
	lines := merge(req.Items)
	for _, l := range lines {
		if l.productID == "" || l.quantity < 1 {
			return nil, "invalid", apperr.Validation("Invalid order data")
		}
	}

	// No writes until every product is known to have enough stock.
	products := make(map[string]*product.Product, len(lines))
	for _, l := range lines {
		p, err := s.products.GetByID(ctx, l.productID)
		if errors.Is(err, product.ErrNotFound) {
			return nil, "insufficient_stock", insufficientStock(l.productID)
		}
		if err != nil {
			return nil, "error", err
		}
		if p.Stock < l.quantity {
			return nil, "insufficient_stock", insufficientStock(l.productID)
		}
		products[l.productID] = p
	}

	reserved := make([]line, 0, len(lines))
	for _, l := range lines {
		ok, err := s.products.DecrementStock(ctx, l.productID, l.quantity)
		if err != nil {
			s.release(ctx, reserved)
			return nil, "error", err
		}
		if !ok {
			s.release(ctx, reserved)
			return nil, "insufficient_stock", insufficientStock(l.productID)
		}
		reserved = append(reserved, l)
	}

	now := s.now()
	addr := &Address{
		ID:        s.newID(),
		Line1:     req.ShippingAddress.Line1,
		Line2:     req.ShippingAddress.Line2,
		City:      req.ShippingAddress.City,
		State:     req.ShippingAddress.State,
		ZipCode:   req.ShippingAddress.ZipCode,
		Phone:     req.ShippingAddress.Phone,
		CreatedAt: now,
	}
	if err := s.addresses.Create(ctx, addr); err != nil {
		s.release(ctx, reserved)
		return nil, "error", err
	}

	o := &Order{
		ID:            s.newID(),
		UserID:        userID,
		Items:         make([]Item, 0, len(lines)),
		AddressID:     addr.ID,
		OrderStatus:   StatusPending,
		PaymentStatus: PaymentPending,
		Total:         money.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, l := range lines {
		snap := snapshotOf(products[l.productID])
		o.Items = append(o.Items, Item{Product: snap, Quantity: l.quantity})
		o.Total = o.Total.Add(snap.Price.Mul(l.quantity))
	}
	if err := s.orders.Create(ctx, o); err != nil {
		cctx := context.WithoutCancel(ctx)
		if derr := s.addresses.Delete(cctx, addr.ID); derr != nil {
			logging.FromContext(ctx).Error("address_cleanup_failed", zap.String("address_id", addr.ID), zap.Error(derr))
		}
		s.release(ctx, reserved)
		return nil, "error", err
	}

	logging.FromContext(ctx).Info("order_created",
		zap.String("order_id", o.ID),
		zap.String("user_id", userID),
		zap.Int("lines", len(o.Items)),
		zap.String("total", o.Total.String()),
	)
	return o, "created", nil
}

// release returns reserved stock. It runs even if the request context is done.
func (s *Service) release(ctx context.Context, reserved []line) {
	if len(reserved) == 0 {
		return
	}
	log := logging.FromContext(ctx)
	ctx = context.WithoutCancel(ctx)
	for _, l := range reserved {
		if err := s.products.IncrementStock(ctx, l.productID, l.quantity); err != nil {
			log.Error("stock_release_failed",
				zap.String("product_id", l.productID),
				zap.Int("quantity", l.quantity),
				zap.Error(err),
			)
			continue
		}
		if s.metrics != nil {
			s.metrics.StockReleases.Inc()
		}
	}
}

func (s *Service) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.OrdersCreated.WithLabelValues(outcome).Inc()
	}
}

func insufficientStock(productID string) error {
	return apperr.Validation("Insufficient stock for product %s", productID)
}

// Get loads an order with its address and the current product documents.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	o, err := s.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Expand(ctx, o)
}

// Expand attaches the stored address and each product's current document to o.
// Products deleted since checkout leave Current nil.
func (s *Service) Expand(ctx context.Context, o *Order) (*Detail, error) {
	d := &Detail{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         make([]ItemDetail, 0, len(o.Items)),
		AddressID:     o.AddressID,
		OrderStatus:   o.OrderStatus,
		PaymentStatus: o.PaymentStatus,
		Total:         o.Total,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}

	addr, err := s.addresses.GetByID(ctx, o.AddressID)
	switch {
	case err == nil:
		d.Address = addr
	case !errors.Is(err, ErrAddressNotFound):
		return nil, err
	}

	for _, it := range o.Items {
		cur, err := s.products.GetByID(ctx, it.Product.ID)
		if err != nil && !errors.Is(err, product.ErrNotFound) {
			return nil, err
		}
		d.Items = append(d.Items, ItemDetail{Item: it, Current: cur})
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) (ListResponse, error) {
	limit, offset = normalizePage(limit, offset)
	items, err := s.orders.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Limit: limit, Offset: offset, Items: items}, nil
}

// Lookup returns the bare order, mapping a missing one to a not-found error.
func (s *Service) Lookup(ctx context.Context, id string) (*Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Order not found")
	}
	return o, err
}

// MarkPaid moves a PENDING-payment order to PAID/CONFIRMED. It reports false if the
// order was no longer pending.
func (s *Service) MarkPaid(ctx context.Context, id string) (bool, error) {
	return s.orders.TransitionPayment(ctx, id, PaymentPending, PaymentPaid, StatusConfirmed)
}

// RevertPaid undoes MarkPaid when the payment record could not be stored.
func (s *Service) RevertPaid(ctx context.Context, id string) error {
	_, err := s.orders.TransitionPayment(context.WithoutCancel(ctx), id, PaymentPaid, PaymentPending, StatusPending)
	return err
}
