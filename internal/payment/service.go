package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/storex/internal/apperr"
	"github.com/MikeMC777/storex/internal/logging"
	"github.com/MikeMC777/storex/internal/order"
	"github.com/MikeMC777/storex/internal/telemetry"
)

// Orders is the order surface a payment touches.
type Orders interface {
	Lookup(ctx context.Context, id string) (*order.Order, error)
	MarkPaid(ctx context.Context, id string) (bool, error)
	RevertPaid(ctx context.Context, id string) error
}

type Service struct {
	repo    Repository
	orders  Orders
	metrics *telemetry.Metrics

	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, orders Orders, m *telemetry.Metrics) *Service {
	return &Service{
		repo:    repo,
		orders:  orders,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Pay settles the caller's order in full. The order is flipped to PAID first so
// two concurrent payments cannot both be recorded.
func (s *Service) Pay(ctx context.Context, userID string, req CreatePaymentRequest) (*Payment, error) {
	o, err := s.orders.Lookup(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, apperr.Forbidden("Forbidden")
	}
	if o.PaymentStatus == order.PaymentPaid {
		return nil, apperr.Conflict("Order already paid")
	}

	ok, err := s.orders.MarkPaid(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Conflict("Order already paid")
	}

	p := &Payment{
		ID:        s.newID(),
		OrderID:   o.ID,
		UserID:    userID,
		Amount:    o.Total,
		Currency:  DefaultCurrency,
		Method:    req.Method,
		Status:    StatusSucceeded,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if rerr := s.orders.RevertPaid(ctx, o.ID); rerr != nil {
			logging.FromContext(ctx).Error("payment_revert_failed", zap.String("order_id", o.ID), zap.Error(rerr))
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.PaymentsCreated.WithLabelValues(p.Method).Inc()
	}
	logging.FromContext(ctx).Info("payment_recorded",
		zap.String("payment_id", p.ID),
		zap.String("order_id", o.ID),
		zap.String("amount", p.Amount.String()),
	)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Payment not found")
	}
	return p, err
}
