package service

import (
	"context"
	"log/slog"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/events"
	"github.com/dukerupert/gymsup/internal/mapper"
	"github.com/dukerupert/gymsup/internal/session"
	"github.com/dukerupert/gymsup/internal/telemetry"
)

// OrderService lists and manages orders. Admins see every order, customers
// only their own.
type OrderService interface {
	List(ctx context.Context, sess *session.Session) []domain.Order
	UpdateStatus(ctx context.Context, sess *session.Session, orderID string, status domain.OrderStatus) error
	Cancel(ctx context.Context, sess *session.Session, orderID string) error
}

// OrderBackend is the part of the backend client the order service uses.
type OrderBackend interface {
	ListAllOrders(ctx context.Context, token string) ([]backend.OrderResponse, error)
	ListMyOrders(ctx context.Context, token string) ([]backend.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, token, orderID, status string) error
	CancelOrder(ctx context.Context, token, orderID string) error
}

type orderService struct {
	backend   OrderBackend
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// NewOrderService creates a new OrderService instance
func NewOrderService(b OrderBackend, publisher events.Publisher, metrics *telemetry.BusinessMetrics, logger *slog.Logger) OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &orderService{
		backend:   b,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// List implements OrderService. Read failures yield an empty list.
func (s *orderService) List(ctx context.Context, sess *session.Session) []domain.Order {
	if !sess.LoggedIn() {
		return []domain.Order{}
	}

	var (
		resp []backend.OrderResponse
		err  error
	)
	if sess.User.IsAdmin() {
		resp, err = s.backend.ListAllOrders(ctx, sess.Token)
	} else {
		resp, err = s.backend.ListMyOrders(ctx, sess.Token)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to fetch orders",
			"session_id", sess.ID,
			"role", sess.User.Role,
			"error", err,
		)
		s.metrics.ReadFailure("orders")
		return []domain.Order{}
	}

	return mapper.MapOrders(resp)
}

// UpdateStatus implements OrderService.
func (s *orderService) UpdateStatus(ctx context.Context, sess *session.Session, orderID string, status domain.OrderStatus) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	if !domain.ValidOrderStatus(status) {
		return ErrInvalidOrderStatus
	}

	if err := s.backend.UpdateOrderStatus(ctx, sess.Token, orderID, status.BackendValue()); err != nil {
		return backend.WithFallback(err, "Không thể cập nhật trạng thái đơn hàng")
	}

	s.logger.InfoContext(ctx, "order status updated", "order_id", orderID, "status", status)
	s.metrics.OrderTransition(string(status))
	s.publish(ctx, sess, events.SubjectOrderStatus, orderEvent{OrderID: orderID, Status: status.BackendValue()})
	return nil
}

// Cancel implements OrderService.
func (s *orderService) Cancel(ctx context.Context, sess *session.Session, orderID string) error {
	if !sess.LoggedIn() {
		return ErrNotLoggedIn
	}

	if err := s.backend.CancelOrder(ctx, sess.Token, orderID); err != nil {
		return backend.WithFallback(err, "Không thể hủy đơn hàng")
	}

	s.logger.InfoContext(ctx, "order cancelled", "order_id", orderID)
	s.metrics.OrderTransition(string(domain.OrderStatusCancelled))
	s.publish(ctx, sess, events.SubjectOrderCancelled, orderEvent{OrderID: orderID, Status: domain.BackendStatusCancelled})
	return nil
}

type orderEvent struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status,omitempty"`
	Total   string `json:"total,omitempty"`
	Method  string `json:"paymentMethod,omitempty"`
}

func (s *orderService) publish(ctx context.Context, sess *session.Session, subject string, data any) {
	if err := s.publisher.Publish(ctx, subject, sess.ID, data); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", "subject", subject, "error", err)
	}
}
