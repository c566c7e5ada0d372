package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/billing"
	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/events"
	"github.com/dukerupert/gymsup/internal/mapper"
	"github.com/dukerupert/gymsup/internal/session"
	"github.com/dukerupert/gymsup/internal/telemetry"
)

// CheckoutService turns the session's cart into an order.
//
// Cash on delivery orders are placed directly. Card orders first obtain a
// payment intent for the cart total; the order is only placed once that
// intent has succeeded for exactly the current total.
type CheckoutService interface {
	CreatePaymentIntent(ctx context.Context, sess *session.Session) (*domain.PaymentIntent, error)
	PlaceOrder(ctx context.Context, sess *session.Session, form domain.CheckoutForm) (domain.Order, error)
}

// CheckoutBackend is the part of the backend client the checkout service
// uses.
type CheckoutBackend interface {
	CreateOrder(ctx context.Context, token string, req backend.CreateOrderRequest) (*backend.OrderResponse, error)
}

type checkoutService struct {
	backend   CheckoutBackend
	carts     CartService
	payments  billing.Provider
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger

	// claims holds intents being redeemed right now. A true value marks an
	// intent whose redemption could not be recorded with the provider; it
	// stays claimed for the life of the process.
	mu     sync.Mutex
	claims map[string]bool
}

// NewCheckoutService creates a new CheckoutService. payments may be nil,
// in which case card checkout is disabled.
func NewCheckoutService(
	b CheckoutBackend,
	carts CartService,
	payments billing.Provider,
	publisher events.Publisher,
	metrics *telemetry.BusinessMetrics,
	logger *slog.Logger,
) CheckoutService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &checkoutService{
		backend:   b,
		carts:     carts,
		payments:  payments,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		claims:    make(map[string]bool),
	}
}

// CreatePaymentIntent implements CheckoutService.
func (s *checkoutService) CreatePaymentIntent(ctx context.Context, sess *session.Session) (*domain.PaymentIntent, error) {
	const op = "checkout.payment_intent"

	if !sess.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	if s.payments == nil {
		return nil, ErrPaymentsDisabled
	}

	cart := s.carts.Fetch(ctx, sess)
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	pi, err := s.payments.CreatePaymentIntent(ctx, billing.CreatePaymentIntentParams{
		Amount:        cart.Total().IntPart(),
		Currency:      billing.CurrencyVND,
		CustomerEmail: sess.User.Email,
		Description:   "GymSup order",
		Metadata: map[string]string{
			billing.MetadataSessionID: sess.ID,
			billing.MetadataUserID:    strconv.FormatInt(sess.User.ID, 10),
			billing.MetadataItemCount: strconv.Itoa(cart.ItemCount()),
		},
	})
	if err != nil {
		s.metrics.PaymentIntent("failed")
		s.logger.ErrorContext(ctx, "failed to create payment intent", "session_id", sess.ID, "error", err)
		if errors.Is(err, billing.ErrAmountTooSmall) {
			return nil, domain.WrapError(err, domain.EINVALID, op, "Giá trị đơn hàng quá nhỏ để thanh toán bằng thẻ")
		}
		var se *billing.StripeError
		if errors.As(err, &se) && se.IsTemporary() {
			return nil, domain.WrapError(err, domain.EUNAVAILABLE, op, "Cổng thanh toán tạm thời không khả dụng")
		}
		return nil, domain.WrapError(err, domain.EPAYMENT, op, "Không thể khởi tạo thanh toán")
	}

	s.metrics.PaymentIntent("created")
	return toDomainIntent(pi), nil
}

// PlaceOrder implements CheckoutService.
func (s *checkoutService) PlaceOrder(ctx context.Context, sess *session.Session, form domain.CheckoutForm) (domain.Order, error) {
	const op = "checkout.place_order"

	if !sess.LoggedIn() {
		return domain.Order{}, ErrNotLoggedIn
	}
	if err := validateStruct(op, form); err != nil {
		return domain.Order{}, err
	}

	cart := s.carts.Fetch(ctx, sess)
	if cart.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}

	if form.PaymentMethod == domain.PaymentMethodCard {
		if err := s.claimPayment(op, form.PaymentIntentID); err != nil {
			return domain.Order{}, err
		}
		defer s.releasePayment(form.PaymentIntentID)

		if err := s.verifyPayment(ctx, op, sess, form.PaymentIntentID, cart); err != nil {
			return domain.Order{}, err
		}
	}

	s.metrics.CheckoutSubmitted(form.PaymentMethod)

	resp, err := s.backend.CreateOrder(ctx, sess.Token, backend.CreateOrderRequest{
		FullName:        form.FullName,
		Phone:           form.Phone,
		Address:         form.Address,
		Email:           form.Email,
		PaymentMethod:   form.PaymentMethod,
		PaymentIntentID: form.PaymentIntentID,
	})
	if err != nil {
		if domain.IsCode(err, domain.ECONFLICT) {
			// Stock changed since the cart was read.
			s.carts.Fetch(ctx, sess)
		}
		return domain.Order{}, backend.WithFallback(err, "Đặt hàng thất bại, vui lòng thử lại")
	}

	order := mapper.MapOrder(*resp)
	if order.Total.IsZero() {
		order.Total = cart.Total()
	}
	if form.PaymentMethod == domain.PaymentMethodCard {
		s.redeemPayment(ctx, form.PaymentIntentID, order.ID)
	}

	if _, err := s.carts.ClearCart(ctx, sess); err != nil {
		s.logger.WarnContext(ctx, "order placed but cart clear failed",
			"session_id", sess.ID,
			"order_id", order.ID,
			"error", err,
		)
		s.carts.Fetch(ctx, sess)
	}

	s.logger.InfoContext(ctx, "order placed",
		"session_id", sess.ID,
		"order_id", order.ID,
		"payment_method", form.PaymentMethod,
		"total", order.Total.String(),
	)
	s.metrics.OrderPlaced(form.PaymentMethod, order.Total)
	telemetry.AddBreadcrumb("checkout", "order placed", map[string]interface{}{
		"order_id": order.ID,
	})

	data := orderEvent{
		OrderID: order.ID,
		Status:  order.RawStatus,
		Total:   order.Total.String(),
		Method:  form.PaymentMethod,
	}
	if err := s.publisher.Publish(ctx, events.SubjectOrderPlaced, sess.ID, data); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", "subject", events.SubjectOrderPlaced, "error", err)
	}

	return order, nil
}

// claimPayment reserves intentID for one PlaceOrder call.
func (s *checkoutService) claimPayment(op, intentID string) error {
	if s.payments == nil {
		return ErrPaymentsDisabled
	}
	if intentID == "" {
		return domain.NewValidationError(op, "paymentIntentId", "Thiếu mã thanh toán")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[intentID]; ok {
		s.metrics.PaymentIntent("reused")
		return ErrPaymentAlreadyUsed
	}
	s.claims[intentID] = false
	return nil
}

func (s *checkoutService) releasePayment(intentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stuck, ok := s.claims[intentID]; ok && !stuck {
		delete(s.claims, intentID)
	}
}

// redeemPayment records on the intent the order it paid for.
func (s *checkoutService) redeemPayment(ctx context.Context, intentID, orderID string) {
	err := s.payments.MarkPaymentIntentUsed(ctx, intentID, orderID)
	if err == nil {
		return
	}

	s.mu.Lock()
	s.claims[intentID] = true
	s.mu.Unlock()

	s.logger.ErrorContext(ctx, "failed to mark payment intent used",
		"payment_intent_id", intentID,
		"order_id", orderID,
		"error", err,
	)
	telemetry.CaptureErrorFromContext(ctx, err, map[string]interface{}{
		"payment_intent_id": intentID,
		"order_id":          orderID,
	})
}

// verifyPayment checks that intentID belongs to the session's user, has not
// paid for an order yet, and has succeeded for the cart total.
func (s *checkoutService) verifyPayment(ctx context.Context, op string, sess *session.Session, intentID string, cart domain.Cart) error {
	pi, err := s.payments.GetPaymentIntent(ctx, intentID)
	if err != nil {
		if errors.Is(err, billing.ErrPaymentIntentNotFound) {
			return domain.NewValidationError(op, "paymentIntentId", "Mã thanh toán không hợp lệ")
		}
		return domain.WrapError(err, domain.EUNAVAILABLE, op, "Không thể xác minh thanh toán")
	}
	if owner := pi.Metadata[billing.MetadataUserID]; owner != strconv.FormatInt(sess.User.ID, 10) {
		s.logger.WarnContext(ctx, "payment intent belongs to another user",
			"payment_intent_id", pi.ID,
			"session_id", sess.ID,
			"owner", owner,
		)
		s.metrics.PaymentIntent("foreign")
		return domain.NewValidationError(op, "paymentIntentId", "Mã thanh toán không hợp lệ")
	}
	if orderID := pi.RedeemedBy(); orderID != "" {
		s.logger.WarnContext(ctx, "payment intent already redeemed",
			"payment_intent_id", pi.ID,
			"order_id", orderID,
		)
		s.metrics.PaymentIntent("reused")
		return ErrPaymentAlreadyUsed
	}
	if !pi.Succeeded() {
		s.metrics.PaymentIntent("not_succeeded")
		return ErrPaymentNotSucceeded
	}
	if pi.Amount != cart.Total().IntPart() {
		s.logger.WarnContext(ctx, "payment amount does not match cart",
			"payment_intent_id", pi.ID,
			"paid", pi.Amount,
			"cart_total", cart.Total().String(),
		)
		s.metrics.PaymentIntent("amount_mismatch")
		telemetry.CaptureMessage("payment amount does not match cart", sentry.LevelWarning, map[string]interface{}{
			"payment_intent_id": pi.ID,
			"paid":              pi.Amount,
			"cart_total":        cart.Total().String(),
		})
		return ErrPaymentAmountChanged
	}
	return nil
}

func toDomainIntent(pi *billing.PaymentIntent) *domain.PaymentIntent {
	return &domain.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       decimal.NewFromInt(pi.Amount),
		Currency:     pi.Currency,
		Status:       pi.Status,
	}
}
