package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/events"
	"github.com/dukerupert/gymsup/internal/mapper"
	"github.com/dukerupert/gymsup/internal/session"
	"github.com/dukerupert/gymsup/internal/telemetry"
)

// CartService keeps a session's cart projection in step with the
// server-held cart.
//
// The UI addresses cart lines by numeric variant ID while the backend keys
// them by SKU. Every mutation resolves the SKU from the current projection,
// sends it, then replaces the projection with a full refetch. The projection
// is never patched locally.
type CartService interface {
	// Fetch replaces the projection with the backend cart. Read failures
	// leave an empty cart.
	Fetch(ctx context.Context, sess *session.Session) domain.Cart

	// AddToCart adds quantity units of sku.
	AddToCart(ctx context.Context, sess *session.Session, sku string, quantity int) (domain.Cart, error)

	// AddVariant resolves the variant of product matching the flavor and
	// size facets, checks stock and adds it.
	AddVariant(ctx context.Context, sess *session.Session, product domain.Product, flavor, size string, quantity int) (domain.Cart, error)

	// RemoveFromCart removes the line for variantID. Unknown IDs are a no-op.
	RemoveFromCart(ctx context.Context, sess *session.Session, variantID int64) (domain.Cart, error)

	// UpdateQuantity sets the quantity of the line for variantID. A quantity
	// of zero or less removes the line. Unknown IDs are a no-op.
	UpdateQuantity(ctx context.Context, sess *session.Session, variantID int64, quantity int) (domain.Cart, error)

	// ClearCart empties the cart.
	ClearCart(ctx context.Context, sess *session.Session) (domain.Cart, error)
}

// CartBackend is the part of the backend client the cart service uses.
type CartBackend interface {
	GetCart(ctx context.Context, token string) (*backend.CartResponse, error)
	AddToCart(ctx context.Context, token, sku string, quantity int) error
	UpdateCartItem(ctx context.Context, token, sku string, quantity int) error
	RemoveCartItem(ctx context.Context, token, sku string) error
	ClearCart(ctx context.Context, token string) error
}

type cartService struct {
	backend   CartBackend
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// NewCartService creates a new CartService instance
func NewCartService(b CartBackend, publisher events.Publisher, metrics *telemetry.BusinessMetrics, logger *slog.Logger) CartService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &cartService{
		backend:   b,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Fetch implements CartService.
func (s *cartService) Fetch(ctx context.Context, sess *session.Session) domain.Cart {
	if !sess.LoggedIn() {
		sess.Cart = domain.EmptyCart()
		return sess.Cart
	}

	resp, err := s.backend.GetCart(ctx, sess.Token)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to fetch cart",
			"session_id", sess.ID,
			"error", err,
		)
		s.metrics.ReadFailure("cart")
		sess.Cart = domain.EmptyCart()
		return sess.Cart
	}

	sess.Cart = mapper.MapCart(resp)
	return sess.Cart
}

// AddToCart implements CartService.
func (s *cartService) AddToCart(ctx context.Context, sess *session.Session, sku string, quantity int) (domain.Cart, error) {
	const op = "cart.add"

	if !sess.LoggedIn() {
		return sess.Cart, ErrNotLoggedIn
	}
	if quantity <= 0 {
		return sess.Cart, ErrInvalidQuantity
	}

	if err := s.backend.AddToCart(ctx, sess.Token, sku, quantity); err != nil {
		return sess.Cart, backend.WithFallback(err, "Không thể thêm vào giỏ")
	}

	return s.afterMutation(ctx, sess, op, "add"), nil
}

// AddVariant implements CartService.
func (s *cartService) AddVariant(ctx context.Context, sess *session.Session, product domain.Product, flavor, size string, quantity int) (domain.Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}
	if !product.InStock {
		return sess.Cart, ErrOutOfStock
	}

	variant, ok := product.FindVariant(flavor, size)
	if !ok {
		return sess.Cart, ErrVariantNotFound
	}
	if variant.StockQuantity < quantity {
		return sess.Cart, ErrInsufficientStock
	}

	return s.AddToCart(ctx, sess, variant.SKU, quantity)
}

// RemoveFromCart implements CartService.
func (s *cartService) RemoveFromCart(ctx context.Context, sess *session.Session, variantID int64) (domain.Cart, error) {
	const op = "cart.remove"

	sku, ok := sess.Cart.SKUFor(variantID)
	if !ok {
		s.logger.WarnContext(ctx, "cart item not found for removal",
			"session_id", sess.ID,
			"variant_id", variantID,
		)
		s.metrics.CartLookupMiss("remove")
		return sess.Cart, nil
	}
	if !sess.LoggedIn() {
		return sess.Cart, ErrNotLoggedIn
	}

	if err := s.backend.RemoveCartItem(ctx, sess.Token, sku); err != nil {
		return sess.Cart, backend.WithFallback(err, "Không thể xóa")
	}

	return s.afterMutation(ctx, sess, op, "remove"), nil
}

// UpdateQuantity implements CartService.
func (s *cartService) UpdateQuantity(ctx context.Context, sess *session.Session, variantID int64, quantity int) (domain.Cart, error) {
	const op = "cart.update"

	sku, ok := sess.Cart.SKUFor(variantID)
	if !ok {
		s.logger.WarnContext(ctx, "cart item not found for update",
			"session_id", sess.ID,
			"variant_id", variantID,
		)
		s.metrics.CartLookupMiss("update")
		return sess.Cart, nil
	}

	if quantity <= 0 {
		return s.RemoveFromCart(ctx, sess, variantID)
	}
	if !sess.LoggedIn() {
		return sess.Cart, ErrNotLoggedIn
	}

	if err := s.backend.UpdateCartItem(ctx, sess.Token, sku, quantity); err != nil {
		return sess.Cart, backend.WithFallback(err, "Không thể cập nhật")
	}

	return s.afterMutation(ctx, sess, op, "update"), nil
}

// ClearCart implements CartService. Backends without DELETE /cart/clear
// answer 404, 405 or 501; the projection is then cleared locally only.
func (s *cartService) ClearCart(ctx context.Context, sess *session.Session) (domain.Cart, error) {
	const op = "cart.clear"

	if !sess.LoggedIn() {
		sess.Cart = domain.EmptyCart()
		return sess.Cart, nil
	}

	err := s.backend.ClearCart(ctx, sess.Token)
	switch backend.StatusCode(err) {
	case 0:
		if err != nil {
			return sess.Cart, backend.WithFallback(err, "Không thể xóa giỏ hàng")
		}
		return s.afterMutation(ctx, sess, op, "clear"), nil

	case http.StatusNotFound, http.StatusMethodNotAllowed, http.StatusNotImplemented:
		s.logger.InfoContext(ctx, "backend has no cart clear endpoint, clearing locally",
			"session_id", sess.ID,
			"status", backend.StatusCode(err),
		)
		sess.Cart = domain.EmptyCart()
		s.metrics.CartMutation("clear_local")
		s.publish(ctx, sess, "clear_local")
		return sess.Cart, nil

	default:
		return sess.Cart, backend.WithFallback(err, "Không thể xóa giỏ hàng")
	}
}

// afterMutation refetches the cart and records the mutation.
func (s *cartService) afterMutation(ctx context.Context, sess *session.Session, op, label string) domain.Cart {
	cart := s.Fetch(ctx, sess)

	s.metrics.CartMutation(label)
	telemetry.AddBreadcrumb("cart", op, map[string]interface{}{
		"item_count": cart.ItemCount(),
	})
	s.publish(ctx, sess, label)
	return cart
}

type cartUpdatedEvent struct {
	Op        string `json:"op"`
	ItemCount int    `json:"itemCount"`
	Total     string `json:"total"`
}

func (s *cartService) publish(ctx context.Context, sess *session.Session, op string) {
	data := cartUpdatedEvent{
		Op:        op,
		ItemCount: sess.Cart.ItemCount(),
		Total:     sess.Cart.Total().String(),
	}
	if err := s.publisher.Publish(ctx, events.SubjectCartUpdated, sess.ID, data); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart event", "error", err)
	}
}
