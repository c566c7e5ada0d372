package storefront

import (
	"net/http"
	"strings"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/handler"
	"github.com/dukerupert/gymsup/internal/service"
)

// CartHandler handles all cart routes. Responses always carry the cart as
// read back from the backend after the mutation.
type CartHandler struct {
	carts   service.CartService
	catalog service.CatalogService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts service.CartService, catalog service.CatalogService) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

// addRequest adds either a known SKU or the variant of a product picked by
// its flavor and size.
type addRequest struct {
	SKU       string `json:"sku,omitempty"`
	ProductID int64  `json:"productId,omitempty"`
	Flavor    string `json:"flavor,omitempty"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
}

type lineRequest struct {
	VariantID int64 `json:"variantId"`
	Quantity  int   `json:"quantity"`
}

// View handles GET /api/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}
	cart := h.carts.Fetch(r.Context(), sess)
	handler.WriteJSON(w, http.StatusOK, cart.Summary())
}

// Add handles POST /api/cart/add
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	var req addRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	ctx := r.Context()
	var (
		cart domain.Cart
		err  error
	)
	switch {
	case strings.TrimSpace(req.SKU) != "":
		cart, err = h.carts.AddToCart(ctx, sess, strings.TrimSpace(req.SKU), req.Quantity)
	case req.ProductID > 0:
		var product domain.Product
		product, err = h.catalog.Get(ctx, req.ProductID)
		if err == nil {
			cart, err = h.carts.AddVariant(ctx, sess, product, req.Flavor, req.Size, req.Quantity)
		}
	default:
		err = domain.NewValidationError("storefront.cart.add", "sku", "Vui lòng chọn sản phẩm")
	}
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, cart.Summary())
}

// Update handles POST /api/cart/update
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	var req lineRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.carts.UpdateQuantity(r.Context(), sess, req.VariantID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, cart.Summary())
}

// Remove handles POST /api/cart/remove
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	var req lineRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.carts.RemoveFromCart(r.Context(), sess, req.VariantID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, cart.Summary())
}

// Clear handles POST /api/cart/clear
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.ClearCart(r.Context(), sess)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, cart.Summary())
}
