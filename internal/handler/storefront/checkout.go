package storefront

import (
	"net/http"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/handler"
	"github.com/dukerupert/gymsup/internal/service"
)

// CheckoutHandler handles card payment setup and order placement.
type CheckoutHandler struct {
	checkout service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// PaymentIntent handles POST /api/checkout/payment-intent
func (h *CheckoutHandler) PaymentIntent(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	intent, err := h.checkout.CreatePaymentIntent(r.Context(), sess)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, intent)
}

// PlaceOrder handles POST /api/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	var form domain.CheckoutForm
	if err := handler.DecodeJSON(r, &form); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), sess, form)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusCreated, map[string]any{
		"order": order,
		"cart":  sess.Cart.Summary(),
	})
}
