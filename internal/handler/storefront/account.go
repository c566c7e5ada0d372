package storefront

import (
	"net/http"
	"strconv"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/handler"
	"github.com/dukerupert/gymsup/internal/service"
)

// AccountHandler serves the account page and the customer's orders.
type AccountHandler struct {
	accounts service.AccountService
	orders   service.OrderService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts service.AccountService, orders service.OrderService) *AccountHandler {
	return &AccountHandler{accounts: accounts, orders: orders}
}

// Profile handles GET /api/account
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	user, err := h.accounts.Profile(r.Context(), sess)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/account
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	var upd domain.ProfileUpdate
	if err := handler.DecodeJSON(r, &upd); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), sess, upd)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, user)
}

// ChangePassword handles PUT /api/account/password
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	var pc domain.PasswordChange
	if err := handler.DecodeJSON(r, &pc); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.accounts.ChangePassword(r.Context(), sess, pc); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Orders handles GET /api/orders
func (h *AccountHandler) Orders(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string][]domain.Order{"orders": h.orders.List(r.Context(), sess)})
}

// CancelOrder handles POST /api/orders/{id}/cancel
func (h *AccountHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	ctx := r.Context()
	if err := h.orders.Cancel(ctx, sess, strconv.FormatInt(id, 10)); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string][]domain.Order{"orders": h.orders.List(ctx, sess)})
}
