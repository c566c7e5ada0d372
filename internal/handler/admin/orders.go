package admin

import (
	"net/http"
	"strconv"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/handler"
	"github.com/dukerupert/gymsup/internal/middleware"
	"github.com/dukerupert/gymsup/internal/service"
)

// OrderHandler handles admin order management.
type OrderHandler struct {
	orders service.OrderService
}

// NewOrderHandler creates a new admin order handler
func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// List handles GET /api/admin/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	handler.WriteJSON(w, http.StatusOK, map[string][]domain.Order{"orders": h.orders.List(r.Context(), sess)})
}

// UpdateStatus handles PUT /api/admin/orders/{id}/status
//
// The body carries the display status (Pending, Delivered or Cancelled);
// the service translates it to the backend enum.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req statusRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	ctx := r.Context()
	sess := middleware.GetSession(ctx)
	if err := h.orders.UpdateStatus(ctx, sess, strconv.FormatInt(id, 10), req.Status); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string][]domain.Order{"orders": h.orders.List(ctx, sess)})
}
