// Package admin serves the admin panel's product and order management API.
// Routes are mounted behind middleware.RequireAdmin; the services check the
// role again before any backend call.
package admin

import (
	"net/http"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/handler"
	"github.com/dukerupert/gymsup/internal/middleware"
	"github.com/dukerupert/gymsup/internal/service"
)

// ProductHandler handles admin product management.
type ProductHandler struct {
	catalog service.CatalogService
}

// NewProductHandler creates a new admin product handler
func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /api/admin/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, map[string][]domain.Product{"products": h.catalog.List(r.Context())})
}

// Create handles POST /api/admin/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ProductRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.catalog.Create(r.Context(), middleware.GetSession(r.Context()), req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	h.respondWithCatalog(w, r, http.StatusCreated)
}

// Update handles PUT /api/admin/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req domain.ProductRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.catalog.Update(r.Context(), middleware.GetSession(r.Context()), id, req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	h.respondWithCatalog(w, r, http.StatusOK)
}

// Delete handles DELETE /api/admin/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.catalog.Delete(r.Context(), middleware.GetSession(r.Context()), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	h.respondWithCatalog(w, r, http.StatusOK)
}

// respondWithCatalog returns the refreshed product list so the panel never
// shows a stale row after a mutation.
func (h *ProductHandler) respondWithCatalog(w http.ResponseWriter, r *http.Request, status int) {
	handler.WriteJSON(w, status, map[string][]domain.Product{"products": h.catalog.List(r.Context())})
}
