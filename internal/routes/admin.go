package routes

import (
	"github.com/dukerupert/gymsup/internal/middleware"
	"github.com/dukerupert/gymsup/internal/router"
)

// RegisterAdminRoutes registers the admin panel API.
// Every route requires an ADMIN session.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	admin := r.Group(middleware.RequireAdmin)

	// Products
	admin.Get("/api/admin/products", deps.ProductHandler.List)
	admin.Post("/api/admin/products", deps.ProductHandler.Create)
	admin.Put("/api/admin/products/{id}", deps.ProductHandler.Update)
	admin.Delete("/api/admin/products/{id}", deps.ProductHandler.Delete)

	// Orders
	admin.Get("/api/admin/orders", deps.OrderHandler.List)
	admin.Put("/api/admin/orders/{id}/status", deps.OrderHandler.UpdateStatus)
}
