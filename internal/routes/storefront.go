package routes

import (
	"github.com/dukerupert/gymsup/internal/middleware"
	"github.com/dukerupert/gymsup/internal/router"
)

// RegisterStorefrontRoutes registers the customer-facing JSON API.
//
// Catalog, cart and navigation routes are open to anonymous sessions; the
// cart service answers them from the session's empty projection. Account,
// checkout and review routes require a signed-in session.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Page load and navigation
	r.Get("/api/bootstrap", deps.NavHandler.Bootstrap)
	r.Get("/api/page", deps.NavHandler.Page)
	r.Post("/api/nav/{action}", deps.NavHandler.Navigate)

	// Catalog
	r.Get("/api/home", deps.ProductHandler.Home)
	r.Get("/api/products", deps.ProductHandler.List)
	r.Get("/api/products/{id}", deps.ProductHandler.Get)
	r.Get("/api/brands", deps.ProductHandler.Brands)

	// Cart
	r.Get("/api/cart", deps.CartHandler.View)
	r.Post("/api/cart/add", deps.CartHandler.Add)
	r.Post("/api/cart/update", deps.CartHandler.Update)
	r.Post("/api/cart/remove", deps.CartHandler.Remove)
	r.Post("/api/cart/clear", deps.CartHandler.Clear)

	// Chat assistant
	r.Get("/api/chat", deps.ChatHandler.History)
	r.Post("/api/chat", deps.ChatHandler.Send)

	// Authentication, with stricter rate limiting on credential checks
	auth := r
	if deps.AuthRateLimit != nil {
		auth = r.Group(deps.AuthRateLimit)
	}
	auth.Post("/api/auth/login", deps.AuthHandler.Login)
	auth.Post("/api/auth/register", deps.AuthHandler.Register)
	r.Post("/api/auth/logout", deps.AuthHandler.Logout)

	// Signed-in routes
	account := r.Group(middleware.RequireLogin)
	account.Post("/api/products/{id}/reviews", deps.ProductHandler.Review)
	account.Post("/api/checkout/payment-intent", deps.CheckoutHandler.PaymentIntent)
	account.Post("/api/checkout", deps.CheckoutHandler.PlaceOrder)
	account.Get("/api/account", deps.AccountHandler.Profile)
	account.Put("/api/account", deps.AccountHandler.UpdateProfile)
	account.Put("/api/account/password", deps.AccountHandler.ChangePassword)
	account.Get("/api/orders", deps.AccountHandler.Orders)
	account.Post("/api/orders/{id}/cancel", deps.AccountHandler.CancelOrder)
}
