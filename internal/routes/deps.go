package routes

import (
	"net/http"

	"github.com/dukerupert/gymsup/internal/handler/admin"
	"github.com/dukerupert/gymsup/internal/handler/storefront"
	"github.com/dukerupert/gymsup/internal/router"
)

// StorefrontDeps contains dependencies for storefront API routes
type StorefrontDeps struct {
	// Navigation (bootstrap, current page, transitions)
	NavHandler *storefront.NavHandler

	// Products (listing, detail, brands, reviews)
	ProductHandler *storefront.ProductHandler

	// Cart
	CartHandler *storefront.CartHandler

	// Checkout (payment intent, place order)
	CheckoutHandler *storefront.CheckoutHandler

	// Auth (login, register, logout)
	AuthHandler *storefront.AuthHandler

	// Account (profile, password, orders)
	AccountHandler *storefront.AccountHandler

	// Chat assistant
	ChatHandler *storefront.ChatHandler

	// AuthRateLimit guards login and registration. May be nil.
	AuthRateLimit router.Middleware
}

// AdminDeps contains dependencies for admin API routes
type AdminDeps struct {
	ProductHandler *admin.ProductHandler
	OrderHandler   *admin.OrderHandler
}

// SystemDeps contains dependencies for operational endpoints served
// outside the API middleware chain.
type SystemDeps struct {
	// Health reports liveness. Defaults to a static OK.
	Health http.Handler

	// Metrics exposes Prometheus metrics. Not mounted when nil.
	Metrics http.Handler
}
