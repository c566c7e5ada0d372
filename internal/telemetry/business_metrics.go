package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// BusinessMetrics holds Prometheus metrics for storefront activity.
// All methods are safe to call on a nil receiver.
type BusinessMetrics struct {
	// Catalog
	ProductViews    *prometheus.CounterVec
	ProductSearches *prometheus.CounterVec
	ProductAdmin    *prometheus.CounterVec
	ReviewsPosted   prometheus.Counter

	// Cart
	CartMutations    *prometheus.CounterVec
	CartRefetchFails prometheus.Counter
	CartLookupMisses *prometheus.CounterVec

	// Checkout
	CheckoutStarted  *prometheus.CounterVec
	OrdersPlaced     *prometheus.CounterVec
	OrderValue       prometheus.Histogram
	PaymentIntents   *prometheus.CounterVec
	OrderTransitions *prometheus.CounterVec

	// Auth
	Logins  *prometheus.CounterVec
	Signups prometheus.Counter

	// Chat
	ChatTurns *prometheus.CounterVec

	// Background jobs
	SessionsSwept prometheus.Counter

	// Backend
	BackendReadFailures *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics on reg.
// A nil reg uses the default registerer.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "gymsup"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	f := promauto.With(reg)

	return &BusinessMetrics{
		// =======================================================================
		// Catalog
		// =======================================================================
		ProductViews: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "product_views_total",
				Help:      "Total product detail page views",
			},
			[]string{"category"},
		),
		ProductSearches: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "product_searches_total",
				Help:      "Total browse requests",
			},
			[]string{"filter_type"}, // filter_type: category, brand, search, none
		),
		ProductAdmin: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "product_admin_operations_total",
				Help:      "Total admin product operations",
			},
			[]string{"op"}, // op: create, update, delete
		),
		ReviewsPosted: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reviews_posted_total",
				Help:      "Total reviews submitted",
			},
		),

		// =======================================================================
		// Cart
		// =======================================================================
		CartMutations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_mutations_total",
				Help:      "Total successful cart mutations",
			},
			[]string{"op"}, // op: add, update, remove, clear, clear_local
		),
		CartRefetchFails: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_refetch_failures_total",
				Help:      "Cart reads that failed and degraded to an empty cart",
			},
		),
		CartLookupMisses: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_lookup_misses_total",
				Help:      "Cart mutations ignored because the variant was not in the cart",
			},
			[]string{"op"},
		),

		// =======================================================================
		// Checkout
		// =======================================================================
		CheckoutStarted: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkout_started_total",
				Help:      "Total checkout submissions",
			},
			[]string{"payment_method"},
		),
		OrdersPlaced: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_placed_total",
				Help:      "Total orders accepted by the backend",
			},
			[]string{"payment_method"},
		),
		OrderValue: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "order_value_vnd",
				Help:      "Order totals in VND",
				Buckets:   []float64{100_000, 250_000, 500_000, 1_000_000, 2_500_000, 5_000_000, 10_000_000},
			},
		),
		PaymentIntents: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_intents_total",
				Help:      "Total payment intent creations",
			},
			[]string{"result"}, // result: created, failed
		),
		OrderTransitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_transitions_total",
				Help:      "Total order status changes",
			},
			[]string{"status"},
		),

		// =======================================================================
		// Auth
		// =======================================================================
		Logins: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Total login attempts",
			},
			[]string{"result", "role"},
		),
		Signups: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signups_total",
				Help:      "Total successful registrations",
			},
		),

		// =======================================================================
		// Chat
		// =======================================================================
		ChatTurns: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_turns_total",
				Help:      "Total chat assistant turns",
			},
			[]string{"result"}, // result: ok, fallback
		),

		// =======================================================================
		// Background jobs
		// =======================================================================
		SessionsSwept: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_swept_total",
				Help:      "Expired sessions deleted by the cleanup job",
			},
		),

		// =======================================================================
		// Backend
		// =======================================================================
		BackendReadFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_read_failures_total",
				Help:      "Backend reads that failed and degraded to empty results",
			},
			[]string{"resource"}, // resource: products, orders, cart
		),
	}
}

// CartMutation records a successful cart mutation.
func (m *BusinessMetrics) CartMutation(op string) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(op).Inc()
}

// CartLookupMiss records a mutation skipped because the variant was unknown.
func (m *BusinessMetrics) CartLookupMiss(op string) {
	if m == nil {
		return
	}
	m.CartLookupMisses.WithLabelValues(op).Inc()
}

// ReadFailure records a degraded backend read.
func (m *BusinessMetrics) ReadFailure(resource string) {
	if m == nil {
		return
	}
	m.BackendReadFailures.WithLabelValues(resource).Inc()
	if resource == "cart" {
		m.CartRefetchFails.Inc()
	}
}

// ProductViewed records a product page view.
func (m *BusinessMetrics) ProductViewed(category string) {
	if m == nil {
		return
	}
	m.ProductViews.WithLabelValues(category).Inc()
}

// ProductSearched records a browse request.
func (m *BusinessMetrics) ProductSearched(filterType string) {
	if m == nil {
		return
	}
	m.ProductSearches.WithLabelValues(filterType).Inc()
}

// ProductAdminOp records an admin product operation.
func (m *BusinessMetrics) ProductAdminOp(op string) {
	if m == nil {
		return
	}
	m.ProductAdmin.WithLabelValues(op).Inc()
}

// ReviewPosted records a submitted review.
func (m *BusinessMetrics) ReviewPosted() {
	if m == nil {
		return
	}
	m.ReviewsPosted.Inc()
}

// CheckoutSubmitted records a checkout attempt.
func (m *BusinessMetrics) CheckoutSubmitted(method string) {
	if m == nil {
		return
	}
	m.CheckoutStarted.WithLabelValues(method).Inc()
}

// OrderPlaced records an accepted order and its value.
func (m *BusinessMetrics) OrderPlaced(method string, total decimal.Decimal) {
	if m == nil {
		return
	}
	m.OrdersPlaced.WithLabelValues(method).Inc()
	m.OrderValue.Observe(total.InexactFloat64())
}

// PaymentIntent records a payment intent creation attempt.
func (m *BusinessMetrics) PaymentIntent(result string) {
	if m == nil {
		return
	}
	m.PaymentIntents.WithLabelValues(result).Inc()
}

// OrderTransition records an order status change.
func (m *BusinessMetrics) OrderTransition(status string) {
	if m == nil {
		return
	}
	m.OrderTransitions.WithLabelValues(status).Inc()
}

// Login records a login attempt.
func (m *BusinessMetrics) Login(result, role string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result, role).Inc()
}

// Signup records a registration.
func (m *BusinessMetrics) Signup() {
	if m == nil {
		return
	}
	m.Signups.Inc()
}

// ChatTurn records a chat turn.
func (m *BusinessMetrics) ChatTurn(result string) {
	if m == nil {
		return
	}
	m.ChatTurns.WithLabelValues(result).Inc()
}

// SessionsDeleted records swept sessions.
func (m *BusinessMetrics) SessionsDeleted(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsSwept.Add(float64(n))
}
