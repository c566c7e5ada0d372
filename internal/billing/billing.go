// Package billing creates and verifies card payments for checkout.
package billing

import (
	"context"
	"time"
)

// CurrencyVND is the storefront currency. VND is a zero-decimal currency,
// so amounts are whole dong.
const CurrencyVND = "vnd"

// Payment intent statuses the storefront cares about.
const (
	StatusSucceeded             = "succeeded"
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusCanceled              = "canceled"
)

// Provider defines the interface for payment processing.
type Provider interface {
	// CreatePaymentIntent creates a payment intent for a one-time charge.
	// Returns the intent with the client_secret for frontend confirmation.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetPaymentIntent retrieves an existing payment intent, used to verify
	// payment before an order is placed.
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)

	// CancelPaymentIntent cancels a payment intent that hasn't been confirmed.
	CancelPaymentIntent(ctx context.Context, paymentIntentID string) error

	// MarkPaymentIntentUsed records on the intent the order it paid for, so
	// later lookups can refuse to redeem it again.
	MarkPaymentIntentUsed(ctx context.Context, paymentIntentID, orderID string) error
}

// Metadata keys written on every storefront payment intent.
const (
	MetadataSessionID = "session_id"
	MetadataUserID    = "user_id"
	MetadataItemCount = "item_count"
	MetadataOrderID   = "order_id"
)

// CreatePaymentIntentParams contains parameters for creating a payment intent.
type CreatePaymentIntentParams struct {
	// Amount is in the smallest currency unit (whole dong for VND)
	Amount int64

	// Currency code (ISO 4217), defaults to vnd
	Currency string

	// CustomerEmail receives the receipt
	CustomerEmail string

	// Description appears in the Stripe dashboard
	Description string

	// Metadata for filtering and reporting (always include session_id)
	Metadata map[string]string

	// IdempotencyKey prevents duplicate payment intents for the same checkout
	IdempotencyKey string
}

// PaymentIntent represents a payment intent.
type PaymentIntent struct {
	// ID is the Stripe payment intent ID (pi_...)
	ID string

	// ClientSecret is used by Stripe.js on frontend to confirm payment
	ClientSecret string

	// Amount is in the smallest currency unit
	Amount int64

	// Currency code
	Currency string

	// Status: requires_payment_method, requires_confirmation, succeeded, etc.
	Status string

	// Metadata echoed back from creation
	Metadata map[string]string

	CreatedAt time.Time
}

// Succeeded reports whether the payment has been captured.
func (p *PaymentIntent) Succeeded() bool {
	return p != nil && p.Status == StatusSucceeded
}

// RedeemedBy returns the order the intent already paid for, if any.
func (p *PaymentIntent) RedeemedBy() string {
	if p == nil {
		return ""
	}
	return p.Metadata[MetadataOrderID]
}
