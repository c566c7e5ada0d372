package domain

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CHECKOUT
// =============================================================================

// CheckoutForm is the customer's checkout submission.
type CheckoutForm struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	Address         string `json:"address" validate:"required"`
	PaymentMethod   string `json:"paymentMethod" validate:"required,oneof=cod card"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
}

// PaymentIntent is the client-facing view of a card payment in progress.
type PaymentIntent struct {
	ID           string          `json:"id"`
	ClientSecret string          `json:"clientSecret"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
}
