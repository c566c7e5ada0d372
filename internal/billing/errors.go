package billing

import (
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v83"
)

var (
	// ErrInvalidAPIKey is returned when Stripe API key is invalid or missing.
	ErrInvalidAPIKey = errors.New("billing: invalid or missing API key")

	// ErrPaymentIntentNotFound is returned when payment intent does not exist.
	ErrPaymentIntentNotFound = errors.New("billing: payment intent not found")

	// ErrPaymentFailed is returned when payment fails (card declined, etc.)
	ErrPaymentFailed = errors.New("billing: payment failed")

	// ErrAmountTooSmall is returned when payment amount is below Stripe's minimum.
	ErrAmountTooSmall = errors.New("billing: amount too small")
)

// StripeError wraps a Stripe API error with additional context.
type StripeError struct {
	Message       string // Human-readable error message
	Code          string // Stripe error code (e.g., "card_declined")
	DeclineCode   string // Card decline reason (if applicable)
	StatusCode    int    // HTTP status code from Stripe
	RequestID     string // Stripe request ID for debugging
	OriginalError error  // Original error from Stripe SDK
}

func (e *StripeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("stripe: %s (code: %s)", e.Message, e.Code)
	}
	return fmt.Sprintf("stripe: %s", e.Message)
}

func (e *StripeError) Unwrap() error {
	return e.OriginalError
}

// IsDeclined returns true if error is due to card decline.
func (e *StripeError) IsDeclined() bool {
	return e.Code == "card_declined" || e.DeclineCode != ""
}

// IsTemporary returns true if error is likely transient.
func (e *StripeError) IsTemporary() bool {
	return e.Code == "rate_limit" || e.StatusCode >= 500
}

// wrapStripeError converts Stripe SDK errors into StripeError, mapping the
// well-known cases onto the package sentinels.
func wrapStripeError(err error) error {
	if err == nil {
		return nil
	}

	var se *stripe.Error
	if !errors.As(err, &se) {
		return fmt.Errorf("stripe: %w", err)
	}

	wrapped := &StripeError{
		Message:       se.Msg,
		Code:          string(se.Code),
		DeclineCode:   string(se.DeclineCode),
		StatusCode:    se.HTTPStatusCode,
		RequestID:     se.RequestID,
		OriginalError: err,
	}

	switch {
	case se.Code == stripe.ErrorCodeResourceMissing:
		wrapped.OriginalError = ErrPaymentIntentNotFound
	case se.Code == stripe.ErrorCodeAmountTooSmall:
		wrapped.OriginalError = ErrAmountTooSmall
	case se.HTTPStatusCode == 401:
		wrapped.OriginalError = ErrInvalidAPIKey
	case wrapped.IsDeclined():
		wrapped.OriginalError = ErrPaymentFailed
	}
	return wrapped
}
