package billing

import (
	"context"
	"time"

	"github.com/stripe/stripe-go/v83"
)

// StripeProvider implements Provider using Stripe.
type StripeProvider struct {
	client *stripe.Client
}

var _ Provider = (*StripeProvider)(nil)

// NewStripeProvider creates a new Stripe billing provider.
func NewStripeProvider(cfg StripeConfig) (*StripeProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &StripeProvider{client: stripe.NewClient(cfg.APIKey)}, nil
}

// CreatePaymentIntent creates a Stripe payment intent.
func (s *StripeProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	currency := params.Currency
	if currency == "" {
		currency = CurrencyVND
	}

	p := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(params.Amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if params.Description != "" {
		p.Description = stripe.String(params.Description)
	}
	if params.CustomerEmail != "" {
		p.ReceiptEmail = stripe.String(params.CustomerEmail)
	}
	for k, v := range params.Metadata {
		p.AddMetadata(k, v)
	}
	if params.IdempotencyKey != "" {
		p.SetIdempotencyKey(params.IdempotencyKey)
	}

	pi, err := s.client.V1PaymentIntents.Create(ctx, p)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	return fromStripe(pi), nil
}

// GetPaymentIntent retrieves a Stripe payment intent.
func (s *StripeProvider) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error) {
	pi, err := s.client.V1PaymentIntents.Retrieve(ctx, paymentIntentID, nil)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	return fromStripe(pi), nil
}

// CancelPaymentIntent cancels a Stripe payment intent.
func (s *StripeProvider) CancelPaymentIntent(ctx context.Context, paymentIntentID string) error {
	_, err := s.client.V1PaymentIntents.Cancel(ctx, paymentIntentID, nil)
	return wrapStripeError(err)
}

// MarkPaymentIntentUsed stores orderID in the intent's metadata.
func (s *StripeProvider) MarkPaymentIntentUsed(ctx context.Context, paymentIntentID, orderID string) error {
	p := &stripe.PaymentIntentUpdateParams{}
	p.AddMetadata(MetadataOrderID, orderID)
	_, err := s.client.V1PaymentIntents.Update(ctx, paymentIntentID, p)
	return wrapStripeError(err)
}

func fromStripe(pi *stripe.PaymentIntent) *PaymentIntent {
	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
		CreatedAt:    time.Unix(pi.Created, 0),
	}
}
