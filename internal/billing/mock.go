package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockProvider is a billing provider that never calls Stripe. It is used in
// tests and in development when no Stripe key is configured.
type MockProvider struct {
	// CreatePaymentIntentFunc allows customizing payment intent creation behavior
	CreatePaymentIntentFunc func(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetPaymentIntentFunc allows customizing payment intent retrieval behavior
	GetPaymentIntentFunc func(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)

	// MarkPaymentIntentUsedFunc allows customizing redemption recording
	MarkPaymentIntentUsedFunc func(ctx context.Context, paymentIntentID, orderID string) error

	// AutoSucceed marks new intents as succeeded immediately
	AutoSucceed bool

	mu sync.Mutex

	// PaymentIntents stores created payment intents for retrieval
	PaymentIntents map[string]*PaymentIntent

	// CallLog tracks method calls for test assertions
	CallLog []string
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a new mock billing provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		PaymentIntents: make(map[string]*PaymentIntent),
		CallLog:        []string{},
	}
}

// CreatePaymentIntent creates a mock payment intent.
func (m *MockProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	m.mu.Lock()
	m.CallLog = append(m.CallLog, fmt.Sprintf("CreatePaymentIntent(%d, %s)", params.Amount, params.Currency))
	m.mu.Unlock()

	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(ctx, params)
	}

	currency := params.Currency
	if currency == "" {
		currency = CurrencyVND
	}
	status := StatusRequiresPaymentMethod
	if m.AutoSucceed {
		status = StatusSucceeded
	}

	id := "pi_" + uuid.New().String()
	pi := &PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.New().String(),
		Amount:       params.Amount,
		Currency:     currency,
		Status:       status,
		Metadata:     params.Metadata,
		CreatedAt:    time.Now(),
	}

	m.mu.Lock()
	m.PaymentIntents[pi.ID] = pi
	m.mu.Unlock()
	return pi, nil
}

// GetPaymentIntent retrieves a mock payment intent.
func (m *MockProvider) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error) {
	m.mu.Lock()
	m.CallLog = append(m.CallLog, fmt.Sprintf("GetPaymentIntent(%s)", paymentIntentID))
	m.mu.Unlock()

	if m.GetPaymentIntentFunc != nil {
		return m.GetPaymentIntentFunc(ctx, paymentIntentID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	pi, ok := m.PaymentIntents[paymentIntentID]
	if !ok {
		return nil, ErrPaymentIntentNotFound
	}
	cp := *pi
	return &cp, nil
}

// CancelPaymentIntent cancels a mock payment intent.
func (m *MockProvider) CancelPaymentIntent(ctx context.Context, paymentIntentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallLog = append(m.CallLog, fmt.Sprintf("CancelPaymentIntent(%s)", paymentIntentID))

	pi, ok := m.PaymentIntents[paymentIntentID]
	if !ok {
		return ErrPaymentIntentNotFound
	}
	pi.Status = StatusCanceled
	return nil
}

// MarkPaymentIntentUsed records orderID in the mock intent's metadata.
func (m *MockProvider) MarkPaymentIntentUsed(ctx context.Context, paymentIntentID, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallLog = append(m.CallLog, fmt.Sprintf("MarkPaymentIntentUsed(%s, %s)", paymentIntentID, orderID))

	if m.MarkPaymentIntentUsedFunc != nil {
		return m.MarkPaymentIntentUsedFunc(ctx, paymentIntentID, orderID)
	}

	pi, ok := m.PaymentIntents[paymentIntentID]
	if !ok {
		return ErrPaymentIntentNotFound
	}
	metadata := make(map[string]string, len(pi.Metadata)+1)
	for k, v := range pi.Metadata {
		metadata[k] = v
	}
	metadata[MetadataOrderID] = orderID
	pi.Metadata = metadata
	return nil
}

// SimulateSucceededPayment marks a payment intent as succeeded, as if the
// customer confirmed it with Stripe.js.
func (m *MockProvider) SimulateSucceededPayment(paymentIntentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pi, ok := m.PaymentIntents[paymentIntentID]
	if !ok {
		return ErrPaymentIntentNotFound
	}
	pi.Status = StatusSucceeded
	return nil
}
