// Package events publishes storefront domain events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Subjects published by the storefront.
const (
	SubjectCartUpdated    = "storefront.cart.updated"
	SubjectOrderPlaced    = "storefront.order.placed"
	SubjectOrderCancelled = "storefront.order.cancelled"
	SubjectOrderStatus    = "storefront.order.status_changed"
	SubjectProductCreated = "storefront.product.created"
	SubjectProductUpdated = "storefront.product.updated"
	SubjectProductDeleted = "storefront.product.deleted"
	SubjectReviewPosted   = "storefront.review.posted"
	SubjectUserLoggedIn   = "storefront.user.logged_in"
	SubjectUserRegistered = "storefront.user.registered"
)

// Event is the envelope of every published message.
type Event struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurredAt"`
	SessionID  string    `json:"sessionId,omitempty"`
	Data       any       `json:"data"`
}

// Publisher publishes domain events. Publishing is best-effort: callers log
// failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, subject, sessionID string, data any) error
	Close() error
}

// NewEvent builds an envelope with a fresh ID.
func NewEvent(subject, sessionID string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Subject:    subject,
		OccurredAt: time.Now().UTC(),
		SessionID:  sessionID,
		Data:       data,
	}
}

// =============================================================================
// NATS
// =============================================================================

// NATSConfig holds NATS connection settings.
type NATSConfig struct {
	URL  string
	Name string
}

// NATSPublisher publishes events to NATS core subjects.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// NewNATSPublisher connects to NATS.
func NewNATSPublisher(cfg NATSConfig, logger *slog.Logger) (*NATSPublisher, error) {
	name := cfg.Name
	if name == "" {
		name = "gymsup-storefront"
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("NATS connected", "url", conn.ConnectedUrl())
	return &NATSPublisher{conn: conn, logger: logger}, nil
}

// Publish implements Publisher.
func (p *NATSPublisher) Publish(ctx context.Context, subject, sessionID string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(NewEvent(subject, sessionID, data))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// =============================================================================
// IN-PROCESS
// =============================================================================

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, string, string, any) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements Publisher.
func (r *Recorder) Publish(_ context.Context, subject, sessionID string, data any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, NewEvent(subject, sessionID, data))
	return nil
}

// Close implements Publisher.
func (r *Recorder) Close() error { return nil }

// Subjects returns the subjects published so far, in order.
func (r *Recorder) Subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Subject
	}
	return out
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
