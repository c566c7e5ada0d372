// Package session holds per-visitor storefront state: the backend bearer
// token, the user profile, the cart projection, navigation state and chat
// history. Sessions are addressed by an opaque random ID carried in a cookie.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/nav"
)

// DefaultTTL is how long an idle session lives.
const DefaultTTL = 7 * 24 * time.Hour

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Session is one visitor's storefront state.
type Session struct {
	ID        string               `json:"id"`
	Token     string               `json:"token,omitempty"`
	User      *domain.User         `json:"user,omitempty"`
	Cart      domain.Cart          `json:"cart"`
	Nav       nav.State            `json:"nav"`
	Chat      []domain.ChatMessage `json:"chat,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	ExpiresAt time.Time            `json:"expiresAt"`
}

// Store persists sessions. Implementations must treat expired sessions as
// missing. Concurrent saves of the same session are last-write-wins.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// Sweeper is implemented by stores that need expired sessions removed
// explicitly.
type Sweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// New creates an anonymous session on the home page.
func New(ttl time.Duration) (*Session, error) {
	id, err := generateID()
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:        id,
		Cart:      domain.EmptyCart(),
		Nav:       nav.Initial(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// LoggedIn reports whether the session holds both a token and a user.
// Either one alone does not count.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Touch extends the session's expiry by ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// RenewID gives the session a fresh ID and returns the old one. Call it
// when the session's privilege changes so a leaked ID stops working.
func (s *Session) RenewID() (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}
	old := s.ID
	s.ID = id
	return old, nil
}

// SignIn stores the credentials of a successful login.
func (s *Session) SignIn(token string, user *domain.User) {
	s.Token = token
	s.User = user
	s.Nav = nav.Login(s.Nav, user)
}

// SignOut drops everything tied to the user and returns to a clean home page.
func (s *Session) SignOut() {
	s.Token = ""
	s.User = nil
	s.Cart = domain.EmptyCart()
	s.Chat = nil
	s.Nav = nav.Logout(s.Nav)
}

func encode(s *Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

// generateID returns a cryptographically secure session ID.
func generateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
