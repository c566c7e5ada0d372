package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/gymsup/internal/cookie"
	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/session"
)

const sessionContextKey contextKey = "session"

// sessionState is the per-request session holder stored in the context.
type sessionState struct {
	sess    *session.Session
	oldIDs  []string
	written bool
}

// Sessions loads the visitor's session from store, creating an anonymous
// one when the cookie is missing or stale. The session is saved and the
// cookie refreshed just before the response is written, so the next request
// always observes this request's changes.
type Sessions struct {
	store   session.Store
	cookies *cookie.Config
	ttl     time.Duration
	logger  *slog.Logger
}

// NewSessions creates the session middleware.
func NewSessions(store session.Store, cookies *cookie.Config, ttl time.Duration, logger *slog.Logger) *Sessions {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &Sessions{store: store, cookies: cookies, ttl: ttl, logger: logger}
}

// Middleware implements the session lifecycle for one request.
func (m *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess, err := m.load(ctx, cookie.Get(r, cookie.SessionCookieName))
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to load session", "error", err)
			respondWithError(w, r, domain.WrapError(err, domain.EUNAVAILABLE, "session.load", "Phiên làm việc tạm thời không khả dụng"))
			return
		}

		r = r.WithContext(WithSession(ctx, sess))
		state := r.Context().Value(sessionContextKey).(*sessionState)

		sw := &sessionWriter{ResponseWriter: w, commit: func() { m.commit(r, w, state) }}
		next.ServeHTTP(sw, r)
		sw.flush()
	})
}

func (m *Sessions) load(ctx context.Context, id string) (*session.Session, error) {
	if id != "" {
		sess, err := m.store.Get(ctx, id)
		switch {
		case err == nil:
			return sess, nil
		case !errors.Is(err, session.ErrNotFound):
			return nil, err
		}
	}
	return session.New(m.ttl)
}

// commit saves the session and writes its cookie. Failures are logged; the
// response has already been decided by the handler.
func (m *Sessions) commit(r *http.Request, w http.ResponseWriter, state *sessionState) {
	if state.written {
		return
	}
	state.written = true

	ctx := r.Context()
	sess := state.sess
	sess.Touch(m.ttl)

	if err := m.store.Save(ctx, sess); err != nil {
		m.logger.ErrorContext(ctx, "failed to save session", "session_id", sess.ID, "error", err)
		return
	}
	for _, id := range state.oldIDs {
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger.WarnContext(ctx, "failed to delete rotated session", "error", err)
		}
	}
	m.cookies.SetSession(w, sess.ID, sess.ExpiresAt)
}

// GetSession returns the request's session, or nil outside the Sessions
// middleware.
func GetSession(ctx context.Context) *session.Session {
	if state, ok := ctx.Value(sessionContextKey).(*sessionState); ok {
		return state.sess
	}
	return nil
}

// WithSession attaches sess to ctx as the request's session.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	ctx = context.WithValue(ctx, sessionContextKey, &sessionState{sess: sess})
	if sess.LoggedIn() {
		ctx = domain.NewContextWithUser(ctx, sess.User)
	}
	return ctx
}

// RenewSession rotates the request's session ID. The old ID is deleted when
// the session is saved. Call it after login and logout.
func RenewSession(ctx context.Context) error {
	state, ok := ctx.Value(sessionContextKey).(*sessionState)
	if !ok {
		return errors.New("no session in context")
	}
	old, err := state.sess.RenewID()
	if err != nil {
		return err
	}
	state.oldIDs = append(state.oldIDs, old)
	return nil
}

// sessionWriter runs commit once, before the first byte of the response.
type sessionWriter struct {
	http.ResponseWriter
	commit    func()
	committed bool
}

func (w *sessionWriter) flush() {
	if !w.committed {
		w.committed = true
		w.commit()
	}
}

func (w *sessionWriter) WriteHeader(code int) {
	w.flush()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
