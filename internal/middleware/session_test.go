package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/gymsup/internal/cookie"
	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookie.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSessions_CreatesAndPersists(t *testing.T) {
	store := session.NewMemoryStore()
	mw := NewSessions(store, cookie.NewConfig("", false), time.Hour, testLogger())

	var seen *session.Session
	h := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSession(r.Context())
		seen.SignIn("tok", &domain.User{ID: 3, Role: domain.RoleUser})
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bootstrap", nil))

	require.NotNil(t, seen)
	c := sessionCookie(t, rec)
	assert.Equal(t, seen.ID, c.Value)
	assert.True(t, c.HttpOnly)

	stored, err := store.Get(context.Background(), c.Value)
	require.NoError(t, err)
	assert.True(t, stored.LoggedIn())
}

func TestSessions_LoadsExisting(t *testing.T) {
	store := session.NewMemoryStore()
	existing, err := session.New(time.Hour)
	require.NoError(t, err)
	existing.SignIn("tok", &domain.User{ID: 4, Role: domain.RoleAdmin})
	require.NoError(t, store.Save(context.Background(), existing))

	mw := NewSessions(store, cookie.NewConfig("", false), time.Hour, testLogger())

	var admin bool
	h := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin = domain.IsAdmin(r.Context())
		_, _ = io.WriteString(w, "{}")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: existing.ID})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, admin)
	assert.Equal(t, existing.ID, sessionCookie(t, rec).Value)
}

func TestSessions_UnknownCookieStartsFresh(t *testing.T) {
	store := session.NewMemoryStore()
	mw := NewSessions(store, cookie.NewConfig("", false), time.Hour, testLogger())

	h := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, GetSession(r.Context()).LoggedIn())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: "stale"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEqual(t, "stale", sessionCookie(t, rec).Value)
	assert.Equal(t, 1, store.Len())
}

func TestSessions_Renew(t *testing.T) {
	store := session.NewMemoryStore()
	existing, err := session.New(time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), existing))
	oldID := existing.ID

	mw := NewSessions(store, cookie.NewConfig("", false), time.Hour, testLogger())
	h := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, RenewSession(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: oldID})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	newID := sessionCookie(t, rec).Value
	assert.NotEqual(t, oldID, newID)

	_, err = store.Get(context.Background(), oldID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.Get(context.Background(), newID)
	assert.NoError(t, err)
}

type failingStore struct{ session.Store }

func (failingStore) Get(ctx context.Context, id string) (*session.Session, error) {
	return nil, errors.New("connection refused")
}

func TestSessions_StoreFailure(t *testing.T) {
	mw := NewSessions(failingStore{}, cookie.NewConfig("", false), time.Hour, testLogger())
	h := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: "x"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequireLoginAndAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name      string
		user      *domain.User
		wantLogin int
		wantAdmin int
	}{
		{"anonymous", nil, http.StatusUnauthorized, http.StatusUnauthorized},
		{"customer", &domain.User{Role: domain.RoleUser}, http.StatusOK, http.StatusForbidden},
		{"admin", &domain.User{Role: domain.RoleAdmin}, http.StatusOK, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			mw := NewSessions(store, cookie.NewConfig("", false), time.Hour, testLogger())
			signIn := func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					if tt.user != nil {
						GetSession(r.Context()).SignIn("tok", tt.user)
					}
					next.ServeHTTP(w, r)
				})
			}

			rec := httptest.NewRecorder()
			mw.Middleware(signIn(RequireLogin(ok))).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/account", nil))
			assert.Equal(t, tt.wantLogin, rec.Code)

			rec = httptest.NewRecorder()
			mw.Middleware(signIn(RequireAdmin(ok))).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
			assert.Equal(t, tt.wantAdmin, rec.Code)
		})
	}
}
