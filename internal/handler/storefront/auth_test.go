package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/nav"
	"github.com/dukerupert/gymsup/internal/service"
	"github.com/dukerupert/gymsup/internal/session"
)

func TestAuthHandler_Login(t *testing.T) {
	auth := &mockAuthService{
		loginFunc: func(ctx context.Context, sess *session.Session, creds domain.Credentials) (*service.AuthResult, error) {
			if creds.Password != "secret1" {
				return nil, service.ErrLoginFailed
			}
			user := &domain.User{ID: 1, Email: creds.Email, Role: domain.RoleUser}
			sess.SignIn("jwt", user)
			return &service.AuthResult{User: user, Cart: domain.EmptyCart(), Orders: []domain.Order{}, Page: nav.PageHome}, nil
		},
	}
	h := NewAuthHandler(auth)

	t.Run("success rotates session", func(t *testing.T) {
		sess := newSession(t)
		oldID := sess.ID

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/api/auth/login", `{"email":"an@gymsup.vn","password":"secret1"}`, sess))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, sess.LoggedIn())
		assert.NotEqual(t, oldID, sess.ID)
		assert.Contains(t, rec.Body.String(), `"page":"home"`)
	})

	t.Run("wrong password keeps session", func(t *testing.T) {
		sess := newSession(t)
		oldID := sess.ID

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/api/auth/login", `{"email":"an@gymsup.vn","password":"nope"}`, sess))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, oldID, sess.ID)
		assert.Contains(t, rec.Body.String(), "Email hoặc mật khẩu không đúng")
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/api/auth/login", `{"username":"an"}`, newSession(t)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	rec := httptest.NewRecorder()
	h.Register(rec, newRequest(http.MethodPost, "/api/auth/register", `{"fullName":"An","email":"an@gymsup.vn","password":"secret1"}`, newSession(t)))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	sess := customerSession(t)
	sess.Nav = nav.State{Page: nav.PageAccount}
	sess.Cart = sampleCart()
	oldID := sess.ID

	rec := httptest.NewRecorder()
	NewAuthHandler(&mockAuthService{}).Logout(rec, newRequest(http.MethodPost, "/api/auth/logout", "", sess))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sess.LoggedIn())
	assert.True(t, sess.Cart.IsEmpty())
	assert.NotEqual(t, oldID, sess.ID)
	assert.Equal(t, nav.PageHome, decodePage(t, rec).Page)
}
