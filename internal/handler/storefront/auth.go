package storefront

import (
	"net/http"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/handler"
	"github.com/dukerupert/gymsup/internal/middleware"
	"github.com/dukerupert/gymsup/internal/nav"
	"github.com/dukerupert/gymsup/internal/service"
)

// AuthHandler handles login, registration and logout. The session ID is
// rotated whenever the signed-in identity changes.
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	var creds domain.Credentials
	if err := handler.DecodeJSON(r, &creds); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), sess, creds)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := middleware.RenewSession(r.Context()); err != nil {
		handler.InternalErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, result)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	var reg domain.Registration
	if err := handler.DecodeJSON(r, &reg); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	result, err := h.auth.Register(r.Context(), sess, reg)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := middleware.RenewSession(r.Context()); err != nil {
		handler.InternalErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, result)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	h.auth.Logout(r.Context(), sess)
	if err := middleware.RenewSession(r.Context()); err != nil {
		handler.InternalErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, pageResponse{
		Nav:  sess.Nav,
		Page: nav.Resolve(sess.Nav, nil),
	})
}
