package middleware

import (
	"net/http"

	"github.com/dukerupert/gymsup/internal/service"
)

// RequireLogin rejects requests whose session holds no token and user.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := GetSession(r.Context())
		if sess == nil || !sess.LoggedIn() {
			respondWithError(w, r, service.ErrNotLoggedIn)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from anyone but a signed-in ADMIN.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := GetSession(r.Context())
		if sess == nil || !sess.LoggedIn() {
			respondWithError(w, r, service.ErrNotLoggedIn)
			return
		}
		if !sess.User.IsAdmin() {
			respondWithError(w, r, service.ErrAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}
