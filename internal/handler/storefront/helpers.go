// Package storefront serves the JSON API the storefront client talks to.
// Every handler works on the session loaded by middleware.Sessions.
package storefront

import (
	"errors"
	"net/http"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/handler"
	"github.com/dukerupert/gymsup/internal/middleware"
	"github.com/dukerupert/gymsup/internal/session"
)

var errNoSession = errors.New("no session in request context")

// requestSession returns the request's session, writing a 500 when the
// route was mounted without the session middleware.
func requestSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		handler.InternalErrorResponse(w, r, errNoSession)
		return nil, false
	}
	return sess, true
}

// sessionUser returns the signed-in user, or nil for anonymous sessions.
func sessionUser(sess *session.Session) *domain.User {
	if sess.LoggedIn() {
		return sess.User
	}
	return nil
}
