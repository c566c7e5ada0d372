package storefront

import (
	"net/http"

	"github.com/dukerupert/gymsup/internal/handler"
	"github.com/dukerupert/gymsup/internal/nav"
	"github.com/dukerupert/gymsup/internal/service"
)

// NavHandler serves the initial page load and navigation transitions.
type NavHandler struct {
	auth service.AuthService
}

// NewNavHandler creates a new navigation handler
func NewNavHandler(auth service.AuthService) *NavHandler {
	return &NavHandler{auth: auth}
}

// pageResponse is the navigation state after a request.
type pageResponse struct {
	Nav     nav.State   `json:"nav"`
	Page    nav.Page    `json:"page"`
	Outcome nav.Outcome `json:"outcome,omitempty"`
}

// Bootstrap handles GET /api/bootstrap
func (h *NavHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}
	handler.WriteJSON(w, http.StatusOK, h.auth.Bootstrap(r.Context(), sess))
}

// Page handles GET /api/page
func (h *NavHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}
	handler.WriteJSON(w, http.StatusOK, pageResponse{
		Nav:  sess.Nav,
		Page: nav.Resolve(sess.Nav, sessionUser(sess)),
	})
}

// Navigate handles POST /api/nav/{action}
//
// The body is optional and carries the action's parameters. A protected page
// requested by an anonymous visitor leaves the state unchanged and reports
// auth_required so the client can open the login dialog.
func (h *NavHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	var req nav.Request
	if r.ContentLength != 0 {
		if err := handler.DecodeJSON(r, &req); err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
	}

	user := sessionUser(sess)
	next, outcome, err := nav.Apply(sess.Nav, nav.Action(r.PathValue("action")), req, user)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	sess.Nav = next

	handler.WriteJSON(w, http.StatusOK, pageResponse{
		Nav:     next,
		Page:    nav.Resolve(next, user),
		Outcome: outcome,
	})
}
