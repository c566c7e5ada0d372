// Package cookie provides helpers for the storefront session cookie.
package cookie

import (
	"net/http"
	"time"
)

const (
	// SessionCookieName is the cookie carrying the storefront session ID.
	SessionCookieName = "gymsup_session"

	// CSRFCookieName carries the double-submit CSRF token. Client scripts
	// read it, so it is not HttpOnly.
	CSRFCookieName = "gymsup_csrf"
)

// Config holds cookie configuration.
type Config struct {
	// Domain scopes the cookie. Empty means host-only.
	Domain string

	// Secure determines whether cookies require HTTPS.
	// Should be true in production, false in development.
	Secure bool
}

// NewConfig creates a new cookie configuration.
func NewConfig(domain string, secure bool) *Config {
	return &Config{
		Domain: domain,
		Secure: secure,
	}
}

// SetSession writes the session cookie. The browser drops it at expires.
func (c *Config) SetSession(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Domain:   c.Domain,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetCSRF writes the CSRF token cookie for 24 hours.
func (c *Config) SetCSRF(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Domain:   c.Domain,
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: false,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Get retrieves a cookie value from the request.
// Returns empty string if cookie not found.
func Get(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
