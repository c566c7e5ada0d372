package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/dukerupert/gymsup/internal/cookie"
)

const (
	// CSRFTokenLength is the length of the CSRF token in bytes
	CSRFTokenLength = 32

	// CSRFHeaderName carries the token on unsafe requests.
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRFConfig configures CSRF protection
type CSRFConfig struct {
	// CookieConfig scopes the token cookie the same way as the session.
	CookieConfig *cookie.Config

	// SkipPaths are paths that should skip CSRF validation
	SkipPaths []string
}

// CSRF implements double-submit protection for the JSON API. Every
// response carries a JS-readable token cookie; unsafe requests must echo it
// in the X-CSRF-Token header.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	if cfg.CookieConfig == nil {
		panic("csrf: CookieConfig is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skipPath := range cfg.SkipPaths {
				if matchesPathPrefix(r.URL.Path, skipPath) {
					next.ServeHTTP(w, r)
					return
				}
			}

			token := cookie.Get(r, cookie.CSRFCookieName)
			if token == "" {
				var err error
				token, err = generateCSRFToken()
				if err != nil {
					// Fail closed rather than fall back to a weak token.
					respondInternalError(w, r, err)
					return
				}
				cfg.CookieConfig.SetCSRF(w, token)
			}

			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if !validateCSRFToken(token, r.Header.Get(CSRFHeaderName)) {
				respondForbidden(w, r, "Phiên làm việc không hợp lệ, vui lòng tải lại trang")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func generateCSRFToken() (string, error) {
	b := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// validateCSRFToken validates the submitted token against the cookie token
func validateCSRFToken(cookieToken, submittedToken string) bool {
	if cookieToken == "" || submittedToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submittedToken)) == 1
}

// isSafeMethod returns true for HTTP methods that don't change state
func isSafeMethod(method string) bool {
	return method == http.MethodGet ||
		method == http.MethodHead ||
		method == http.MethodOptions ||
		method == http.MethodTrace
}

// matchesPathPrefix checks if requestPath matches skipPath on a path
// boundary, so /health does not also match /healthz.
func matchesPathPrefix(requestPath, skipPath string) bool {
	if !strings.HasPrefix(requestPath, skipPath) {
		return false
	}
	if strings.HasSuffix(skipPath, "/") || len(requestPath) == len(skipPath) {
		return true
	}
	return requestPath[len(skipPath)] == '/'
}
