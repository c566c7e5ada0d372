package middleware

import (
	"net/http"

	"github.com/dukerupert/gymsup/internal/domain"
)

// Common size limits
const (
	KB = 1024
	MB = 1024 * KB

	// DefaultMaxBodySize bounds JSON request bodies.
	DefaultMaxBodySize = 1 * MB
)

// MaxBodySize limits the size of request bodies.
// If no size is provided, DefaultMaxBodySize is used.
func MaxBodySize(maxBytes ...int64) func(http.Handler) http.Handler {
	limit := int64(DefaultMaxBodySize)
	if len(maxBytes) > 0 {
		limit = maxBytes[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.ContentLength > limit {
				respondWithError(w, r, domain.Errorf(domain.EINVALID, "", "Dữ liệu gửi lên quá lớn"))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
