package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dukerupert/gymsup/internal/domain"
)

const (
	// RequestIDHeader is the header name for request ID
	RequestIDHeader = "X-Request-ID"

	// maxRequestIDLength caps IDs accepted from upstream proxies.
	maxRequestIDLength = 128
)

// RequestID assigns every request an ID, reusing a sane X-Request-ID from a
// load balancer when present. The ID is echoed in the response and stored
// in the context through domain.NewContextWithRequestID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := domain.NewContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context
func GetRequestID(ctx context.Context) string {
	return domain.RequestIDFromContext(ctx)
}
