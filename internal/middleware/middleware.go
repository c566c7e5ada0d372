package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/telemetry"
)

type contextKey string

// ============================================================================
// MIDDLEWARE ERROR RESPONSE HELPERS
// ============================================================================
//
// These mirror handler.ErrorResponse but are self-contained to avoid an
// import cycle (handler imports middleware for GetLogger and GetSession).

// respondWithError writes the JSON error envelope for err.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := errorCodeToHTTPStatus(code)

	logger := GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"status", status,
	}

	if status >= 500 {
		logger.Error("middleware error", attrs...)
		telemetry.CaptureErrorFromContext(r.Context(), err, map[string]interface{}{"path": r.URL.Path})
	} else {
		logger.Info("middleware error", attrs...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}); err != nil {
		slog.Default().Error("failed to encode error response", "error", err)
	}
}

// respondInternalError logs the error and returns a generic 500 response.
func respondInternalError(w http.ResponseWriter, r *http.Request, err error) {
	respondWithError(w, r, domain.Internal(err, "", "An unexpected error occurred"))
}

// respondForbidden is a convenience wrapper for 403 errors.
func respondForbidden(w http.ResponseWriter, r *http.Request, message string) {
	respondWithError(w, r, domain.Errorf(domain.EFORBIDDEN, "", "%s", message))
}

// respondTooManyRequests is a convenience wrapper for 429 errors.
func respondTooManyRequests(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, r, domain.Errorf(domain.ERATELIMIT, "", "Bạn thao tác quá nhanh, vui lòng thử lại sau"))
}

// errorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized // 401
	case domain.EPAYMENT:
		return http.StatusPaymentRequired // 402
	case domain.EFORBIDDEN:
		return http.StatusForbidden // 403
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ECONFLICT:
		return http.StatusConflict // 409
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests // 429
	case domain.ENOTIMPL:
		return http.StatusNotImplemented // 501
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
