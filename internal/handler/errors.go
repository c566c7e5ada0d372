// Package handler holds the JSON response helpers shared by the storefront
// and admin handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/middleware"
	"github.com/dukerupert/gymsup/internal/telemetry"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EPAYMENT:
		return http.StatusPaymentRequired
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse writes err as a JSON error. Validation errors carry their
// field map. 5xx errors are logged at error level and sent to Sentry;
// internal details never reach the client.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsValidationError(err) {
		ValidationErrorResponse(w, r, err)
		return
	}

	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)
	logError(r, err, code, status)

	WriteJSON(w, status, errorBody{Error: errorDetail{
		Code:    code,
		Message: domain.ErrorMessage(err),
	}})
}

// ValidationErrorResponse writes a 400 with per-field messages. Other
// errors fall back to ErrorResponse.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	fields := domain.GetValidationFields(err)
	if fields == nil {
		ErrorResponse(w, r, err)
		return
	}

	logError(r, err, domain.EINVALID, http.StatusBadRequest)
	WriteJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
		Code:    domain.EINVALID,
		Message: "Vui lòng kiểm tra lại thông tin",
		Fields:  fields,
	}})
}

func logError(r *http.Request, err error, code string, status int) {
	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"status", status,
	}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}

	if status >= 500 {
		logger.Error("request failed", attrs...)
		telemetry.CaptureErrorFromContext(r.Context(), err, map[string]interface{}{
			"code": code,
			"path": r.URL.Path,
		})
		return
	}
	logger.Info("request rejected", attrs...)
}

// NotFoundResponse is a convenience wrapper for 404 errors.
func NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.Errorf(domain.ENOTFOUND, "", "Không tìm thấy trang yêu cầu"))
}

// InternalErrorResponse hides err behind a generic 500.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	ErrorResponse(w, r, domain.Internal(err, "", "internal error"))
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone; nothing left to tell the client.
		return
	}
}

// DecodeJSON decodes the request body into v. Unknown fields are rejected
// so client typos surface as errors.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Invalid("handler.decode", "Thiếu dữ liệu gửi lên")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Invalid("handler.decode", "Dữ liệu gửi lên quá lớn")
		}
		return domain.WrapError(err, domain.EINVALID, "handler.decode", "Dữ liệu gửi lên không hợp lệ")
	}
	return nil
}

// PathID parses a positive numeric path value.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("handler.path", "Mã không hợp lệ: "+r.PathValue(name))
	}
	return id, nil
}
