// Package backend is the HTTP client for the GymSup REST backend.
//
// Every call carries the session's bearer token when one is present. Non-2xx
// responses are converted into domain errors carrying the backend-provided
// message, and transport failures become EUNAVAILABLE. The client never
// retries.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/telemetry"
)

// DefaultTimeout bounds a single backend round trip.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Config configures the backend client.
type Config struct {
	// BaseURL is the REST API root, e.g. "http://localhost:8080/api/v1".
	BaseURL string

	// Timeout is the per-request timeout. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Client talks to the GymSup REST backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a backend client. The transport is instrumented with
// OpenTelemetry and Sentry so backend calls appear as child spans of the
// inbound request.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(&telemetry.HTTPTransport{Transport: http.DefaultTransport}),
		},
		logger: logger,
	}
}

// StatusError is the raw HTTP failure wrapped inside a domain error.
type StatusError struct {
	StatusCode int
	Body       string

	// Message is what the backend said, empty when the body carried none.
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// StatusCode returns the HTTP status of a backend failure, or 0 when err
// did not come from a backend response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs a JSON request. body may be nil; out may be nil to discard the
// response body.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.Internal(err, op, "failed to encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return domain.Internal(err, op, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "backend request failed",
			"op", op,
			"method", method,
			"path", path,
			"error", err,
		)
		return domain.WrapError(err, domain.EUNAVAILABLE, op, "Không thể kết nối đến máy chủ")
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "backend request",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return domain.Internal(err, op, "failed to decode backend response")
	}
	return nil
}

func (c *Client) statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var backendMessage string
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		switch {
		case eb.Message != "":
			backendMessage = eb.Message
		case eb.Error != "":
			backendMessage = eb.Error
		}
	}

	message := backendMessage
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &domain.Error{
		Code:    codeForStatus(resp.StatusCode),
		Op:      op,
		Message: message,
		Err:     &StatusError{StatusCode: resp.StatusCode, Body: string(raw), Message: backendMessage},
	}
}

// WithFallback replaces the message of a backend status error that carried
// no message of its own. Other errors are returned unchanged.
func WithFallback(err error, fallback string) error {
	var se *StatusError
	if !errors.As(err, &se) || se.Message != "" {
		return err
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		return err
	}
	return &domain.Error{Code: de.Code, Op: de.Op, Message: fallback, Err: de.Err}
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return domain.EINVALID
	case status == http.StatusUnauthorized:
		return domain.EUNAUTHORIZED
	case status == http.StatusForbidden:
		return domain.EFORBIDDEN
	case status == http.StatusNotFound:
		return domain.ENOTFOUND
	case status == http.StatusConflict:
		return domain.ECONFLICT
	case status == http.StatusPaymentRequired:
		return domain.EPAYMENT
	case status == http.StatusTooManyRequests:
		return domain.ERATELIMIT
	case status == http.StatusMethodNotAllowed, status == http.StatusNotImplemented:
		return domain.ENOTIMPL
	case status >= 400 && status < 500:
		return domain.EINVALID
	default:
		// Upstream failures keep the backend message visible to the user.
		return domain.EUNAVAILABLE
	}
}
