package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	sessionCookie = "gymsup_session"
	csrfCookie    = "gymsup_csrf"
	csrfHeader    = "X-CSRF-Token"
)

// APIError is the storefront's JSON error envelope.
type APIError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	var b strings.Builder
	b.WriteString(e.Message)
	for field, msg := range e.Fields {
		fmt.Fprintf(&b, "\n  %s: %s", field, msg)
	}
	return b.String()
}

// Client calls the storefront API with the session and CSRF cookies kept
// in State. Cookies set by responses are written back to State.
type Client struct {
	state *State
	http  *http.Client
}

// NewClient creates a client for state.Server.
func NewClient(state *State) *Client {
	return &Client{state: state, http: &http.Client{Timeout: 30 * time.Second}}
}

// Do sends a JSON request and decodes the response into out (may be nil).
// Unsafe methods first obtain a CSRF token if none is known.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	if method != http.MethodGet && c.state.CSRF == "" {
		if err := c.send(ctx, http.MethodGet, "/api/page", nil, nil); err != nil {
			return err
		}
	}
	return c.send(ctx, method, path, in, out)
}

func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.state.Server, "/")+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.state.Session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.state.Session})
	}
	if c.state.CSRF != "" {
		req.AddCookie(&http.Cookie{Name: csrfCookie, Value: c.state.CSRF})
		req.Header.Set(csrfHeader, c.state.CSRF)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storefront unreachable: %w", err)
	}
	defer resp.Body.Close()

	c.absorbCookies(resp)

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error APIError `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error.Code == "" {
			return &APIError{Status: resp.StatusCode, Code: "unknown", Message: resp.Status}
		}
		envelope.Error.Status = resp.StatusCode
		return &envelope.Error
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) absorbCookies(resp *http.Response) {
	for _, ck := range resp.Cookies() {
		switch ck.Name {
		case sessionCookie:
			c.state.Session = ck.Value
		case csrfCookie:
			c.state.CSRF = ck.Value
		}
	}
}
