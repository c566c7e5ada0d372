package service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/session"
)

// recordedRequest is one call received by fakeBackend.
type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

// fakeBackend is an in-memory stand-in for the REST backend's cart, product
// and order endpoints. Handlers in overrides take precedence.
type fakeBackend struct {
	mu        sync.Mutex
	requests  []recordedRequest
	cart      []backend.CartItemResponse
	products  []backend.ProductResponse
	orders    []backend.OrderResponse
	overrides map[string]http.HandlerFunc
	server    *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{overrides: make(map[string]http.HandlerFunc)}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeBackend) client() *backend.Client {
	return backend.NewClient(backend.Config{BaseURL: f.server.URL}, testLogger())
}

func (f *fakeBackend) on(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides[method+" "+path] = h
}

func (f *fakeBackend) setCart(items ...backend.CartItemResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cart = items
}

func (f *fakeBackend) calls() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeBackend) callPaths() []string {
	var out []string
	for _, r := range f.calls() {
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

func (f *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(raw),
	})
	override := f.overrides[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if override != nil {
		override(w, r)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/cart":
		writeJSON(w, backend.CartResponse{Items: f.cart})

	case r.Method == http.MethodPost && r.URL.Path == "/cart/add":
		var req backend.CartMutationRequest
		_ = json.Unmarshal(raw, &req)
		for i := range f.cart {
			if f.cart[i].SKU == req.VariantID {
				f.cart[i].Quantity += req.Quantity
				return
			}
		}
		f.cart = append(f.cart, backend.CartItemResponse{
			VariantID: int64(len(f.cart) + 100),
			SKU:       req.VariantID,
			Name:      req.VariantID,
			Price:     decimal.NewFromInt(100000),
			Quantity:  req.Quantity,
		})

	case r.Method == http.MethodPut && r.URL.Path == "/cart/update":
		var req backend.CartMutationRequest
		_ = json.Unmarshal(raw, &req)
		for i := range f.cart {
			if f.cart[i].SKU == req.VariantID {
				f.cart[i].Quantity = req.Quantity
			}
		}

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/cart/remove/"):
		sku := strings.TrimPrefix(r.URL.Path, "/cart/remove/")
		kept := f.cart[:0]
		for _, item := range f.cart {
			if item.SKU != sku {
				kept = append(kept, item)
			}
		}
		f.cart = kept

	case r.Method == http.MethodDelete && r.URL.Path == "/cart/clear":
		f.cart = nil

	case r.Method == http.MethodGet && r.URL.Path == "/products":
		writeJSON(w, f.products)

	case r.Method == http.MethodGet && (r.URL.Path == "/orders" || r.URL.Path == "/orders/my-orders"):
		writeJSON(w, f.orders)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatus(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// loggedInSession returns a customer session holding token "tok".
func loggedInSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(time.Hour)
	require.NoError(t, err)
	s.SignIn("tok", &domain.User{ID: 1, Name: "An", Email: "an@gymsup.vn", Role: domain.RoleUser})
	return s
}

func adminSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(time.Hour)
	require.NoError(t, err)
	s.SignIn("admin-tok", &domain.User{ID: 9, Name: "Admin", Role: domain.RoleAdmin})
	return s
}
