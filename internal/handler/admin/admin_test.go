package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/middleware"
	"github.com/dukerupert/gymsup/internal/service"
	"github.com/dukerupert/gymsup/internal/session"
)

// mockCatalogService implements service.CatalogService for testing
type mockCatalogService struct {
	service.CatalogService

	listFunc   func(ctx context.Context) []domain.Product
	createFunc func(ctx context.Context, sess *session.Session, req domain.ProductRequest) error
	updateFunc func(ctx context.Context, sess *session.Session, id int64, req domain.ProductRequest) error
	deleteFunc func(ctx context.Context, sess *session.Session, id int64) error
}

func (m *mockCatalogService) List(ctx context.Context) []domain.Product {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.Product{}
}

func (m *mockCatalogService) Create(ctx context.Context, sess *session.Session, req domain.ProductRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sess, req)
	}
	return nil
}

func (m *mockCatalogService) Update(ctx context.Context, sess *session.Session, id int64, req domain.ProductRequest) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, sess, id, req)
	}
	return nil
}

func (m *mockCatalogService) Delete(ctx context.Context, sess *session.Session, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, sess, id)
	}
	return nil
}

// mockOrderService implements service.OrderService for testing
type mockOrderService struct {
	listFunc         func(ctx context.Context, sess *session.Session) []domain.Order
	updateStatusFunc func(ctx context.Context, sess *session.Session, orderID string, status domain.OrderStatus) error
}

func (m *mockOrderService) List(ctx context.Context, sess *session.Session) []domain.Order {
	if m.listFunc != nil {
		return m.listFunc(ctx, sess)
	}
	return []domain.Order{}
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, sess *session.Session, orderID string, status domain.OrderStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, sess, orderID, status)
	}
	return nil
}

func (m *mockOrderService) Cancel(ctx context.Context, sess *session.Session, orderID string) error {
	return nil
}

func adminRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	sess, err := session.New(time.Hour)
	require.NoError(t, err)
	sess.SignIn("admin-tok", &domain.User{ID: 9, Name: "Admin", Role: domain.RoleAdmin})

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middleware.WithSession(req.Context(), sess))
}

func TestProductHandler_Create(t *testing.T) {
	var got domain.ProductRequest
	h := NewProductHandler(&mockCatalogService{
		createFunc: func(ctx context.Context, sess *session.Session, req domain.ProductRequest) error {
			assert.Equal(t, "admin-tok", sess.Token)
			got = req
			return nil
		},
		listFunc: func(ctx context.Context) []domain.Product {
			return []domain.Product{{ID: 1, Name: "Whey Gold"}}
		},
	})

	body := `{"name":"Whey Gold","categoryId":1,"brandId":2,"variants":[{"name":"Vị Chocolate 5Lbs","sku":"WHEY-CHOC-5","price":1650000,"stockQuantity":10}]}`
	rec := httptest.NewRecorder()
	h.Create(rec, adminRequest(t, http.MethodPost, "/api/admin/products", body))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Whey Gold", got.Name)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, "WHEY-CHOC-5", got.Variants[0].SKU)
	assert.Contains(t, rec.Body.String(), `"products"`)
}

func TestProductHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		do     func(h *ProductHandler, w http.ResponseWriter, r *http.Request)
		method string
		id     string
		body   string
		err    error
		status int
	}{
		{
			name:   "update backend conflict",
			do:     (*ProductHandler).Update,
			method: http.MethodPut,
			id:     "3",
			body:   `{"name":"x"}`,
			err:    domain.Errorf(domain.ECONFLICT, "backend.products.update", "SKU đã tồn tại"),
			status: http.StatusConflict,
		},
		{
			name:   "update bad id",
			do:     (*ProductHandler).Update,
			method: http.MethodPut,
			id:     "x",
			body:   `{}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "delete forbidden",
			do:     (*ProductHandler).Delete,
			method: http.MethodDelete,
			id:     "3",
			err:    service.ErrAdminOnly,
			status: http.StatusForbidden,
		},
		{
			name:   "delete ok",
			do:     (*ProductHandler).Delete,
			method: http.MethodDelete,
			id:     "3",
			status: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProductHandler(&mockCatalogService{
				updateFunc: func(ctx context.Context, sess *session.Session, id int64, req domain.ProductRequest) error {
					return tt.err
				},
				deleteFunc: func(ctx context.Context, sess *session.Session, id int64) error {
					assert.Equal(t, int64(3), id)
					return tt.err
				},
			})

			req := adminRequest(t, tt.method, "/api/admin/products/"+tt.id, tt.body)
			req.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()
			tt.do(h, rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	var gotID string
	var gotStatus domain.OrderStatus
	h := NewOrderHandler(&mockOrderService{
		updateStatusFunc: func(ctx context.Context, sess *session.Session, orderID string, status domain.OrderStatus) error {
			if !domain.ValidOrderStatus(status) {
				return service.ErrInvalidOrderStatus
			}
			gotID, gotStatus = orderID, status
			return nil
		},
	})

	req := adminRequest(t, http.MethodPut, "/api/admin/orders/501/status", `{"status":"Delivered"}`)
	req.SetPathValue("id", "501")
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "501", gotID)
	assert.Equal(t, domain.OrderStatusDelivered, gotStatus)

	req = adminRequest(t, http.MethodPut, "/api/admin/orders/501/status", `{"status":"Shipped"}`)
	req.SetPathValue("id", "501")
	rec = httptest.NewRecorder()
	h.UpdateStatus(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_List(t *testing.T) {
	h := NewOrderHandler(&mockOrderService{
		listFunc: func(ctx context.Context, sess *session.Session) []domain.Order {
			require.True(t, sess.User.IsAdmin())
			return []domain.Order{{ID: "501"}, {ID: "502"}}
		},
	})

	rec := httptest.NewRecorder()
	h.List(rec, adminRequest(t, http.MethodGet, "/api/admin/orders", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"502"`)
}
