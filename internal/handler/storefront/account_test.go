package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/session"
)

func TestAccountHandler_Profile(t *testing.T) {
	h := NewAccountHandler(&mockAccountService{}, &mockOrderService{})

	rec := httptest.NewRecorder()
	h.Profile(rec, newRequest(http.MethodGet, "/api/account", "", customerSession(t)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "an@gymsup.vn")

	rec = httptest.NewRecorder()
	h.Profile(rec, newRequest(http.MethodGet, "/api/account", "", newSession(t)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccountHandler_UpdateProfile(t *testing.T) {
	h := NewAccountHandler(&mockAccountService{
		updateProfileFunc: func(ctx context.Context, sess *session.Session, upd domain.ProfileUpdate) (*domain.User, error) {
			u := *sess.User
			u.Name, u.Phone = upd.FullName, upd.Phone
			sess.User = &u
			return &u, nil
		},
	}, &mockOrderService{})

	sess := customerSession(t)
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, newRequest(http.MethodPut, "/api/account", `{"fullName":"Trần Bình","phone":"0909"}`, sess))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Trần Bình", sess.User.Name)
}

func TestAccountHandler_ChangePassword(t *testing.T) {
	h := NewAccountHandler(&mockAccountService{
		changePasswordFunc: func(ctx context.Context, sess *session.Session, pc domain.PasswordChange) error {
			if pc.NewPassword != pc.ConfirmPassword {
				return domain.NewValidationError("account.password", "confirmPassword", "Mật khẩu xác nhận không khớp")
			}
			return nil
		},
	}, &mockOrderService{})

	rec := httptest.NewRecorder()
	h.ChangePassword(rec, newRequest(http.MethodPut, "/api/account/password",
		`{"currentPassword":"old","newPassword":"secret1","confirmPassword":"secret1"}`, customerSession(t)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ChangePassword(rec, newRequest(http.MethodPut, "/api/account/password",
		`{"currentPassword":"old","newPassword":"secret1","confirmPassword":"secret2"}`, customerSession(t)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "confirmPassword")
}

func TestAccountHandler_CancelOrder(t *testing.T) {
	var cancelled string
	orders := &mockOrderService{
		cancelFunc: func(ctx context.Context, sess *session.Session, orderID string) error {
			if orderID == "404" {
				return domain.Errorf(domain.ENOTFOUND, "backend.orders.cancel", "Không tìm thấy đơn hàng")
			}
			cancelled = orderID
			return nil
		},
		listFunc: func(ctx context.Context, sess *session.Session) []domain.Order {
			return []domain.Order{{ID: "501", Status: domain.OrderStatusCancelled}}
		},
	}
	h := NewAccountHandler(&mockAccountService{}, orders)

	req := newRequest(http.MethodPost, "/api/orders/501/cancel", "", customerSession(t))
	req.SetPathValue("id", "501")
	rec := httptest.NewRecorder()
	h.CancelOrder(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "501", cancelled)
	assert.Contains(t, rec.Body.String(), `"orders"`)

	req = newRequest(http.MethodPost, "/api/orders/404/cancel", "", customerSession(t))
	req.SetPathValue("id", "404")
	rec = httptest.NewRecorder()
	h.CancelOrder(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Không tìm thấy đơn hàng")
}
