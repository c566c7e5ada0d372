package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/gymsup/internal/domain"
)

func TestAccountService_UpdateProfile(t *testing.T) {
	fb := newFakeBackend(t)
	fb.on(http.MethodPut, "/users/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"firstName": "Nguyễn Văn", "lastName": "Bảo", "phone": "0988"})
	})
	svc := NewAccountService(fb.client(), testLogger())
	sess := loggedInSession(t)

	user, err := svc.UpdateProfile(context.Background(), sess, domain.ProfileUpdate{FullName: "Nguyễn Văn Bảo", Phone: "0988"})
	require.NoError(t, err)

	assert.Equal(t, &domain.User{ID: 1, Name: "Nguyễn Văn Bảo", Email: "an@gymsup.vn", Phone: "0988", Role: domain.RoleUser}, user)
	assert.Same(t, user, sess.User)
	assert.JSONEq(t, `{"firstName":"Nguyễn Văn","lastName":"Bảo","phone":"0988"}`, fb.calls()[0].Body)
}

func TestAccountService_UpdateProfileValidation(t *testing.T) {
	fb := newFakeBackend(t)
	svc := NewAccountService(fb.client(), testLogger())

	_, err := svc.UpdateProfile(context.Background(), loggedInSession(t), domain.ProfileUpdate{})
	assert.Contains(t, domain.GetValidationFields(err), "fullName")
	assert.Empty(t, fb.calls())

	_, err = svc.Profile(context.Background(), anonymousSession(t))
	assert.Equal(t, ErrNotLoggedIn, err)
}

func TestAccountService_ChangePassword(t *testing.T) {
	tests := []struct {
		name   string
		input  domain.PasswordChange
		fields []string
	}{
		{"missing current", domain.PasswordChange{NewPassword: "abcdef", ConfirmPassword: "abcdef"}, []string{"currentPassword"}},
		{"too short", domain.PasswordChange{CurrentPassword: "old", NewPassword: "abc", ConfirmPassword: "abc"}, []string{"newPassword"}},
		{"mismatch", domain.PasswordChange{CurrentPassword: "old", NewPassword: "abcdef", ConfirmPassword: "abcdeg"}, []string{"confirmPassword"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t)
			svc := NewAccountService(fb.client(), testLogger())

			err := svc.ChangePassword(context.Background(), loggedInSession(t), tt.input)
			fields := domain.GetValidationFields(err)
			for _, f := range tt.fields {
				assert.Contains(t, fields, f)
			}
			assert.Empty(t, fb.calls())
		})
	}

	t.Run("accepted", func(t *testing.T) {
		fb := newFakeBackend(t)
		fb.on(http.MethodPut, "/users/me/password", writeStatus(http.StatusOK, ``))
		svc := NewAccountService(fb.client(), testLogger())

		err := svc.ChangePassword(context.Background(), loggedInSession(t), domain.PasswordChange{
			CurrentPassword: "old", NewPassword: "abcdef", ConfirmPassword: "abcdef",
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"currentPassword":"old","newPassword":"abcdef"}`, fb.calls()[0].Body)
	})

	t.Run("wrong current password", func(t *testing.T) {
		fb := newFakeBackend(t)
		fb.on(http.MethodPut, "/users/me/password", writeStatus(http.StatusBadRequest, `{"message":"Mật khẩu hiện tại không đúng"}`))
		svc := NewAccountService(fb.client(), testLogger())

		err := svc.ChangePassword(context.Background(), loggedInSession(t), domain.PasswordChange{
			CurrentPassword: "bad", NewPassword: "abcdef", ConfirmPassword: "abcdef",
		})
		assert.Equal(t, "Mật khẩu hiện tại không đúng", domain.ErrorMessage(err))
	})
}
