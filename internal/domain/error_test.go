package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "message only",
			err:      &Error{Code: EINVALID, Message: "quantity must be positive"},
			expected: "quantity must be positive",
		},
		{
			name:     "with operation",
			err:      &Error{Code: ECONFLICT, Op: "cart.add", Message: "Sản phẩm đã hết hàng"},
			expected: "cart.add: Sản phẩm đã hết hàng",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EUNAVAILABLE,
				Op:      "backend.get",
				Message: "backend unavailable",
				Err:     errors.New("connection refused"),
			},
			expected: "backend.get: backend unavailable: connection refused",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to save session",
				Err:     errors.New("redis: nil"),
			},
			expected: "failed to save session: redis: nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{Code: EINTERNAL, Message: "wrapped", Err: underlying}

	assert.Same(t, underlying, err.Unwrap())
	assert.ErrorIs(t, err, underlying)
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"domain error", &Error{Code: EINVALID}, EINVALID},
		{"wrapped domain error", fmt.Errorf("wrapped: %w", &Error{Code: ENOTFOUND}), ENOTFOUND},
		{"unavailable", &Error{Code: EUNAVAILABLE}, EUNAVAILABLE},
		{"validation error", NewValidationError("checkout", "email", "required"), EINVALID},
		{"non-domain error", errors.New("some error"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorCode(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	const generic = "An internal error occurred. Please try again later."

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"backend message is preserved", &Error{Code: ECONFLICT, Message: "Không đủ hàng trong kho"}, "Không đủ hàng trong kho"},
		{"internal error hides message", &Error{Code: EINTERNAL, Message: "pgx: pool closed"}, generic},
		{"non-domain error returns generic message", errors.New("some internal detail"), generic},
		{"validation error", NewValidationError("", "phone", "required"), "phone: required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorMessage(tt.err))
		})
	}
}

func TestErrorOp(t *testing.T) {
	assert.Equal(t, "", ErrorOp(nil))
	assert.Equal(t, "cart.remove", ErrorOp(&Error{Code: EINVALID, Op: "cart.remove"}))
	assert.Equal(t, "", ErrorOp(errors.New("test")))
}

func TestErrorf(t *testing.T) {
	err := Errorf(EINVALID, "cart.update", "invalid quantity: %d", -2)

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, EINVALID, domainErr.Code)
	assert.Equal(t, "cart.update", domainErr.Op)
	assert.Equal(t, "invalid quantity: -2", domainErr.Message)
}

func TestWrapError(t *testing.T) {
	t.Run("wraps non-nil error", func(t *testing.T) {
		underlying := errors.New("dial tcp: timeout")
		err := WrapError(underlying, EUNAVAILABLE, "backend.post", "backend unavailable")

		assert.True(t, IsCode(err, EUNAVAILABLE))
		assert.ErrorIs(t, err, underlying)
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		assert.NoError(t, WrapError(nil, EINTERNAL, "test", "test"))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("single field error", func(t *testing.T) {
		err := NewValidationError("account.password", "newPassword", "must be at least 6 characters")

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "account.password", ve.Op)
		assert.Equal(t, "account.password: newPassword: must be at least 6 characters", ve.Error())
	})

	t.Run("multiple field errors", func(t *testing.T) {
		err := NewValidationError("checkout", "fullName", "required")
		err = AddFieldError(err, "phone", "required")

		assert.Len(t, GetValidationFields(err), 2)
		assert.Equal(t, "checkout: validation failed for 2 fields", err.Error())
	})

	t.Run("add field to nil error", func(t *testing.T) {
		err := AddFieldError(nil, "comment", "required")
		assert.True(t, IsValidationError(err))
		assert.Len(t, GetValidationFields(err), 1)
	})

	t.Run("non-validation error has no fields", func(t *testing.T) {
		assert.Nil(t, GetValidationFields(errors.New("test")))
		assert.False(t, IsValidationError(&Error{Code: EINVALID}))
		assert.False(t, IsValidationError(nil))
	})
}

func TestConvenienceFunctions(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"NotFound", NotFound("catalog.get", "product", "42"), ENOTFOUND},
		{"Unauthorized", Unauthorized("auth.login", "invalid credentials"), EUNAUTHORIZED},
		{"Forbidden", Forbidden("admin.products", "admin only"), EFORBIDDEN},
		{"Invalid", Invalid("review.submit", "rating must be between 1 and 5"), EINVALID},
		{"Conflict", Conflict("cart.add", "out of stock"), ECONFLICT},
		{"Internal", Internal(errors.New("db error"), "session.save", "failed to save"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsCode(tt.err, tt.code))
		})
	}

	t.Run("NotFound message names the resource", func(t *testing.T) {
		assert.Equal(t, "product not found: 42", ErrorMessage(NotFound("catalog.get", "product", "42")))
	})
}
