package domain

import (
	"context"
	"testing"
)

func TestUserContext(t *testing.T) {
	t.Run("UserFromContext returns nil when no user", func(t *testing.T) {
		if user := UserFromContext(context.Background()); user != nil {
			t.Errorf("expected nil user, got %+v", user)
		}
		if IsAdmin(context.Background()) {
			t.Error("expected non-admin for empty context")
		}
	})

	t.Run("UserFromContext returns user when set", func(t *testing.T) {
		expected := &User{Name: "Nguyễn Văn A", Email: "a@example.com", Role: RoleUser}
		ctx := NewContextWithUser(context.Background(), expected)

		user := UserFromContext(ctx)
		if user == nil {
			t.Fatal("expected user, got nil")
		}
		if user.Email != expected.Email {
			t.Errorf("expected Email %q, got %q", expected.Email, user.Email)
		}
		if IsAdmin(ctx) {
			t.Error("USER role must not be admin")
		}
	})

	t.Run("IsAdmin for ADMIN role", func(t *testing.T) {
		ctx := NewContextWithUser(context.Background(), &User{Role: RoleAdmin})
		if !IsAdmin(ctx) {
			t.Error("expected admin")
		}
	})
}

func TestRequestIDContext(t *testing.T) {
	if id := RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("expected empty request ID, got %q", id)
	}

	ctx := NewContextWithRequestID(context.Background(), "req-123")
	if id := RequestIDFromContext(ctx); id != "req-123" {
		t.Errorf("expected %q, got %q", "req-123", id)
	}
}
