// Package domain provides core storefront types and context helpers for GymSup.
//
// Context helpers centralize request-scoped data access so handlers and
// services read the current user and request ID the same way.
package domain

import (
	"context"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	// userContextKey stores the session's user in context.
	userContextKey contextKey = iota

	// requestIDContextKey stores the request ID for tracing.
	requestIDContextKey
)

// --- User Context Helpers ---

// NewContextWithUser returns a new context with the user attached.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the user from context.
// Returns nil if no user is present.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey).(*User)
	return user
}

// --- Request ID Context Helpers ---

// NewContextWithRequestID returns a new context with the request ID attached.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if no request ID is present.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}

// --- Convenience Helpers ---

// IsAdmin returns true if the user in context has the ADMIN role.
func IsAdmin(ctx context.Context) bool {
	return UserFromContext(ctx).IsAdmin()
}
