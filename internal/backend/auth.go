package backend

import (
	"context"
	"net/http"
)

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, "backend.auth.login", http.MethodPost, "/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns its session token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, "backend.auth.register", http.MethodPost, "/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile changes the token user's profile and returns the result.
func (c *Client) UpdateProfile(ctx context.Context, token string, req UpdateProfileRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, "backend.users.update", http.MethodPut, "/users/me", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the token user's password.
func (c *Client) ChangePassword(ctx context.Context, token string, req ChangePasswordRequest) error {
	return c.do(ctx, "backend.users.password", http.MethodPut, "/users/me/password", token, req, nil)
}
