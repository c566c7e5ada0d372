package service

import (
	"context"
	"log/slog"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/mapper"
	"github.com/dukerupert/gymsup/internal/session"
)

// AccountService manages the signed-in user's profile.
type AccountService interface {
	Profile(ctx context.Context, sess *session.Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, sess *session.Session, upd domain.ProfileUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, sess *session.Session, pc domain.PasswordChange) error
}

// AccountBackend is the part of the backend client the account service uses.
type AccountBackend interface {
	UpdateProfile(ctx context.Context, token string, req backend.UpdateProfileRequest) (*backend.UserResponse, error)
	ChangePassword(ctx context.Context, token string, req backend.ChangePasswordRequest) error
}

type accountService struct {
	backend AccountBackend
	logger  *slog.Logger
}

// NewAccountService creates a new AccountService instance
func NewAccountService(b AccountBackend, logger *slog.Logger) AccountService {
	return &accountService{backend: b, logger: logger}
}

// Profile implements AccountService.
func (s *accountService) Profile(ctx context.Context, sess *session.Session) (*domain.User, error) {
	if !sess.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return sess.User, nil
}

// UpdateProfile implements AccountService. The session user is replaced
// with the profile the backend returns; role and ID are kept when the
// response omits them.
func (s *accountService) UpdateProfile(ctx context.Context, sess *session.Session, upd domain.ProfileUpdate) (*domain.User, error) {
	const op = "account.update_profile"

	if !sess.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	if err := validateStruct(op, upd); err != nil {
		return nil, err
	}

	first, last := mapper.SplitFullName(upd.FullName)
	resp, err := s.backend.UpdateProfile(ctx, sess.Token, backend.UpdateProfileRequest{
		FirstName: first,
		LastName:  last,
		Phone:     upd.Phone,
	})
	if err != nil {
		return nil, backend.WithFallback(err, "Không thể cập nhật thông tin tài khoản")
	}

	prev := sess.User
	user := mapper.MapUser(*resp)
	if user.ID == 0 {
		user.ID = prev.ID
	}
	if resp.Role == "" {
		user.Role = prev.Role
	}
	if user.Email == "" {
		user.Email = prev.Email
		if user.Name == "" {
			user.Name = upd.FullName
		}
	}
	if resp.FirstName == "" && resp.LastName == "" && resp.FullName == "" {
		user.Name = upd.FullName
	}
	if user.Phone == "" {
		user.Phone = upd.Phone
	}

	sess.User = user
	s.logger.InfoContext(ctx, "profile updated", "session_id", sess.ID, "user_id", user.ID)
	return user, nil
}

// ChangePassword implements AccountService.
func (s *accountService) ChangePassword(ctx context.Context, sess *session.Session, pc domain.PasswordChange) error {
	const op = "account.change_password"

	if !sess.LoggedIn() {
		return ErrNotLoggedIn
	}
	if err := validateStruct(op, pc); err != nil {
		return err
	}

	err := s.backend.ChangePassword(ctx, sess.Token, backend.ChangePasswordRequest{
		CurrentPassword: pc.CurrentPassword,
		NewPassword:     pc.NewPassword,
	})
	if err != nil {
		return backend.WithFallback(err, "Không thể đổi mật khẩu")
	}

	s.logger.InfoContext(ctx, "password changed", "session_id", sess.ID, "user_id", sess.User.ID)
	return nil
}
