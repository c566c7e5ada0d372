package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/events"
	"github.com/dukerupert/gymsup/internal/mapper"
	"github.com/dukerupert/gymsup/internal/nav"
	"github.com/dukerupert/gymsup/internal/session"
	"github.com/dukerupert/gymsup/internal/telemetry"
)

// AuthService signs sessions in and out and assembles the initial state a
// client needs on page load.
type AuthService interface {
	Login(ctx context.Context, sess *session.Session, creds domain.Credentials) (*AuthResult, error)
	Register(ctx context.Context, sess *session.Session, reg domain.Registration) (*AuthResult, error)
	Logout(ctx context.Context, sess *session.Session)
	Bootstrap(ctx context.Context, sess *session.Session) *Bootstrap
}

// AuthBackend is the part of the backend client the auth service uses.
type AuthBackend interface {
	Login(ctx context.Context, req backend.LoginRequest) (*backend.AuthResponse, error)
	Register(ctx context.Context, req backend.RegisterRequest) (*backend.AuthResponse, error)
}

// AuthResult is the state loaded right after a successful login.
type AuthResult struct {
	User   *domain.User   `json:"user"`
	Cart   domain.Cart    `json:"cart"`
	Orders []domain.Order `json:"orders"`
	Page   nav.Page       `json:"page"`
}

// Bootstrap is everything the client renders on first load.
type Bootstrap struct {
	User     *domain.User         `json:"user"`
	Products []domain.Product     `json:"products"`
	Cart     domain.Cart          `json:"cart"`
	Orders   []domain.Order       `json:"orders"`
	Nav      nav.State            `json:"nav"`
	Page     nav.Page             `json:"page"`
	Chat     []domain.ChatMessage `json:"chat"`
}

type authService struct {
	backend   AuthBackend
	catalog   CatalogService
	carts     CartService
	orders    OrderService
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(
	b AuthBackend,
	catalog CatalogService,
	carts CartService,
	orders OrderService,
	publisher events.Publisher,
	metrics *telemetry.BusinessMetrics,
	logger *slog.Logger,
) AuthService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &authService{
		backend:   b,
		catalog:   catalog,
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Login implements AuthService.
func (s *authService) Login(ctx context.Context, sess *session.Session, creds domain.Credentials) (*AuthResult, error) {
	const op = "auth.login"

	creds.Email = strings.TrimSpace(creds.Email)
	if err := validateStruct(op, creds); err != nil {
		return nil, err
	}

	resp, err := s.backend.Login(ctx, backend.LoginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		s.metrics.Login("failure", "")
		fallback := "Đăng nhập thất bại"
		switch backend.StatusCode(err) {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			fallback = domain.ErrorMessage(ErrLoginFailed)
		}
		return nil, backend.WithFallback(err, fallback)
	}

	user, err := s.signIn(ctx, sess, resp, creds.Email)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user logged in", "session_id", sess.ID, "user_id", user.ID, "role", user.Role)
	s.metrics.Login("success", string(user.Role))
	s.publish(ctx, sess, events.SubjectUserLoggedIn)

	return s.loadAccount(ctx, sess), nil
}

// Register implements AuthService.
func (s *authService) Register(ctx context.Context, sess *session.Session, reg domain.Registration) (*AuthResult, error) {
	const op = "auth.register"

	reg.Email = strings.TrimSpace(reg.Email)
	if err := validateStruct(op, reg); err != nil {
		return nil, err
	}

	first, last := mapper.SplitFullName(reg.FullName)
	resp, err := s.backend.Register(ctx, backend.RegisterRequest{
		FirstName: first,
		LastName:  last,
		Email:     reg.Email,
		Phone:     reg.Phone,
		Password:  reg.Password,
	})
	if err != nil {
		return nil, backend.WithFallback(err, "Đăng ký thất bại")
	}

	user, err := s.signIn(ctx, sess, resp, reg.Email)
	if err != nil {
		return nil, err
	}
	if user.Phone == "" {
		user.Phone = reg.Phone
	}

	s.logger.InfoContext(ctx, "user registered", "session_id", sess.ID, "user_id", user.ID)
	s.metrics.Signup()
	s.publish(ctx, sess, events.SubjectUserRegistered)

	return s.loadAccount(ctx, sess), nil
}

// Logout implements AuthService.
func (s *authService) Logout(ctx context.Context, sess *session.Session) {
	if sess.User != nil {
		s.logger.InfoContext(ctx, "user logged out", "session_id", sess.ID, "user_id", sess.User.ID)
	}
	sess.SignOut()
}

// Bootstrap implements AuthService. Products, cart and orders are fetched
// concurrently; each degrades to empty on failure.
func (s *authService) Bootstrap(ctx context.Context, sess *session.Session) *Bootstrap {
	out := &Bootstrap{
		User: sess.User,
		Nav:  sess.Nav,
		Chat: sess.Chat,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Products = s.catalog.List(gctx)
		return nil
	})
	g.Go(func() error {
		out.Cart = s.carts.Fetch(gctx, sess)
		return nil
	})
	g.Go(func() error {
		out.Orders = s.orders.List(gctx, sess)
		return nil
	})
	_ = g.Wait()

	if !sess.LoggedIn() {
		out.User = nil
	}
	if out.Chat == nil {
		out.Chat = domain.NewChatHistory()
	}
	out.Page = nav.Resolve(sess.Nav, out.User)
	return out
}

// signIn stores the token and user from resp in the session. fallbackEmail
// fills the profile email when the backend omits it.
func (s *authService) signIn(ctx context.Context, sess *session.Session, resp *backend.AuthResponse, fallbackEmail string) (*domain.User, error) {
	token := resp.BearerToken()
	if token == "" {
		s.logger.ErrorContext(ctx, "auth response carried no token", "session_id", sess.ID)
		return nil, ErrMissingToken
	}

	user := mapper.MapUser(resp.Profile())
	if user.Email == "" {
		user.Email = fallbackEmail
	}
	if user.Name == "" {
		user.Name = user.Email
	}

	sess.SignIn(token, user)
	return user, nil
}

// loadAccount fetches the signed-in user's cart and orders concurrently.
func (s *authService) loadAccount(ctx context.Context, sess *session.Session) *AuthResult {
	var orders []domain.Order

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.carts.Fetch(gctx, sess)
		return nil
	})
	g.Go(func() error {
		orders = s.orders.List(gctx, sess)
		return nil
	})
	_ = g.Wait()

	return &AuthResult{
		User:   sess.User,
		Cart:   sess.Cart,
		Orders: orders,
		Page:   nav.Resolve(sess.Nav, sess.User),
	}
}

func (s *authService) publish(ctx context.Context, sess *session.Session, subject string) {
	data := map[string]any{"userId": sess.User.ID, "role": sess.User.Role}
	if err := s.publisher.Publish(ctx, subject, sess.ID, data); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", "subject", subject, "error", err)
	}
}
