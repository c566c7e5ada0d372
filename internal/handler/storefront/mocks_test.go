package storefront

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/middleware"
	"github.com/dukerupert/gymsup/internal/service"
	"github.com/dukerupert/gymsup/internal/session"
)

// mockCatalogService implements service.CatalogService for testing
type mockCatalogService struct {
	listFunc         func(ctx context.Context) []domain.Product
	getFunc          func(ctx context.Context, id int64) (domain.Product, error)
	browseFunc       func(ctx context.Context, q domain.BrowseQuery) domain.BrowseResult
	homeFunc         func(ctx context.Context) domain.HomePage
	brandsFunc       func(ctx context.Context) []string
	submitReviewFunc func(ctx context.Context, sess *session.Session, productID int64, req domain.ReviewRequest) (domain.Product, error)
}

func (m *mockCatalogService) List(ctx context.Context) []domain.Product {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil
}

func (m *mockCatalogService) Get(ctx context.Context, id int64) (domain.Product, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return domain.Product{}, service.ErrProductNotFound
}

func (m *mockCatalogService) Browse(ctx context.Context, q domain.BrowseQuery) domain.BrowseResult {
	if m.browseFunc != nil {
		return m.browseFunc(ctx, q)
	}
	return domain.BrowseResult{}
}

func (m *mockCatalogService) Home(ctx context.Context) domain.HomePage {
	if m.homeFunc != nil {
		return m.homeFunc(ctx)
	}
	return domain.HomePage{}
}

func (m *mockCatalogService) Brands(ctx context.Context) []string {
	if m.brandsFunc != nil {
		return m.brandsFunc(ctx)
	}
	return nil
}

func (m *mockCatalogService) Create(ctx context.Context, sess *session.Session, req domain.ProductRequest) error {
	return nil
}

func (m *mockCatalogService) Update(ctx context.Context, sess *session.Session, id int64, req domain.ProductRequest) error {
	return nil
}

func (m *mockCatalogService) Delete(ctx context.Context, sess *session.Session, id int64) error {
	return nil
}

func (m *mockCatalogService) SubmitReview(ctx context.Context, sess *session.Session, productID int64, req domain.ReviewRequest) (domain.Product, error) {
	if m.submitReviewFunc != nil {
		return m.submitReviewFunc(ctx, sess, productID, req)
	}
	return domain.Product{}, nil
}

// mockCartService implements service.CartService for testing
type mockCartService struct {
	fetchFunc          func(ctx context.Context, sess *session.Session) domain.Cart
	addToCartFunc      func(ctx context.Context, sess *session.Session, sku string, quantity int) (domain.Cart, error)
	addVariantFunc     func(ctx context.Context, sess *session.Session, product domain.Product, flavor, size string, quantity int) (domain.Cart, error)
	removeFunc         func(ctx context.Context, sess *session.Session, variantID int64) (domain.Cart, error)
	updateQuantityFunc func(ctx context.Context, sess *session.Session, variantID int64, quantity int) (domain.Cart, error)
	clearFunc          func(ctx context.Context, sess *session.Session) (domain.Cart, error)
}

func (m *mockCartService) Fetch(ctx context.Context, sess *session.Session) domain.Cart {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, sess)
	}
	return domain.EmptyCart()
}

func (m *mockCartService) AddToCart(ctx context.Context, sess *session.Session, sku string, quantity int) (domain.Cart, error) {
	if m.addToCartFunc != nil {
		return m.addToCartFunc(ctx, sess, sku, quantity)
	}
	return domain.EmptyCart(), nil
}

func (m *mockCartService) AddVariant(ctx context.Context, sess *session.Session, product domain.Product, flavor, size string, quantity int) (domain.Cart, error) {
	if m.addVariantFunc != nil {
		return m.addVariantFunc(ctx, sess, product, flavor, size, quantity)
	}
	return domain.EmptyCart(), nil
}

func (m *mockCartService) RemoveFromCart(ctx context.Context, sess *session.Session, variantID int64) (domain.Cart, error) {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, sess, variantID)
	}
	return domain.EmptyCart(), nil
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, sess *session.Session, variantID int64, quantity int) (domain.Cart, error) {
	if m.updateQuantityFunc != nil {
		return m.updateQuantityFunc(ctx, sess, variantID, quantity)
	}
	return domain.EmptyCart(), nil
}

func (m *mockCartService) ClearCart(ctx context.Context, sess *session.Session) (domain.Cart, error) {
	if m.clearFunc != nil {
		return m.clearFunc(ctx, sess)
	}
	return domain.EmptyCart(), nil
}

// mockAuthService implements service.AuthService for testing
type mockAuthService struct {
	loginFunc     func(ctx context.Context, sess *session.Session, creds domain.Credentials) (*service.AuthResult, error)
	registerFunc  func(ctx context.Context, sess *session.Session, reg domain.Registration) (*service.AuthResult, error)
	bootstrapFunc func(ctx context.Context, sess *session.Session) *service.Bootstrap
}

func (m *mockAuthService) Login(ctx context.Context, sess *session.Session, creds domain.Credentials) (*service.AuthResult, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, sess, creds)
	}
	return &service.AuthResult{}, nil
}

func (m *mockAuthService) Register(ctx context.Context, sess *session.Session, reg domain.Registration) (*service.AuthResult, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, sess, reg)
	}
	return &service.AuthResult{}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, sess *session.Session) {
	sess.SignOut()
}

func (m *mockAuthService) Bootstrap(ctx context.Context, sess *session.Session) *service.Bootstrap {
	if m.bootstrapFunc != nil {
		return m.bootstrapFunc(ctx, sess)
	}
	return &service.Bootstrap{Nav: sess.Nav}
}

// mockOrderService implements service.OrderService for testing
type mockOrderService struct {
	listFunc   func(ctx context.Context, sess *session.Session) []domain.Order
	cancelFunc func(ctx context.Context, sess *session.Session, orderID string) error
}

func (m *mockOrderService) List(ctx context.Context, sess *session.Session) []domain.Order {
	if m.listFunc != nil {
		return m.listFunc(ctx, sess)
	}
	return []domain.Order{}
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, sess *session.Session, orderID string, status domain.OrderStatus) error {
	return nil
}

func (m *mockOrderService) Cancel(ctx context.Context, sess *session.Session, orderID string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, sess, orderID)
	}
	return nil
}

// mockCheckoutService implements service.CheckoutService for testing
type mockCheckoutService struct {
	createPaymentIntentFunc func(ctx context.Context, sess *session.Session) (*domain.PaymentIntent, error)
	placeOrderFunc          func(ctx context.Context, sess *session.Session, form domain.CheckoutForm) (domain.Order, error)
}

func (m *mockCheckoutService) CreatePaymentIntent(ctx context.Context, sess *session.Session) (*domain.PaymentIntent, error) {
	if m.createPaymentIntentFunc != nil {
		return m.createPaymentIntentFunc(ctx, sess)
	}
	return nil, service.ErrPaymentsDisabled
}

func (m *mockCheckoutService) PlaceOrder(ctx context.Context, sess *session.Session, form domain.CheckoutForm) (domain.Order, error) {
	if m.placeOrderFunc != nil {
		return m.placeOrderFunc(ctx, sess, form)
	}
	return domain.Order{}, nil
}

// mockAccountService implements service.AccountService for testing
type mockAccountService struct {
	updateProfileFunc  func(ctx context.Context, sess *session.Session, upd domain.ProfileUpdate) (*domain.User, error)
	changePasswordFunc func(ctx context.Context, sess *session.Session, pc domain.PasswordChange) error
}

func (m *mockAccountService) Profile(ctx context.Context, sess *session.Session) (*domain.User, error) {
	if !sess.LoggedIn() {
		return nil, service.ErrNotLoggedIn
	}
	return sess.User, nil
}

func (m *mockAccountService) UpdateProfile(ctx context.Context, sess *session.Session, upd domain.ProfileUpdate) (*domain.User, error) {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, sess, upd)
	}
	return sess.User, nil
}

func (m *mockAccountService) ChangePassword(ctx context.Context, sess *session.Session, pc domain.PasswordChange) error {
	if m.changePasswordFunc != nil {
		return m.changePasswordFunc(ctx, sess, pc)
	}
	return nil
}

// mockChatService implements service.ChatService for testing
type mockChatService struct {
	sendFunc func(ctx context.Context, sess *session.Session, text string) ([]domain.ChatMessage, error)
}

func (m *mockChatService) History(ctx context.Context, sess *session.Session) []domain.ChatMessage {
	if sess.Chat == nil {
		sess.Chat = domain.NewChatHistory()
	}
	return sess.Chat
}

func (m *mockChatService) Send(ctx context.Context, sess *session.Session, text string) ([]domain.ChatMessage, error) {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, sess, text)
	}
	return sess.Chat, nil
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New(time.Hour)
	require.NoError(t, err)
	return sess
}

func customerSession(t *testing.T) *session.Session {
	t.Helper()
	sess := newSession(t)
	sess.SignIn("tok", &domain.User{ID: 1, Name: "An", Email: "an@gymsup.vn", Role: domain.RoleUser})
	return sess
}

// newRequest builds a request carrying sess the way middleware.Sessions
// would.
func newRequest(method, target, body string, sess *session.Session) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), sess))
	}
	return req
}

func sampleCart() domain.Cart {
	return domain.NewCart([]domain.CartItem{
		{VariantID: 11, SKU: "WHEY-CHOC-5", Name: "Whey Gold", Price: decimal.NewFromInt(1650000), Quantity: 2},
	})
}
