package service

import (
	"context"
	"log/slog"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/events"
	"github.com/dukerupert/gymsup/internal/mapper"
	"github.com/dukerupert/gymsup/internal/session"
	"github.com/dukerupert/gymsup/internal/telemetry"
)

// CatalogService reads the product catalog and performs admin product
// management. Reads degrade to an empty catalog when the backend fails.
type CatalogService interface {
	List(ctx context.Context) []domain.Product
	Get(ctx context.Context, id int64) (domain.Product, error)
	Browse(ctx context.Context, q domain.BrowseQuery) domain.BrowseResult
	Home(ctx context.Context) domain.HomePage
	Brands(ctx context.Context) []string

	Create(ctx context.Context, sess *session.Session, req domain.ProductRequest) error
	Update(ctx context.Context, sess *session.Session, id int64, req domain.ProductRequest) error
	Delete(ctx context.Context, sess *session.Session, id int64) error

	// SubmitReview posts a review and returns the refreshed product.
	SubmitReview(ctx context.Context, sess *session.Session, productID int64, req domain.ReviewRequest) (domain.Product, error)
}

// CatalogBackend is the part of the backend client the catalog service uses.
type CatalogBackend interface {
	ListProducts(ctx context.Context) ([]backend.ProductResponse, error)
	CreateProduct(ctx context.Context, token string, req backend.ProductRequest) error
	UpdateProduct(ctx context.Context, token string, id int64, req backend.ProductRequest) error
	DeleteProduct(ctx context.Context, token string, id int64) error
	SubmitReview(ctx context.Context, token string, productID int64, req backend.ReviewRequest) error
}

type catalogService struct {
	backend   CatalogBackend
	mapper    *mapper.ProductMapper
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(b CatalogBackend, m *mapper.ProductMapper, publisher events.Publisher, metrics *telemetry.BusinessMetrics, logger *slog.Logger) CatalogService {
	if m == nil {
		m = mapper.NewProductMapper(nil)
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &catalogService{
		backend:   b,
		mapper:    m,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// List implements CatalogService.
func (s *catalogService) List(ctx context.Context) []domain.Product {
	resp, err := s.backend.ListProducts(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to fetch products", "error", err)
		s.metrics.ReadFailure("products")
		return []domain.Product{}
	}
	return s.mapper.MapProducts(resp)
}

// Get implements CatalogService. Unlike List, a failed read is surfaced so an
// outage is not reported as a missing product.
func (s *catalogService) Get(ctx context.Context, id int64) (domain.Product, error) {
	resp, err := s.backend.ListProducts(ctx)
	if err != nil {
		s.metrics.ReadFailure("products")
		return domain.Product{}, backend.WithFallback(err, "Không thể tải sản phẩm")
	}
	for _, p := range s.mapper.MapProducts(resp) {
		if p.ID == id {
			s.metrics.ProductViewed(p.Category)
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Browse implements CatalogService.
func (s *catalogService) Browse(ctx context.Context, q domain.BrowseQuery) domain.BrowseResult {
	filterType := "none"
	switch {
	case q.Value != "":
		filterType = string(q.Kind)
	case q.Search != "":
		filterType = "search"
	}
	s.metrics.ProductSearched(filterType)

	return domain.Browse(s.List(ctx), q)
}

// Home implements CatalogService.
func (s *catalogService) Home(ctx context.Context) domain.HomePage {
	return domain.BuildHomePage(s.List(ctx))
}

// Brands implements CatalogService.
func (s *catalogService) Brands(ctx context.Context) []string {
	return domain.Brands(s.List(ctx))
}

// Create implements CatalogService.
func (s *catalogService) Create(ctx context.Context, sess *session.Session, req domain.ProductRequest) error {
	const op = "catalog.create"

	if err := requireAdmin(sess); err != nil {
		return err
	}
	if err := validateProduct(op, req); err != nil {
		return err
	}

	if err := s.backend.CreateProduct(ctx, sess.Token, toBackendProduct(req)); err != nil {
		return backend.WithFallback(err, "Không thể thêm sản phẩm")
	}

	s.logger.InfoContext(ctx, "product created", "name", req.Name, "variants", len(req.Variants))
	s.metrics.ProductAdminOp("create")
	s.publish(ctx, sess, events.SubjectProductCreated, productEvent{Name: req.Name})
	return nil
}

// Update implements CatalogService.
func (s *catalogService) Update(ctx context.Context, sess *session.Session, id int64, req domain.ProductRequest) error {
	const op = "catalog.update"

	if err := requireAdmin(sess); err != nil {
		return err
	}
	if err := validateProduct(op, req); err != nil {
		return err
	}

	if err := s.backend.UpdateProduct(ctx, sess.Token, id, toBackendProduct(req)); err != nil {
		return backend.WithFallback(err, "Không thể cập nhật sản phẩm")
	}

	s.logger.InfoContext(ctx, "product updated", "product_id", id)
	s.metrics.ProductAdminOp("update")
	s.publish(ctx, sess, events.SubjectProductUpdated, productEvent{ID: id, Name: req.Name})
	return nil
}

// Delete implements CatalogService.
func (s *catalogService) Delete(ctx context.Context, sess *session.Session, id int64) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}

	if err := s.backend.DeleteProduct(ctx, sess.Token, id); err != nil {
		return backend.WithFallback(err, "Không thể xóa sản phẩm")
	}

	s.logger.InfoContext(ctx, "product deleted", "product_id", id)
	s.metrics.ProductAdminOp("delete")
	s.publish(ctx, sess, events.SubjectProductDeleted, productEvent{ID: id})
	return nil
}

// SubmitReview implements CatalogService.
func (s *catalogService) SubmitReview(ctx context.Context, sess *session.Session, productID int64, req domain.ReviewRequest) (domain.Product, error) {
	const op = "catalog.review"

	if !sess.LoggedIn() {
		return domain.Product{}, ErrNotLoggedIn
	}
	if err := validateStruct(op, req); err != nil {
		return domain.Product{}, err
	}

	err := s.backend.SubmitReview(ctx, sess.Token, productID, backend.ReviewRequest{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return domain.Product{}, backend.WithFallback(err, "Không thể gửi đánh giá")
	}

	s.metrics.ReviewPosted()
	s.publish(ctx, sess, events.SubjectReviewPosted, reviewEvent{ProductID: productID, Rating: req.Rating})
	return s.Get(ctx, productID)
}

func validateProduct(op string, req domain.ProductRequest) error {
	if err := validateStruct(op, req); err != nil {
		return err
	}
	for _, v := range req.Variants {
		if v.Price.IsNegative() || (v.SalePrice != nil && v.SalePrice.IsNegative()) {
			return ErrNegativePrice
		}
	}
	return nil
}

func toBackendProduct(req domain.ProductRequest) backend.ProductRequest {
	variants := make([]backend.VariantRequest, len(req.Variants))
	for i, v := range req.Variants {
		variants[i] = backend.VariantRequest{
			Name:          v.Name,
			SKU:           v.SKU,
			Price:         v.Price,
			SalePrice:     v.SalePrice,
			StockQuantity: v.StockQuantity,
		}
	}
	return backend.ProductRequest{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		Variants:    variants,
	}
}

type productEvent struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type reviewEvent struct {
	ProductID int64 `json:"productId"`
	Rating    int   `json:"rating"`
}

func (s *catalogService) publish(ctx context.Context, sess *session.Session, subject string, data any) {
	if err := s.publisher.Publish(ctx, subject, sess.ID, data); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", "subject", subject, "error", err)
	}
}

// requireAdmin checks the session belongs to a logged-in admin.
func requireAdmin(sess *session.Session) error {
	if !sess.LoggedIn() {
		return ErrNotLoggedIn
	}
	if !sess.User.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}
