package storefront

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/handler"
	"github.com/dukerupert/gymsup/internal/service"
)

// ProductHandler serves catalog reads and customer reviews.
type ProductHandler struct {
	catalog service.CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /api/products
//
// Query parameters:
//   - category, brand: scope the listing (category wins when both are set)
//   - q: case-insensitive name search
//   - maxPrice, minRating, inStock: filters
//   - sort: default|popularity|price-asc|price-desc
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseBrowseQuery(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, h.catalog.Browse(r.Context(), q))
}

// Home handles GET /api/home
func (h *ProductHandler) Home(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, h.catalog.Home(r.Context()))
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, product)
}

// Brands handles GET /api/brands
func (h *ProductHandler) Brands(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, map[string][]string{"brands": h.catalog.Brands(r.Context())})
}

// Review handles POST /api/products/{id}/reviews
func (h *ProductHandler) Review(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req domain.ReviewRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	product, err := h.catalog.SubmitReview(r.Context(), sess, id, req)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, product)
}

func parseBrowseQuery(r *http.Request) (domain.BrowseQuery, error) {
	const op = "storefront.browse"
	values := r.URL.Query()

	q := domain.BrowseQuery{
		Search: strings.TrimSpace(values.Get("q")),
		Sort:   domain.SortOption(values.Get("sort")),
	}

	switch {
	case values.Get("category") != "":
		q.Kind, q.Value = domain.FilterCategory, values.Get("category")
	case values.Get("brand") != "":
		q.Kind, q.Value = domain.FilterBrand, values.Get("brand")
	}

	if raw := values.Get("maxPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil || price.IsNegative() {
			return q, domain.NewValidationError(op, "maxPrice", "Giá không hợp lệ")
		}
		q.MaxPrice = &price
	}

	if raw := values.Get("minRating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || rating < 0 || rating > 5 {
			return q, domain.NewValidationError(op, "minRating", "Đánh giá phải từ 0 đến 5")
		}
		q.MinRating = rating
	}

	if raw := values.Get("inStock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return q, domain.NewValidationError(op, "inStock", "Giá trị không hợp lệ")
		}
		q.InStockOnly = inStock
	}

	switch q.Sort {
	case "", domain.SortDefault, domain.SortPopularity, domain.SortPriceAsc, domain.SortPriceDesc:
	default:
		return q, domain.NewValidationError(op, "sort", "Kiểu sắp xếp không hợp lệ")
	}

	return q, nil
}
