package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATALOG BROWSING
// =============================================================================

// FilterKind selects which product attribute a listing is scoped to.
type FilterKind string

const (
	FilterCategory FilterKind = "category"
	FilterBrand    FilterKind = "brand"
)

// SortOption orders a product listing.
type SortOption string

const (
	SortDefault    SortOption = "default"
	SortPopularity SortOption = "popularity"
	SortPriceAsc   SortOption = "price-asc"
	SortPriceDesc  SortOption = "price-desc"
)

// BrandsCategory is the category label that opens the brand directory
// instead of a category listing.
const BrandsCategory = "Thương hiệu"

// DefaultMaxPrice is the upper price bound reported for an empty listing.
var DefaultMaxPrice = decimal.NewFromInt(5_000_000)

// BrowseQuery scopes, filters and sorts a product listing.
type BrowseQuery struct {
	Kind  FilterKind
	Value string

	Search      string
	MaxPrice    *decimal.Decimal
	MinRating   float64
	InStockOnly bool
	Sort        SortOption
}

// PriceBounds is the min/max price across a scoped listing.
type PriceBounds struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// BrowseResult is a filtered and sorted listing.
type BrowseResult struct {
	Products     []Product   `json:"products"`
	ScopedCount  int         `json:"scopedCount"`
	PriceBounds  PriceBounds `json:"priceBounds"`
	ActiveFilter int         `json:"activeFilterCount"`
}

// Browse applies q to products. Scoping by category or brand happens first;
// price bounds are computed over the scoped set. The default sort keeps
// backend order.
func Browse(products []Product, q BrowseQuery) BrowseResult {
	scoped := Scope(products, q.Kind, q.Value)
	bounds := PriceBoundsOf(scoped)

	maxPrice := bounds.Max
	if q.MaxPrice != nil {
		maxPrice = *q.MaxPrice
	}

	filtered := make([]Product, 0, len(scoped))
	for _, p := range scoped {
		if q.Search != "" && !MatchesName(p, q.Search) {
			continue
		}
		if p.Price.GreaterThan(maxPrice) {
			continue
		}
		if p.Rating < q.MinRating {
			continue
		}
		if q.InStockOnly && !p.InStock {
			continue
		}
		filtered = append(filtered, p)
	}

	SortProducts(filtered, q.Sort)

	active := 0
	if maxPrice.LessThan(bounds.Max) {
		active++
	}
	if q.MinRating > 0 {
		active++
	}
	if q.InStockOnly {
		active++
	}

	return BrowseResult{
		Products:     filtered,
		ScopedCount:  len(scoped),
		PriceBounds:  bounds,
		ActiveFilter: active,
	}
}

// Scope returns the products in the given category or brand. An empty
// value returns every product.
func Scope(products []Product, kind FilterKind, value string) []Product {
	if value == "" {
		return slices.Clone(products)
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		switch kind {
		case FilterBrand:
			if p.Brand == value {
				out = append(out, p)
			}
		default:
			if p.Category == value {
				out = append(out, p)
			}
		}
	}
	return out
}

// PriceBoundsOf returns the price range of products, or 0..DefaultMaxPrice
// for an empty slice.
func PriceBoundsOf(products []Product) PriceBounds {
	if len(products) == 0 {
		return PriceBounds{Min: decimal.Zero, Max: DefaultMaxPrice}
	}
	b := PriceBounds{Min: products[0].Price, Max: products[0].Price}
	for _, p := range products[1:] {
		b.Min = decimal.Min(b.Min, p.Price)
		b.Max = decimal.Max(b.Max, p.Price)
	}
	return b
}

// SortProducts sorts in place. Ties keep their original order.
func SortProducts(products []Product, opt SortOption) {
	switch opt {
	case SortPopularity:
		slices.SortStableFunc(products, func(a, b Product) int {
			return b.ReviewCount - a.ReviewCount
		})
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b Product) int {
			return b.Price.Cmp(a.Price)
		})
	}
}

// MatchesName reports whether the product name contains query,
// case-insensitively.
func MatchesName(p Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(strings.TrimSpace(query)))
}

// Brands returns the distinct brand names in first-seen order.
func Brands(products []Product) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range products {
		if p.Brand == "" || seen[p.Brand] {
			continue
		}
		seen[p.Brand] = true
		out = append(out, p.Brand)
	}
	return out
}

// =============================================================================
// HOME PAGE
// =============================================================================

// Home page section categories.
const (
	HomeSectionWhey     = "Whey Protein"
	HomeSectionStrength = "Tăng sức mạnh"

	homeSectionSize = 6
	trendingSize    = 4
)

// HomeSection is a titled product row on the home page.
type HomeSection struct {
	Title    string    `json:"title"`
	Products []Product `json:"products"`
}

// HomePage is the home page view model.
type HomePage struct {
	Trending []Product     `json:"trending"`
	Sections []HomeSection `json:"sections"`
	Brands   []string      `json:"brands"`
}

// BuildHomePage assembles the home page from the full catalog.
func BuildHomePage(products []Product) HomePage {
	return HomePage{
		Trending: head(products, trendingSize),
		Sections: []HomeSection{
			{Title: HomeSectionWhey, Products: head(Scope(products, FilterCategory, HomeSectionWhey), homeSectionSize)},
			{Title: HomeSectionStrength, Products: head(Scope(products, FilterCategory, HomeSectionStrength), homeSectionSize)},
		},
		Brands: Brands(products),
	}
}

func head(products []Product, n int) []Product {
	if len(products) > n {
		products = products[:n]
	}
	return slices.Clone(products)
}
