package domain

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

const (
	// NoSKU is reported as a product's SKU when it has no variants.
	NoSKU = "N/A"

	// DefaultFlavor is used when a variant name carries no flavor text.
	DefaultFlavor = "Default Flavor"

	// StandardSize is used when a variant name carries no size token.
	StandardSize = "Standard"
)

// Product is a normalized catalog entry built from a backend product response.
// Aggregate fields (Price, OldPrice, SKU, InStock, StockQuantity) come from a
// SummaryRule applied to Variants; they are not authoritative backend fields.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CategoryID  int64  `json:"categoryId"`
	Brand       string `json:"brand"`
	BrandID     int64  `json:"brandId"`

	Variants []Variant `json:"variants"`

	Price         decimal.Decimal  `json:"price"`
	OldPrice      *decimal.Decimal `json:"oldPrice,omitempty"`
	SKU           string           `json:"sku"`
	InStock       bool             `json:"inStock"`
	StockQuantity int              `json:"stockQuantity"`

	// Images is never empty; a placeholder is used when the backend has none.
	Images []string `json:"images"`

	Rating       float64       `json:"rating"`
	ReviewCount  int           `json:"reviews"`
	Reviews      []Review      `json:"reviewList"`
	RatingCounts []RatingCount `json:"ratingCounts"`

	// Flavors and Sizes are facets derived from variant names, de-duplicated
	// in first-seen order.
	Flavors []string `json:"flavors"`
	Sizes   []string `json:"sizes"`
}

// Variant is a purchasable flavor/size configuration of a product.
type Variant struct {
	ID            int64            `json:"variantId"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Price         decimal.Decimal  `json:"price"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	OldPrice      *decimal.Decimal `json:"oldPrice,omitempty"`
	StockQuantity int              `json:"stockQuantity"`
	Flavor        string           `json:"flavor"`
	Size          string           `json:"size"`
	ImageURL      string           `json:"imageUrl,omitempty"`
}

// InStock reports whether the variant has any stock.
func (v Variant) InStock() bool {
	return v.StockQuantity > 0
}

// Review is a normalized customer review.
type Review struct {
	ID        int64  `json:"id"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	DateLabel string `json:"date"`
}

// RatingCount is the number of reviews with a given star rating.
type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// FindVariant returns the variant matching the given flavor and size facets.
func (p *Product) FindVariant(flavor, size string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Flavor == flavor && v.Size == size {
			return v, true
		}
	}
	return Variant{}, false
}

// =============================================================================
// SUMMARIZATION RULES
// =============================================================================

// Summary holds the aggregate fields a product exposes from its variants.
type Summary struct {
	Price         decimal.Decimal
	OldPrice      *decimal.Decimal
	SKU           string
	InStock       bool
	StockQuantity int
}

// EmptySummary is the summary of a product with no variants.
func EmptySummary() Summary {
	return Summary{
		Price: decimal.Zero,
		SKU:   NoSKU,
	}
}

// SummaryRule reduces a product's variants to the aggregate fields shown in
// listings and product cards.
type SummaryRule func(variants []Variant) Summary

// FirstVariant summarizes a product from its first variant. This is positional:
// it assumes the backend returns variants in a stable order with a
// representative first entry. It is not the cheapest or most available variant.
func FirstVariant(variants []Variant) Summary {
	if len(variants) == 0 {
		return EmptySummary()
	}
	return summarize(variants[0])
}

// CheapestInStock summarizes a product from its lowest-priced in-stock
// variant, falling back to the first variant when nothing is in stock.
func CheapestInStock(variants []Variant) Summary {
	if len(variants) == 0 {
		return EmptySummary()
	}

	best := -1
	for i, v := range variants {
		if !v.InStock() {
			continue
		}
		if best < 0 || v.Price.LessThan(variants[best].Price) {
			best = i
		}
	}
	if best < 0 {
		return summarize(variants[0])
	}
	return summarize(variants[best])
}

// SummaryRuleByName resolves a configured rule name. Unknown names resolve
// to FirstVariant.
func SummaryRuleByName(name string) SummaryRule {
	switch name {
	case "cheapest-in-stock":
		return CheapestInStock
	default:
		return FirstVariant
	}
}

func summarize(v Variant) Summary {
	s := Summary{
		Price:         v.Price,
		SKU:           v.SKU,
		InStock:       v.InStock(),
		StockQuantity: v.StockQuantity,
	}
	if s.SKU == "" {
		s.SKU = NoSKU
	}
	if v.OldPrice != nil && !v.OldPrice.IsZero() {
		old := *v.OldPrice
		s.OldPrice = &old
	}
	return s
}

// Apply copies the summary into the product's aggregate fields.
func (s Summary) Apply(p *Product) {
	p.Price = s.Price
	p.OldPrice = s.OldPrice
	p.SKU = s.SKU
	p.InStock = s.InStock
	p.StockQuantity = s.StockQuantity
}

// =============================================================================
// ADMIN REQUESTS
// =============================================================================

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	CategoryID  int64            `json:"categoryId" validate:"gt=0"`
	BrandID     int64            `json:"brandId" validate:"gt=0"`
	Variants    []VariantRequest `json:"variants" validate:"required,min=1,dive"`
}

// VariantRequest describes one variant in a ProductRequest.
type VariantRequest struct {
	Name          string           `json:"name" validate:"required"`
	SKU           string           `json:"sku" validate:"required"`
	Price         decimal.Decimal  `json:"price"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	StockQuantity int              `json:"stockQuantity" validate:"gte=0"`
}

// ReviewRequest is a customer's review submission.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}
