package mapper

import (
	"math"
	"time"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/domain"
)

// AnonymousAuthor is shown for reviews without an author.
const AnonymousAuthor = "Ẩn danh"

// ProductMapper converts backend products into domain products.
type ProductMapper struct {
	// Rule computes the product aggregates from its variants.
	Rule domain.SummaryRule

	// Now supplies the date label of reviews without a timestamp.
	Now func() time.Time
}

// NewProductMapper returns a mapper using rule, or FirstVariant when rule is nil.
func NewProductMapper(rule domain.SummaryRule) *ProductMapper {
	if rule == nil {
		rule = domain.FirstVariant
	}
	return &ProductMapper{Rule: rule, Now: time.Now}
}

// MapProducts maps a list, preserving backend order.
func (m *ProductMapper) MapProducts(in []backend.ProductResponse) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, p := range in {
		out = append(out, m.MapProduct(p))
	}
	return out
}

// MapProduct normalizes one backend product.
func (m *ProductMapper) MapProduct(in backend.ProductResponse) domain.Product {
	id := in.ProductID.Int64()
	if id == 0 {
		id = in.ID.Int64()
	}

	p := domain.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Variants:    make([]domain.Variant, 0, len(in.Variants)),
		Flavors:     []string{},
		Sizes:       []string{},
	}

	p.Category = in.CategoryName
	if in.Category != nil {
		if p.Category == "" {
			p.Category = in.Category.Name
		}
		p.CategoryID = in.Category.CategoryID
	}
	p.Brand = in.BrandName
	if in.Brand != nil {
		if p.Brand == "" {
			p.Brand = in.Brand.Name
		}
		p.BrandID = in.Brand.BrandID
	}

	flavors := newOrderedSet()
	sizes := newOrderedSet()
	for _, v := range in.Variants {
		flavor, size := ParseVariantName(v.Name)
		p.Variants = append(p.Variants, domain.Variant{
			ID:            v.VariantID,
			Name:          v.Name,
			SKU:           v.SKU,
			Price:         v.Price,
			SalePrice:     v.SalePrice,
			OldPrice:      v.OldPrice,
			StockQuantity: v.StockQuantity,
			Flavor:        flavor,
			Size:          size,
			ImageURL:      v.ImageURL,
		})
		flavors.add(flavor)
		sizes.add(size)
	}
	p.Flavors = flavors.items
	p.Sizes = sizes.items

	m.rule()(p.Variants).Apply(&p)

	p.Images = firstNonEmpty(
		in.Gallery,
		one(in.Thumbnail),
		in.ImageURLs,
		in.Images,
		one(in.ImageURL),
		one(in.Image),
	)
	if len(p.Images) == 0 {
		p.Images = []string{PlaceholderImage(id)}
	}

	p.Reviews = m.mapReviews(in)
	p.RatingCounts = ratingCounts(p.Reviews)
	p.Rating = averageRating(p.Reviews)
	if in.AverageRating.Valid {
		p.Rating = in.AverageRating.Value
	}
	p.ReviewCount = len(p.Reviews)
	if in.TotalReviews.Valid {
		p.ReviewCount = in.TotalReviews.Int()
	}

	return p
}

func (m *ProductMapper) rule() domain.SummaryRule {
	if m.Rule == nil {
		return domain.FirstVariant
	}
	return m.Rule
}

func (m *ProductMapper) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func (m *ProductMapper) mapReviews(in backend.ProductResponse) []domain.Review {
	src := in.Reviews
	if len(src) == 0 {
		src = in.Comments
	}
	if len(src) == 0 {
		src = in.ReviewList
	}

	out := make([]domain.Review, 0, len(src))
	for i, r := range src {
		out = append(out, m.mapReview(r, i))
	}
	return out
}

func (m *ProductMapper) mapReview(r backend.ReviewResponse, index int) domain.Review {
	id := r.ReviewID.Int64()
	if id == 0 {
		id = r.ID.Int64()
	}
	if id == 0 {
		id = int64(index + 1)
	}

	author := firstString(r.Author, r.UserName, r.FullName)
	if author == "" {
		author = AnonymousAuthor
	}

	rating := 5
	switch {
	case r.Rating.Valid:
		rating = r.Rating.Int()
	case r.Stars.Valid:
		rating = r.Stars.Int()
	}
	rating = min(max(rating, 1), 5)

	label := DateLabel(m.now())
	if t, ok := parseTimestamp(r.CreatedAt); ok {
		label = DateLabel(t)
	} else if t, ok := parseTimestamp(r.Date); ok {
		label = DateLabel(t)
	}

	return domain.Review{
		ID:        id,
		Author:    author,
		Rating:    rating,
		Comment:   firstString(r.Comment, r.Content),
		DateLabel: label,
	}
}

func averageRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}

func ratingCounts(reviews []domain.Review) []domain.RatingCount {
	counts := make([]domain.RatingCount, 0, 5)
	for star := 5; star >= 1; star-- {
		n := 0
		for _, r := range reviews {
			if r.Rating == star {
				n++
			}
		}
		counts = append(counts, domain.RatingCount{Rating: star, Count: n})
	}
	return counts
}

// orderedSet de-duplicates strings, keeping first-seen order.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool), items: []string{}}
}

func (s *orderedSet) add(v string) {
	if v == "" || s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

