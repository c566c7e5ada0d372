package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/domain"
)

var fixedNow = time.Date(2025, 3, 8, 9, 30, 0, 0, time.UTC)

func newTestMapper(rule domain.SummaryRule) *ProductMapper {
	m := NewProductMapper(rule)
	m.Now = func() time.Time { return fixedNow }
	return m
}

func decodeProduct(t *testing.T, raw string) backend.ProductResponse {
	t.Helper()
	var p backend.ProductResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestMapProduct_Images(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "only thumbnail",
			raw:  `{"productId":1,"thumbnail":"https://cdn/t.jpg"}`,
			want: []string{"https://cdn/t.jpg"},
		},
		{
			name: "gallery wins over everything",
			raw:  `{"productId":1,"gallery":["g1","g2"],"thumbnail":"t","image":"i"}`,
			want: []string{"g1", "g2"},
		},
		{
			name: "blank gallery entries are skipped",
			raw:  `{"productId":1,"gallery":["  ",""],"imageUrls":["u1"]}`,
			want: []string{"u1"},
		},
		{
			name: "images array before single fields",
			raw:  `{"productId":1,"images":["a"],"imageUrl":"b","image":"c"}`,
			want: []string{"a"},
		},
		{
			name: "imageUrl before image",
			raw:  `{"productId":1,"imageUrl":"b","image":"c"}`,
			want: []string{"b"},
		},
		{
			name: "placeholder when nothing is set",
			raw:  `{"productId":42}`,
			want: []string{"https://picsum.photos/seed/product42/400/400"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestMapper(nil).MapProduct(decodeProduct(t, tt.raw))
			assert.Equal(t, tt.want, p.Images)
		})
	}
}

func TestMapProduct_NoVariants(t *testing.T) {
	p := newTestMapper(nil).MapProduct(decodeProduct(t, `{"productId":3,"name":"Shaker"}`))

	assert.False(t, p.InStock)
	assert.True(t, p.Price.IsZero())
	assert.Equal(t, "N/A", p.SKU)
	assert.Equal(t, 0, p.StockQuantity)
	assert.Empty(t, p.Variants)
	assert.NotNil(t, p.Flavors)
	assert.NotNil(t, p.Sizes)
}

func TestMapProduct_Full(t *testing.T) {
	raw := `{
		"productId": 7,
		"name": "Gold Standard 100% Whey",
		"description": "24g protein",
		"category": {"categoryId": 1, "name": "Whey Protein"},
		"brandName": "Optimum Nutrition",
		"brand": {"brandId": 3, "name": "ON"},
		"variants": [
			{"variantId": 70, "name": "Vị Chocolate 5Lbs", "sku": "ON-CHOC-5", "price": 1650000, "oldPrice": 1800000, "stockQuantity": 0},
			{"variantId": 71, "name": "Vị Vanilla 5Lbs", "sku": "ON-VAN-5", "price": 1600000, "stockQuantity": 8},
			{"variantId": 72, "name": "Vị Chocolate 10Lbs", "sku": "ON-CHOC-10", "price": 2900000, "stockQuantity": 2}
		],
		"thumbnail": "https://cdn/on.jpg",
		"comments": [
			{"id": 1, "userName": "minh", "stars": 4, "content": "Ngon", "createdAt": "2025-01-02T08:00:00"},
			{"id": 2, "comment": "Tốt", "rating": 9}
		]
	}`

	got := newTestMapper(nil).MapProduct(decodeProduct(t, raw))

	old := decimal.NewFromInt(1800000)
	want := domain.Product{
		ID:          7,
		Name:        "Gold Standard 100% Whey",
		Description: "24g protein",
		Category:    "Whey Protein",
		CategoryID:  1,
		Brand:       "Optimum Nutrition",
		BrandID:     3,
		Variants: []domain.Variant{
			{ID: 70, Name: "Vị Chocolate 5Lbs", SKU: "ON-CHOC-5", Price: decimal.NewFromInt(1650000), OldPrice: &old, StockQuantity: 0, Flavor: "Chocolate", Size: "5Lbs"},
			{ID: 71, Name: "Vị Vanilla 5Lbs", SKU: "ON-VAN-5", Price: decimal.NewFromInt(1600000), StockQuantity: 8, Flavor: "Vanilla", Size: "5Lbs"},
			{ID: 72, Name: "Vị Chocolate 10Lbs", SKU: "ON-CHOC-10", Price: decimal.NewFromInt(2900000), StockQuantity: 2, Flavor: "Chocolate", Size: "10Lbs"},
		},
		Price:         decimal.NewFromInt(1650000),
		OldPrice:      &old,
		SKU:           "ON-CHOC-5",
		InStock:       false,
		StockQuantity: 0,
		Images:        []string{"https://cdn/on.jpg"},
		Rating:        4.5,
		ReviewCount:   2,
		Reviews: []domain.Review{
			{ID: 1, Author: "minh", Rating: 4, Comment: "Ngon", DateLabel: "08:00:00 2/1/2025"},
			{ID: 2, Author: AnonymousAuthor, Rating: 5, Comment: "Tốt", DateLabel: "16:30:00 8/3/2025"},
		},
		RatingCounts: []domain.RatingCount{
			{Rating: 5, Count: 1}, {Rating: 4, Count: 1}, {Rating: 3, Count: 0}, {Rating: 2, Count: 0}, {Rating: 1, Count: 0},
		},
		Flavors: []string{"Chocolate", "Vanilla"},
		Sizes:   []string{"5Lbs", "10Lbs"},
	}

	opts := cmp.Options{
		cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("MapProduct() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapProduct_CheapestInStockRule(t *testing.T) {
	raw := `{"productId":7,"variants":[
		{"variantId":70,"name":"Chocolate 5Lbs","sku":"A","price":1650000,"stockQuantity":0},
		{"variantId":71,"name":"Vanilla 5Lbs","sku":"B","price":1600000,"stockQuantity":8}
	]}`

	p := newTestMapper(domain.CheapestInStock).MapProduct(decodeProduct(t, raw))
	assert.Equal(t, "B", p.SKU)
	assert.True(t, p.InStock)
}

func TestMapProduct_ReviewSources(t *testing.T) {
	t.Run("reviews take precedence over comments", func(t *testing.T) {
		p := newTestMapper(nil).MapProduct(decodeProduct(t, `{"productId":1,
			"reviews":[{"author":"A","rating":3}],
			"comments":[{"author":"B"}]}`))
		require.Len(t, p.Reviews, 1)
		assert.Equal(t, "A", p.Reviews[0].Author)
	})

	t.Run("reviewList is the last fallback", func(t *testing.T) {
		p := newTestMapper(nil).MapProduct(decodeProduct(t, `{"productId":1,
			"reviewList":[{"fullName":"C","rating":0}]}`))
		require.Len(t, p.Reviews, 1)
		assert.Equal(t, "C", p.Reviews[0].Author)
		assert.Equal(t, 1, p.Reviews[0].Rating)
	})

	t.Run("backend aggregates override computed ones", func(t *testing.T) {
		p := newTestMapper(nil).MapProduct(decodeProduct(t, `{"productId":1,
			"averageRating":4.7,"totalReviews":120,
			"reviews":[{"rating":2}]}`))
		assert.Equal(t, 4.7, p.Rating)
		assert.Equal(t, 120, p.ReviewCount)
	})

	t.Run("no reviews", func(t *testing.T) {
		p := newTestMapper(nil).MapProduct(decodeProduct(t, `{"productId":1}`))
		assert.Equal(t, 0.0, p.Rating)
		assert.Equal(t, 0, p.ReviewCount)
		assert.NotNil(t, p.Reviews)
	})
}

func TestMapProduct_LegacyID(t *testing.T) {
	p := newTestMapper(nil).MapProduct(decodeProduct(t, `{"id":9,"categoryName":"Vitamin","category":{"categoryId":4,"name":"ignored"}}`))
	assert.Equal(t, int64(9), p.ID)
	assert.Equal(t, "Vitamin", p.Category)
	assert.Equal(t, int64(4), p.CategoryID)
	assert.Equal(t, []string{"https://picsum.photos/seed/product9/400/400"}, p.Images)
}
