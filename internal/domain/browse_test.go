package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func catalog() []Product {
	return []Product{
		{ID: 1, Name: "Gold Standard Whey", Category: "Whey Protein", Brand: "Optimum Nutrition", Price: dec(1_650_000), Rating: 4.8, ReviewCount: 120, InStock: true},
		{ID: 2, Name: "ISO 100", Category: "Whey Protein", Brand: "Dymatize", Price: dec(2_100_000), Rating: 4.6, ReviewCount: 300, InStock: false},
		{ID: 3, Name: "Micronized Creatine", Category: "Tăng sức mạnh", Brand: "Optimum Nutrition", Price: dec(450_000), Rating: 4.9, ReviewCount: 80, InStock: true},
		{ID: 4, Name: "Nitro Tech Whey", Category: "Whey Protein", Brand: "MuscleTech", Price: dec(1_200_000), Rating: 3.9, ReviewCount: 15, InStock: true},
	}
}

func ids(products []Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestBrowse(t *testing.T) {
	tests := []struct {
		name       string
		query      BrowseQuery
		wantIDs    []int64
		wantActive int
	}{
		{
			name:    "category scope keeps backend order",
			query:   BrowseQuery{Kind: FilterCategory, Value: "Whey Protein"},
			wantIDs: []int64{1, 2, 4},
		},
		{
			name:    "brand scope",
			query:   BrowseQuery{Kind: FilterBrand, Value: "Optimum Nutrition"},
			wantIDs: []int64{1, 3},
		},
		{
			name:       "in stock only",
			query:      BrowseQuery{Kind: FilterCategory, Value: "Whey Protein", InStockOnly: true},
			wantIDs:    []int64{1, 4},
			wantActive: 1,
		},
		{
			name:       "max price and min rating",
			query:      BrowseQuery{Kind: FilterCategory, Value: "Whey Protein", MaxPrice: decPtr(2_000_000), MinRating: 4},
			wantIDs:    []int64{1},
			wantActive: 2,
		},
		{
			name:    "sort by popularity",
			query:   BrowseQuery{Kind: FilterCategory, Value: "Whey Protein", Sort: SortPopularity},
			wantIDs: []int64{2, 1, 4},
		},
		{
			name:    "sort by price ascending",
			query:   BrowseQuery{Sort: SortPriceAsc},
			wantIDs: []int64{3, 4, 1, 2},
		},
		{
			name:    "sort by price descending",
			query:   BrowseQuery{Sort: SortPriceDesc},
			wantIDs: []int64{2, 1, 4, 3},
		},
		{
			name:    "name search is case-insensitive",
			query:   BrowseQuery{Search: "WHEY"},
			wantIDs: []int64{1, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Browse(catalog(), tt.query)
			assert.Equal(t, tt.wantIDs, ids(res.Products))
			assert.Equal(t, tt.wantActive, res.ActiveFilter)
		})
	}
}

func TestBrowse_PriceBounds(t *testing.T) {
	res := Browse(catalog(), BrowseQuery{Kind: FilterCategory, Value: "Whey Protein"})
	assert.True(t, dec(1_200_000).Equal(res.PriceBounds.Min))
	assert.True(t, dec(2_100_000).Equal(res.PriceBounds.Max))
	assert.Equal(t, 3, res.ScopedCount)

	empty := Browse(catalog(), BrowseQuery{Kind: FilterCategory, Value: "Vitamin"})
	assert.Empty(t, empty.Products)
	assert.True(t, empty.PriceBounds.Min.IsZero())
	assert.True(t, DefaultMaxPrice.Equal(empty.PriceBounds.Max))
}

func TestMatchesName(t *testing.T) {
	p := Product{Name: "Creatine Monohydrate"}
	assert.True(t, MatchesName(p, "  creatine "))
	assert.False(t, MatchesName(p, "whey"))
}

func TestBrands(t *testing.T) {
	assert.Equal(t, []string{"Optimum Nutrition", "Dymatize", "MuscleTech"}, Brands(catalog()))
}

func TestBuildHomePage(t *testing.T) {
	page := BuildHomePage(catalog())

	assert.Len(t, page.Trending, 4)
	if assert.Len(t, page.Sections, 2) {
		assert.Equal(t, HomeSectionWhey, page.Sections[0].Title)
		assert.Equal(t, []int64{1, 2, 4}, ids(page.Sections[0].Products))
		assert.Equal(t, HomeSectionStrength, page.Sections[1].Title)
		assert.Equal(t, []int64{3}, ids(page.Sections[1].Products))
	}
}
