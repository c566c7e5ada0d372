package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCart() Cart {
	return NewCart([]CartItem{
		{VariantID: 11, SKU: "WHEY-CHOC-5LB", Name: "Gold Standard - Vị Chocolate 5Lbs", Price: decimal.NewFromInt(1_650_000), Quantity: 2},
		{VariantID: 12, SKU: "CREA-300G", Name: "Creatine - 300g", Price: decimal.NewFromInt(450_000), Quantity: 1},
	})
}

func TestCart_Totals(t *testing.T) {
	cart := sampleCart()

	assert.Equal(t, 3, cart.ItemCount())
	assert.True(t, decimal.NewFromInt(3_750_000).Equal(cart.Total()), "total = %s", cart.Total())
	assert.False(t, cart.IsEmpty())
}

func TestCart_SKUFor(t *testing.T) {
	cart := sampleCart()

	sku, ok := cart.SKUFor(11)
	require.True(t, ok)
	assert.Equal(t, "WHEY-CHOC-5LB", sku)

	_, ok = cart.SKUFor(999)
	assert.False(t, ok)
}

func TestCart_SKUForAfterDecode(t *testing.T) {
	data, err := json.Marshal(sampleCart())
	require.NoError(t, err)

	var decoded Cart
	require.NoError(t, json.Unmarshal(data, &decoded))

	sku, ok := decoded.SKUFor(12)
	require.True(t, ok)
	assert.Equal(t, "CREA-300G", sku)
}

func TestEmptyCart(t *testing.T) {
	cart := EmptyCart()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.ItemCount())
	assert.True(t, cart.Total().IsZero())

	summary := cart.Summary()
	assert.NotNil(t, summary.Items)
	assert.Empty(t, summary.Items)
}
