package domain

import (
	"github.com/shopspring/decimal"
)

// CartItem is one line of the cart projection.
//
// VariantID is a UI-local addressing key with no backend meaning; SKU is the
// key every backend mutation must carry.
type CartItem struct {
	VariantID int64           `json:"variantId"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
	Flavor    string          `json:"flavor,omitempty"`
	Size      string          `json:"size,omitempty"`
}

// LineTotal returns price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is a disposable projection of the backend-held cart. It is only ever
// replaced wholesale from a full backend read, never patched.
type Cart struct {
	Items []CartItem `json:"items"`

	skus map[int64]string
}

// NewCart builds a projection from a full list of items and indexes the
// variantID -> SKU mapping.
func NewCart(items []CartItem) Cart {
	if items == nil {
		items = []CartItem{}
	}
	c := Cart{Items: items}
	c.reindex()
	return c
}

// EmptyCart returns a projection with no items.
func EmptyCart() Cart {
	return NewCart(nil)
}

func (c *Cart) reindex() {
	c.skus = make(map[int64]string, len(c.Items))
	for _, item := range c.Items {
		c.skus[item.VariantID] = item.SKU
	}
}

// SKUFor resolves a UI variant ID to the backend SKU.
func (c *Cart) SKUFor(variantID int64) (string, bool) {
	// Projections decoded from a session store arrive without the index.
	if c.skus == nil {
		c.reindex()
	}
	sku, ok := c.skus[variantID]
	return sku, ok
}

// ItemCount returns the sum of all line quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Total returns the sum of price times quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartSummary is the cart view model returned to clients.
type CartSummary struct {
	Items     []CartItem      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
}

// Summary builds the client view of the projection.
func (c *Cart) Summary() CartSummary {
	items := c.Items
	if items == nil {
		items = []CartItem{}
	}
	return CartSummary{
		Items:     items,
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
}
