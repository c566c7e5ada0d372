package backend

import (
	"context"
	"net/http"
	"net/url"
)

// GetCart fetches the full server-held cart.
func (c *Client) GetCart(ctx context.Context, token string) (*CartResponse, error) {
	var out CartResponse
	if err := c.do(ctx, "backend.cart.get", http.MethodGet, "/cart", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToCart adds quantity units of the variant identified by sku.
func (c *Client) AddToCart(ctx context.Context, token, sku string, quantity int) error {
	req := CartMutationRequest{VariantID: sku, Quantity: quantity}
	return c.do(ctx, "backend.cart.add", http.MethodPost, "/cart/add", token, req, nil)
}

// UpdateCartItem sets the quantity of the line identified by sku.
func (c *Client) UpdateCartItem(ctx context.Context, token, sku string, quantity int) error {
	req := CartMutationRequest{VariantID: sku, Quantity: quantity}
	return c.do(ctx, "backend.cart.update", http.MethodPut, "/cart/update", token, req, nil)
}

// RemoveCartItem deletes the line identified by sku.
func (c *Client) RemoveCartItem(ctx context.Context, token, sku string) error {
	return c.do(ctx, "backend.cart.remove", http.MethodDelete, "/cart/remove/"+url.PathEscape(sku), token, nil, nil)
}

// ClearCart empties the cart. Not every backend version exposes this endpoint.
func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, "backend.cart.clear", http.MethodDelete, "/cart/clear", token, nil, nil)
}
