package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListProducts fetches the full catalog. Products are decoded one at a time
// and any that cannot be decoded are skipped, so one malformed entry never
// empties the catalog.
func (c *Client) ListProducts(ctx context.Context) ([]ProductResponse, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, "backend.products.list", http.MethodGet, "/products", "", nil, &raw); err != nil {
		return nil, err
	}

	out := make([]ProductResponse, 0, len(raw))
	for i, item := range raw {
		var p ProductResponse
		if err := json.Unmarshal(item, &p); err != nil {
			c.logger.WarnContext(ctx, "skipping undecodable product", "index", i, "error", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// CreateProduct creates a product. Requires an admin token.
func (c *Client) CreateProduct(ctx context.Context, token string, req ProductRequest) error {
	return c.do(ctx, "backend.products.create", http.MethodPost, "/products", token, req, nil)
}

// UpdateProduct replaces a product. Requires an admin token.
func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, req ProductRequest) error {
	return c.do(ctx, "backend.products.update", http.MethodPut, fmt.Sprintf("/products/%d", id), token, req, nil)
}

// DeleteProduct removes a product. Requires an admin token.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "backend.products.delete", http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil, nil)
}

// SubmitReview posts a review for a product.
func (c *Client) SubmitReview(ctx context.Context, token string, productID int64, req ReviewRequest) error {
	return c.do(ctx, "backend.reviews.create", http.MethodPost, fmt.Sprintf("/products/%d/reviews", productID), token, req, nil)
}
