package backend

import (
	"context"
	"net/http"
	"net/url"
)

// ListAllOrders fetches every order. Requires an admin token.
func (c *Client) ListAllOrders(ctx context.Context, token string) ([]OrderResponse, error) {
	var out []OrderResponse
	if err := c.do(ctx, "backend.orders.list_all", http.MethodGet, "/orders", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMyOrders fetches the orders of the token's user.
func (c *Client) ListMyOrders(ctx context.Context, token string) ([]OrderResponse, error) {
	var out []OrderResponse
	if err := c.do(ctx, "backend.orders.list_mine", http.MethodGet, "/orders/my-orders", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder places an order from the user's backend cart.
func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*OrderResponse, error) {
	var out OrderResponse
	if err := c.do(ctx, "backend.orders.create", http.MethodPost, "/orders", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus sets an order's status. status is the backend enum.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status string) error {
	path := "/orders/admin/" + url.PathEscape(orderID) + "/status"
	return c.do(ctx, "backend.orders.update_status", http.MethodPut, path, token, OrderStatusRequest{Status: status}, nil)
}

// CancelOrder cancels one of the user's orders.
func (c *Client) CancelOrder(ctx context.Context, token, orderID string) error {
	path := "/orders/" + url.PathEscape(orderID) + "/cancel"
	return c.do(ctx, "backend.orders.cancel", http.MethodPut, path, token, nil, nil)
}
