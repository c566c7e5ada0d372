package mapper

import (
	"strings"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/domain"
)

// MapOrders maps a list, preserving backend order.
func MapOrders(in []backend.OrderResponse) []domain.Order {
	out := make([]domain.Order, 0, len(in))
	for _, o := range in {
		out = append(out, MapOrder(o))
	}
	return out
}

// MapOrder normalizes one backend order. Unknown statuses collapse to
// Pending; the backend string is kept in RawStatus.
func MapOrder(in backend.OrderResponse) domain.Order {
	status := domain.ParseOrderStatus(in.Status)

	payment := domain.PaymentStatusUnpaid
	if in.PaymentStatus == "PAID" {
		payment = domain.PaymentStatusPaid
	}

	o := domain.Order{
		ID:                 string(in.OrderID),
		Status:             status,
		StatusLabel:        status.Label(),
		RawStatus:          in.Status,
		Total:              in.TotalAmount,
		Items:              make([]domain.CartItem, 0, len(in.OrderDetails)),
		PaymentStatus:      payment,
		PaymentStatusLabel: payment.Label(),
		PaymentMethod:      strings.ToLower(in.PaymentMethod),
		Customer: domain.Customer{
			Name:    in.FullName,
			Email:   in.Email,
			Phone:   in.Phone,
			Address: in.Address,
		},
	}

	if t, ok := parseTimestamp(in.CreatedAt); ok {
		o.CreatedAt = t
		o.DateLabel = DateLabel(t)
	}

	for _, d := range in.OrderDetails {
		o.Items = append(o.Items, mapOrderLine(d))
	}
	return o
}

func mapOrderLine(d backend.OrderDetailResponse) domain.CartItem {
	name := d.ProductName
	if d.VariantName != "" {
		name = d.ProductName + " - " + d.VariantName
	}

	flavor, size := ParseVariantName(firstString(d.VariantName, d.ProductName))

	sku := d.SKU
	if sku == "" {
		sku = domain.NoSKU
	}

	return domain.CartItem{
		VariantID: d.VariantID,
		SKU:       sku,
		Name:      name,
		Price:     d.PriceAtPurchase,
		Quantity:  d.Quantity,
		Image:     PlaceholderImage(d.VariantID),
		Flavor:    flavor,
		Size:      size,
	}
}
