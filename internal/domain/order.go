package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ORDER DOMAIN TYPES
// =============================================================================

// OrderStatus is the normalized order status used by the storefront.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Backend order status values.
const (
	BackendStatusPendingConfirmation = "PENDING_CONFIRMATION"
	BackendStatusDelivered           = "DELIVERED"
	BackendStatusCancelled           = "CANCELLED"
)

// Label returns the Vietnamese display label for the status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusDelivered:
		return "Đã giao hàng"
	case OrderStatusCancelled:
		return "Đã hủy"
	default:
		return "Đang xử lý"
	}
}

// BackendValue returns the backend enum for a normalized status.
func (s OrderStatus) BackendValue() string {
	switch s {
	case OrderStatusDelivered:
		return BackendStatusDelivered
	case OrderStatusCancelled:
		return BackendStatusCancelled
	default:
		return BackendStatusPendingConfirmation
	}
}

// ParseOrderStatus normalizes a backend status string. Unknown values
// collapse to Pending.
func ParseOrderStatus(raw string) OrderStatus {
	switch raw {
	case BackendStatusDelivered:
		return OrderStatusDelivered
	case BackendStatusCancelled:
		return OrderStatusCancelled
	default:
		return OrderStatusPending
	}
}

// ValidOrderStatus reports whether s is one of the normalized statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the normalized payment status of an order.
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "Paid"
	PaymentStatusUnpaid PaymentStatus = "Unpaid"
)

// Label returns the Vietnamese display label for the payment status.
func (s PaymentStatus) Label() string {
	if s == PaymentStatusPaid {
		return "Đã thanh toán"
	}
	return "Chưa thanh toán"
}

// Payment methods accepted at checkout.
const (
	PaymentMethodCOD  = "cod"
	PaymentMethodCard = "card"
)

// Customer is the buyer snapshot attached to an order.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is a normalized order as shown in order history and the admin panel.
type Order struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	DateLabel string    `json:"date"`

	Status      OrderStatus `json:"status"`
	StatusLabel string      `json:"statusLabel"`
	// RawStatus is the backend status string exactly as received.
	RawStatus string `json:"rawStatus"`

	Total    decimal.Decimal `json:"total"`
	Items    []CartItem      `json:"items"`
	Customer Customer        `json:"customer"`

	PaymentStatus      PaymentStatus `json:"paymentStatus"`
	PaymentStatusLabel string        `json:"paymentStatusLabel"`
	PaymentMethod      string        `json:"paymentMethod"`
}

// CanCancel reports whether the customer may still cancel the order.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending
}
