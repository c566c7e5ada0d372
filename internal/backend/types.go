package backend

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The backend reads money as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// =============================================================================
// RESPONSE DTOs
// =============================================================================
//
// Backend responses have drifted across versions, so several DTOs accept
// alternative field names for the same value. Choosing between them is the
// mapper's job; these types only capture what arrived.

// FlexibleID decodes an identifier sent either as a JSON number or a string.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexibleID(n.String())
	return nil
}

// Int64 returns the numeric form of the ID, or 0 when it is not numeric.
func (id FlexibleID) Int64() int64 {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FlexibleNumber decodes a number sent either as a JSON number or a numeric
// string. Anything else, null included, decodes as absent rather than failing
// the enclosing document.
type FlexibleNumber struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexibleNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = FlexibleNumber{}
		return nil
	}
	*n = FlexibleNumber{Value: f, Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n FlexibleNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.Value, 'f', -1, 64), nil
}

// Int returns the value rounded to the nearest integer.
func (n FlexibleNumber) Int() int {
	return int(math.Round(n.Value))
}

// NamedRef is a nested category or brand reference.
type NamedRef struct {
	CategoryID int64  `json:"categoryId"`
	BrandID    int64  `json:"brandId"`
	Name       string `json:"name"`
}

// ProductResponse is a product as returned by GET /products.
type ProductResponse struct {
	ProductID   FlexibleID `json:"productId"`
	ID          FlexibleID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`

	CategoryName string    `json:"categoryName"`
	Category     *NamedRef `json:"category"`
	BrandName    string    `json:"brandName"`
	Brand        *NamedRef `json:"brand"`

	Variants []VariantResponse `json:"variants"`

	Gallery   []string `json:"gallery"`
	Thumbnail string   `json:"thumbnail"`
	ImageURLs []string `json:"imageUrls"`
	Images    []string `json:"images"`
	ImageURL  string   `json:"imageUrl"`
	Image     string   `json:"image"`

	Reviews    []ReviewResponse `json:"reviews"`
	Comments   []ReviewResponse `json:"comments"`
	ReviewList []ReviewResponse `json:"reviewList"`

	AverageRating FlexibleNumber `json:"averageRating"`
	TotalReviews  FlexibleNumber `json:"totalReviews"`
}

// VariantResponse is one product variant.
type VariantResponse struct {
	VariantID     int64            `json:"variantId"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Price         decimal.Decimal  `json:"price"`
	SalePrice     *decimal.Decimal `json:"salePrice"`
	OldPrice      *decimal.Decimal `json:"oldPrice"`
	StockQuantity int              `json:"stockQuantity"`
	ImageURL      string           `json:"imageUrl"`
}

// ReviewResponse is a review under any of its backend spellings.
type ReviewResponse struct {
	ReviewID FlexibleID `json:"reviewId"`
	ID       FlexibleID `json:"id"`

	Author   string `json:"author"`
	UserName string `json:"userName"`
	FullName string `json:"fullName"`

	Rating FlexibleNumber `json:"rating"`
	Stars  FlexibleNumber `json:"stars"`

	Comment string `json:"comment"`
	Content string `json:"content"`

	CreatedAt json.RawMessage `json:"createdAt"`
	Date      json.RawMessage `json:"date"`
}

// OrderResponse is an order as returned by the order endpoints.
type OrderResponse struct {
	OrderID       FlexibleID            `json:"orderId"`
	CreatedAt     json.RawMessage       `json:"createdAt"`
	Status        string                `json:"status"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	OrderDetails  []OrderDetailResponse `json:"orderDetails"`
	FullName      string                `json:"shippingFullName"`
	Phone         string                `json:"shippingPhone"`
	Email         string                `json:"email"`
	Address       string                `json:"shippingAddress"`
	PaymentStatus string                `json:"paymentStatus"`
	PaymentMethod string                `json:"paymentMethod"`
}

// OrderDetailResponse is one order line.
type OrderDetailResponse struct {
	VariantID       int64           `json:"variantId"`
	ProductName     string          `json:"productName"`
	VariantName     string          `json:"variantName"`
	SKU             string          `json:"sku"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
	Quantity        int             `json:"quantity"`
}

// CartResponse is the body of GET /cart.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
}

// CartItemResponse is one cart line.
type CartItemResponse struct {
	VariantID   int64           `json:"variantId"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	ProductName string          `json:"productName"`
	VariantName string          `json:"variantName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image"`
	ImageURL    string          `json:"imageUrl"`
}

// UserResponse is a user profile.
type UserResponse struct {
	UserID    int64  `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// AuthResponse is returned by login and registration. Older backends return
// the profile fields flat next to the token, newer ones nest them in user.
type AuthResponse struct {
	Token       string        `json:"token"`
	AccessToken string        `json:"accessToken"`
	User        *UserResponse `json:"user"`
	UserResponse
}

// BearerToken returns whichever token field was set.
func (a *AuthResponse) BearerToken() string {
	if a.Token != "" {
		return a.Token
	}
	return a.AccessToken
}

// Profile returns the nested user when present, else the flat fields.
func (a *AuthResponse) Profile() UserResponse {
	if a.User != nil {
		return *a.User
	}
	return a.UserResponse
}

// =============================================================================
// REQUEST DTOs
// =============================================================================

// CartMutationRequest adds or updates a cart line. The backend names the SKU
// field variantID.
type CartMutationRequest struct {
	VariantID string `json:"variantID"`
	Quantity  int    `json:"quantity"`
}

// ProductRequest creates or updates a product.
type ProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CategoryID  int64            `json:"categoryId"`
	BrandID     int64            `json:"brandId"`
	Variants    []VariantRequest `json:"variants"`
}

// VariantRequest is one variant of a ProductRequest.
type VariantRequest struct {
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Price         decimal.Decimal  `json:"price"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	StockQuantity int              `json:"stockQuantity"`
}

// ReviewRequest submits a product review.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// OrderStatusRequest updates an order's status.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrderRequest places an order from the current cart.
type CreateOrderRequest struct {
	FullName        string `json:"shippingFullName"`
	Phone           string `json:"shippingPhone"`
	Address         string `json:"shippingAddress"`
	Email           string `json:"email"`
	PaymentMethod   string `json:"paymentMethod"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a user account.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
}

// UpdateProfileRequest changes profile fields.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// ChangePasswordRequest changes the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
