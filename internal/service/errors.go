package service

import (
	"github.com/dukerupert/gymsup/internal/domain"
)

// Auth errors
var (
	ErrNotLoggedIn  = domain.Unauthorized("", "Vui lòng đăng nhập để tiếp tục")
	ErrAdminOnly    = domain.Forbidden("", "Chỉ quản trị viên mới có quyền thực hiện thao tác này")
	ErrLoginFailed  = domain.Unauthorized("", "Email hoặc mật khẩu không đúng")
	ErrMissingToken = domain.Errorf(domain.EUNAVAILABLE, "", "Máy chủ không trả về phiên đăng nhập")
)

// Catalog errors
var (
	ErrProductNotFound   = domain.Errorf(domain.ENOTFOUND, "", "Không tìm thấy sản phẩm")
	ErrVariantNotFound   = domain.Invalid("", "Biến thể sản phẩm này không tồn tại hoặc đã hết hàng. Vui lòng chọn lại.")
	ErrOutOfStock        = domain.Conflict("", "Sản phẩm đã hết hàng")
	ErrInsufficientStock = domain.Conflict("", "Số lượng tồn kho không đủ.")
	ErrNegativePrice     = domain.Invalid("", "Giá không được âm")
)

// Cart and checkout errors
var (
	ErrInvalidQuantity      = domain.Invalid("", "Số lượng phải lớn hơn 0")
	ErrEmptyCart            = domain.Invalid("", "Giỏ hàng trống")
	ErrPaymentsDisabled     = domain.Errorf(domain.ENOTIMPL, "", "Thanh toán thẻ chưa được hỗ trợ")
	ErrPaymentNotSucceeded  = domain.Errorf(domain.EPAYMENT, "", "Thanh toán chưa hoàn tất")
	ErrPaymentAmountChanged = domain.Conflict("", "Giỏ hàng đã thay đổi, vui lòng thanh toán lại")
	ErrPaymentAlreadyUsed   = domain.Conflict("", "Thanh toán này đã được sử dụng cho một đơn hàng khác")
)

// Order errors
var (
	ErrInvalidOrderStatus = domain.Invalid("", "Trạng thái đơn hàng không hợp lệ")
)

// Chat errors
var (
	ErrEmptyMessage = domain.Invalid("", "Vui lòng nhập tin nhắn")
	ErrChatDisabled = domain.Errorf(domain.EUNAVAILABLE, "", "Trợ lý AI hiện không khả dụng")
)
