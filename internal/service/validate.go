package service

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dukerupert/gymsup/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON field names so the client can attach messages to inputs.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// validateStruct runs struct tag validation and converts failures into a
// domain.ValidationError keyed by JSON field name.
func validateStruct(op string, v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Internal(err, op, "validation failed")
	}

	var out error = &domain.ValidationError{Op: op, Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out = domain.AddFieldError(out, fieldPath(fe), fieldMessage(fe))
	}
	return out
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Vui lòng nhập thông tin này"
	case "email":
		return "Email không hợp lệ"
	case "min":
		if fe.Kind() == reflect.String {
			return "Phải có ít nhất " + fe.Param() + " ký tự"
		}
		return "Giá trị tối thiểu là " + fe.Param()
	case "max":
		return "Giá trị tối đa là " + fe.Param()
	case "gt":
		return "Phải lớn hơn " + fe.Param()
	case "gte":
		return "Không được nhỏ hơn " + fe.Param()
	case "eqfield":
		return "Mật khẩu xác nhận không khớp"
	case "oneof":
		return "Phải là một trong: " + fe.Param()
	default:
		return "Giá trị không hợp lệ"
	}
}
