package nav

import (
	"github.com/dukerupert/gymsup/internal/domain"
)

// Action names a client navigation request.
type Action string

const (
	ActionHome          Action = "home"
	ActionProduct       Action = "product"
	ActionCategory      Action = "category"
	ActionBrand         Action = "brand"
	ActionCheckout      Action = "checkout"
	ActionAccount       Action = "account"
	ActionOrderHistory  Action = "order-history"
	ActionViewSite      Action = "view-site"
	ActionReturnToPanel Action = "return-to-panel"
)

// Request carries the parameters of an Action.
type Request struct {
	ProductID int64  `json:"productId,omitempty"`
	Category  string `json:"category,omitempty"`
	Brand     string `json:"brand,omitempty"`
}

// Apply performs action on s for user.
func Apply(s State, action Action, req Request, user *domain.User) (State, Outcome, error) {
	const op = "nav.apply"

	switch action {
	case ActionHome:
		return GoHome(s), OK, nil
	case ActionProduct:
		if req.ProductID <= 0 {
			return s, OK, domain.Invalid(op, "productId is required")
		}
		return SelectProduct(s, req.ProductID), OK, nil
	case ActionCategory:
		if req.Category == "" {
			return s, OK, domain.Invalid(op, "category is required")
		}
		return SelectCategory(s, req.Category), OK, nil
	case ActionBrand:
		if req.Brand == "" {
			return s, OK, domain.Invalid(op, "brand is required")
		}
		return SelectBrand(s, req.Brand), OK, nil
	case ActionCheckout:
		next, outcome := Open(s, PageCheckout, user)
		return next, outcome, nil
	case ActionAccount:
		next, outcome := Open(s, PageAccount, user)
		return next, outcome, nil
	case ActionOrderHistory:
		next, outcome := Open(s, PageOrderHistory, user)
		return next, outcome, nil
	case ActionViewSite, ActionReturnToPanel:
		if !user.IsAdmin() {
			return s, OK, domain.Forbidden(op, "admin only")
		}
		if action == ActionViewSite {
			return ViewSite(s), OK, nil
		}
		return ReturnToPanel(s), OK, nil
	default:
		return s, OK, domain.Errorf(domain.ENOTFOUND, op, "unknown navigation action: %s", action)
	}
}
