// Package nav is the storefront's navigation controller: a single page-state
// machine with no history stack. Transitions are pure functions over State.
package nav

import (
	"github.com/dukerupert/gymsup/internal/domain"
)

// Page identifies the view the client should render.
type Page string

const (
	PageHome         Page = "home"
	PageProduct      Page = "product"
	PageCategory     Page = "category"
	PageCheckout     Page = "checkout"
	PageBrands       Page = "brands"
	PageAccount      Page = "account"
	PageOrderHistory Page = "order-history"
	PageAdmin        Page = "admin"
)

// Filter scopes the category page to a category or a brand.
type Filter struct {
	Kind  domain.FilterKind `json:"kind"`
	Value string            `json:"value"`
}

// State is the navigation state held in a session.
type State struct {
	Page             Page    `json:"page"`
	ProductID        int64   `json:"productId,omitempty"`
	Filter           *Filter `json:"filter,omitempty"`
	AdminViewingSite bool    `json:"adminViewingSite"`
}

// Outcome tells the client what happened besides the state change.
type Outcome string

const (
	// OK means the transition was applied.
	OK Outcome = "ok"

	// AuthRequired means the page needs a logged-in user; the state is
	// unchanged and the client should open the login dialog.
	AuthRequired Outcome = "auth_required"
)

// Initial is the state of a fresh session.
func Initial() State {
	return State{Page: PageHome}
}

// GoHome returns to the home page and clears any selection.
func GoHome(s State) State {
	return State{Page: PageHome, AdminViewingSite: s.AdminViewingSite}
}

// SelectProduct opens a product page.
func SelectProduct(s State, productID int64) State {
	return State{Page: PageProduct, ProductID: productID, AdminViewingSite: s.AdminViewingSite}
}

// SelectCategory opens a category listing. The brands label opens the
// brand directory instead.
func SelectCategory(s State, category string) State {
	if category == domain.BrandsCategory {
		return State{Page: PageBrands, AdminViewingSite: s.AdminViewingSite}
	}
	return State{
		Page:             PageCategory,
		Filter:           &Filter{Kind: domain.FilterCategory, Value: category},
		AdminViewingSite: s.AdminViewingSite,
	}
}

// SelectBrand opens a listing of one brand's products.
func SelectBrand(s State, brand string) State {
	return State{
		Page:             PageCategory,
		Filter:           &Filter{Kind: domain.FilterBrand, Value: brand},
		AdminViewingSite: s.AdminViewingSite,
	}
}

// Open navigates to a page that requires a logged-in user (checkout,
// account, order history). Without a user the state is returned unchanged
// with AuthRequired.
func Open(s State, page Page, user *domain.User) (State, Outcome) {
	if user == nil {
		return s, AuthRequired
	}
	return State{Page: page, AdminViewingSite: s.AdminViewingSite}, OK
}

// RequiresAuth reports whether page is gated behind login.
func RequiresAuth(page Page) bool {
	switch page {
	case PageCheckout, PageAccount, PageOrderHistory:
		return true
	}
	return false
}

// Login applies a successful login. Admins always land back on the panel.
func Login(s State, user *domain.User) State {
	if user.IsAdmin() {
		s.AdminViewingSite = false
	}
	return s
}

// Logout returns to a clean home page.
func Logout(State) State {
	return Initial()
}

// ViewSite lets an admin browse the storefront.
func ViewSite(State) State {
	return State{Page: PageHome, AdminViewingSite: true}
}

// ReturnToPanel takes an admin back to the admin panel.
func ReturnToPanel(s State) State {
	s.AdminViewingSite = false
	return s
}

// Resolve returns the page the client should render for user. An admin who
// is not viewing the site always sees the admin panel.
func Resolve(s State, user *domain.User) Page {
	if user.IsAdmin() && !s.AdminViewingSite {
		return PageAdmin
	}
	if RequiresAuth(s.Page) && user == nil {
		return PageHome
	}
	if s.Page == "" {
		return PageHome
	}
	return s.Page
}
