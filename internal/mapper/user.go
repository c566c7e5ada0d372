package mapper

import (
	"strings"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/domain"
)

// MapUser builds the session user from a backend profile. Any role other
// than ADMIN is treated as USER.
func MapUser(in backend.UserResponse) *domain.User {
	name := strings.TrimSpace(in.FirstName + " " + in.LastName)
	if name == "" {
		name = strings.TrimSpace(in.FullName)
	}
	if name == "" {
		name = in.Email
	}

	role := domain.RoleUser
	if strings.EqualFold(in.Role, string(domain.RoleAdmin)) {
		role = domain.RoleAdmin
	}

	return &domain.User{
		ID:    in.UserID,
		Name:  name,
		Email: in.Email,
		Phone: in.Phone,
		Role:  role,
	}
}

// SplitFullName splits "Nguyễn Văn An" into a family part ("Nguyễn Văn")
// and a given name ("An"). The backend stores first and last names
// separately; Vietnamese names put the given name last.
func SplitFullName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}
