package domain

// =============================================================================
// USER DOMAIN TYPES
// =============================================================================

// Role is the backend role of an authenticated user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the authenticated user held in a session. It is created on login
// or registration and destroyed on logout.
type User struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the user has the ADMIN role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Credentials is a login submission.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is a sign-up submission.
type Registration struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProfileUpdate changes the account's display details.
type ProfileUpdate struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
}

// PasswordChange is a password change submission.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}
