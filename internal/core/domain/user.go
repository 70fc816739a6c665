package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("authentication token required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access denied: vendor account required")
	ErrValidation         = errors.New("validation failed")
)

// User models a registered account. Users are immutable after registration.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"userType"`
	StoreName    string    `json:"storeName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsVendor reports whether the user owns a store.
func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// ValidRole reports whether role is one of the supported account types.
func ValidRole(role string) bool {
	return role == RoleVendor || role == RoleCustomer
}

// DefaultStoreName is the store name given to vendors that register without one.
func DefaultStoreName(name string) string {
	return name + "'s Store"
}

// Identity is the caller decoded from a verified bearer token.
type Identity struct {
	ID    string
	Email string
	Role  string
}

// IsVendor reports whether the caller may mutate catalog resources.
func (i Identity) IsVendor() bool {
	return i.Role == RoleVendor
}

// Invalid wraps ErrValidation with a caller-facing reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
