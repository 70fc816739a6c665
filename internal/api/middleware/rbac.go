package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storelinker/marketplace/internal/core/domain"
)

// RBAC admits only callers whose role is in allowedRoles. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrMissingToken
			}
			if _, ok := allowed[id.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// VendorOnly is RBAC restricted to vendor accounts.
func VendorOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleVendor)
}
