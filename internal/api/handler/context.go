package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storelinker/marketplace/internal/api/middleware"
	"github.com/storelinker/marketplace/internal/core/domain"
)

// currentIdentity returns the caller set by the Auth middleware. A route
// wired without Auth yields ErrMissingToken.
func currentIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrMissingToken
	}
	return id, nil
}

// bindAndValidate decodes the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

type messageResponse struct {
	Message string `json:"message"`
}
