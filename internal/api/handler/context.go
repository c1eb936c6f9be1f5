package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/hotel-api/internal/api/middleware"
	"github.com/wanderlust/hotel-api/internal/core/domain"
)

// principal returns the caller stored by the auth middleware. A route wired
// without one is a programming error, reported as 401 rather than a panic.
func principal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.Identity == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}

// bindAndValidate binds the request into dst and runs the registered validator.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(dst)
}
