package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/wanderlust/hotel-api/internal/core/domain"
)

// PrincipalKey is the echo context key holding the authenticated
// domain.Principal for the current request.
const PrincipalKey = "principal"

// PrincipalFrom returns the principal set by BasicAuth or TokenAuth.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	return p, ok
}
