package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/hotel-api/internal/api/metrics"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// MemberLogin exchanges verified Basic credentials for a session token.
//
// @Summary      Member login
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  loginResponse
// @Failure      401  {object}  msgResponse
// @Router       /api/v1/member/auth [get]
func (h *AuthHandler) MemberLogin(c echo.Context) error {
	return h.login(c, false)
}

// AgencyLogin is MemberLogin restricted to agency accounts.
//
// @Summary      Agency login
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  loginResponse
// @Failure      401  {object}  msgResponse
// @Failure      403  {object}  msgResponse
// @Router       /api/v1/agency/auth [get]
func (h *AuthHandler) AgencyLogin(c echo.Context) error {
	return h.login(c, true)
}

func (h *AuthHandler) login(c echo.Context, agencyOnly bool) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if agencyOnly {
		if err := h.authService.VerifyAgency(p); err != nil {
			return err
		}
	}

	token, err := h.authService.IssueToken(c.Request().Context(), p)
	if err != nil {
		return err
	}
	metrics.TokensIssuedTotal.Inc()

	return c.JSON(http.StatusOK, loginResponse{Token: token, Username: p.Identity, Role: p.Role})
}
