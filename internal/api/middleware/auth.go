package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/hotel-api/internal/api/metrics"
	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

const (
	schemeBasic = "basic"
	schemeToken = "token"

	// maxTokenBody bounds how much of a JSON body is buffered to find the token.
	maxTokenBody = 1 << 20
)

// BasicAuth verifies the Authorization header on every request and stores
// the resulting principal on the context.
func BasicAuth(auth ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			p, err := auth.Authenticate(c.Request().Context(), header)
			observe(schemeBasic, err)
			if err != nil {
				return err
			}
			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}

// TokenAuth resolves the session token carried in the JSON body field
// "token" or the "token" query parameter. The body is restored so handlers
// can bind it again.
func TokenAuth(auth ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := tokenFromRequest(c)
			if err != nil {
				return err
			}
			p, err := auth.Authenticate(c.Request().Context(), token)
			observe(schemeToken, err)
			if err != nil {
				return err
			}
			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) (string, error) {
	req := c.Request()
	if req.Body != nil && req.Body != http.NoBody &&
		strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		raw, err := io.ReadAll(io.LimitReader(req.Body, maxTokenBody+1))
		if err != nil {
			return "", echo.NewHTTPError(http.StatusBadRequest, "unable to read request body")
		}
		if len(raw) > maxTokenBody {
			return "", echo.ErrStatusRequestEntityTooLarge
		}
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(raw))

		var body struct {
			Token string `json:"token"`
		}
		if len(raw) > 0 && json.Unmarshal(raw, &body) == nil && body.Token != "" {
			return body.Token, nil
		}
	}
	return c.QueryParam("token"), nil
}

func observe(scheme string, err error) {
	result := "ok"
	if err != nil {
		var failure domain.AuthFailure
		if errors.As(err, &failure) {
			result = string(failure)
		} else {
			result = "error"
		}
	}
	metrics.AuthAttemptsTotal.WithLabelValues(scheme, result).Inc()
}
