package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wanderlust/hotel-api/internal/api/handler"
	"github.com/wanderlust/hotel-api/internal/api/metrics"
	"github.com/wanderlust/hotel-api/internal/core/domain"
)

const basicChallenge = `Basic realm="Secure Area"`

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Msg    string `json:"msg"`
	Reason string `json:"reason,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"msg": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var failure domain.AuthFailure
	if errors.As(err, &failure) {
		if failure.BasicScheme() {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, basicChallenge)
		}
		return http.StatusUnauthorized, errorResponse{Msg: failure.PublicMessage()}
	}

	var denied *domain.AuthorizationError
	if errors.As(err, &denied) {
		metrics.AuthzDenialsTotal.WithLabelValues(string(denied.Reason)).Inc()
		return http.StatusForbidden, errorResponse{Msg: denied.PublicMessage(), Reason: string(denied.Reason)}
	}

	var invalid *handler.ValidationError
	if errors.As(err, &invalid) {
		return http.StatusUnprocessableEntity, errorResponse{Msg: invalid.Error()}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Msg: fmt.Sprintf("%v", he.Message)}
	}

	// Storage failures are checked first: a wrapped cause must never leak
	// out as a 4xx.
	if errors.Is(err, domain.ErrStorageUnavailable) {
		return internalError(err, log, c)
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrHotelNotFound),
		errors.Is(err, domain.ErrMessageNotFound),
		errors.Is(err, domain.ErrFavouriteNotFound),
		errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound, errorResponse{Msg: rootMessage(err)}
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrFavouriteExists):
		return http.StatusConflict, errorResponse{Msg: rootMessage(err)}
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEmptyUpload),
		errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, errorResponse{Msg: err.Error()}
	case errors.Is(err, domain.ErrDisallowedContentType),
		errors.Is(err, domain.ErrOversize),
		errors.Is(err, domain.ErrVerificationFailed):
		return http.StatusUnprocessableEntity, errorResponse{Msg: rootMessage(err)}
	}

	return internalError(err, log, c)
}

// rootMessage returns the text of the domain sentinel err wraps, dropping
// any operation prefix added on the way up.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrUserNotFound, domain.ErrHotelNotFound, domain.ErrMessageNotFound,
		domain.ErrFavouriteNotFound, domain.ErrAssetNotFound, domain.ErrUserExists,
		domain.ErrFavouriteExists, domain.ErrDisallowedContentType, domain.ErrOversize,
		domain.ErrVerificationFailed,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func internalError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Msg: "internal server error"}
}
