package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"provideo-rentals/internal/service"
)

// httpError maps service sentinels onto HTTP responses. Store and provider
// failures stay generic toward the client; the wrapped detail goes to the
// server log via echo's error handler.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrNoOrders):
		return echo.NewHTTPError(http.StatusNotFound, "no orders found")
	case errors.Is(err, service.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, "items must be a non-empty array")
	case errors.Is(err, service.ErrNotTrashed):
		return echo.NewHTTPError(http.StatusBadRequest, "order must be trashed before deletion")
	case errors.Is(err, service.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, service.ErrBadCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrInvalidSignature):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid signature")
	case errors.Is(err, service.ErrStoreUnreachable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "store unreachable")
	default:
		return err
	}
}

func validationError(details map[string]string) error {
	return echo.NewHTTPError(http.StatusBadRequest, map[string]interface{}{
		"error":   "validation failed",
		"details": details,
	})
}
