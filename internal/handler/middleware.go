package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"provideo-rentals/internal/service"
)

// CustomerSession resolves the authEmail cookie into the session email. The
// cookie itself is the whole session; there is no server-side session store.
func CustomerSession(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}
			email, err := authService.ParseSession(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}
			c.Set(sessionEmailKey, email)
			return next(c)
		}
	}
}

// AdminAuth guards the admin surface with a bearer token.
func AdminAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			if err := authService.ParseAdmin(token); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin token")
			}
			return next(c)
		}
	}
}
