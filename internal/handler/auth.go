package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"provideo-rentals/internal/dto"
	"provideo-rentals/internal/service"
)

const (
	sessionCookieName = "authEmail"
	sessionEmailKey   = "session_email"
)

type AuthHandler struct {
	authService service.AuthService
	baseURL     string
	secureHint  bool
}

func NewAuthHandler(authService service.AuthService, baseURL string, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, baseURL: baseURL, secureHint: secure}
}

// Login emails a magic link. An email with no orders behind it is a 404, not
// a silently created dangling customer.
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationError(details)
	}

	if err := h.authService.RequestLogin(ctx, req.Email); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "magic link sent"})
}

// Verify consumes the magic-link token, sets the long-lived session cookie
// and redirects to the customer's orders page.
func (h *AuthHandler) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	token := c.QueryParam("token")
	email := c.QueryParam("email")
	if token == "" || email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token and email are required")
	}

	session, err := h.authService.Verify(ctx, email, token)
	if err != nil {
		return httpError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    session,
		Path:     "/",
		Expires:  time.Now().Add(28 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   h.secureHint,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, h.baseURL+"/my-orders")
}

func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req dto.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationError(details)
	}

	token, err := h.authService.AdminLogin(req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.AdminLoginResponse{Token: token})
}
