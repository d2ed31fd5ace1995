package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"provideo-rentals/internal/dto"
	"provideo-rentals/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create is the direct booking path: the order is written without a payment
// step, status "pending". A failed notification email is reported as a
// warning on an otherwise successful response.
func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationError(details)
	}

	resp, err := h.orderService.CreateDirect(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// Confirmation resolves the order created by the payment webhook for the
// post-checkout redirect page.
func (h *OrderHandler) Confirmation(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session_id")
	}

	order, err := h.orderService.GetBySessionID(ctx, sessionID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

// MyOrders lists the orders whose contact email matches the session cookie.
func (h *OrderHandler) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()

	email, ok := c.Get(sessionEmailKey).(string)
	if !ok || email == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}

	orders, err := h.orderService.ListByEmail(ctx, email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orderService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orderService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Trash(c echo.Context) error {
	if err := h.orderService.Trash(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "trashed"})
}

func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.orderService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
