package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"provideo-rentals/internal/service"
)

type WebhookHandler struct {
	webhookService service.WebhookService
}

func NewWebhookHandler(webhookService service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// HandlePayment receives Stripe's signed event POST. An invalid signature is
// definitively rejected with a 4xx; a processing failure returns 5xx so
// Stripe retries; anything durably processed returns 200.
func (h *WebhookHandler) HandlePayment(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	sig := c.Request().Header.Get("Stripe-Signature")
	if err := h.webhookService.HandleWebhook(ctx, body, sig); err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid signature")
		}
		log.Printf("webhook processing failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "webhook processing failed")
	}

	return c.NoContent(http.StatusOK)
}
