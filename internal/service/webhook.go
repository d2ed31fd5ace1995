package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"

	"provideo-rentals/internal/client"
	"provideo-rentals/internal/model"
	"provideo-rentals/internal/repository"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

type WebhookService interface {
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error
}

type webhookServiceImpl struct {
	verifier         client.WebhookVerifier
	orderService     OrderService
	webhookEventRepo repository.WebhookEventRepository
}

func NewWebhookService(
	verifier client.WebhookVerifier,
	orderService OrderService,
	webhookEventRepo repository.WebhookEventRepository,
) WebhookService {
	return &webhookServiceImpl{
		verifier:         verifier,
		orderService:     orderService,
		webhookEventRepo: webhookEventRepo,
	}
}

// HandleWebhook verifies and reconciles one provider event. Stripe retries
// delivery until it sees a 2xx, so everything past signature verification
// must be idempotent: the processed-event table skips exact replays and the
// unique session index stops a duplicated event from creating a second order.
func (s *webhookServiceImpl) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.verifier.ConstructEvent(payload, sigHeader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	processed, err := s.webhookEventRepo.Exists(event.ID)
	if err != nil {
		return fmt.Errorf("check processed events: %w", err)
	}
	if processed {
		return nil
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("decode checkout session: %w", err)
		}
		if err := s.reconcileCompletedSession(ctx, &sess); err != nil {
			return err
		}
	default:
		// Unknown event types are acknowledged so Stripe stops retrying.
	}

	if err := s.webhookEventRepo.MarkProcessed(event.ID, string(event.Type)); err != nil {
		return fmt.Errorf("mark event processed: %w", err)
	}
	return nil
}

// reconcileCompletedSession turns a completed checkout session into the
// durable order record. Cart and order id come from session metadata; the
// customer's identity comes from Stripe's own record of the session, never
// from anything the client submitted.
func (s *webhookServiceImpl) reconcileCompletedSession(ctx context.Context, sess *stripe.CheckoutSession) error {
	var items []model.LineItem
	if raw := sess.Metadata[metaItems]; raw != "" {
		parsed, err := model.UnmarshalItems(raw)
		if err != nil {
			return fmt.Errorf("parse items metadata: %w", err)
		}
		items = parsed
	}

	var details model.EventDetails
	if raw := sess.Metadata[metaEventDetails]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &details); err != nil {
			return fmt.Errorf("parse event details metadata: %w", err)
		}
	}
	if raw := sess.Metadata[metaFullTotal]; raw != "" {
		if full, err := strconv.ParseFloat(raw, 64); err == nil {
			details.FullTotal = full
		}
	}

	if cd := sess.CustomerDetails; cd != nil {
		if cd.Name != "" {
			details.ContactName = cd.Name
		}
		if cd.Email != "" {
			details.ContactEmail = cd.Email
		}
		if cd.Phone != "" {
			details.ContactPhone = cd.Phone
		}
		if addr := formatAddress(cd.Address); addr != "" {
			details.BillingAddress = addr
		}
	}

	total, _ := decimal.NewFromInt(sess.AmountTotal).
		Div(decimal.NewFromInt(100)).
		Float64()

	pay := PaymentState{
		Status:    model.StatusDepositPaid,
		SessionID: sess.ID,
	}
	if sess.PaymentIntent != nil {
		pay.PaymentIntentID = sess.PaymentIntent.ID
	}

	order, err := s.orderService.CreateFromPayment(ctx, OrderSnapshot{
		OrderID:      sess.Metadata[metaOrderID],
		Items:        items,
		EventDetails: details,
		Total:        total,
	}, pay)
	if err != nil {
		return fmt.Errorf("create order from session %s: %w", sess.ID, err)
	}

	// Email failures must not fail the webhook response or Stripe will
	// retry delivery indefinitely.
	if err := s.orderService.Notify(order); err != nil {
		log.Printf("order %s notifications failed: %v", order.ID, err)
	}
	return nil
}

func formatAddress(addr *stripe.Address) string {
	if addr == nil {
		return ""
	}
	parts := make([]string, 0, 6)
	for _, p := range []string{addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
