package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"

	"provideo-rentals/internal/model"
	"provideo-rentals/internal/repository"
)

// fakeVerifier skips signature math and returns a prepared event.
type fakeVerifier struct {
	event stripe.Event
	err   error
}

func (f *fakeVerifier) ConstructEvent(_ []byte, _ string) (stripe.Event, error) {
	if f.err != nil {
		return stripe.Event{}, f.err
	}
	return f.event, nil
}

func completedSessionEvent(t *testing.T, eventID, sessionID string, amountTotal int64, metadata map[string]string) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"id":           sessionID,
		"amount_total": amountTotal,
		"metadata":     metadata,
		"customer_details": map[string]interface{}{
			"name":  "Jordan Blake",
			"email": "jordan@example.com",
			"phone": "+1 555 0100",
		},
		"payment_intent": "pi_test_123",
	})
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	return stripe.Event{
		ID:   eventID,
		Type: stripe.EventTypeCheckoutSessionCompleted,
		Data: &stripe.EventData{Raw: raw},
	}
}

func newWebhookService(t *testing.T, verifier *fakeVerifier) (WebhookService, OrderService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	orderSvc := NewOrderService(db, repository.NewOrderRepository(db), &fakeMailer{})
	return NewWebhookService(verifier, orderSvc, repository.NewWebhookEventRepository(db)), orderSvc, db
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	svc, _, db := newWebhookService(t, &fakeVerifier{err: fmt.Errorf("bad signature")})

	err := svc.HandleWebhook(context.Background(), []byte("{}"), "t=1,v1=bogus")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	var count int64
	db.Model(&model.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("order created from unverified event")
	}
}

// Checkout to webhook, end to end: a 3750 cart produces a 187500-cent deposit
// session, and the completed session becomes a "Deposit Paid" order of
// 1875.00.
func TestCheckoutToWebhookScenario(t *testing.T) {
	fakePay := &fakePaymentClient{sessionID: "cs_test_e2e"}
	checkoutSvc := NewCheckoutService(fakePay, "https://x/success", "https://x/cancel")

	resp, err := checkoutSvc.CreateSession(context.Background(), checkoutRequest([]model.LineItem{
		{Type: "package", ID: "webinar", Name: "Webinar Package", Price: 3000, Quantity: 1},
		{Type: "addon", ID: "stream", Name: "Live Stream", Price: 750, Quantity: 1},
	}))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	var sent int64
	for _, line := range fakePay.lastInput.Lines {
		sent += line.UnitAmount * line.Quantity
	}
	if sent != 187500 {
		t.Fatalf("deposit sent = %d cents, want 187500", sent)
	}

	verifier := &fakeVerifier{event: completedSessionEvent(t, "evt_e2e_1", "cs_test_e2e", sent, fakePay.lastInput.Metadata)}
	webhookSvc, orderSvc, _ := newWebhookService(t, verifier)

	if err := webhookSvc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	order, err := orderSvc.GetBySessionID(context.Background(), "cs_test_e2e")
	if err != nil {
		t.Fatalf("order not created: %v", err)
	}
	if order.ID != resp.OrderID {
		t.Errorf("order id = %q, want the id minted at checkout %q", order.ID, resp.OrderID)
	}
	if order.Status != model.StatusDepositPaid {
		t.Errorf("status = %q, want %q", order.Status, model.StatusDepositPaid)
	}
	if order.Total != 1875.00 {
		t.Errorf("total = %v, want 1875.00", order.Total)
	}
	if len(order.Items) != 2 {
		t.Errorf("items = %d, want 2", len(order.Items))
	}
	if order.EventDetails.ContactEmail != "jordan@example.com" {
		t.Errorf("contact email = %q", order.EventDetails.ContactEmail)
	}
	if order.EventDetails.PaymentIntentID != "pi_test_123" {
		t.Errorf("payment intent = %q", order.EventDetails.PaymentIntentID)
	}
	if order.EventDetails.FullTotal != 3750 {
		t.Errorf("full total = %v, want 3750", order.EventDetails.FullTotal)
	}
}

func TestWebhookReplayCreatesOneOrder(t *testing.T) {
	meta := map[string]string{
		metaOrderID: "ORD261015-042",
		metaItems:   `[{"type":"package","id":"webinar","name":"Webinar Package","price":3000,"quantity":1}]`,
	}
	verifier := &fakeVerifier{event: completedSessionEvent(t, "evt_replay", "cs_test_replay", 150000, meta)}
	svc, _, db := newWebhookService(t, verifier)
	ctx := context.Background()

	if err := svc.HandleWebhook(ctx, []byte("{}"), "sig"); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := svc.HandleWebhook(ctx, []byte("{}"), "sig"); err != nil {
		t.Fatalf("replayed delivery: %v", err)
	}

	var count int64
	db.Model(&model.Order{}).Count(&count)
	if count != 1 {
		t.Fatalf("order count = %d after replay, want 1", count)
	}
}

// Stripe may also deliver a duplicated event under a fresh event id; the
// session-id unique index still collapses it onto the original order.
func TestWebhookDuplicateEventIDStillOneOrder(t *testing.T) {
	meta := map[string]string{metaOrderID: "ORD261015-043"}
	verifier := &fakeVerifier{event: completedSessionEvent(t, "evt_dup_1", "cs_test_dup", 150000, meta)}
	svc, _, db := newWebhookService(t, verifier)
	ctx := context.Background()

	if err := svc.HandleWebhook(ctx, []byte("{}"), "sig"); err != nil {
		t.Fatalf("first delivery: %v", err)
	}

	verifier.event = completedSessionEvent(t, "evt_dup_2", "cs_test_dup", 150000, meta)
	if err := svc.HandleWebhook(ctx, []byte("{}"), "sig"); err != nil {
		t.Fatalf("second delivery: %v", err)
	}

	var count int64
	db.Model(&model.Order{}).Count(&count)
	if count != 1 {
		t.Fatalf("order count = %d, want 1", count)
	}
}

func TestWebhookMissingOrderIDMetadataGeneratesOne(t *testing.T) {
	verifier := &fakeVerifier{event: completedSessionEvent(t, "evt_nometa", "cs_test_nometa", 50000, nil)}
	svc, orderSvc, _ := newWebhookService(t, verifier)
	ctx := context.Background()

	if err := svc.HandleWebhook(ctx, []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	order, err := orderSvc.GetBySessionID(ctx, "cs_test_nometa")
	if err != nil {
		t.Fatalf("order not created: %v", err)
	}
	if !orderIDPattern.MatchString(order.ID) {
		t.Errorf("generated order id %q does not match pattern", order.ID)
	}
	if order.Total != 500 {
		t.Errorf("total = %v, want 500", order.Total)
	}
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	verifier := &fakeVerifier{event: stripe.Event{
		ID:   "evt_other",
		Type: stripe.EventTypePaymentIntentCreated,
		Data: &stripe.EventData{Raw: json.RawMessage(`{}`)},
	}}
	svc, _, db := newWebhookService(t, verifier)

	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("unhandled event types must be accepted: %v", err)
	}

	var count int64
	db.Model(&model.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("order created from unrelated event")
	}
}
