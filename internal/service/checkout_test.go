package service

import (
	"context"
	"errors"
	"testing"

	"provideo-rentals/internal/dto"
	"provideo-rentals/internal/model"
)

func checkoutRequest(items []model.LineItem) *dto.CheckoutSessionRequest {
	return &dto.CheckoutSessionRequest{
		Items:          items,
		EventDate:      "2026-10-15",
		EventStartTime: "09:00",
		EventEndTime:   "17:00",
		Location:       "Client HQ",
		ContactDetails: dto.ContactDetails{
			Name:  "Jordan Blake",
			Email: "jordan@example.com",
		},
	}
}

func TestCreateSessionRejectsEmptyCart(t *testing.T) {
	svc := NewCheckoutService(&fakePaymentClient{}, "https://x/success", "https://x/cancel")

	_, err := svc.CreateSession(context.Background(), checkoutRequest(nil))
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCreateSessionHalvesPricesServerSide(t *testing.T) {
	fake := &fakePaymentClient{}
	svc := NewCheckoutService(fake, "https://x/success", "https://x/cancel")

	items := []model.LineItem{
		{Type: "package", ID: "webinar", Name: "Webinar Package", Price: 3000, Quantity: 1},
		{Type: "addon", ID: "stream", Name: "Live Stream", Price: 750, Quantity: 1},
	}

	resp, err := svc.CreateSession(context.Background(), checkoutRequest(items))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if len(fake.lastInput.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(fake.lastInput.Lines))
	}
	if got := fake.lastInput.Lines[0].UnitAmount; got != 150000 {
		t.Errorf("package deposit = %d minor units, want 150000", got)
	}
	if got := fake.lastInput.Lines[1].UnitAmount; got != 37500 {
		t.Errorf("addon deposit = %d minor units, want 37500", got)
	}
	if got := fake.lastInput.Lines[0].Description; got != "package: webinar (50% Deposit)" {
		t.Errorf("line description = %q", got)
	}
	if got := fake.lastInput.Lines[1].Description; got != "addon: stream (50% Deposit)" {
		t.Errorf("line description = %q", got)
	}

	// Σ sent amounts == round(T × 50) cents for cart total T.
	var sum int64
	for _, line := range fake.lastInput.Lines {
		sum += line.UnitAmount * line.Quantity
	}
	if sum != 3750*50 {
		t.Errorf("deposit sum = %d, want %d", sum, 3750*50)
	}

	if !orderIDPattern.MatchString(resp.OrderID) {
		t.Errorf("order id %q does not match pattern", resp.OrderID)
	}
	if resp.SessionID != "cs_test_fake" {
		t.Errorf("session id = %q", resp.SessionID)
	}
}

func TestCreateSessionRoundsOddCents(t *testing.T) {
	fake := &fakePaymentClient{}
	svc := NewCheckoutService(fake, "https://x/success", "https://x/cancel")

	// 1034.55 → half is 51727.5 minor units, rounds to 51728.
	items := []model.LineItem{
		{Type: "package", ID: "promo", Name: "Promo Shoot", Price: 1034.55, Quantity: 2},
	}
	if _, err := svc.CreateSession(context.Background(), checkoutRequest(items)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if got := fake.lastInput.Lines[0].UnitAmount; got != 51728 {
		t.Errorf("deposit = %d, want 51728", got)
	}
	if got := fake.lastInput.Lines[0].Quantity; got != 2 {
		t.Errorf("quantity = %d, want 2", got)
	}
}

func TestCreateSessionMetadataCarriesOrderAndCart(t *testing.T) {
	fake := &fakePaymentClient{}
	svc := NewCheckoutService(fake, "https://x/success", "https://x/cancel")

	items := []model.LineItem{
		{Type: "package", ID: "webinar", Name: "Webinar Package", Price: 3000, Quantity: 1},
	}
	resp, err := svc.CreateSession(context.Background(), checkoutRequest(items))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	meta := fake.lastInput.Metadata
	if meta[metaOrderID] != resp.OrderID {
		t.Errorf("metadata orderId = %q, want %q", meta[metaOrderID], resp.OrderID)
	}
	if meta[metaFullTotal] != "3000.00" {
		t.Errorf("metadata fullTotal = %q, want 3000.00", meta[metaFullTotal])
	}
	parsed, err := model.UnmarshalItems(meta[metaItems])
	if err != nil {
		t.Fatalf("metadata items do not parse: %v", err)
	}
	if len(parsed) != 1 || parsed[0].ID != "webinar" || parsed[0].Price != 3000 {
		t.Errorf("metadata items = %+v", parsed)
	}
}

func TestCreateSessionRejectsBadItems(t *testing.T) {
	svc := NewCheckoutService(&fakePaymentClient{}, "https://x/success", "https://x/cancel")

	cases := []struct {
		name string
		item model.LineItem
	}{
		{"zero quantity", model.LineItem{Type: "package", ID: "a", Price: 10, Quantity: 0}},
		{"negative price", model.LineItem{Type: "package", ID: "a", Price: -1, Quantity: 1}},
		{"unknown type", model.LineItem{Type: "bundle", ID: "a", Price: 10, Quantity: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSession(context.Background(), checkoutRequest([]model.LineItem{tc.item}))
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
