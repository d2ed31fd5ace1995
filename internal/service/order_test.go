package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"provideo-rentals/internal/dto"
	"provideo-rentals/internal/model"
	"provideo-rentals/internal/repository"
)

func directOrderRequest() *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		Items: []model.LineItem{
			{Type: "package", ID: "webinar", Name: "Webinar Package", Price: 3000, Quantity: 1},
			{Type: "addon", ID: "stream", Name: "Live Stream", Price: 750, Quantity: 1},
		},
		EventDate:      "2026-10-15",
		EventStartTime: "09:00",
		EventEndTime:   "17:00",
		ContactDetails: dto.ContactDetails{
			Name:  "Jordan Blake",
			Email: "jordan@example.com",
		},
		Total: 3750,
	}
}

func newOrderService(t *testing.T, mailer Mailer) (OrderService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	return NewOrderService(db, repository.NewOrderRepository(db), mailer), db
}

func TestCreateDirectWritesPendingOrder(t *testing.T) {
	mailer := &fakeMailer{}
	svc, db := newOrderService(t, mailer)

	resp, err := svc.CreateDirect(context.Background(), directOrderRequest())
	if err != nil {
		t.Fatalf("CreateDirect: %v", err)
	}
	if resp.Warning != "" {
		t.Errorf("unexpected warning: %q", resp.Warning)
	}
	if resp.Order.Status != model.StatusPending {
		t.Errorf("status = %q, want %q", resp.Order.Status, model.StatusPending)
	}
	if resp.Order.Total != 3750 {
		t.Errorf("total = %v, want 3750", resp.Order.Total)
	}
	if !orderIDPattern.MatchString(resp.Order.ID) {
		t.Errorf("order id %q does not match pattern", resp.Order.ID)
	}

	var stored model.Order
	if err := db.First(&stored, "id = ?", resp.Order.ID).Error; err != nil {
		t.Fatalf("order not stored: %v", err)
	}
	if stored.ContactEmail != "jordan@example.com" {
		t.Errorf("contact email = %q", stored.ContactEmail)
	}
	if stored.StripeSessionID != nil {
		t.Errorf("direct order should have no session id")
	}

	if len(mailer.confirmations) != 1 || len(mailer.adminNotices) != 1 {
		t.Errorf("expected 1 confirmation and 1 admin notice, got %d/%d",
			len(mailer.confirmations), len(mailer.adminNotices))
	}
}

func TestCreateDirectMailFailureIsWarningNotError(t *testing.T) {
	svc, db := newOrderService(t, &fakeMailer{fail: true})

	resp, err := svc.CreateDirect(context.Background(), directOrderRequest())
	if err != nil {
		t.Fatalf("CreateDirect should succeed despite mail failure: %v", err)
	}
	if resp.Warning == "" {
		t.Error("expected a warning about the failed email")
	}

	var count int64
	db.Model(&model.Order{}).Count(&count)
	if count != 1 {
		t.Errorf("order count = %d, want 1", count)
	}
}

func TestCreateDirectRejectsMismatchedTotal(t *testing.T) {
	svc, _ := newOrderService(t, &fakeMailer{})

	req := directOrderRequest()
	req.Total = 1875 // client sent the deposit instead of the full total
	if _, err := svc.CreateDirect(context.Background(), req); err == nil {
		t.Fatal("expected mismatched total to be rejected")
	}
}

func TestCreateDirectRejectsBadEventDate(t *testing.T) {
	svc, _ := newOrderService(t, &fakeMailer{})

	req := directOrderRequest()
	req.EventDate = "15/10/2026"
	if _, err := svc.CreateDirect(context.Background(), req); err == nil {
		t.Fatal("expected malformed event date to be rejected")
	}
}

func TestDeleteOnlyAfterTrash(t *testing.T) {
	svc, db := newOrderService(t, &fakeMailer{})
	ctx := context.Background()

	resp, err := svc.CreateDirect(ctx, directOrderRequest())
	if err != nil {
		t.Fatalf("CreateDirect: %v", err)
	}
	id := resp.Order.ID

	// Active order: delete is rejected and the row survives.
	if err := svc.Delete(ctx, id); !errors.Is(err, ErrNotTrashed) {
		t.Fatalf("expected ErrNotTrashed, got %v", err)
	}
	var count int64
	db.Model(&model.Order{}).Where("id = ?", id).Count(&count)
	if count != 1 {
		t.Fatalf("order was deleted while active")
	}

	// Trash, then delete succeeds and the row is gone.
	if err := svc.Trash(ctx, id); err != nil {
		t.Fatalf("Trash: %v", err)
	}
	view, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get after trash: %v", err)
	}
	if view.Status != model.StatusTrashed {
		t.Errorf("status = %q, want %q", view.Status, model.StatusTrashed)
	}

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete after trash: %v", err)
	}
	db.Model(&model.Order{}).Where("id = ?", id).Count(&count)
	if count != 0 {
		t.Errorf("order row still present after delete")
	}
}

func TestTrashUnknownOrderIsNotFound(t *testing.T) {
	svc, _ := newOrderService(t, &fakeMailer{})

	if err := svc.Trash(context.Background(), "ORD000000-000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByEmailIsCaseInsensitive(t *testing.T) {
	svc, _ := newOrderService(t, &fakeMailer{})
	ctx := context.Background()

	if _, err := svc.CreateDirect(ctx, directOrderRequest()); err != nil {
		t.Fatalf("CreateDirect: %v", err)
	}

	orders, err := svc.ListByEmail(ctx, "Jordan@Example.COM")
	if err != nil {
		t.Fatalf("ListByEmail: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("expected 1 order, got %d", len(orders))
	}
}
