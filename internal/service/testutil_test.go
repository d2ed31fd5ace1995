package service

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"provideo-rentals/internal/client"
	"provideo-rentals/internal/dto"
	"provideo-rentals/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.RentalConfig{},
		&model.Order{},
		&model.Customer{},
		&model.AuthToken{},
		&model.Contact{},
		&model.BlogPost{},
		&model.WebhookEvent{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	fail          bool
	confirmations []string // order ids
	adminNotices  []string
	magicLinks    []string // links
	contactIDs    []string
}

func (m *fakeMailer) SendOrderConfirmation(order *dto.OrderView) error {
	if m.fail {
		return fmt.Errorf("smtp down")
	}
	m.confirmations = append(m.confirmations, order.ID)
	return nil
}

func (m *fakeMailer) SendAdminOrderNotice(order *dto.OrderView) error {
	if m.fail {
		return fmt.Errorf("smtp down")
	}
	m.adminNotices = append(m.adminNotices, order.ID)
	return nil
}

func (m *fakeMailer) SendMagicLink(email, link string) error {
	if m.fail {
		return fmt.Errorf("smtp down")
	}
	m.magicLinks = append(m.magicLinks, link)
	return nil
}

func (m *fakeMailer) SendContactNotice(contact *model.Contact) error {
	if m.fail {
		return fmt.Errorf("smtp down")
	}
	m.contactIDs = append(m.contactIDs, contact.ID)
	return nil
}

// fakePaymentClient captures the session input and answers with a canned
// session.
type fakePaymentClient struct {
	lastInput *client.CreateSessionInput
	sessionID string
	err       error
}

func (f *fakePaymentClient) CreateCheckoutSession(_ context.Context, in *client.CreateSessionInput) (*client.CreateSessionResult, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	id := f.sessionID
	if id == "" {
		id = "cs_test_fake"
	}
	return &client.CreateSessionResult{
		SessionID: id,
		URL:       "https://checkout.stripe.test/" + id,
	}, nil
}
