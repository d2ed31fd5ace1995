package dto

import (
	"testing"

	"provideo-rentals/internal/model"
)

func TestValidateReportsFieldLevelDetails(t *testing.T) {
	req := &CreateOrderRequest{
		EventDate: "2026-10-15",
		ContactDetails: ContactDetails{
			Name:  "Jordan",
			Email: "not-an-email",
		},
	}

	details := Validate(req)
	if details == nil {
		t.Fatal("expected validation failures")
	}

	for _, field := range []string{"items", "eventStartTime", "eventEndTime", "total", "contactDetails.email"} {
		if _, ok := details[field]; !ok {
			t.Errorf("missing detail for field %q (got %v)", field, details)
		}
	}
}

func TestValidateAcceptsCompleteRequest(t *testing.T) {
	req := &CreateOrderRequest{
		Items:          []model.LineItem{{Type: "package", ID: "webinar", Price: 3000, Quantity: 1}},
		EventDate:      "2026-10-15",
		EventStartTime: "09:00",
		EventEndTime:   "17:00",
		ContactDetails: ContactDetails{Name: "Jordan", Email: "jordan@example.com"},
		Total:          3000,
	}
	if details := Validate(req); details != nil {
		t.Fatalf("unexpected validation failures: %v", details)
	}
}
