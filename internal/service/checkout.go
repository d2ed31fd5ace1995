package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"provideo-rentals/internal/client"
	"provideo-rentals/internal/dto"
	"provideo-rentals/internal/model"
)

// Metadata keys on the Stripe Checkout Session. They are the only place the
// order id and cart survive between session creation and the webhook.
const (
	metaOrderID      = "orderId"
	metaItems        = "items"
	metaEventDetails = "eventDetails"
	metaFullTotal    = "fullTotal"
)

type CheckoutService interface {
	CreateSession(ctx context.Context, req *dto.CheckoutSessionRequest) (*dto.CheckoutSessionResponse, error)
}

type checkoutServiceImpl struct {
	paymentClient client.PaymentClient
	successURL    string
	cancelURL     string
}

func NewCheckoutService(paymentClient client.PaymentClient, successURL, cancelURL string) CheckoutService {
	return &checkoutServiceImpl{
		paymentClient: paymentClient,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

func (s *checkoutServiceImpl) CreateSession(ctx context.Context, req *dto.CheckoutSessionRequest) (*dto.CheckoutSessionResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	lines, err := buildDepositLines(req.Items)
	if err != nil {
		return nil, err
	}

	orderID := GenerateOrderID(time.Now())

	itemsJSON, err := model.MarshalItems(req.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items for metadata: %w", err)
	}

	details := model.EventDetails{
		EventDate:      req.EventDate,
		EventStartTime: req.EventStartTime,
		EventEndTime:   req.EventEndTime,
		Location:       req.Location,
		CompanyName:    req.ContactDetails.CompanyName,
		ContactName:    req.ContactDetails.Name,
		ContactEmail:   req.ContactDetails.Email,
		ContactPhone:   req.ContactDetails.Phone,
		BillingAddress: req.ContactDetails.BillingAddress,
	}
	detailsJSON, err := marshalEventDetails(&details)
	if err != nil {
		return nil, fmt.Errorf("marshal event details for metadata: %w", err)
	}

	fullTotal := fullTotalOf(req.Items)

	result, err := s.paymentClient.CreateCheckoutSession(ctx, &client.CreateSessionInput{
		Lines:      lines,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
		Metadata: map[string]string{
			metaOrderID:      orderID,
			metaItems:        itemsJSON,
			metaEventDetails: detailsJSON,
			metaFullTotal:    fullTotal.StringFixed(2),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &dto.CheckoutSessionResponse{
		SessionID: result.SessionID,
		URL:       result.URL,
		OrderID:   orderID,
	}, nil
}

// buildDepositLines computes the 50% deposit split server side from the full
// major-unit prices. One price line per cart item, unit amount in minor
// units.
func buildDepositLines(items []model.LineItem) ([]client.CheckoutLine, error) {
	lines := make([]client.CheckoutLine, len(items))
	for i, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q: quantity must be positive", ErrValidation, item.ID)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("%w: item %q: price must not be negative", ErrValidation, item.ID)
		}
		if item.Type != model.ItemTypePackage && item.Type != model.ItemTypeAddon {
			return nil, fmt.Errorf("%w: item %q: unknown type %q", ErrValidation, item.ID, item.Type)
		}

		lines[i] = client.CheckoutLine{
			Name:        item.Name,
			Description: fmt.Sprintf("%s: %s (50%% Deposit)", item.Type, item.ID),
			UnitAmount:  depositUnitAmount(item.Price),
			Quantity:    int64(item.Quantity),
		}
	}
	return lines, nil
}

// depositUnitAmount converts a full major-unit price to its half in minor
// units: round(price × 100 × 0.5).
func depositUnitAmount(price float64) int64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(50)).
		Round(0).
		IntPart()
}

func fullTotalOf(items []model.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}
