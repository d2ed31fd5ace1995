package client

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// CheckoutLine is one Stripe price line: the deposit unit amount in minor
// units plus quantity and the human-readable description shown on the hosted
// checkout page.
type CheckoutLine struct {
	Name        string
	Description string
	UnitAmount  int64 // minor units
	Quantity    int64
}

type CreateSessionInput struct {
	Lines      []CheckoutLine
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type CreateSessionResult struct {
	SessionID string
	URL       string
}

// PaymentClient wraps the Stripe SDK so services can be exercised against a
// fake in tests.
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, in *CreateSessionInput) (*CreateSessionResult, error)
}

// WebhookVerifier validates an inbound webhook payload against the shared
// endpoint secret and returns the decoded event.
type WebhookVerifier interface {
	ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

type stripeClientImpl struct {
	webhookSecret string
}

func NewStripeClient(secretKey, webhookSecret string) (PaymentClient, WebhookVerifier) {
	stripe.Key = secretKey
	c := &stripeClientImpl{webhookSecret: webhookSecret}
	return c, c
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, in *CreateSessionInput) (*CreateSessionResult, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, len(in.Lines))
	for i, line := range in.Lines {
		lineItems[i] = &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(line.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(line.Name),
					Description: stripe.String(line.Description),
				},
			},
			Quantity: stripe.Int64(line.Quantity),
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	return &CreateSessionResult{
		SessionID: s.ID,
		URL:       s.URL,
	}, nil
}

func (c *stripeClientImpl) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
}
