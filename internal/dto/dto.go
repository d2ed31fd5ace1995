package dto

import (
	"encoding/json"
	"time"

	"provideo-rentals/internal/model"
)

type ContactDetails struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	CompanyName    string `json:"companyName"`
	BillingAddress string `json:"billingAddress"`
}

// CheckoutSessionRequest carries the cart with FULL major-unit prices. The
// 50% deposit is computed server side; a client-halved amount is never
// accepted.
type CheckoutSessionRequest struct {
	Items          []model.LineItem `json:"items" validate:"required,min=1,dive"`
	EventDate      string           `json:"eventDate" validate:"required"`
	EventStartTime string           `json:"eventStartTime" validate:"required"`
	EventEndTime   string           `json:"eventEndTime" validate:"required"`
	Location       string           `json:"location"`
	ContactDetails ContactDetails   `json:"contactDetails" validate:"required"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
	OrderID   string `json:"orderId"`
}

// CreateOrderRequest is the direct booking path: no deposit is collected and
// the order is written synchronously with status "pending".
type CreateOrderRequest struct {
	Items          []model.LineItem `json:"items" validate:"required,min=1,dive"`
	EventDate      string           `json:"eventDate" validate:"required"`
	EventStartTime string           `json:"eventStartTime" validate:"required"`
	EventEndTime   string           `json:"eventEndTime" validate:"required"`
	Location       string           `json:"location"`
	ContactDetails ContactDetails   `json:"contactDetails" validate:"required"`
	Total          float64          `json:"total" validate:"required,gt=0"`
}

type OrderView struct {
	ID           string             `json:"id"`
	Status       string             `json:"status"`
	Total        float64            `json:"total"`
	OrderDate    time.Time          `json:"orderDate"`
	EventDate    string             `json:"eventDate"`
	Items        []model.LineItem   `json:"items"`
	EventDetails model.EventDetails `json:"eventDetails"`
	SessionID    string             `json:"sessionId,omitempty"`
}

type CreateOrderResponse struct {
	Order   *OrderView `json:"order"`
	Warning string     `json:"warning,omitempty"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

type BlogPostRequest struct {
	Title      string `json:"title" validate:"required"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content" validate:"required"`
	CoverImage string `json:"coverImage"`
	Published  bool   `json:"published"`
}

// ToOrderView parses the JSON blob columns once, at the response boundary.
func ToOrderView(order *model.Order) (*OrderView, error) {
	items, err := model.UnmarshalItems(order.Items)
	if err != nil {
		return nil, err
	}
	var details model.EventDetails
	if order.EventDetails != "" {
		if err := json.Unmarshal([]byte(order.EventDetails), &details); err != nil {
			return nil, err
		}
	}
	view := &OrderView{
		ID:           order.ID,
		Status:       order.Status,
		Total:        order.Total,
		OrderDate:    order.OrderDate,
		EventDate:    order.EventDate.Format("2006-01-02"),
		Items:        items,
		EventDetails: details,
	}
	if order.StripeSessionID != nil {
		view.SessionID = *order.StripeSessionID
	}
	return view, nil
}
