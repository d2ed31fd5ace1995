package model

import "encoding/json"

const (
	ItemTypePackage = "package"
	ItemTypeAddon   = "addon"
)

const (
	StatusPending     = "pending"
	StatusDepositPaid = "Deposit Paid"
	StatusTrashed     = "trashed"
)

// LineItem is one entry of a cart, denormalized into the order at purchase
// time. Price is the full unit price in major currency units, never the
// halved deposit amount.
type LineItem struct {
	Type        string       `json:"type"` // package | addon
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Price       float64      `json:"price"`
	Quantity    int          `json:"quantity"`
	KeyFeatures []KeyFeature `json:"keyFeatures,omitempty"`
}

// EventDetails travels as a JSON blob on the order. The Stripe fields are
// late-bound by the webhook reconciler once payment completes.
type EventDetails struct {
	EventDate      string `json:"eventDate"`
	EventStartTime string `json:"eventStartTime"`
	EventEndTime   string `json:"eventEndTime"`
	Location       string `json:"location,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	ContactName    string `json:"contactName"`
	ContactEmail   string `json:"contactEmail"`
	ContactPhone   string `json:"contactPhone,omitempty"`
	BillingAddress string `json:"billingAddress,omitempty"`

	PaymentIntentID string  `json:"paymentIntentId,omitempty"`
	FullTotal       float64 `json:"fullTotal,omitempty"`
}

func MarshalItems(items []LineItem) (string, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func UnmarshalItems(raw string) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}
