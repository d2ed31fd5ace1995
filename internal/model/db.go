package model

import "time"

// RentalConfig is the singleton catalog document. Packages, add-ons, key
// features and add-on groups are stored as whole JSON blobs; the write path
// replaces the entire document and bumps Version, there is no per-item update
// at the storage layer.
type RentalConfig struct {
	ID          string `gorm:"primaryKey;size:32;not null"` // always "default"
	Version     int64  `gorm:"not null"`
	Packages    string `gorm:"type:text;not null"`
	AddOns      string `gorm:"type:text;not null"`
	KeyFeatures string `gorm:"type:text;not null"`
	AddonGroups string `gorm:"type:text;not null"`
	UpdatedAt   time.Time
}

type Order struct {
	ID           string `gorm:"primaryKey;size:16;not null"` // ORD{YY}{MM}{DD}-{NNN}
	Status       string `gorm:"size:32;index;not null"`      // pending, Deposit Paid, trashed
	Total        float64
	OrderDate    time.Time
	EventDate    time.Time
	Items        string `gorm:"type:text;not null"` // JSON array of line items
	EventDetails string `gorm:"type:text;not null"` // JSON EventDetails
	// Denormalized from EventDetails so customer order lookups and magic-link
	// eligibility checks do not scan JSON.
	ContactEmail string `gorm:"size:255;index"`
	// Stripe checkout session that paid the deposit. Unique so a replayed
	// webhook cannot create a second order for the same session. NULL for
	// orders created without a payment.
	StripeSessionID *string `gorm:"size:128;uniqueIndex"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Customer struct {
	Email     string `gorm:"primaryKey;size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthToken is a single-use magic-link token. One active token per email
// (primary key), SHA-256 of the token is stored, never the token itself.
type AuthToken struct {
	Email     string `gorm:"primaryKey;size:255;not null"`
	TokenHash string `gorm:"size:64;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Contact struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	Name      string `gorm:"size:255"`
	Email     string `gorm:"size:255"`
	Phone     string `gorm:"size:64"`
	Message   string `gorm:"type:text"`
	Read      bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

type BlogPost struct {
	ID         string `gorm:"primaryKey;size:64;not null"`
	Slug       string `gorm:"size:255;uniqueIndex;not null"`
	Title      string `gorm:"size:255;not null"`
	Excerpt    string `gorm:"type:text"`
	Content    string `gorm:"type:text"`
	CoverImage string `gorm:"size:512"`
	Published  bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
