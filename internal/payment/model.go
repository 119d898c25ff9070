package payment

import (
	"encoding/json"
	"time"

	"wallfleur-be/internal/money"
)

type Provider string

const (
	ProviderRazorpay Provider = "razorpay"
	ProviderPayPal   Provider = "paypal"
)

type Outcome string

const (
	OutcomeVerified Outcome = "verified"
	OutcomeRejected Outcome = "rejected"
)

// Item is a line sent to providers that itemize orders. Amounts are minor units.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice int64
}

type CreateRequest struct {
	AmountMinor   int64
	Currency      money.Currency
	Receipt       string
	Items         []Item
	ShippingMinor int64
}

type RemoteOrder struct {
	ProviderOrderID string          `json:"id"`
	Receipt         string          `json:"receipt,omitempty"`
	ApprovalURL     string          `json:"approvalUrl,omitempty"`
	AmountMinor     int64           `json:"amount"`
	Currency        money.Currency  `json:"currency"`
	Status          string          `json:"status,omitempty"`
	Raw             json.RawMessage `json:"-"`
}

type SettleRequest struct {
	ProviderOrderID string
	PaymentID       string
	Signature       string
}

type Settlement struct {
	Outcome   Outcome
	PaymentID string
	Reason    string
	Raw       json.RawMessage
}

func (s *Settlement) Verified() bool {
	return s != nil && s.Outcome == OutcomeVerified
}

// Event is an audit record of one settlement attempt.
type Event struct {
	ID              int64           `db:"id"`
	Provider        Provider        `db:"provider"`
	ProviderOrderID string          `db:"provider_order_id"`
	PaymentID       string          `db:"payment_id"`
	Outcome         Outcome         `db:"outcome"`
	Reason          string          `db:"reason"`
	Payload         json.RawMessage `db:"payload"`
	CreatedAt       time.Time       `db:"created_at"`
}
