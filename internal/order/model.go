package order

import (
	"time"

	"wallfleur-be/internal/money"
	"wallfleur-be/internal/payment"
	"wallfleur-be/internal/pricing"
)

type Status string

const (
	StatusCreated   Status = "created"
	StatusPaid      Status = "paid"
	StatusCrafting  Status = "crafting"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusPending   Status = "Pending"
	StatusFailed    Status = "failed"
	StatusDelayed   Status = "Delayed"
)

// Settleable reports whether a settlement may still change the order. Pending
// is pre-payment; Delayed counts as paid once a payment id is recorded.
func (o *Order) Settleable() bool {
	switch o.Status {
	case StatusCreated, StatusFailed, StatusPending:
		return true
	case StatusDelayed:
		return o.PaymentID == ""
	}
	return false
}

// Order amounts are minor units in the order's currency.
type Order struct {
	ID              int64            `db:"id" json:"_id"`
	CustomerID      int64            `db:"customer_id" json:"customer_id"`
	CustomerName    string           `db:"customer_name" json:"customer_name"`
	Email           string           `db:"email" json:"email"`
	Mobile          string           `db:"mobile" json:"mobile"`
	DialCode        string           `db:"dial_code" json:"dialcode"`
	Address         string           `db:"address" json:"address"`
	City            string           `db:"city" json:"city"`
	State           string           `db:"state" json:"state"`
	Country         string           `db:"country" json:"country"`
	PostalCode      string           `db:"postal_code" json:"postalCode"`
	Amount          int64            `db:"amount" json:"amount"`
	DeliveryFee     int64            `db:"delivery_fee" json:"delivery_fee"`
	Currency        money.Currency   `db:"currency" json:"currency"`
	Provider        payment.Provider `db:"provider" json:"provider"`
	Receipt         string           `db:"receipt" json:"receipt"`
	ProviderOrderID string           `db:"provider_order_id" json:"order_id"`
	PaymentID       string           `db:"payment_id" json:"payment_id,omitempty"`
	Signature       string           `db:"signature" json:"signature,omitempty"`
	Status          Status           `db:"status" json:"status"`
	InvoiceID       string           `db:"invoice_id" json:"invoice_id"`
	TrackingID      string           `db:"tracking_id" json:"trackingId"`
	OrderedDate     time.Time        `db:"ordered_date" json:"ordered_date"`
	UpdatedDate     time.Time        `db:"updated_date" json:"updated_date"`
	LineItems       []LineItem       `db:"-" json:"products"`
}

// LineItem is frozen when the order is created. UnitPrice is minor units.
type LineItem struct {
	OrderID   int64 `db:"order_id" json:"-"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
	UnitPrice int64 `db:"unit_price" json:"unit_price"`
}

// Subtotal sums the frozen line items.
func (o *Order) Subtotal() int64 {
	var total int64
	for _, li := range o.LineItems {
		total += li.UnitPrice * int64(li.Quantity)
	}
	return total
}

// CustomerDetails is the shipping contact captured at checkout.
type CustomerDetails struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	DialCode   string `json:"dialcode"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

type StatusUpdate struct {
	Status    Status
	PaymentID string
	Signature string
	UpdatedAt time.Time
}

type ListFilter struct {
	Page     int
	Limit    int
	Currency money.Currency
	Status   Status
}

func (f ListFilter) normalized() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > maxPageLimit {
		f.Limit = defaultPageLimit
	}
	return f
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type CreateOrderInput struct {
	CustomerID int64
	// Amount is the client's total in minor units of the region currency.
	Amount   int64
	Customer CustomerDetails
	Lines    []pricing.Line
	Region   pricing.Region
	Provider payment.Provider
}

type CreateOrderResult struct {
	Order  *Order
	Remote *payment.RemoteOrder
}

type SettleInput struct {
	CustomerID      int64
	Provider        payment.Provider
	ProviderOrderID string
	PaymentID       string
	Signature       string
}

type SettleResult struct {
	Order *Order
	// AlreadySettled is set when the order was paid before this call.
	AlreadySettled bool
}

// AdminPatch edits an order, or creates one when ID is zero. Zero values
// leave the stored field unchanged.
type AdminPatch struct {
	ID         int64
	Customer   CustomerDetails
	Status     Status
	TrackingID *string
	Currency   money.Currency
	Lines      []LineItem
	Amount     *int64
}
