package transport

import (
	"wallfleur-be/internal/money"
	"wallfleur-be/internal/order"
	"wallfleur-be/internal/pricing"
	"wallfleur-be/internal/product"

	"github.com/shopspring/decimal"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type orderProduct struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// createOrderRequest is shared by the Razorpay and PayPal create routes.
// Amount is the client's total in major units.
type createOrderRequest struct {
	Amount   decimal.Decimal       `json:"amount"`
	UserData order.CustomerDetails `json:"userData"`
	Products []orderProduct        `json:"products"`
}

func (r createOrderRequest) lines() []pricing.Line {
	out := make([]pricing.Line, 0, len(r.Products))
	for _, p := range r.Products {
		out = append(out, pricing.Line{ProductID: p.ID, Quantity: p.Quantity})
	}
	return out
}

type verifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type capturePaymentRequest struct {
	OrderID string `json:"order_id"`
}

type bagRequest struct {
	Products []orderProduct `json:"products"`
}

type removeFromBagRequest struct {
	ProductID int64 `json:"productId"`
}

type stockItem struct {
	ProductID         int64 `json:"productId"`
	QuantityToReduce  int   `json:"quantityToReduce"`
	QuantityToRestore int   `json:"quantityToRestore"`
}

type stockRequest struct {
	Products []stockItem `json:"products"`
}

func (r stockRequest) adjustments(restore bool) []product.StockAdjustment {
	out := make([]product.StockAdjustment, 0, len(r.Products))
	for _, p := range r.Products {
		qty := p.QuantityToReduce
		if restore {
			qty = p.QuantityToRestore
		}
		out = append(out, product.StockAdjustment{ProductID: p.ProductID, Quantity: qty})
	}
	return out
}

// adminCustomerDetails uses the admin panel's field names.
type adminCustomerDetails struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	PhoneNo    string  `json:"phoneNo"`
	DialCode   string  `json:"dialcode"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
	Pincode    string  `json:"pincode"`
	Status     string  `json:"status"`
	TrackingID *string `json:"trackingId"`
}

type adminProduct struct {
	ID       int64            `json:"id"`
	Quantity int              `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

type adminTotals struct {
	GrandTotal *decimal.Decimal `json:"grandTotal"`
}

type orderUpdateRequest struct {
	ID              int64                `json:"_id"`
	CustomerDetails adminCustomerDetails `json:"customerDetails"`
	Products        []adminProduct       `json:"products"`
	Totals          *adminTotals         `json:"totals"`
	Currency        money.Currency       `json:"currency"`
}

func (r orderUpdateRequest) patch() (order.AdminPatch, error) {
	d := r.CustomerDetails
	p := order.AdminPatch{
		ID: r.ID,
		Customer: order.CustomerDetails{
			Name:       d.Name,
			Email:      d.Email,
			Mobile:     d.PhoneNo,
			DialCode:   d.DialCode,
			Address:    d.Address,
			City:       d.City,
			State:      d.State,
			Country:    d.Country,
			PostalCode: d.Pincode,
		},
		Status:     order.Status(d.Status),
		TrackingID: d.TrackingID,
		Currency:   r.Currency,
	}

	if r.Products != nil {
		p.Lines = make([]order.LineItem, 0, len(r.Products))
		for _, ap := range r.Products {
			li := order.LineItem{ProductID: ap.ID, Quantity: ap.Quantity}
			if ap.Price != nil {
				unit, err := money.ToMinor(*ap.Price)
				if err != nil {
					return p, err
				}
				li.UnitPrice = unit
			}
			p.Lines = append(p.Lines, li)
		}
	}

	if r.Totals != nil && r.Totals.GrandTotal != nil {
		amount, err := money.ToMinor(*r.Totals.GrandTotal)
		if err != nil {
			return p, err
		}
		p.Amount = &amount
	}
	return p, nil
}
