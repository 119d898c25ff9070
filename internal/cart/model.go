package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one product in a customer's bag.
type Line struct {
	ID         int64     `db:"id" json:"-"`
	CustomerID int64     `db:"customer_id" json:"customer_id"`
	ProductID  int64     `db:"product_id" json:"product_id"`
	Quantity   int       `db:"quantity" json:"quantity"`
	CreatedAt  time.Time `db:"created_at" json:"-"`
}

type SyncItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// BagRow is a cart line joined with its product.
type BagRow struct {
	ProductID int64  `db:"product_id"`
	Quantity  int    `db:"quantity"`
	Name      string `db:"name"`
	Slug      string `db:"slug"`
	INRPrice  int64  `db:"inr_price"`
	USDPrice  int64  `db:"usd_price"`
	Stock     int    `db:"stock"`
}

// BagItem is what the storefront renders for a cart line.
type BagItem struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Quantity  int             `json:"quantity"`
	Available int             `json:"available"`
}
