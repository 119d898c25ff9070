package product

import "github.com/shopspring/decimal"

// Product prices are stored in minor units (paise / cents).
type Product struct {
	ID             int64  `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	Slug           string `db:"slug" json:"slug"`
	INRPrice       int64  `db:"inr_price" json:"-"`
	USDPrice       int64  `db:"usd_price" json:"-"`
	Quantity       int    `db:"quantity" json:"quantity"`
	MaxQuantity    int    `db:"max_quantity" json:"maxquantity"`
	CategoryID     int64  `db:"category_id" json:"category_id"`
	SubCategoryID  int64  `db:"sub_category_id" json:"sub_category_id"`
	ShowOnWebsite  bool   `db:"show_on_website" json:"show_on_website"`
	ShowOnHomepage bool   `db:"show_on_homepage" json:"show_on_homepage"`
	Preorder       bool   `db:"preorder" json:"preorder"`
	ComingSoon     bool   `db:"coming_soon" json:"coming_soon"`
}

// View is a product as the storefront sees it: one price in the session's currency.
type View struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
	Quantity   int             `json:"quantity"`
	Preorder   bool            `json:"preorder"`
	ComingSoon bool            `json:"coming_soon"`
}

// StockAdjustment is one entry of a reduce/restore batch.
type StockAdjustment struct {
	ProductID int64
	Quantity  int
}

type AdjustmentResult struct {
	ProductID int64  `json:"productId"`
	Message   string `json:"message"`
}

const (
	MsgProductNotFound   = "Product not found"
	MsgInsufficientStock = "Insufficient stock"
	MsgReduced           = "Product quantity reduced successfully"
	MsgRestored          = "Product quantity restored successfully"
	MsgInvalidQuantity   = "Invalid quantity"
)
