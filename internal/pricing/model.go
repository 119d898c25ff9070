package pricing

import "wallfleur-be/internal/money"

type Region string

const (
	Domestic      Region = "domestic"
	International Region = "international"
)

func RegionFromFlag(isInternational bool) Region {
	if isInternational {
		return International
	}
	return Domestic
}

func (r Region) Currency() money.Currency {
	if r == International {
		return money.USD
	}
	return money.INR
}

// Line is a requested (product, quantity) pair.
type Line struct {
	ProductID int64
	Quantity  int
}

// CatalogEntry carries the catalog facts pricing needs. Prices are minor units.
type CatalogEntry struct {
	INRPrice int64
	USDPrice int64
	Stock    int
}

type PricedLine struct {
	ProductID int64
	Quantity  int
	UnitPrice int64
	LineTotal int64
}

type Quote struct {
	Currency    money.Currency
	Subtotal    int64
	DeliveryFee int64
	Total       int64
	Lines       []PricedLine
}
