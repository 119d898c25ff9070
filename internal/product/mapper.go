package product

import (
	"wallfleur-be/internal/money"
	"wallfleur-be/internal/pricing"
)

// ToCatalog indexes products by id in the shape the pricing engine expects.
func ToCatalog(products []Product) map[int64]pricing.CatalogEntry {
	out := make(map[int64]pricing.CatalogEntry, len(products))
	for _, p := range products {
		out[p.ID] = pricing.CatalogEntry{
			INRPrice: p.INRPrice,
			USDPrice: p.USDPrice,
			Stock:    p.Quantity,
		}
	}
	return out
}

func PriceFor(p Product, region pricing.Region) int64 {
	if region == pricing.International {
		return p.USDPrice
	}
	return p.INRPrice
}

func ToView(p Product, region pricing.Region) View {
	return View{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       p.Slug,
		Price:      money.ToMajor(PriceFor(p, region)),
		Currency:   string(region.Currency()),
		Quantity:   p.Quantity,
		Preorder:   p.Preorder,
		ComingSoon: p.ComingSoon,
	}
}
