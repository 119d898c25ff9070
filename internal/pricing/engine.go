package pricing

// Engine computes authoritative order totals. It performs no I/O.
type Engine struct {
	fees FeePolicy
}

func NewEngine(fees FeePolicy) *Engine {
	if fees == nil {
		fees = DefaultFees()
	}
	return &Engine{fees: fees}
}

// Compute merges lines for the same product, checks stock for every merged
// line, then prices them in the region's currency and adds the delivery fee.
func (e *Engine) Compute(region Region, lines []Line, catalog map[int64]CatalogEntry) (*Quote, error) {
	if region != Domestic && region != International {
		return nil, ErrInvalidRegion
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	lines, err := mergeLines(lines)
	if err != nil {
		return nil, err
	}

	for _, l := range lines {
		entry, ok := catalog[l.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		if l.Quantity > entry.Stock {
			return nil, &InsufficientStockError{
				ProductID: l.ProductID,
				Available: entry.Stock,
				Requested: l.Quantity,
			}
		}
	}

	q := &Quote{
		Currency: region.Currency(),
		Lines:    make([]PricedLine, 0, len(lines)),
	}
	for _, l := range lines {
		entry := catalog[l.ProductID]
		unit := entry.INRPrice
		if region == International {
			unit = entry.USDPrice
		}
		lineTotal := unit * int64(l.Quantity)
		q.Subtotal += lineTotal
		q.Lines = append(q.Lines, PricedLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
	}

	q.DeliveryFee = e.fees.DeliveryFee(region, q.Subtotal)
	q.Total = q.Subtotal + q.DeliveryFee
	return q, nil
}

// mergeLines sums quantities per product, keeping first-seen order.
func mergeLines(lines []Line) ([]Line, error) {
	merged := make([]Line, 0, len(lines))
	index := make(map[int64]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if i, ok := index[l.ProductID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged, nil
}

// VerifyAmount rejects a client-submitted total that differs from the quote.
func VerifyAmount(q *Quote, clientAmount int64) error {
	if q.Total != clientAmount {
		return ErrAmountMismatch
	}
	return nil
}
