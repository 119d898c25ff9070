package pricing

import (
	"fmt"

	"wallfleur-be/internal/config"
	"wallfleur-be/internal/money"
)

// FeePolicy maps a subtotal to a delivery fee, both in minor units.
type FeePolicy interface {
	DeliveryFee(region Region, subtotal int64) int64
}

// Tier charges Low below Threshold and High at or above it.
type Tier struct {
	Threshold int64
	Low       int64
	High      int64
}

func (t Tier) fee(subtotal int64) int64 {
	if subtotal < t.Threshold {
		return t.Low
	}
	return t.High
}

type TieredFees struct {
	Domestic      Tier
	International Tier
}

func (p TieredFees) DeliveryFee(region Region, subtotal int64) int64 {
	if region == International {
		return p.International.fee(subtotal)
	}
	return p.Domestic.fee(subtotal)
}

// FlatFee is the older single-charge policy, kept selectable by configuration.
type FlatFee struct {
	Amount int64
}

func (p FlatFee) DeliveryFee(Region, int64) int64 {
	return p.Amount
}

func DefaultFees() TieredFees {
	return TieredFees{
		Domestic:      Tier{Threshold: 400000, Low: 15000, High: 35000},
		International: Tier{Threshold: 13000, Low: 2000, High: 3500},
	}
}

// NewFeePolicy builds the policy selected by DELIVERY_FEE_POLICY.
func NewFeePolicy(cfg *config.Config) (FeePolicy, error) {
	switch cfg.FeePolicy {
	case "flat":
		amount, err := money.ParseMinor(cfg.FlatDeliveryFee)
		if err != nil {
			return nil, fmt.Errorf("flat delivery fee: %w", err)
		}
		return FlatFee{Amount: amount}, nil
	case "", "tiered":
		domestic, err := parseTier(cfg.DomesticFeeThreshold, cfg.DomesticFeeLow, cfg.DomesticFeeHigh)
		if err != nil {
			return nil, fmt.Errorf("domestic fee tier: %w", err)
		}
		intl, err := parseTier(cfg.IntlFeeThreshold, cfg.IntlFeeLow, cfg.IntlFeeHigh)
		if err != nil {
			return nil, fmt.Errorf("international fee tier: %w", err)
		}
		return TieredFees{Domestic: domestic, International: intl}, nil
	default:
		return nil, fmt.Errorf("unknown delivery fee policy %q", cfg.FeePolicy)
	}
}

func parseTier(threshold, low, high string) (Tier, error) {
	var (
		t   Tier
		err error
	)
	if t.Threshold, err = money.ParseMinor(threshold); err != nil {
		return Tier{}, err
	}
	if t.Low, err = money.ParseMinor(low); err != nil {
		return Tier{}, err
	}
	if t.High, err = money.ParseMinor(high); err != nil {
		return Tier{}, err
	}
	return t, nil
}
