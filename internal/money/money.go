// Package money converts between integer minor units, used everywhere inside
// the service, and the major-unit decimals exchanged with clients and PayPal.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	INR Currency = "INR"
	USD Currency = "USD"
)

// minorScale is the number of fractional digits for every supported currency.
const minorScale = 2

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrTooManyDecimal = errors.New("amount has more than two decimal places")
)

func (c Currency) Valid() bool {
	return c == INR || c == USD
}

// ToMinor converts a major-unit decimal to minor units. Values that cannot be
// represented exactly are rejected rather than rounded.
func ToMinor(major decimal.Decimal) (int64, error) {
	scaled := major.Shift(minorScale)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, ErrTooManyDecimal
	}
	return scaled.IntPart(), nil
}

// ParseMinor parses a major-unit string such as "1150" or "129.99".
func ParseMinor(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return ToMinor(d)
}

// MustParseMinor is ParseMinor for constants; it panics on bad input.
func MustParseMinor(s string) int64 {
	v, err := ParseMinor(s)
	if err != nil {
		panic(err)
	}
	return v
}

func ToMajor(minor int64) decimal.Decimal {
	return decimal.New(minor, -minorScale)
}

// Format renders minor units as a fixed two-decimal major string ("1150.00").
func Format(minor int64) string {
	return ToMajor(minor).StringFixed(minorScale)
}
