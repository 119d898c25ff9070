package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinor(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1150", 115000},
		{"1150.00", 115000},
		{"129.99", 12999},
		{"0.01", 1},
		{"0", 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMinor(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseMinor_Rejects(t *testing.T) {
	_, err := ParseMinor("1150.001")
	assert.ErrorIs(t, err, ErrTooManyDecimal)

	_, err = ParseMinor("abc")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestToMinor_FromFloatDecimal(t *testing.T) {
	got, err := ToMinor(decimal.NewFromFloat(3999.99))
	require.NoError(t, err)
	assert.Equal(t, int64(399999), got)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1150.00", Format(115000))
	assert.Equal(t, "0.05", Format(5))
	assert.Equal(t, "129.99", Format(12999))
	assert.True(t, ToMajor(12999).Equal(decimal.RequireFromString("129.99")))
}

func TestCurrencyValid(t *testing.T) {
	assert.True(t, INR.Valid())
	assert.True(t, USD.Valid())
	assert.False(t, Currency("EUR").Valid())
}
