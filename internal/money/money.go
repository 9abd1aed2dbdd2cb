// Package money holds the currency arithmetic shared by pricing code.
package money

import "github.com/shopspring/decimal"

const Places = 2

var hundred = decimal.NewFromInt(100)

// Round rounds to cents, half away from zero. For the non-negative amounts
// used in pricing this is round-half-up.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Percent returns pct% of amount, unrounded.
func Percent(amount decimal.Decimal, pct int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(pct))).Div(hundred)
}

// LineTotal is unit price times quantity.
func LineTotal(unit decimal.Decimal, qty int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}

// FloorZero clamps negative amounts to zero.
func FloorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Parse reads a user-supplied amount and rounds it to cents.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return Round(d), nil
}
