package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func dec(cents int64) decimal.Decimal { return decimal.NewFromInt(cents) }

// cents rounds half away from zero to whole minor units.
func cents(d decimal.Decimal) int64 { return d.Round(0).IntPart() }

// percentOf returns part/whole*100. whole must be non-zero.
func percentOf(part, whole int64) float64 {
	return dec(part).Div(dec(whole)).Mul(hundred).InexactFloat64()
}

// lineValue is quantity x unit price, rounded to minor units.
func lineValue(quantity float64, unitPrice int64) int64 {
	return cents(decimal.NewFromFloat(quantity).Mul(dec(unitPrice)))
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
