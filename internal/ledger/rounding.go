package ledger

import (
	"math"

	"github.com/shopspring/decimal"
)

// Rounding precisions for derived figures.
const (
	MoneyPlaces           = 2 // Monetary amounts
	FractionalPricePlaces = 4 // Break-even price of fractional-unit symbols
	UnitPlaces            = 4 // Fractional unit quantities
	PercentPlaces         = 4 // Percentages
)

// Round rounds value to the given number of decimal places, half away from zero.
//
// The value is converted through its shortest decimal representation before rounding,
// so amounts such as 1.005 round to 1.01 instead of falling victim to binary
// floating-point error the way math.Round(v*100)/100 does.
//
// Non-finite values are returned unchanged.
//
// Example:
//
//	Round(123.456789, 2) // returns 123.46
//	Round(1.005, 2)      // returns 1.01
//	Round(-2.5, 0)       // returns -3
func Round(value float64, places int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(int32(places)).InexactFloat64()
}

// roundMoney rounds a monetary amount to two decimals.
func roundMoney(value float64) float64 {
	return Round(value, MoneyPlaces)
}

// roundUnits rounds a unit quantity. Whole-unit symbols are unaffected.
func roundUnits(value float64) float64 {
	return Round(value, UnitPlaces)
}

// roundBreakEven rounds a per-unit cost: 2 decimals, or 4 for fractional-unit symbols.
func roundBreakEven(value float64, fractional bool) float64 {
	if fractional {
		return Round(value, FractionalPricePlaces)
	}
	return Round(value, MoneyPlaces)
}

// GrowthRate returns the percentage change from past to now: (now - past) / |past| * 100.
// The argument order matters; swapping it inverts the sign. A zero past value yields 0.
func GrowthRate(now, past float64) float64 {
	if past == 0 {
		return 0
	}
	return (now - past) / math.Abs(past) * 100
}
