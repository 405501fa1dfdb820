package forecast

import "github.com/shopspring/decimal"

// precision is the number of decimal places kept on balances and accruals.
const precision = 12

// factorPrecision is the number of decimal places kept while compounding.
const factorPrecision = 24

const daysPerYear = 365

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// D is a shortcut to build a decimal amount from a number.
func D[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	return newDecimal(value)
}

// compound returns the growth factor (1 + rate/365)^days.
//
// Every intermediate product is rounded to factorPrecision places so the
// cost does not grow with the number of days.
func compound(rate decimal.Decimal, days int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	if days <= 0 || rate.IsZero() {
		return result
	}
	base := result.Add(rate.DivRound(decimal.NewFromInt(daysPerYear), factorPrecision))
	for n := days; n > 0; n /= 2 {
		if n%2 == 1 {
			result = result.Mul(base).Round(factorPrecision)
		}
		if n > 1 {
			base = base.Mul(base).Round(factorPrecision)
		}
	}
	return result
}
