package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Percent returns part/whole*100 rounded to 2dp, or 0 when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func RoundCost(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(3)
}
