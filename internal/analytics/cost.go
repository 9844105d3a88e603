package analytics

import "github.com/shopspring/decimal"

// LaborCost is labels / labelsPerHour * hourlyRate. Zero throughput costs nothing.
func LaborCost(labels int, labelsPerHour, hourlyRate float64) decimal.Decimal {
	if labelsPerHour <= 0 || labels == 0 {
		return decimal.Zero
	}
	hours := decimal.NewFromInt(int64(labels)).Div(decimal.NewFromFloat(labelsPerHour))
	return hours.Mul(decimal.NewFromFloat(hourlyRate))
}

// CostPer divides cost evenly over n units, zero when n is zero
func CostPer(cost decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return cost.Div(decimal.NewFromInt(int64(n)))
}

func dollars(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
