package formulas

import "math"

// MaxDrawdown calculates the maximum peak-to-trough decline of a price
// series as a positive fraction (0.25 = 25% loss from peak).
//
// Drawdown Formula:
//
//	Drawdown = (Peak Value - Current Value) / Peak Value
//	Max Drawdown = Maximum of all drawdowns
//
// Returns 0 for series with fewer than 2 points.
func MaxDrawdown(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	maxDrawdown := 0.0
	peak := prices[0]

	for _, price := range prices {
		if price > peak {
			peak = price
		}

		if peak > 0 {
			drawdown := (peak - price) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return maxDrawdown
}

// CAGR calculates the compound annual growth rate between the first and
// last price, as a fraction. years must be the elapsed time in years;
// non-positive holding periods yield 0.
func CAGR(first, last, years float64) float64 {
	if years <= 0 || first <= 0 || last <= 0 {
		return 0
	}
	return math.Pow(last/first, 1/years) - 1
}
