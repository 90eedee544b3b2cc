// Package formulas provides the statistical building blocks shared by the
// analytics and correlation engines. All functions are pure and tolerate
// empty or short inputs by returning zero values.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the annualization factor for daily return series.
const TradingDaysPerYear = 252

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation (N-1 denominator)
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// DailyReturns converts a close-price series to day-over-day fractional
// changes. Returns[i] = (Price[i+1] - Price[i]) / Price[i]. Zero-price days
// contribute a zero return rather than an Inf.
func DailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
		}
	}
	return returns
}

// AnnualizedVolatility calculates annualized volatility from daily returns.
// Formula: sample std dev of daily returns × sqrt(252 trading days).
func AnnualizedVolatility(dailyReturns []float64) float64 {
	if len(dailyReturns) == 0 {
		return 0
	}
	return StdDev(dailyReturns) * math.Sqrt(TradingDaysPerYear)
}

// Correlation calculates the Pearson correlation coefficient between two
// equally sized datasets
func Correlation(x, y []float64) float64 {
	if len(x) == 0 || len(x) != len(y) {
		return 0
	}
	return stat.Correlation(x, y, nil)
}

// Clamp restricts a value to [min, max]
func Clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}
