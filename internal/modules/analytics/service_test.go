package analytics

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
)

func newTestService() *Service {
	return NewService(0.02, zerolog.Nop())
}

// dailyPrices builds a close-only series with one point per day
func dailyPrices(closes ...float64) []yahoo.PricePoint {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	prices := make([]yahoo.PricePoint, len(closes))
	for i, close := range closes {
		prices[i] = yahoo.PricePoint{Date: base.AddDate(0, 0, i), Close: close}
	}
	return prices
}

func TestAnalyzeTooFewPoints(t *testing.T) {
	s := newTestService()

	for _, prices := range [][]yahoo.PricePoint{nil, dailyPrices(100)} {
		result := s.Analyze(prices, nil, 0)

		assert.Zero(t, result.TotalReturn)
		assert.Zero(t, result.CAGR)
		assert.Zero(t, result.Volatility)
		assert.Zero(t, result.SharpeRatio)
		assert.Zero(t, result.MaxDrawdown)
		assert.Zero(t, result.DividendYield)
		assert.Zero(t, result.TotalDividends)
	}
}

func TestTotalReturn(t *testing.T) {
	s := newTestService()

	assert.InDelta(t, 33.1, s.TotalReturn(dailyPrices(100, 110, 133.1)), 1e-9)
	assert.InDelta(t, -50, s.TotalReturn(dailyPrices(200, 150, 100)), 1e-9)
}

func TestCAGRThreeYearDoubleDigit(t *testing.T) {
	s := newTestService()

	start := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	threeYears := time.Duration(3 * 365.25 * 24 * float64(time.Hour))
	prices := []yahoo.PricePoint{
		{Date: start, Close: 100},
		{Date: start.Add(threeYears / 3), Close: 110},
		{Date: start.Add(2 * threeYears / 3), Close: 121},
		{Date: start.Add(threeYears), Close: 133.1},
	}

	// (133.1/100)^(1/3) - 1 = 10% per year
	assert.InDelta(t, 10.0, s.CAGR(prices), 1e-6)
}

func TestVolatility(t *testing.T) {
	s := newTestService()

	// Identical daily changes have zero sample deviation
	assert.Zero(t, s.Volatility(dailyPrices(100, 110, 121)))

	// Returns +10% and -5%: sample stddev 0.075*sqrt(2), annualized by sqrt(252)
	assert.InDelta(t, 168.3745, s.Volatility(dailyPrices(100, 110, 104.5)), 0.001)
}

func TestSharpeRatioZeroVolatility(t *testing.T) {
	s := newTestService()

	// Constant growth means zero volatility, the ratio degrades to zero
	assert.Zero(t, s.SharpeRatio(dailyPrices(100, 110, 121)))
}

func TestSharpeRatioSubtractsRiskFreeRate(t *testing.T) {
	s := newTestService()

	assert.InDelta(t, 1.0, s.sharpeFrom(10, 8), 1e-9)
	assert.InDelta(t, -0.5, s.sharpeFrom(-2, 8), 1e-9)
}

func TestZeroRiskFreeRateIsHonored(t *testing.T) {
	// An explicit rate of zero must not be replaced with a default
	s := NewService(0, zerolog.Nop())

	assert.InDelta(t, 1.25, s.sharpeFrom(10, 8), 1e-9)
}

func TestMaxDrawdown(t *testing.T) {
	s := newTestService()

	// Deepest fall is from the 180 peak down to 100
	assert.InDelta(t, 44.4444, s.MaxDrawdown(dailyPrices(100, 150, 120, 180, 100)), 0.001)

	// Monotonic rise never draws down
	assert.Zero(t, s.MaxDrawdown(dailyPrices(100, 110, 120)))
}

func TestDividendYieldTrailingYear(t *testing.T) {
	s := newTestService()
	s.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	dividends := []yahoo.Dividend{
		{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Amount: 2.0},  // outside the window
		{Date: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), Amount: 1.0},  // inside
		{Date: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Amount: 0.5}, // inside
	}

	assert.InDelta(t, 3.0, s.DividendYield(dividends, 50), 1e-9)
	assert.Zero(t, s.DividendYield(dividends, 0))
	assert.Zero(t, s.DividendYield(nil, 50))
}

func TestAnalyzeSumsAllDividends(t *testing.T) {
	s := newTestService()
	s.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	dividends := []yahoo.Dividend{
		{Date: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), Amount: 1.2},
		{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Amount: 1.3},
		{Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), Amount: 1.5},
	}

	result := s.Analyze(dailyPrices(100, 102, 101, 105), dividends, 105)

	assert.InDelta(t, 4.0, result.TotalDividends, 1e-9)
	assert.InDelta(t, 1.5/105*100, result.DividendYield, 1e-9)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	s := newTestService()

	prices := dailyPrices(100, 103, 99, 108, 104, 111)
	first := s.Analyze(prices, nil, 111)
	second := s.Analyze(prices, nil, 111)

	assert.Equal(t, first, second)
}
