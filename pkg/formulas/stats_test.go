package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Mean([]float64{}))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
}

func TestStdDevSampleDenominator(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{5}))

	// Sample variance of {2, 4, 4, 4, 5, 5, 7, 9} is 32/7
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, math.Sqrt(32.0/7.0), got, 1e-9)
}

func TestDailyReturns(t *testing.T) {
	assert.Nil(t, DailyReturns(nil))
	assert.Nil(t, DailyReturns([]float64{100}))

	returns := DailyReturns([]float64{100, 110, 99})
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)
}

func TestDailyReturnsZeroPriceDay(t *testing.T) {
	returns := DailyReturns([]float64{100, 0, 50})
	require.Len(t, returns, 2)
	assert.Equal(t, -1.0, returns[0])
	assert.Equal(t, 0.0, returns[1])
	assert.False(t, math.IsInf(returns[1], 0))
}

func TestAnnualizedVolatility(t *testing.T) {
	assert.Equal(t, 0.0, AnnualizedVolatility(nil))

	daily := []float64{0.01, -0.01, 0.01, -0.01}
	want := StdDev(daily) * math.Sqrt(252)
	assert.InDelta(t, want, AnnualizedVolatility(daily), 1e-9)
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	assert.InDelta(t, 1.0, Correlation(x, []float64{2, 4, 6, 8, 10}), 1e-9)
	assert.InDelta(t, -1.0, Correlation(x, []float64{10, 8, 6, 4, 2}), 1e-9)

	// Mismatched or empty inputs are not an error, just zero
	assert.Equal(t, 0.0, Correlation(x, []float64{1, 2}))
	assert.Equal(t, 0.0, Correlation(nil, nil))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(250, 0, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))
}

func TestMaxDrawdown(t *testing.T) {
	assert.Equal(t, 0.0, MaxDrawdown(nil))
	assert.Equal(t, 0.0, MaxDrawdown([]float64{100}))

	// Peak 120, trough 90: (120-90)/120 = 0.25
	got := MaxDrawdown([]float64{100, 120, 90, 110})
	assert.InDelta(t, 0.25, got, 1e-9)

	// Monotonic rise never draws down
	assert.Equal(t, 0.0, MaxDrawdown([]float64{100, 105, 110, 120}))
}

func TestMaxDrawdownUsesWorstPeak(t *testing.T) {
	// Second drawdown (140 -> 70) is deeper than the first (120 -> 90)
	got := MaxDrawdown([]float64{100, 120, 90, 140, 70, 100})
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestCAGR(t *testing.T) {
	// Doubling over one year is 100%
	assert.InDelta(t, 1.0, CAGR(100, 200, 1), 1e-9)

	// Doubling over ten years is about 7.18% per year
	assert.InDelta(t, math.Pow(2, 0.1)-1, CAGR(100, 200, 10), 1e-9)

	assert.Equal(t, 0.0, CAGR(100, 200, 0))
	assert.Equal(t, 0.0, CAGR(0, 200, 5))
	assert.Equal(t, 0.0, CAGR(100, -5, 5))
}
