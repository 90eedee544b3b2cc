package charts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
)

func newTestService() *Service {
	return NewService(zerolog.Nop())
}

func priceSeries(n int) []yahoo.PricePoint {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	prices := make([]yahoo.PricePoint, n)
	for i := 0; i < n; i++ {
		prices[i] = yahoo.PricePoint{Date: base.AddDate(0, 0, i), Close: 100 + float64(i)}
	}
	return prices
}

func TestPriceChartWithOverlays(t *testing.T) {
	s := newTestService()

	fig := s.PriceChart(priceSeries(80), "SPY")

	require.Len(t, fig.Data, 3, "close line plus both moving averages")
	assert.Equal(t, "Close", fig.Data[0].Name)
	assert.Equal(t, "SMA 20", fig.Data[1].Name)
	assert.Equal(t, "SMA 60", fig.Data[2].Name)

	assert.Len(t, fig.Data[0].X, 80)
	assert.Len(t, fig.Data[1].Y, 61, "20 day average starts on day 20")
	assert.Len(t, fig.Data[2].Y, 21, "60 day average starts on day 60")

	assert.Equal(t, "SPY Price History", fig.Layout.Title)
	assert.Equal(t, "2024-01-02", fig.Data[0].X[0])
}

func TestPriceChartShortSeriesSkipsOverlays(t *testing.T) {
	s := newTestService()

	fig := s.PriceChart(priceSeries(10), "QQQ")

	require.Len(t, fig.Data, 1, "not enough history for any moving average")
}

func TestDividendChartEmptyState(t *testing.T) {
	s := newTestService()

	fig := s.DividendChart(nil, "069500.KS")

	assert.Empty(t, fig.Data)
	require.Len(t, fig.Layout.Annotations, 1)
	assert.Equal(t, "No dividend data available", fig.Layout.Annotations[0].Text)
}

func TestDividendChartBars(t *testing.T) {
	s := newTestService()

	dividends := []yahoo.Dividend{
		{Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Amount: 1.2},
		{Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), Amount: 1.4},
	}

	fig := s.DividendChart(dividends, "SCHD")

	require.Len(t, fig.Data, 1)
	assert.Equal(t, "bar", fig.Data[0].Type)
	assert.Equal(t, []string{"2024-03-15", "2024-06-15"}, fig.Data[0].X)
	assert.Equal(t, []float64{1.2, 1.4}, fig.Data[0].Y)
}

func TestCumulativeReturnChart(t *testing.T) {
	s := newTestService()

	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	prices := []yahoo.PricePoint{
		{Date: base, Close: 100},
		{Date: base.AddDate(0, 0, 1), Close: 110},
		{Date: base.AddDate(0, 0, 2), Close: 90},
	}

	fig := s.CumulativeReturnChart(prices, "VTI")

	require.Len(t, fig.Data, 1)
	y, ok := fig.Data[0].Y.([]float64)
	require.True(t, ok)
	assert.InDelta(t, 0, y[0], 1e-9)
	assert.InDelta(t, 10, y[1], 1e-9)
	assert.InDelta(t, -10, y[2], 1e-9)
}

func TestAllocationPie(t *testing.T) {
	s := newTestService()

	fig := s.AllocationPie([]AllocationSlice{
		{Name: "KODEX 200 (069500.KS)", Value: 1000},
		{Name: "SPY", Value: 3000},
	})

	require.Len(t, fig.Data, 1)
	assert.Equal(t, "pie", fig.Data[0].Type)
	assert.Equal(t, 0.3, fig.Data[0].Hole)
	assert.Equal(t, []float64{1000, 3000}, fig.Data[0].Values)

	empty := s.AllocationPie(nil)
	require.Len(t, empty.Layout.Annotations, 1)
}

func TestCorrelationHeatmapStripsExchangeSuffix(t *testing.T) {
	s := newTestService()

	values := [][]float64{{1, 0.5}, {0.5, 1}}
	fig := s.CorrelationHeatmap(values, []string{"069500.KS", "SPY"}, "Korean ETF Correlation (1y)")

	require.Len(t, fig.Data, 1)
	assert.Equal(t, "heatmap", fig.Data[0].Type)
	assert.Equal(t, []string{"069500", "SPY"}, fig.Data[0].X)
	assert.Equal(t, values, fig.Data[0].Z)
	assert.Equal(t, "reversed", fig.Layout.YAxis.AutoRange)
}

func TestFigureSerializesToPlotlyShape(t *testing.T) {
	s := newTestService()

	raw, err := json.Marshal(s.PriceChart(priceSeries(5), "AGG"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "data")
	assert.Contains(t, decoded, "layout")
}
