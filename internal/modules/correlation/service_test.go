package correlation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
)

// fakeFetcher serves canned price series per ticker
type fakeFetcher struct {
	series map[string][]yahoo.PricePoint
	errs   map[string]error
}

func (f *fakeFetcher) GetPriceHistory(ctx context.Context, ticker, period string) ([]yahoo.PricePoint, error) {
	if err, ok := f.errs[ticker]; ok {
		return nil, err
	}
	return f.series[ticker], nil
}

// seriesFrom builds a daily price series starting at a fixed date
func seriesFrom(closes ...float64) []yahoo.PricePoint {
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	prices := make([]yahoo.PricePoint, len(closes))
	for i, close := range closes {
		prices[i] = yahoo.PricePoint{Date: base.AddDate(0, 0, i), Close: close}
	}
	return prices
}

func newTestService(f *fakeFetcher) *Service {
	return NewService(f, 4, zerolog.Nop())
}

func TestCalculateMatrixRequiresTwoTickers(t *testing.T) {
	s := newTestService(&fakeFetcher{})

	_, _, err := s.CalculateMatrix(context.Background(), []string{"SPY"}, "1y")
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCalculateMatrixTooFewCommonDays(t *testing.T) {
	f := &fakeFetcher{series: map[string][]yahoo.PricePoint{
		"SPY": seriesFrom(100, 101, 102, 103, 104),
		"QQQ": seriesFrom(200, 202, 204, 206, 208),
	}}
	s := newTestService(f)

	_, _, err := s.CalculateMatrix(context.Background(), []string{"SPY", "QQQ"}, "1y")
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCalculateMatrixNotEnoughValidSeries(t *testing.T) {
	f := &fakeFetcher{
		series: map[string][]yahoo.PricePoint{
			"SPY": seriesFrom(100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110),
		},
		errs: map[string]error{
			"QQQ": errors.New("upstream timeout"),
		},
	}
	s := newTestService(f)

	_, _, err := s.CalculateMatrix(context.Background(), []string{"SPY", "QQQ"}, "1y")
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCalculateMatrixPerfectCorrelation(t *testing.T) {
	closes := []float64{100, 102, 101, 104, 103, 106, 108, 107, 110, 112, 111}
	doubled := make([]float64, len(closes))
	for i, c := range closes {
		doubled[i] = c * 2
	}

	f := &fakeFetcher{series: map[string][]yahoo.PricePoint{
		"SPY": seriesFrom(closes...),
		"IVV": seriesFrom(doubled...),
	}}
	s := newTestService(f)

	matrix, meta, err := s.CalculateMatrix(context.Background(), []string{"SPY", "IVV"}, "1y")
	require.NoError(t, err)

	assert.Equal(t, []string{"SPY", "IVV"}, matrix.Tickers)
	assert.Equal(t, 1.0, matrix.At(0, 0))
	assert.Equal(t, 1.0, matrix.At(1, 1))
	assert.InDelta(t, 1.0, matrix.At(0, 1), 1e-9)
	assert.Equal(t, matrix.At(0, 1), matrix.At(1, 0))

	assert.Equal(t, 2, meta.TotalTickers)
	assert.Equal(t, []string{"SPY", "IVV"}, meta.ValidTickers)
	assert.Empty(t, meta.FailedTickers)
	assert.Equal(t, 11, meta.CommonTradingDays)
	assert.Equal(t, 10, meta.DataPoints)
	assert.Equal(t, "2024-03-05", meta.StartDate)
	assert.Equal(t, "2024-03-14", meta.EndDate)
}

func TestCalculateMatrixSkipsFailedTickers(t *testing.T) {
	closes := []float64{100, 102, 101, 104, 103, 106, 108, 107, 110, 112, 111}
	inverse := []float64{100, 98, 99, 96, 97, 94, 92, 93, 90, 88, 89}

	f := &fakeFetcher{
		series: map[string][]yahoo.PricePoint{
			"SPY":       seriesFrom(closes...),
			"069500.KS": seriesFrom(inverse...),
			"EMPTY":     nil,
		},
		errs: map[string]error{
			"BROKEN": errors.New("not found"),
		},
	}
	s := newTestService(f)

	matrix, meta, err := s.CalculateMatrix(
		context.Background(), []string{"SPY", "BROKEN", "069500.KS", "EMPTY"}, "6mo")
	require.NoError(t, err)

	assert.Equal(t, []string{"SPY", "069500.KS"}, matrix.Tickers)
	assert.Equal(t, 4, meta.TotalTickers)
	assert.Equal(t, []string{"BROKEN", "EMPTY"}, meta.FailedTickers)
	assert.Equal(t, "6mo", meta.Period)
	assert.Less(t, matrix.At(0, 1), 0.0, "opposite movements correlate negatively")
}

func TestCalculateMatrixAlignsOnCommonDays(t *testing.T) {
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	// Korean series misses two of the US trading days
	us := make([]yahoo.PricePoint, 0, 14)
	kr := make([]yahoo.PricePoint, 0, 12)
	for i := 0; i < 14; i++ {
		date := base.AddDate(0, 0, i)
		us = append(us, yahoo.PricePoint{Date: date, Close: 100 + float64(i)})
		if i != 3 && i != 9 {
			kr = append(kr, yahoo.PricePoint{Date: date, Close: 50 + float64(i)})
		}
	}

	f := &fakeFetcher{series: map[string][]yahoo.PricePoint{
		"SPY":       us,
		"069500.KS": kr,
	}}
	s := newTestService(f)

	_, meta, err := s.CalculateMatrix(context.Background(), []string{"SPY", "069500.KS"}, "1y")
	require.NoError(t, err)

	assert.Equal(t, 12, meta.CommonTradingDays)
	assert.Equal(t, 11, meta.DataPoints)
}

func TestAnalyzeDiversificationUncorrelated(t *testing.T) {
	s := newTestService(&fakeFetcher{})

	matrix := &Matrix{
		Tickers: []string{"SPY", "AGG"},
		Values: [][]float64{
			{1.0, 0.0},
			{0.0, 1.0},
		},
	}

	report := s.AnalyzeDiversification(matrix)

	assert.Equal(t, 100, report.Score)
	assert.Equal(t, "very good", report.Rating)
	assert.Equal(t, 0.0, report.AverageCorrelation)
	assert.Equal(t, 1, report.TotalPairs)
	assert.Empty(t, report.HighCorrelation)
}

func TestAnalyzeDiversificationLockstep(t *testing.T) {
	s := newTestService(&fakeFetcher{})

	matrix := &Matrix{
		Tickers: []string{"SPY", "VOO", "IVV"},
		Values: [][]float64{
			{1.0, 0.99, 0.98},
			{0.99, 1.0, 0.97},
			{0.98, 0.97, 1.0},
		},
	}

	report := s.AnalyzeDiversification(matrix)

	assert.Equal(t, 2, report.Score)
	assert.Equal(t, "very low", report.Rating)
	assert.Equal(t, 3, report.TotalPairs)
	assert.Len(t, report.HighCorrelation, 3)
	assert.Equal(t, 0.98, report.AverageCorrelation)
	assert.Equal(t, 0.99, report.MaxCorrelation)
	assert.Equal(t, 0.97, report.MinCorrelation)
}

func TestAnalyzeDiversificationMidRange(t *testing.T) {
	s := newTestService(&fakeFetcher{})

	matrix := &Matrix{
		Tickers: []string{"SPY", "069500.KS"},
		Values: [][]float64{
			{1.0, 0.5},
			{0.5, 1.0},
		},
	}

	report := s.AnalyzeDiversification(matrix)

	assert.Equal(t, 50, report.Score)
	assert.Equal(t, "moderate", report.Rating)
	assert.Empty(t, report.HighCorrelation, "0.5 is below the 0.7 threshold")
}
