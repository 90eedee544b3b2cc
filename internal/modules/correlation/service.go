// Package correlation computes pairwise return correlations across a set
// of funds and grades the resulting diversification. Korean and US funds
// trade on different calendars, so series are first joined on their common
// trading days before daily returns are compared.
package correlation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
	"github.com/etfolio/etfolio/pkg/formulas"
	"github.com/etfolio/etfolio/pkg/gather"
)

// minCommonDays is the fewest overlapping trading days accepted for a
// meaningful correlation estimate
const minCommonDays = 10

// highCorrelationThreshold marks a pair as effectively moving together
const highCorrelationThreshold = 0.7

// PriceFetcher provides historical close prices for a ticker
type PriceFetcher interface {
	GetPriceHistory(ctx context.Context, ticker, period string) ([]yahoo.PricePoint, error)
}

// Service computes correlation matrices from market data
type Service struct {
	market  PriceFetcher
	workers int
	log     zerolog.Logger
}

// NewService creates a new correlation service. workers bounds the number
// of concurrent price fetches.
func NewService(market PriceFetcher, workers int, log zerolog.Logger) *Service {
	if workers <= 0 {
		workers = 10
	}
	return &Service{
		market:  market,
		workers: workers,
		log:     log.With().Str("component", "correlation").Logger(),
	}
}

// CalculateMatrix fetches price history for every ticker, joins the series
// on common trading days and returns the Pearson correlation matrix of
// daily returns together with metadata about the underlying data.
func (s *Service) CalculateMatrix(ctx context.Context, tickers []string, period string) (*Matrix, *Metadata, error) {
	s.log.Info().Int("tickers", len(tickers)).Str("period", period).Msg("Correlation analysis started")

	if len(tickers) < 2 {
		return nil, nil, fmt.Errorf("%w: at least 2 ETFs are required", ErrInsufficientData)
	}

	results := gather.Map(ctx, tickers, s.workers, func(ctx context.Context, ticker string) ([]yahoo.PricePoint, error) {
		return s.market.GetPriceHistory(ctx, ticker, period)
	})

	valid := make(map[string][]yahoo.PricePoint)
	validTickers := []string{}
	failedTickers := []string{}
	for _, ticker := range tickers {
		res := results[ticker]
		if !res.Ok() || len(res.Value) == 0 {
			if res.Err != nil {
				s.log.Warn().Err(res.Err).Str("ticker", ticker).Msg("Price fetch failed")
			}
			failedTickers = append(failedTickers, ticker)
			continue
		}
		valid[ticker] = res.Value
		validTickers = append(validTickers, ticker)
	}

	if len(valid) < 2 {
		return nil, nil, fmt.Errorf("%w: could not fetch enough series, failed: %v", ErrInsufficientData, failedTickers)
	}

	commonDates, closesByTicker := alignOnCommonDays(validTickers, valid)
	if len(commonDates) < minCommonDays {
		return nil, nil, fmt.Errorf(
			"%w: only %d common trading days, Korean and US funds trade on different calendars",
			ErrInsufficientData, len(commonDates))
	}

	returnsByTicker := make(map[string][]float64, len(validTickers))
	for _, ticker := range validTickers {
		returnsByTicker[ticker] = formulas.DailyReturns(closesByTicker[ticker])
	}

	dataPoints := len(commonDates) - 1
	if dataPoints <= 0 {
		return nil, nil, fmt.Errorf("%w: could not compute daily returns", ErrInsufficientData)
	}

	matrix := &Matrix{
		Tickers: validTickers,
		Values:  make([][]float64, len(validTickers)),
	}
	for i := range validTickers {
		matrix.Values[i] = make([]float64, len(validTickers))
		matrix.Values[i][i] = 1.0
	}
	for i := 0; i < len(validTickers); i++ {
		for j := i + 1; j < len(validTickers); j++ {
			corr := formulas.Correlation(returnsByTicker[validTickers[i]], returnsByTicker[validTickers[j]])
			matrix.Values[i][j] = corr
			matrix.Values[j][i] = corr
		}
	}

	metadata := &Metadata{
		TotalTickers:      len(tickers),
		ValidTickers:      validTickers,
		FailedTickers:     failedTickers,
		DataPoints:        dataPoints,
		Period:            period,
		StartDate:         commonDates[1],
		EndDate:           commonDates[len(commonDates)-1],
		CommonTradingDays: len(commonDates),
	}

	s.log.Info().
		Int("valid", len(validTickers)).
		Int("data_points", dataPoints).
		Msg("Correlation matrix computed")

	return matrix, metadata, nil
}

// alignOnCommonDays intersects the series on the trading days shared by
// every ticker and returns those days sorted ascending plus the aligned
// close series per ticker.
func alignOnCommonDays(tickers []string, series map[string][]yahoo.PricePoint) ([]string, map[string][]float64) {
	closesByDate := make(map[string]map[string]float64, len(tickers))
	for _, ticker := range tickers {
		byDate := make(map[string]float64, len(series[ticker]))
		for _, p := range series[ticker] {
			byDate[p.Date.Format("2006-01-02")] = p.Close
		}
		closesByDate[ticker] = byDate
	}

	var commonDates []string
	for date := range closesByDate[tickers[0]] {
		shared := true
		for _, ticker := range tickers[1:] {
			if _, ok := closesByDate[ticker][date]; !ok {
				shared = false
				break
			}
		}
		if shared {
			commonDates = append(commonDates, date)
		}
	}
	sort.Strings(commonDates)

	aligned := make(map[string][]float64, len(tickers))
	for _, ticker := range tickers {
		closes := make([]float64, len(commonDates))
		for i, date := range commonDates {
			closes[i] = closesByDate[ticker][date]
		}
		aligned[ticker] = closes
	}

	return commonDates, aligned
}

// AnalyzeDiversification grades the portfolio spread from the pairwise
// correlations of the matrix. Lower average correlation scores higher,
// with 0.0 mapping to 100 and 1.0 mapping to 0.
func (s *Service) AnalyzeDiversification(matrix *Matrix) *DiversificationReport {
	var (
		sum       float64
		maxCorr   = -1.0
		minCorr   = 1.0
		pairCount int
		highPairs = []Pair{}
	)

	for i := 0; i < matrix.Size(); i++ {
		for j := i + 1; j < matrix.Size(); j++ {
			corr := matrix.At(i, j)
			sum += corr
			pairCount++
			if corr > maxCorr {
				maxCorr = corr
			}
			if corr < minCorr {
				minCorr = corr
			}
			if corr > highCorrelationThreshold {
				highPairs = append(highPairs, Pair{
					ETF1:        matrix.Tickers[i],
					ETF2:        matrix.Tickers[j],
					Correlation: corr,
				})
			}
		}
	}

	avgCorr := sum / float64(pairCount)
	score := int(formulas.Clamp(math.Trunc((1-avgCorr)*100), 0, 100))

	var rating, advice string
	switch {
	case score >= 80:
		rating = "very good"
		advice = "Your portfolio is well diversified. The holdings span distinct asset classes, keeping overall risk low."
	case score >= 60:
		rating = "good"
		advice = "Diversification is reasonable. Consider adding funds from other sectors or regions."
	case score >= 40:
		rating = "moderate"
		advice = "Some holdings move together. Adding bonds, gold or real estate would improve the spread."
	case score >= 20:
		rating = "low"
		advice = "The holdings move very similarly. Add different asset classes for genuine diversification."
	default:
		rating = "very low"
		advice = "The portfolio moves almost in lockstep. There is hardly any diversification benefit."
	}

	report := &DiversificationReport{
		Score:              score,
		Rating:             rating,
		Advice:             advice,
		AverageCorrelation: round3(avgCorr),
		MaxCorrelation:     round3(maxCorr),
		MinCorrelation:     round3(minCorr),
		HighCorrelation:    highPairs,
		TotalPairs:         pairCount,
	}

	s.log.Info().
		Int("score", score).
		Float64("avg_correlation", report.AverageCorrelation).
		Msg("Diversification analysis complete")

	return report
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
