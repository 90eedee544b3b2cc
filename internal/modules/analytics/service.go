// Package analytics computes performance metrics over price and dividend
// series. All calculations are pure functions of their inputs; partial or
// missing upstream data degrades to zero values instead of failing, so a
// single bad fetch never aborts a larger analysis.
package analytics

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
	"github.com/etfolio/etfolio/pkg/formulas"
)

// Service computes fund performance metrics
type Service struct {
	riskFreeRate float64
	now          func() time.Time
	log          zerolog.Logger
}

// NewService creates a new analytics service. riskFreeRate is the annual
// risk-free rate as a decimal; zero is a valid rate, the configuration
// layer supplies the default.
func NewService(riskFreeRate float64, log zerolog.Logger) *Service {
	return &Service{
		riskFreeRate: riskFreeRate,
		now:          time.Now,
		log:          log.With().Str("component", "analytics").Logger(),
	}
}

// Analyze computes the full metrics set for one fund. dividends may be nil
// and currentPrice may be 0; the affected metrics come back as 0.
func (s *Service) Analyze(prices []yahoo.PricePoint, dividends []yahoo.Dividend, currentPrice float64) Result {
	result := Result{
		TotalReturn:    s.TotalReturn(prices),
		CAGR:           s.CAGR(prices),
		Volatility:     s.Volatility(prices),
		MaxDrawdown:    s.MaxDrawdown(prices),
		DividendYield:  s.DividendYield(dividends, currentPrice),
		TotalDividends: totalDividends(dividends),
	}
	result.SharpeRatio = s.sharpeFrom(result.CAGR, result.Volatility)

	s.log.Debug().
		Int("prices", len(prices)).
		Int("dividends", len(dividends)).
		Float64("cagr", result.CAGR).
		Float64("volatility", result.Volatility).
		Msg("Analysis complete")

	return result
}

// TotalReturn is the simple return between the first and last close (%)
func (s *Service) TotalReturn(prices []yahoo.PricePoint) float64 {
	if len(prices) < 2 {
		return 0
	}

	first := prices[0].Close
	last := prices[len(prices)-1].Close
	if first == 0 {
		return 0
	}

	return (last - first) / first * 100
}

// CAGR is the compound annual growth rate of the close price (%).
// The holding period is measured in days / 365.25 to account for leap
// years; a non-positive period yields 0.
func (s *Service) CAGR(prices []yahoo.PricePoint) float64 {
	if len(prices) < 2 {
		return 0
	}

	first := prices[0]
	last := prices[len(prices)-1]
	years := last.Date.Sub(first.Date).Hours() / 24 / 365.25

	return formulas.CAGR(first.Close, last.Close, years) * 100
}

// Volatility is the annualized sample standard deviation of daily
// percentage changes of the close price (%).
func (s *Service) Volatility(prices []yahoo.PricePoint) float64 {
	if len(prices) < 2 {
		return 0
	}

	returns := formulas.DailyReturns(yahoo.Closes(prices))
	return formulas.AnnualizedVolatility(returns) * 100
}

// SharpeRatio is the excess CAGR over the risk-free rate per unit of
// volatility. Zero volatility yields 0 rather than a division by zero.
func (s *Service) SharpeRatio(prices []yahoo.PricePoint) float64 {
	return s.sharpeFrom(s.CAGR(prices), s.Volatility(prices))
}

func (s *Service) sharpeFrom(cagr, volatility float64) float64 {
	if volatility == 0 {
		return 0
	}
	return (cagr - s.riskFreeRate*100) / volatility
}

// MaxDrawdown is the largest observed decline from a running peak of the
// close price, as a positive percentage.
func (s *Service) MaxDrawdown(prices []yahoo.PricePoint) float64 {
	return math.Abs(formulas.MaxDrawdown(yahoo.Closes(prices))) * 100
}

// DividendYield sums dividends paid within the trailing 365 days and
// divides by the current price (%). Empty dividends or a zero price
// yield 0.
func (s *Service) DividendYield(dividends []yahoo.Dividend, currentPrice float64) float64 {
	if len(dividends) == 0 || currentPrice == 0 {
		return 0
	}

	oneYearAgo := s.now().AddDate(-1, 0, 0)

	var total float64
	for _, d := range dividends {
		if !d.Date.Before(oneYearAgo) {
			total += d.Amount
		}
	}

	return total / currentPrice * 100
}

func totalDividends(dividends []yahoo.Dividend) float64 {
	var total float64
	for _, d := range dividends {
		total += d.Amount
	}
	return total
}
