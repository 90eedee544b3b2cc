// Package portfolio tracks the user's holdings, values them against live
// market prices and keeps a daily valuation history.
package portfolio

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
	"github.com/etfolio/etfolio/pkg/gather"
)

// MarketData provides the live inputs for portfolio valuation
type MarketData interface {
	GetCurrentPrice(ctx context.Context, ticker string) (float64, error)
	GetDividends(ctx context.Context, ticker string) ([]yahoo.Dividend, error)
}

// Service values the portfolio against market data
type Service struct {
	repo    *Repository
	market  MarketData
	workers int
	now     func() time.Time
	log     zerolog.Logger
}

// NewService creates a new portfolio service. workers bounds the number of
// tickers valued concurrently.
func NewService(repo *Repository, market MarketData, workers int, log zerolog.Logger) *Service {
	if workers <= 0 {
		workers = 10
	}
	return &Service{
		repo:    repo,
		market:  market,
		workers: workers,
		now:     time.Now,
		log:     log.With().Str("component", "portfolio").Logger(),
	}
}

// tickerData bundles the market inputs fetched once per distinct ticker
type tickerData struct {
	price     float64
	dividends []yahoo.Dividend
}

// Summary values every holding at current prices and sums the dividends
// received since purchase. Tickers whose price cannot be fetched count
// their investment but contribute nothing to the current value.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	holdings, err := s.repo.GetHoldings()
	if err != nil {
		return nil, err
	}

	if len(holdings) == 0 {
		return &Summary{Holdings: []Holding{}}, nil
	}

	data := s.fetchTickerData(ctx, holdings)

	var totalInvestment, currentValue, totalDividends float64
	for _, holding := range holdings {
		totalInvestment += holding.Quantity * holding.AveragePrice

		td, ok := data[holding.ETF.Ticker]
		if !ok {
			continue
		}
		if td.price > 0 {
			currentValue += holding.Quantity * td.price
		}

		purchased, err := time.Parse(time.RFC3339, holding.PurchaseDate)
		if err != nil {
			s.log.Warn().Str("purchase_date", holding.PurchaseDate).Msg("Unparseable purchase date, skipping dividends")
			continue
		}
		for _, d := range td.dividends {
			if !d.Date.Before(purchased) {
				totalDividends += d.Amount * holding.Quantity
			}
		}
	}

	totalReturn := currentValue - totalInvestment
	var returnRate float64
	if totalInvestment > 0 {
		returnRate = totalReturn / totalInvestment * 100
	}

	return &Summary{
		TotalInvestment: round2(totalInvestment),
		CurrentValue:    round2(currentValue),
		TotalReturn:     round2(totalReturn),
		ReturnRate:      round2(returnRate),
		TotalDividends:  round2(totalDividends),
		Holdings:        holdings,
	}, nil
}

// Allocation returns the current value of each holding for the
// composition chart. Holdings without a price are skipped.
func (s *Service) Allocation(ctx context.Context) ([]Holding, map[string]float64, error) {
	holdings, err := s.repo.GetHoldings()
	if err != nil {
		return nil, nil, err
	}

	tickers := distinctTickers(holdings)
	results := gather.Map(ctx, tickers, s.workers, func(ctx context.Context, ticker string) (float64, error) {
		return s.market.GetCurrentPrice(ctx, ticker)
	})

	prices := make(map[string]float64, len(results))
	for ticker, res := range results {
		if res.Ok() && res.Value > 0 {
			prices[ticker] = res.Value
		} else if res.Err != nil {
			s.log.Warn().Err(res.Err).Str("ticker", ticker).Msg("Price fetch failed")
		}
	}

	return holdings, prices, nil
}

// TakeSnapshot persists today's valuation for the history endpoint
func (s *Service) TakeSnapshot(ctx context.Context) (*Snapshot, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := Snapshot{
		Date:            s.now().Format("2006-01-02"),
		TotalInvestment: summary.TotalInvestment,
		TotalValue:      summary.CurrentValue,
		HoldingsCount:   len(summary.Holdings),
	}

	if err := s.repo.SaveSnapshot(snapshot); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("date", snapshot.Date).
		Float64("value", snapshot.TotalValue).
		Int("holdings", snapshot.HoldingsCount).
		Msg("Portfolio snapshot taken")

	return &snapshot, nil
}

// fetchTickerData gathers price and dividends once per distinct ticker
func (s *Service) fetchTickerData(ctx context.Context, holdings []Holding) map[string]tickerData {
	tickers := distinctTickers(holdings)

	results := gather.Map(ctx, tickers, s.workers, func(ctx context.Context, ticker string) (tickerData, error) {
		var td tickerData

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			price, err := s.market.GetCurrentPrice(gctx, ticker)
			if err != nil {
				s.log.Warn().Err(err).Str("ticker", ticker).Msg("Price fetch failed")
				return nil
			}
			td.price = price
			return nil
		})
		g.Go(func() error {
			dividends, err := s.market.GetDividends(gctx, ticker)
			if err != nil {
				s.log.Warn().Err(err).Str("ticker", ticker).Msg("Dividend fetch failed")
				return nil
			}
			td.dividends = dividends
			return nil
		})
		_ = g.Wait()

		return td, nil
	})

	data := make(map[string]tickerData, len(results))
	for ticker, res := range results {
		data[ticker] = res.Value
	}
	return data
}

func distinctTickers(holdings []Holding) []string {
	seen := make(map[string]bool, len(holdings))
	tickers := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if !seen[h.ETF.Ticker] {
			seen[h.ETF.Ticker] = true
			tickers = append(tickers, h.ETF.Ticker)
		}
	}
	return tickers
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
