// Package recommendation ranks a curated fund universe for several
// investor profiles, from aggressive growth to dollar-cost averaging.
package recommendation

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
	"github.com/etfolio/etfolio/internal/modules/analytics"
	"github.com/etfolio/etfolio/pkg/gather"
)

// minDataPoints filters out funds listed too recently for the long-horizon
// metrics to mean anything
const minDataPoints = 100

// MarketData provides the market inputs for a fund analysis
type MarketData interface {
	GetPriceHistory(ctx context.Context, ticker, period string) ([]yahoo.PricePoint, error)
	GetDividends(ctx context.Context, ticker string) ([]yahoo.Dividend, error)
	GetFundInfo(ctx context.Context, ticker string) (*yahoo.FundInfo, error)
}

// Service builds ranked fund recommendations
type Service struct {
	market    MarketData
	analytics *analytics.Service
	workers   int
	now       func() time.Time
	log       zerolog.Logger
}

// NewService creates a new recommendation service. workers bounds the
// number of funds analyzed concurrently.
func NewService(market MarketData, analyticsService *analytics.Service, workers int, log zerolog.Logger) *Service {
	if workers <= 0 {
		workers = 10
	}
	return &Service{
		market:    market,
		analytics: analyticsService,
		workers:   workers,
		now:       time.Now,
		log:       log.With().Str("component", "recommendation").Logger(),
	}
}

// Recommend analyzes the universe for the category filter and returns the
// top funds per investor profile. Funds whose data cannot be fetched are
// skipped; an error is returned only when every fetch failed.
func (s *Service) Recommend(ctx context.Context, category, period string, limit int) (*Recommendations, error) {
	tickers := UniverseFor(category)
	s.log.Info().
		Str("category", category).
		Str("period", period).
		Int("limit", limit).
		Int("universe", len(tickers)).
		Msg("Recommendation run started")

	results := gather.Map(ctx, tickers, s.workers, func(ctx context.Context, ticker string) (*Analysis, error) {
		return s.analyzeTicker(ctx, ticker, period)
	})

	valid := make([]Analysis, 0, len(tickers))
	for _, ticker := range tickers {
		res := results[ticker]
		if !res.Ok() {
			s.log.Warn().Err(res.Err).Str("ticker", ticker).Msg("Fund analysis skipped")
			continue
		}
		if res.Value.DataPoints < minDataPoints {
			s.log.Debug().Str("ticker", ticker).Int("points", res.Value.DataPoints).Msg("Too little history")
			continue
		}
		valid = append(valid, *res.Value)
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("no funds could be analyzed (%d requested)", len(tickers))
	}

	s.log.Info().Int("analyzed", len(valid)).Int("requested", len(tickers)).Msg("Universe analysis complete")

	withDividends := filter(valid, func(a Analysis) bool { return a.DividendYield > 0 })
	withAssets := filter(valid, func(a Analysis) bool { return a.TotalAssets > 0 })

	return &Recommendations{
		HighReturn: topBy(valid, limit, func(a Analysis) float64 {
			return a.CAGR
		}),
		Stable: topBy(valid, limit, func(a Analysis) float64 {
			return a.SharpeRatio / (a.Volatility + 1)
		}),
		HighDividend: topBy(withDividends, limit, func(a Analysis) float64 {
			return a.DividendYield
		}),
		Balanced: topBy(valid, limit, func(a Analysis) float64 {
			return a.CAGR*0.4 + a.SharpeRatio*20 + (100-math.Abs(a.MaxDrawdown))*0.4
		}),
		MonthlyInvesting: topBy(valid, limit, func(a Analysis) float64 {
			return (100-math.Abs(a.MaxDrawdown))*0.5 + a.CAGR*0.3 + (20-math.Min(a.Volatility, 20))*0.2
		}),
		Popular: topBy(valid, limit, func(a Analysis) float64 {
			return a.AvgVolume
		}),
		HighAUM: topBy(withAssets, limit, func(a Analysis) float64 {
			return a.TotalAssets
		}),
		Metadata: Metadata{
			TotalAnalyzed:  len(valid),
			TotalRequested: len(tickers),
			Period:         period,
			Category:       category,
			AnalyzedAt:     s.now().Format(time.RFC3339),
		},
	}, nil
}

// analyzeTicker fetches history, dividends and fund info concurrently and
// reduces them to the metric set. Missing dividends or fund info degrade
// gracefully; missing price history fails the fund.
func (s *Service) analyzeTicker(ctx context.Context, ticker, period string) (*Analysis, error) {
	var (
		prices    []yahoo.PricePoint
		dividends []yahoo.Dividend
		info      *yahoo.FundInfo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prices, err = s.market.GetPriceHistory(gctx, ticker, period)
		return err
	})
	g.Go(func() error {
		divs, err := s.market.GetDividends(gctx, ticker)
		if err == nil {
			dividends = divs
		}
		return nil
	})
	g.Go(func() error {
		fi, err := s.market.GetFundInfo(gctx, ticker)
		if err == nil {
			info = fi
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("price history for %s: %w", ticker, err)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("no price data for %s", ticker)
	}

	currentPrice := prices[len(prices)-1].Close
	metrics := s.analytics.Analyze(prices, dividends, currentPrice)

	var volumeSum float64
	for _, p := range prices {
		volumeSum += float64(p.Volume)
	}

	name := ticker
	var totalAssets float64
	if info != nil {
		if info.Name != "" {
			name = info.Name
		}
		totalAssets = info.TotalAssets
	}

	return &Analysis{
		Ticker:        ticker,
		Name:          name,
		CurrentPrice:  currentPrice,
		CAGR:          metrics.CAGR,
		Volatility:    metrics.Volatility,
		SharpeRatio:   metrics.SharpeRatio,
		MaxDrawdown:   metrics.MaxDrawdown,
		DividendYield: metrics.DividendYield,
		TotalReturn:   metrics.TotalReturn,
		DataPoints:    len(prices),
		AvgVolume:     volumeSum / float64(len(prices)),
		TotalAssets:   totalAssets,
	}, nil
}

// topBy stable-sorts a copy of the analyses by the key, descending, and
// keeps the first limit entries. Ties keep the universe order.
func topBy(analyses []Analysis, limit int, key func(Analysis) float64) []Analysis {
	ranked := make([]Analysis, len(analyses))
	copy(ranked, analyses)

	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func filter(analyses []Analysis, keep func(Analysis) bool) []Analysis {
	out := make([]Analysis, 0, len(analyses))
	for _, a := range analyses {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
