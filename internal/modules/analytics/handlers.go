package analytics

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
	"github.com/etfolio/etfolio/internal/modules/etf"
)

// MarketData is the market access the analytics handler needs.
// *yahoo.Client satisfies it.
type MarketData interface {
	GetPriceHistory(ctx context.Context, ticker, period string) ([]yahoo.PricePoint, error)
	GetDividends(ctx context.Context, ticker string) ([]yahoo.Dividend, error)
	GetCurrentPrice(ctx context.Context, ticker string) (float64, error)
}

// Handler handles analytics HTTP requests
type Handler struct {
	repo    *etf.Repository
	market  MarketData
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(repo *etf.Repository, market MarketData, service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		market:  market,
		service: service,
		log:     log.With().Str("handler", "analytics").Logger(),
	}
}

type analyticsResponse struct {
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
	Result
}

// HandleGetAnalytics computes performance metrics for a registered ETF
// over the requested period (default 1y)
func (h *Handler) HandleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1y"
	}
	if !yahoo.ValidPeriods[period] {
		h.writeError(w, http.StatusBadRequest, "Invalid period")
		return
	}

	found, err := h.repo.GetByTicker(ticker)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if found == nil {
		h.writeError(w, http.StatusNotFound, "ETF not found")
		return
	}

	h.log.Info().Str("ticker", found.Ticker).Str("period", period).Msg("Analytics requested")

	var (
		prices    []yahoo.PricePoint
		dividends []yahoo.Dividend
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		prices, err = h.market.GetPriceHistory(ctx, found.Ticker, period)
		return err
	})
	g.Go(func() error {
		// Dividend failures are not fatal, the metrics degrade to zero
		divs, err := h.market.GetDividends(ctx, found.Ticker)
		if err != nil {
			h.log.Warn().Err(err).Str("ticker", found.Ticker).Msg("Dividend fetch failed")
			return nil
		}
		dividends = divs
		return nil
	})
	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Str("ticker", found.Ticker).Msg("Price history fetch failed")
		h.writeError(w, http.StatusBadGateway, "Failed to fetch price history")
		return
	}

	if len(prices) == 0 {
		h.writeError(w, http.StatusNotFound, "Price data not found")
		return
	}

	currentPrice, err := h.market.GetCurrentPrice(r.Context(), found.Ticker)
	if err != nil || currentPrice <= 0 {
		currentPrice = prices[len(prices)-1].Close
		h.log.Debug().Float64("price", currentPrice).Msg("Using last close as current price")
	}

	result := h.service.Analyze(prices, dividends, currentPrice)

	h.writeJSON(w, http.StatusOK, analyticsResponse{
		Ticker:       found.Ticker,
		Name:         found.Name,
		CurrentPrice: currentPrice,
		Result:       result,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
