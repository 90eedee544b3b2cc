package charts

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
)

// Handler handles chart HTTP requests for single funds
type Handler struct {
	market  *yahoo.Client
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new chart handler
func NewHandler(market *yahoo.Client, service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		market:  market,
		service: service,
		log:     log.With().Str("handler", "charts").Logger(),
	}
}

// HandlePriceChart renders the price history chart for a ticker
func (h *Handler) HandlePriceChart(w http.ResponseWriter, r *http.Request) {
	ticker, period, ok := h.chartParams(w, r)
	if !ok {
		return
	}

	prices, ok := h.fetchPrices(w, r, ticker, period)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"chart": h.service.PriceChart(prices, ticker),
	})
}

// HandleDividendChart renders the dividend payout chart for a ticker
func (h *Handler) HandleDividendChart(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	dividends, err := h.market.GetDividends(r.Context(), ticker)
	if err != nil {
		h.log.Warn().Err(err).Str("ticker", ticker).Msg("Dividend fetch failed, rendering empty chart")
		dividends = nil
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"chart": h.service.DividendChart(dividends, ticker),
	})
}

// HandleCumulativeReturnChart renders the cumulative return chart
func (h *Handler) HandleCumulativeReturnChart(w http.ResponseWriter, r *http.Request) {
	ticker, period, ok := h.chartParams(w, r)
	if !ok {
		return
	}

	prices, ok := h.fetchPrices(w, r, ticker, period)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"chart": h.service.CumulativeReturnChart(prices, ticker),
	})
}

func (h *Handler) chartParams(w http.ResponseWriter, r *http.Request) (ticker, period string, ok bool) {
	ticker = chi.URLParam(r, "ticker")

	period = r.URL.Query().Get("period")
	if period == "" {
		period = "1y"
	}
	if !yahoo.ValidPeriods[period] {
		h.writeError(w, http.StatusBadRequest, "Invalid period")
		return "", "", false
	}

	return ticker, period, true
}

func (h *Handler) fetchPrices(w http.ResponseWriter, r *http.Request, ticker, period string) ([]yahoo.PricePoint, bool) {
	prices, err := h.market.GetPriceHistory(r.Context(), ticker, period)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Price history fetch failed")
		h.writeError(w, http.StatusBadGateway, "Failed to fetch price history")
		return nil, false
	}
	if len(prices) == 0 {
		h.writeError(w, http.StatusNotFound, "Price data not found")
		return nil, false
	}
	return prices, true
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
