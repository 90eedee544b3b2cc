package portfolio

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
	"github.com/etfolio/etfolio/internal/modules/charts"
	"github.com/etfolio/etfolio/internal/modules/correlation"
	"github.com/etfolio/etfolio/internal/modules/etf"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	repo         *Repository
	etfRepo      *etf.Repository
	service      *Service
	correlations *correlation.Service
	charts       *charts.Service
	log          zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(
	repo *Repository,
	etfRepo *etf.Repository,
	service *Service,
	correlations *correlation.Service,
	chartService *charts.Service,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		repo:         repo,
		etfRepo:      etfRepo,
		service:      service,
		correlations: correlations,
		charts:       chartService,
		log:          log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleAddHolding registers a new holding in an already registered ETF
func (h *Handler) HandleAddHolding(w http.ResponseWriter, r *http.Request) {
	var req CreateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Quantity <= 0 {
		h.writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	if req.AveragePrice <= 0 {
		h.writeError(w, http.StatusBadRequest, "average_price must be positive")
		return
	}

	found, err := h.etfRepo.GetByID(req.ETFID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if found == nil {
		h.writeError(w, http.StatusNotFound, "ETF not found")
		return
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	holding, err := h.repo.CreateHolding(req.ETFID, req.Quantity, req.AveragePrice, purchaseDate)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info().Str("ticker", found.Ticker).Float64("quantity", req.Quantity).Msg("Holding added")
	h.writeJSON(w, http.StatusCreated, holding)
}

// HandleGetHoldings returns every holding
func (h *Handler) HandleGetHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.repo.GetHoldings()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if holdings == nil {
		holdings = []Holding{}
	}
	h.writeJSON(w, http.StatusOK, holdings)
}

// HandleUpdateHolding adjusts quantity or average price of a holding
func (h *Handler) HandleUpdateHolding(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid holding id")
		return
	}

	var req UpdateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		h.writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	if req.AveragePrice != nil && *req.AveragePrice <= 0 {
		h.writeError(w, http.StatusBadRequest, "average_price must be positive")
		return
	}

	holding, err := h.repo.UpdateHolding(id, req.Quantity, req.AveragePrice)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if holding == nil {
		h.writeError(w, http.StatusNotFound, "Holding not found")
		return
	}

	h.writeJSON(w, http.StatusOK, holding)
}

// HandleDeleteHolding removes a holding
func (h *Handler) HandleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid holding id")
		return
	}

	deleted, err := h.repo.DeleteHolding(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		h.writeError(w, http.StatusNotFound, "Holding not found")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Holding deleted"})
}

// HandleGetSummary values the portfolio at current market prices
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

// HandleGetHistory returns the persisted daily valuations, newest first
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	days := 90
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	snapshots, err := h.repo.GetSnapshots(days)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if snapshots == nil {
		snapshots = []Snapshot{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":    days,
		"history": snapshots,
	})
}

// HandleAllocationChart renders the portfolio composition pie
func (h *Handler) HandleAllocationChart(w http.ResponseWriter, r *http.Request) {
	holdings, prices, err := h.service.Allocation(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(holdings) == 0 {
		h.writeError(w, http.StatusNotFound, "No holdings in portfolio")
		return
	}

	slices := make([]charts.AllocationSlice, 0, len(holdings))
	for _, holding := range holdings {
		price, ok := prices[holding.ETF.Ticker]
		if !ok {
			continue
		}
		slices = append(slices, charts.AllocationSlice{
			Name:  fmt.Sprintf("%s (%s)", holding.ETF.Name, holding.ETF.Ticker),
			Value: holding.Quantity * price,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"chart": h.charts.AllocationPie(slices),
	})
}

// HandleGetCorrelation analyzes return correlations across the registered
// ETFs. Korean and US funds trade on different calendars, so each market
// is analyzed as its own group; a failing group does not fail the request.
func (h *Handler) HandleGetCorrelation(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1y"
	}
	if !yahoo.ValidPeriods[period] {
		h.writeError(w, http.StatusBadRequest, "Invalid period")
		return
	}

	etfs, err := h.etfRepo.GetAll()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(etfs) == 0 {
		h.writeError(w, http.StatusBadRequest, "No ETFs registered, add some first")
		return
	}

	var korean, us []etf.ETF
	for _, e := range etfs {
		if yahoo.IsKorean(e.Ticker) {
			korean = append(korean, e)
		} else {
			us = append(us, e)
		}
	}

	h.log.Info().
		Int("korean", len(korean)).
		Int("us", len(us)).
		Str("period", period).
		Msg("Portfolio correlation requested")

	response := CorrelationResponse{
		Groups:    []CorrelationGroup{},
		TotalETFs: len(etfs),
		Period:    period,
	}

	for _, group := range []struct {
		name string
		etfs []etf.ETF
	}{
		{"Korean ETFs", korean},
		{"US ETFs", us},
	} {
		switch {
		case len(group.etfs) >= 2:
			response.Groups = append(response.Groups, h.analyzeGroup(r, group.name, group.etfs, period))
		case len(group.etfs) == 1:
			response.Groups = append(response.Groups, CorrelationGroup{
				Name:     group.name,
				ETFCount: 1,
				ETFNames: []string{group.etfs[0].Name},
				Message:  "Nothing to compare against. Add one more ETF from the same market to analyze correlations.",
			})
		}
	}

	if len(response.Groups) == 0 {
		h.writeError(w, http.StatusBadRequest, "No analyzable group, add at least two ETFs from the same market")
		return
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *Handler) analyzeGroup(r *http.Request, name string, etfs []etf.ETF, period string) CorrelationGroup {
	tickers := make([]string, len(etfs))
	names := make([]string, len(etfs))
	for i, e := range etfs {
		tickers[i] = e.Ticker
		names[i] = e.Name
	}

	matrix, metadata, err := h.correlations.CalculateMatrix(r.Context(), tickers, period)
	if err != nil {
		h.log.Error().Err(err).Str("group", name).Msg("Group correlation failed")
		return CorrelationGroup{
			Name:     name,
			ETFCount: len(etfs),
			Error:    err.Error(),
		}
	}

	return CorrelationGroup{
		Name:              name,
		ETFCount:          len(etfs),
		ETFNames:          names,
		CorrelationMatrix: matrix.ToMap(),
		Heatmap: h.charts.CorrelationHeatmap(
			matrix.Values, matrix.Tickers, fmt.Sprintf("%s Correlation (%s)", name, period)),
		Diversification: h.correlations.AnalyzeDiversification(matrix),
		Metadata:        metadata,
	}
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
