package etf

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
)

// Handler handles ETF HTTP requests
type Handler struct {
	repo    *Repository
	catalog *Catalog
	market  *yahoo.Client
	log     zerolog.Logger
}

// NewHandler creates a new ETF handler
func NewHandler(repo *Repository, catalog *Catalog, market *yahoo.Client, log zerolog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		catalog: catalog,
		market:  market,
		log:     log.With().Str("handler", "etf").Logger(),
	}
}

// HandleList returns the browsable ETF catalog, optionally filtered by
// category and search term
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	etfs := h.catalog.Filter(category, search)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": len(etfs),
		"etfs":  etfs,
	})
}

// HandleCategories returns the distinct catalog categories
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.catalog.Categories(),
	})
}

// HandleCreate registers a new ETF after validating it against market data
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Ticker) == "" {
		h.writeError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	ticker := yahoo.NormalizeTicker(req.Ticker)
	h.log.Info().Str("ticker", ticker).Msg("ETF create requested")

	existing, err := h.repo.GetByTicker(ticker)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		h.writeError(w, http.StatusBadRequest, "ETF is already registered")
		return
	}

	info, err := h.market.GetFundInfo(r.Context(), ticker)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Fund info lookup failed")
		h.writeError(w, http.StatusNotFound, "ETF information not found")
		return
	}

	name := info.Name
	if name == "" {
		name = req.Name
	}
	market := req.Market
	if market == "" {
		market = info.Exchange
	}
	category := req.Category
	if category == "" {
		category = info.Category
	}

	created, err := h.repo.Create(ticker, name, market, category)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info().Str("ticker", ticker).Str("name", created.Name).Msg("ETF registered")
	h.writeJSON(w, http.StatusCreated, created)
}

// HandleGetAll returns all registered ETFs
func (h *Handler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	etfs, err := h.repo.GetAll()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if etfs == nil {
		etfs = []ETF{}
	}
	h.writeJSON(w, http.StatusOK, etfs)
}

// HandleGetInfo returns a single registered ETF
func (h *Handler) HandleGetInfo(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	found, err := h.repo.GetByTicker(ticker)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if found == nil {
		h.writeError(w, http.StatusNotFound, "ETF not found")
		return
	}

	h.writeJSON(w, http.StatusOK, found)
}

// HandleDelete removes a registered ETF and its holdings
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	deleted, err := h.repo.Delete(ticker)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		h.writeError(w, http.StatusNotFound, "ETF not found")
		return
	}

	h.log.Info().Str("ticker", ticker).Msg("ETF deleted")
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "ETF deleted"})
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
