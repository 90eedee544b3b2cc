package dictionary

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultSearchLimit = 20

// Handler serves the glossary endpoints
type Handler struct {
	log zerolog.Logger
}

func NewHandler(logger zerolog.Logger) *Handler {
	return &Handler{
		log: logger.With().Str("handler", "dictionary").Logger(),
	}
}

// HandleSearch handles GET /api/dictionary/search?q=<query>&limit=<n>
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	results := Search(query, limit)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
		"total":   len(results),
	})
}

// HandleTerms handles GET /api/dictionary/terms
func (h *Handler) HandleTerms(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": Categories(),
		"terms":      AllTerms(),
	})
}

// HandleCategories handles GET /api/dictionary/categories
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": Categories(),
	})
}

// HandleCategory handles GET /api/dictionary/categories/{category}
func (h *Handler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	terms := TermsByCategory(category)
	if terms == nil {
		h.writeError(w, http.StatusNotFound,
			fmt.Sprintf("Unknown category. Available categories: %s", strings.Join(Categories(), ", ")))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"terms":    terms,
		"total":    len(terms),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
