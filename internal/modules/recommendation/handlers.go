package recommendation

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

// Handler handles recommendation HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new recommendation handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "recommendation").Logger(),
	}
}

// HandleGetRecommendations returns ranked fund picks per investor profile
func (h *Handler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "all"
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "5y"
	}

	limit := 5
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	recommendations, err := h.service.Recommend(r.Context(), category, period, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Recommendation run failed")
		h.writeError(w, http.StatusBadGateway, "Could not analyze any fund in the universe")
		return
	}

	h.writeJSON(w, http.StatusOK, recommendations)
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
