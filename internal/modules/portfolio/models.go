package portfolio

import (
	"time"

	"github.com/etfolio/etfolio/internal/modules/charts"
	"github.com/etfolio/etfolio/internal/modules/correlation"
	"github.com/etfolio/etfolio/internal/modules/etf"
)

// Holding is a position in a registered ETF
type Holding struct {
	ID           int64   `json:"id"`
	ETFID        int64   `json:"etf_id"`
	Quantity     float64 `json:"quantity"`
	AveragePrice float64 `json:"average_price"`
	PurchaseDate string  `json:"purchase_date"` // ISO datetime
	CreatedAt    string  `json:"created_at"`    // ISO datetime
	UpdatedAt    string  `json:"updated_at"`    // ISO datetime
	ETF          etf.ETF `json:"etf"`
}

// CreateHoldingRequest is the payload for registering a new holding
type CreateHoldingRequest struct {
	ETFID        int64      `json:"etf_id"`
	Quantity     float64    `json:"quantity"`
	AveragePrice float64    `json:"average_price"`
	PurchaseDate *time.Time `json:"purchase_date"`
}

// UpdateHoldingRequest is the payload for adjusting a holding. Nil fields
// keep their current value.
type UpdateHoldingRequest struct {
	Quantity     *float64 `json:"quantity"`
	AveragePrice *float64 `json:"average_price"`
}

// Summary is the portfolio valuation at a point in time
type Summary struct {
	TotalInvestment float64   `json:"total_investment"`
	CurrentValue    float64   `json:"current_value"`
	TotalReturn     float64   `json:"total_return"`
	ReturnRate      float64   `json:"return_rate"`
	TotalDividends  float64   `json:"total_dividends"`
	Holdings        []Holding `json:"holdings"`
}

// Snapshot is one persisted end-of-day portfolio valuation
type Snapshot struct {
	Date            string  `json:"date"`
	TotalInvestment float64 `json:"total_investment"`
	TotalValue      float64 `json:"total_value"`
	HoldingsCount   int     `json:"holdings_count"`
}

// CorrelationGroup is the per-market result of the portfolio correlation
// analysis. Exactly one of the matrix fields, Message or Error is set
// depending on how far the analysis got.
type CorrelationGroup struct {
	Name              string                             `json:"name"`
	ETFCount          int                                `json:"etf_count"`
	ETFNames          []string                           `json:"etf_names,omitempty"`
	CorrelationMatrix map[string]map[string]float64      `json:"correlation_matrix,omitempty"`
	Heatmap           *charts.Figure                     `json:"heatmap,omitempty"`
	Diversification   *correlation.DiversificationReport `json:"diversification,omitempty"`
	Metadata          *correlation.Metadata              `json:"metadata,omitempty"`
	Message           string                             `json:"message,omitempty"`
	Error             string                             `json:"error,omitempty"`
}

// CorrelationResponse groups the analysis by market
type CorrelationResponse struct {
	Groups    []CorrelationGroup `json:"groups"`
	TotalETFs int                `json:"total_etfs"`
	Period    string             `json:"period"`
}
