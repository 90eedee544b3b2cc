package yahoo

import "time"

// PricePoint represents a single daily OHLCV data point. Close is the
// canonical value for all return calculations downstream.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Dividend represents a single cash distribution per share
type Dividend struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// FundInfo contains basic fund metadata from the quote API
type FundInfo struct {
	Ticker      string  `json:"ticker"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	Exchange    string  `json:"exchange,omitempty"`
	TotalAssets float64 `json:"total_assets,omitempty"`
}

// Closes extracts the close-price column from a price series
func Closes(prices []PricePoint) []float64 {
	closes := make([]float64, len(prices))
	for i, p := range prices {
		closes[i] = p.Close
	}
	return closes
}
