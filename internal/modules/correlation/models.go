package correlation

import "errors"

// ErrInsufficientData signals that too few tickers or too few overlapping
// trading days were available to produce a meaningful matrix
var ErrInsufficientData = errors.New("insufficient data for correlation analysis")

// Matrix is a symmetric correlation matrix over an ordered ticker set
type Matrix struct {
	Tickers []string
	Values  [][]float64
}

// At returns the correlation between two tickers by index
func (m *Matrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Size returns the number of tickers in the matrix
func (m *Matrix) Size() int {
	return len(m.Tickers)
}

// ToMap renders the matrix as nested ticker-keyed maps for JSON responses
func (m *Matrix) ToMap() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(m.Tickers))
	for i, row := range m.Tickers {
		inner := make(map[string]float64, len(m.Tickers))
		for j, col := range m.Tickers {
			inner[col] = m.Values[i][j]
		}
		out[row] = inner
	}
	return out
}

// Metadata describes the data the matrix was computed from
type Metadata struct {
	TotalTickers      int      `json:"total_tickers"`
	ValidTickers      []string `json:"valid_tickers"`
	FailedTickers     []string `json:"failed_tickers"`
	DataPoints        int      `json:"data_points"`
	Period            string   `json:"period"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	CommonTradingDays int      `json:"common_trading_days"`
}

// Pair is a pair of tickers whose returns move closely together
type Pair struct {
	ETF1        string  `json:"etf1"`
	ETF2        string  `json:"etf2"`
	Correlation float64 `json:"correlation"`
}

// DiversificationReport grades how spread out a portfolio is based on
// the average pairwise correlation of its holdings
type DiversificationReport struct {
	Score              int     `json:"diversification_score"`
	Rating             string  `json:"rating"`
	Advice             string  `json:"advice"`
	AverageCorrelation float64 `json:"average_correlation"`
	MaxCorrelation     float64 `json:"max_correlation"`
	MinCorrelation     float64 `json:"min_correlation"`
	HighCorrelation    []Pair  `json:"high_correlation_pairs"`
	TotalPairs         int     `json:"total_pairs"`
}
