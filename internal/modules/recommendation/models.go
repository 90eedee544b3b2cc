package recommendation

// Analysis is the per-fund metric set the rankings are computed from
type Analysis struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"current_price"`
	CAGR          float64 `json:"cagr"`
	Volatility    float64 `json:"volatility"`
	SharpeRatio   float64 `json:"sharpe_ratio"`
	MaxDrawdown   float64 `json:"max_drawdown"`
	DividendYield float64 `json:"dividend_yield"`
	TotalReturn   float64 `json:"total_return"`
	DataPoints    int     `json:"data_points"`
	AvgVolume     float64 `json:"avg_volume"`
	TotalAssets   float64 `json:"total_assets"`
}

// Metadata describes a recommendation run
type Metadata struct {
	TotalAnalyzed  int    `json:"total_analyzed"`
	TotalRequested int    `json:"total_requested"`
	Period         string `json:"period"`
	Category       string `json:"category"`
	AnalyzedAt     string `json:"analyzed_at"`
}

// Recommendations holds the ranked fund lists, one per investor profile
type Recommendations struct {
	HighReturn       []Analysis `json:"high_return"`
	Stable           []Analysis `json:"stable"`
	HighDividend     []Analysis `json:"high_dividend"`
	Balanced         []Analysis `json:"balanced"`
	MonthlyInvesting []Analysis `json:"monthly_investing"`
	Popular          []Analysis `json:"popular"`
	HighAUM          []Analysis `json:"high_aum"`
	Metadata         Metadata   `json:"metadata"`
}
