package analytics

// Result holds the performance metrics computed for a single fund.
// It is produced fresh per request and never persisted.
type Result struct {
	TotalReturn    float64 `json:"total_return"`    // Simple return over the period (%)
	CAGR           float64 `json:"cagr"`            // Compound annual growth rate (%)
	Volatility     float64 `json:"volatility"`      // Annualized std dev of daily returns (%)
	SharpeRatio    float64 `json:"sharpe_ratio"`    // Excess return per unit of volatility (dimensionless)
	MaxDrawdown    float64 `json:"max_drawdown"`    // Largest peak-to-trough decline (%, positive)
	DividendYield  float64 `json:"dividend_yield"`  // Trailing 12-month dividends / current price (%)
	TotalDividends float64 `json:"total_dividends"` // Sum of all dividends in the series (currency units)
}
