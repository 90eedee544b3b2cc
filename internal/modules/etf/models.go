package etf

// ETF represents a registered fund
type ETF struct {
	ID        int64  `json:"id"`
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	Market    string `json:"market,omitempty"`
	Category  string `json:"category,omitempty"`
	CreatedAt string `json:"created_at"` // ISO datetime
	UpdatedAt string `json:"updated_at"` // ISO datetime
}

// CreateRequest is the payload for registering an ETF
type CreateRequest struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name,omitempty"`
	Market   string `json:"market,omitempty"`
	Category string `json:"category,omitempty"`
}

// CatalogEntry is one row of the browsable ETF catalog. Catalog entries
// are reference data, not registered ETFs.
type CatalogEntry struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Market   string `json:"market"`
}
