package etf

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Curated Korean ETF universe. Maintained by hand until a KRX listing
// feed replaces it.
var koreanCatalog = []CatalogEntry{
	// KODEX core index
	{Ticker: "069500.KS", Name: "KODEX 200", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "114800.KS", Name: "KODEX 인버스", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "122630.KS", Name: "KODEX 레버리지", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "229200.KS", Name: "KODEX 코스닥150", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "148020.KS", Name: "KODEX 200선물인버스2X", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "251340.KS", Name: "KODEX 코스닥150선물인버스", Category: "Korean Equity", Market: "KRX"},

	// KODEX overseas
	{Ticker: "360750.KS", Name: "KODEX 미국S&P500", Category: "Global Equity", Market: "KRX"},
	{Ticker: "379800.KS", Name: "KODEX 미국나스닥100TR", Category: "Global Equity", Market: "KRX"},
	{Ticker: "261240.KS", Name: "KODEX 미국채울트라30년선물", Category: "Global Bond", Market: "KRX"},

	// TIGER
	{Ticker: "133690.KS", Name: "TIGER 미국나스닥100", Category: "Global Equity", Market: "KRX"},
	{Ticker: "143850.KS", Name: "TIGER 200", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "139260.KS", Name: "TIGER 200 IT", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "139270.KS", Name: "TIGER 200 건설", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "098560.KS", Name: "TIGER 미국S&P500", Category: "Global Equity", Market: "KRX"},
	{Ticker: "458730.KS", Name: "TIGER 미국배당귀족", Category: "Global Equity", Market: "KRX"},
	{Ticker: "360200.KS", Name: "TIGER 미국채10년선물", Category: "Global Bond", Market: "KRX"},
	{Ticker: "381170.KS", Name: "TIGER 차이나항셍테크", Category: "Global Equity", Market: "KRX"},
	{Ticker: "329200.KS", Name: "TIGER 유로스탁스배당30", Category: "Global Equity", Market: "KRX"},

	// ARIRANG and KBSTAR
	{Ticker: "152100.KS", Name: "ARIRANG 200", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "120660.KS", Name: "ARIRANG 고배당주", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "091160.KS", Name: "KBSTAR 200", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "148070.KS", Name: "KBSTAR 미국S&P500", Category: "Global Equity", Market: "KRX"},

	// Sector and theme
	{Ticker: "091180.KS", Name: "KODEX 자동차", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "091170.KS", Name: "KODEX 은행", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "229640.KS", Name: "KODEX 바이오", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "244580.KS", Name: "KODEX 2차전지산업", Category: "Korean Equity", Market: "KRX"},
	{Ticker: "371460.KS", Name: "TIGER 반도체", Category: "Korean Equity", Market: "KRX"},

	// Bonds and commodities
	{Ticker: "140700.KS", Name: "KODEX 국고채3년", Category: "Korean Bond", Market: "KRX"},
	{Ticker: "091230.KS", Name: "KODEX 단기채권", Category: "Korean Bond", Market: "KRX"},
	{Ticker: "132030.KS", Name: "KODEX 골드선물(H)", Category: "Commodities", Market: "KRX"},
	{Ticker: "130680.KS", Name: "TIGER 원유선물Enhanced(H)", Category: "Commodities", Market: "KRX"},
}

// Popular US ETFs, hardcoded as a fallback for when no NASDAQ listing
// feed is wired up.
var usCatalog = []CatalogEntry{
	{Ticker: "SPY", Name: "SPDR S&P 500 ETF Trust", Category: "US Large Cap", Market: "US"},
	{Ticker: "QQQ", Name: "Invesco QQQ Trust", Category: "US Technology", Market: "US"},
	{Ticker: "VOO", Name: "Vanguard S&P 500 ETF", Category: "US Large Cap", Market: "US"},
	{Ticker: "VTI", Name: "Vanguard Total Stock Market ETF", Category: "US Total Market", Market: "US"},
	{Ticker: "IVV", Name: "iShares Core S&P 500 ETF", Category: "US Large Cap", Market: "US"},
	{Ticker: "VEA", Name: "Vanguard FTSE Developed Markets ETF", Category: "Developed Markets", Market: "US"},
	{Ticker: "IEFA", Name: "iShares Core MSCI EAFE ETF", Category: "Developed Markets", Market: "US"},
	{Ticker: "AGG", Name: "iShares Core U.S. Aggregate Bond ETF", Category: "US Bond", Market: "US"},
	{Ticker: "VWO", Name: "Vanguard FTSE Emerging Markets ETF", Category: "Emerging Markets", Market: "US"},
	{Ticker: "GLD", Name: "SPDR Gold Trust", Category: "Commodities", Market: "US"},
	{Ticker: "BND", Name: "Vanguard Total Bond Market ETF", Category: "US Bond", Market: "US"},
	{Ticker: "VIG", Name: "Vanguard Dividend Appreciation ETF", Category: "US Dividend", Market: "US"},
	{Ticker: "SCHD", Name: "Schwab U.S. Dividend Equity ETF", Category: "US Dividend", Market: "US"},
	{Ticker: "VYM", Name: "Vanguard High Dividend Yield ETF", Category: "US Dividend", Market: "US"},
	{Ticker: "VNQ", Name: "Vanguard Real Estate ETF", Category: "US Real Estate", Market: "US"},
}

// Catalog serves the browsable ETF universe. Entries are rebuilt through
// the loader when the cache expires, so a future live listing source can
// be swapped in without touching callers.
type Catalog struct {
	mu      sync.Mutex
	entries []CatalogEntry
	loaded  time.Time
	ttl     time.Duration
	load    func() []CatalogEntry
	now     func() time.Time
	log     zerolog.Logger
}

// NewCatalog creates a catalog with the given cache TTL
func NewCatalog(ttl time.Duration, log zerolog.Logger) *Catalog {
	return &Catalog{
		ttl:  ttl,
		load: loadCuratedEntries,
		now:  time.Now,
		log:  log.With().Str("component", "etf_catalog").Logger(),
	}
}

func loadCuratedEntries() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(koreanCatalog)+len(usCatalog))
	entries = append(entries, koreanCatalog...)
	entries = append(entries, usCatalog...)
	return entries
}

// All returns every catalog entry, refreshing the cache if it expired
func (c *Catalog) All() []CatalogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries == nil || c.now().Sub(c.loaded) > c.ttl {
		c.refreshLocked()
	}

	return c.entries
}

// Refresh rebuilds the catalog regardless of cache age
func (c *Catalog) Refresh() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshLocked()
	return len(c.entries)
}

func (c *Catalog) refreshLocked() {
	c.entries = c.load()
	c.loaded = c.now()
	c.log.Info().Int("entries", len(c.entries)).Msg("ETF catalog refreshed")
}

// Filter returns entries matching the category (exact) and search term
// (case-insensitive substring of ticker or name). Empty arguments match
// everything.
func (c *Catalog) Filter(category, search string) []CatalogEntry {
	all := c.All()

	filtered := make([]CatalogEntry, 0, len(all))
	search = strings.ToLower(search)
	for _, entry := range all {
		if category != "" && entry.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(entry.Ticker), search) &&
			!strings.Contains(strings.ToLower(entry.Name), search) {
			continue
		}
		filtered = append(filtered, entry)
	}

	return filtered
}

// Categories returns the sorted set of distinct categories
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	for _, entry := range c.All() {
		seen[entry.Category] = true
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return categories
}

// Lookup returns the catalog entry for a ticker, if present
func (c *Catalog) Lookup(ticker string) (CatalogEntry, bool) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	for _, entry := range c.All() {
		if entry.Ticker == ticker {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}
