// Package yahoo is the market data gateway. It wraps the Yahoo Finance
// quote and chart APIs and returns normalized price, dividend and fund
// metadata series. Every call may fail or come back empty; callers are
// expected to tolerate both.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	quoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"
	chartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// ValidPeriods are the range labels accepted by the chart API.
var ValidPeriods = map[string]bool{
	"1d": true, "5d": true, "1mo": true, "3mo": true, "6mo": true,
	"1y": true, "2y": true, "5y": true, "10y": true, "ytd": true, "max": true,
}

// koreanETFNames maps well-known Korean ETF names to their Yahoo tickers,
// so users can register by name instead of numeric code.
var koreanETFNames = map[string]string{
	"KODEX 200":        "069500.KS",
	"KODEX S&P500":     "360750.KS",
	"KODEX 미국나스닥100TR": "379800.KS",
	"TIGER 미국배당귀족":     "458730.KS",
	"TIGER 미국나스닥100":   "133690.KS",
}

// Client is a Yahoo Finance API client
type Client struct {
	client *http.Client
	log    zerolog.Logger
}

// NewClient creates a new Yahoo Finance client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "yahoo").Logger(),
	}
}

// NormalizeTicker converts a user-supplied identifier to a Yahoo ticker.
// Known Korean ETF names map to their .KS code; bare KRX codes (6 digits)
// get a .KS suffix; everything else passes through uppercased.
func NormalizeTicker(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if mapped, ok := koreanETFNames[symbol]; ok {
		return mapped
	}

	upper := strings.ToUpper(symbol)
	if len(upper) == 6 && isDigits(upper) {
		return upper + ".KS"
	}
	return upper
}

// IsKorean reports whether a ticker trades on the Korean exchange
func IsKorean(ticker string) bool {
	return strings.HasSuffix(ticker, ".KS") || strings.HasSuffix(ticker, ".KQ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// GetPriceHistory fetches daily OHLCV data for the given period label
// (1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max).
func (c *Client) GetPriceHistory(ctx context.Context, ticker, period string) ([]PricePoint, error) {
	if !ValidPeriods[period] {
		return nil, fmt.Errorf("invalid period %q", period)
	}

	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("range", period)

	body, err := c.get(ctx, chartURL+url.PathEscape(ticker)+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price history: %w", err)
	}

	chart, err := parseChart(body)
	if err != nil {
		return nil, err
	}

	prices := chart.pricePoints()
	c.log.Debug().
		Str("ticker", ticker).
		Str("period", period).
		Int("count", len(prices)).
		Msg("Fetched price history")

	return prices, nil
}

// GetDividends fetches the dividend history of roughly the last five years,
// oldest first. A fund that pays no dividends yields an empty slice, not an
// error.
func (c *Client) GetDividends(ctx context.Context, ticker string) ([]Dividend, error) {
	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("range", "5y")
	params.Add("events", "div")

	body, err := c.get(ctx, chartURL+url.PathEscape(ticker)+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dividends: %w", err)
	}

	chart, err := parseChart(body)
	if err != nil {
		return nil, err
	}

	dividends := chart.dividends()
	sort.Slice(dividends, func(i, j int) bool {
		return dividends[i].Date.Before(dividends[j].Date)
	})

	c.log.Debug().
		Str("ticker", ticker).
		Int("count", len(dividends)).
		Msg("Fetched dividends")

	return dividends, nil
}

// GetCurrentPrice gets the latest market price with retry logic. Yahoo
// occasionally returns a zero price on the first attempt.
func (c *Client) GetCurrentPrice(ctx context.Context, ticker string) (float64, error) {
	const maxRetries = 3

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		info, err := c.getQuoteInfo(ctx, ticker)
		if err != nil {
			lastErr = err
		} else {
			if price := getFloat64(info, "regularMarketPrice"); price > 0 {
				return price, nil
			}
			lastErr = fmt.Errorf("quote for %s has no usable price", ticker)
		}

		if attempt < maxRetries-1 {
			wait := time.Duration(1<<uint(attempt)) * time.Second // exponential backoff
			c.log.Warn().Err(lastErr).
				Str("ticker", ticker).
				Int("attempt", attempt+1).
				Dur("wait", wait).
				Msg("Failed to get price, retrying")

			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(wait):
			}
		}
	}

	return 0, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

// GetFundInfo fetches fund metadata (name, category, exchange, total assets)
func (c *Client) GetFundInfo(ctx context.Context, ticker string) (*FundInfo, error) {
	info, err := c.getQuoteInfo(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to get fund info: %w", err)
	}

	name := getString(info, "longName")
	if name == "" {
		name = getString(info, "shortName")
	}
	if name == "" {
		name = ticker
	}

	return &FundInfo{
		Ticker:      ticker,
		Name:        name,
		Category:    getString(info, "category"),
		Currency:    getString(info, "currency"),
		Exchange:    getString(info, "fullExchangeName"),
		TotalAssets: getFloat64(info, "totalAssets"),
	}, nil
}

// getQuoteInfo fetches quote information from the Yahoo Finance quote API
func (c *Client) getQuoteInfo(ctx context.Context, ticker string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Add("symbols", ticker)
	params.Add("fields", "symbol,regularMarketPrice,currency,fullExchangeName,category,"+
		"totalAssets,quoteType,longName,shortName")

	body, err := c.get(ctx, quoteURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var result struct {
		QuoteResponse struct {
			Result []map[string]interface{} `json:"result"`
			Error  interface{}              `json:"error"`
		} `json:"quoteResponse"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote API error: %v", result.QuoteResponse.Error)
	}
	if len(result.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote data returned for %s", ticker)
	}

	return result.QuoteResponse.Result[0], nil
}

// get performs a GET request with browser-like headers
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Yahoo Finance API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// chartResult mirrors the subset of the v8 chart API response we consume
type chartResult struct {
	Timestamp []int64 `json:"timestamp"`
	Events    struct {
		Dividends map[string]struct {
			Amount float64 `json:"amount"`
			Date   int64   `json:"date"`
		} `json:"dividends"`
	} `json:"events"`
	Indicators struct {
		Quote []struct {
			Open   []float64 `json:"open"`
			High   []float64 `json:"high"`
			Low    []float64 `json:"low"`
			Close  []float64 `json:"close"`
			Volume []int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

func parseChart(body []byte) (*chartResult, error) {
	var result struct {
		Chart struct {
			Result []chartResult `json:"result"`
			Error  interface{}   `json:"error"`
		} `json:"chart"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %v", result.Chart.Error)
	}
	if len(result.Chart.Result) == 0 {
		return &chartResult{}, nil
	}

	return &result.Chart.Result[0], nil
}

// pricePoints converts the columnar chart payload to ordered price points,
// skipping the null rows Yahoo sometimes emits.
func (cr *chartResult) pricePoints() []PricePoint {
	if len(cr.Indicators.Quote) == 0 {
		return nil
	}
	quote := cr.Indicators.Quote[0]

	var prices []PricePoint
	for i := range cr.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			continue
		}
		if quote.Open[i] == 0 && quote.High[i] == 0 && quote.Low[i] == 0 && quote.Close[i] == 0 {
			continue
		}

		volume := int64(0)
		if i < len(quote.Volume) {
			volume = quote.Volume[i]
		}

		prices = append(prices, PricePoint{
			Date:   time.Unix(cr.Timestamp[i], 0).UTC(),
			Open:   quote.Open[i],
			High:   quote.High[i],
			Low:    quote.Low[i],
			Close:  quote.Close[i],
			Volume: volume,
		})
	}

	return prices
}

func (cr *chartResult) dividends() []Dividend {
	var dividends []Dividend
	for _, d := range cr.Events.Dividends {
		if d.Amount <= 0 {
			continue
		}
		dividends = append(dividends, Dividend{
			Date:   time.Unix(d.Date, 0).UTC(),
			Amount: d.Amount,
		})
	}
	return dividends
}

// Helper functions to safely extract values from the quote map

func getFloat64(m map[string]interface{}, key string) float64 {
	if val, ok := m[key]; ok && val != nil {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		}
	}
	return 0
}

func getString(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok && val != nil {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}
