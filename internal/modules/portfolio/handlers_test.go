package portfolio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
	"github.com/etfolio/etfolio/internal/modules/charts"
	"github.com/etfolio/etfolio/internal/modules/correlation"
)

// fakeHistory serves canned daily price series to the correlation engine
type fakeHistory struct {
	series map[string][]yahoo.PricePoint
}

func (f *fakeHistory) GetPriceHistory(ctx context.Context, ticker, period string) ([]yahoo.PricePoint, error) {
	return f.series[ticker], nil
}

// dailySeries builds one close per weekday-agnostic calendar day
func dailySeries(closes ...float64) []yahoo.PricePoint {
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	prices := make([]yahoo.PricePoint, len(closes))
	for i, close := range closes {
		prices[i] = yahoo.PricePoint{Date: base.AddDate(0, 0, i), Close: close}
	}
	return prices
}

func newCorrelationRouter(t *testing.T, f *fixture, history *fakeHistory) chi.Router {
	t.Helper()

	h := NewHandler(
		f.repo,
		f.etfRepo,
		f.service,
		correlation.NewService(history, 4, zerolog.Nop()),
		charts.NewService(zerolog.Nop()),
		zerolog.Nop(),
	)

	r := chi.NewRouter()
	r.Get("/correlation", h.HandleGetCorrelation)
	return r
}

func getCorrelation(t *testing.T, router chi.Router, target string) (*httptest.ResponseRecorder, CorrelationResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body CorrelationResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHandleGetCorrelationGroupFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)

	// Two Korean funds with too few overlapping days to correlate
	_, err := f.etfRepo.Create("069500.KS", "KODEX 200", "KR", "")
	require.NoError(t, err)
	_, err = f.etfRepo.Create("360750.KS", "TIGER S&P500", "KR", "")
	require.NoError(t, err)

	history := &fakeHistory{series: map[string][]yahoo.PricePoint{
		"069500.KS": dailySeries(100, 101, 102),
		"360750.KS": dailySeries(200, 202, 204),
	}}
	router := newCorrelationRouter(t, f, history)

	rec, body := getCorrelation(t, router, "/correlation")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, body.TotalETFs)
	assert.Equal(t, "1y", body.Period)
	require.Len(t, body.Groups, 1)

	group := body.Groups[0]
	assert.Equal(t, "Korean ETFs", group.Name)
	assert.Equal(t, 2, group.ETFCount)
	assert.Contains(t, group.Error, "insufficient data")
	assert.Nil(t, group.CorrelationMatrix)
	assert.Nil(t, group.Heatmap)
}

func TestHandleGetCorrelationMixedGroups(t *testing.T) {
	f := newFixture(t)

	// The Korean group fails while the US group analyzes cleanly
	for _, e := range []struct{ ticker, name string }{
		{"069500.KS", "KODEX 200"},
		{"360750.KS", "TIGER S&P500"},
		{"SPY", "SPDR S&P 500"},
		{"QQQ", "Invesco QQQ"},
	} {
		_, err := f.etfRepo.Create(e.ticker, e.name, "", "")
		require.NoError(t, err)
	}

	closes := []float64{100, 102, 101, 104, 103, 106, 108, 107, 110, 112, 111}
	history := &fakeHistory{series: map[string][]yahoo.PricePoint{
		"SPY": dailySeries(closes...),
		"QQQ": dailySeries(closes...),
	}}
	router := newCorrelationRouter(t, f, history)

	rec, body := getCorrelation(t, router, "/correlation?period=6mo")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, body.TotalETFs)
	assert.Equal(t, "6mo", body.Period)
	require.Len(t, body.Groups, 2)

	korean := body.Groups[0]
	assert.Equal(t, "Korean ETFs", korean.Name)
	assert.NotEmpty(t, korean.Error)

	us := body.Groups[1]
	assert.Equal(t, "US ETFs", us.Name)
	assert.Empty(t, us.Error)
	assert.Equal(t, []string{"Invesco QQQ", "SPDR S&P 500"}, us.ETFNames)
	require.NotNil(t, us.CorrelationMatrix)
	assert.InDelta(t, 1.0, us.CorrelationMatrix["SPY"]["QQQ"], 1e-9)
	assert.NotNil(t, us.Heatmap)
	assert.NotNil(t, us.Diversification)
	require.NotNil(t, us.Metadata)
	assert.Equal(t, 2, us.Metadata.TotalTickers)
}

func TestHandleGetCorrelationSingleMemberGroup(t *testing.T) {
	f := newFixture(t)

	_, err := f.etfRepo.Create("069500.KS", "KODEX 200", "KR", "")
	require.NoError(t, err)

	router := newCorrelationRouter(t, f, &fakeHistory{})

	rec, body := getCorrelation(t, router, "/correlation")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body.Groups, 1)

	group := body.Groups[0]
	assert.Equal(t, "Korean ETFs", group.Name)
	assert.Equal(t, 1, group.ETFCount)
	assert.Equal(t, []string{"KODEX 200"}, group.ETFNames)
	assert.Contains(t, group.Message, "Nothing to compare against")
	assert.Empty(t, group.Error)
}

func TestHandleGetCorrelationNoETFs(t *testing.T) {
	f := newFixture(t)
	router := newCorrelationRouter(t, f, &fakeHistory{})

	rec, _ := getCorrelation(t, router, "/correlation")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetCorrelationInvalidPeriod(t *testing.T) {
	f := newFixture(t)
	router := newCorrelationRouter(t, f, &fakeHistory{})

	rec, _ := getCorrelation(t, router, "/correlation?period=yesterday")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
