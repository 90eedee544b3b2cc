package dictionary

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMatchesKoreanTerm(t *testing.T) {
	// "물타기" is a term itself and appears in the 불타기 description
	results := Search("물타기", 20)

	require.Len(t, results, 2)
	assert.Equal(t, "물타기", results[0].Term)
	assert.Equal(t, "Averaging Down", results[0].English)
	assert.Equal(t, "은어/줄임말", results[0].Category)
	assert.Equal(t, "불타기", results[1].Term)
}

func TestSearchMatchesEnglishCaseInsensitive(t *testing.T) {
	results := Search("sharpe", 20)

	require.Len(t, results, 1)
	assert.Equal(t, "샤프 비율", results[0].Term)
	assert.Equal(t, "지표", results[0].Category)
}

func TestSearchMatchesDescription(t *testing.T) {
	// "순자산가치" appears in the 괴리율 and NAV descriptions
	results := Search("순자산가치", 20)

	require.Len(t, results, 2)
	assert.Equal(t, "괴리율", results[0].Term)
	assert.Equal(t, "NAV", results[1].Term)
}

func TestSearchRespectsLimit(t *testing.T) {
	all := Search("etf", 100)
	require.Greater(t, len(all), 3)

	limited := Search("etf", 3)
	assert.Len(t, limited, 3)
	assert.Equal(t, all[:3], limited)
}

func TestSearchNoMatches(t *testing.T) {
	results := Search("zzzzz", 20)
	assert.Empty(t, results)
}

func TestCategoriesOrder(t *testing.T) {
	assert.Equal(t, []string{"일반 용어", "은어/줄임말", "ETF 용어", "지표", "트렌드/밈"}, Categories())
}

func TestTermsByCategory(t *testing.T) {
	terms := TermsByCategory("지표")
	require.NotEmpty(t, terms)
	assert.Equal(t, "CAGR", terms[0].Term)
	assert.NotEmpty(t, terms[0].Formula)

	assert.Nil(t, TermsByCategory("없는 카테고리"))
}

func newTestRouter() chi.Router {
	h := NewHandler(zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/search", h.HandleSearch)
	r.Get("/terms", h.HandleTerms)
	r.Get("/categories", h.HandleCategories)
	r.Get("/categories/{category}", h.HandleCategory)
	return r
}

func TestHandleSearch(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/search?q=패닉", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Query   string `json:"query"`
		Results []Term `json:"results"`
		Total   int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "패닉", body.Query)
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "패닉", body.Results[0].Term)
}

func TestHandleSearchMissingQuery(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearchBadLimit(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/search?q=etf&limit=0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTerms(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/terms", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Categories []string          `json:"categories"`
		Terms      map[string][]Term `json:"terms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Categories, 5)
	assert.Len(t, body.Terms, 5)
}

func TestHandleCategories(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, Categories(), body.Categories)
}

func TestHandleCategory(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/categories/"+"지표", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Category string `json:"category"`
		Terms    []Term `json:"terms"`
		Total    int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "지표", body.Category)
	assert.Equal(t, len(body.Terms), body.Total)
}

func TestHandleCategoryNotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/categories/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
