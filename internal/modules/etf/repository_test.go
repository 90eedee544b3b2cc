package etf

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etfolio/etfolio/internal/database"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())

	return NewRepository(db.Conn(), zerolog.Nop())
}

func TestRepositoryCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)

	created, err := repo.Create("spy", "SPDR S&P 500 ETF Trust", "US", "US Large Cap")
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "SPY", created.Ticker, "tickers are stored uppercased")
	assert.Equal(t, "SPDR S&P 500 ETF Trust", created.Name)
	assert.NotZero(t, created.ID)

	found, err := repo.GetByTicker("SPY")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "US Large Cap", found.Category)
}

func TestRepositoryDuplicateTicker(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Create("QQQ", "Invesco QQQ Trust", "US", "US Technology")
	require.NoError(t, err)

	_, err = repo.Create("QQQ", "Invesco QQQ Trust", "US", "US Technology")
	assert.Error(t, err, "ticker column is unique")
}

func TestRepositoryGetByTickerMissing(t *testing.T) {
	repo := newTestRepo(t)

	found, err := repo.GetByTicker("069500.KS")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepositoryGetAllOrdered(t *testing.T) {
	repo := newTestRepo(t)

	for _, ticker := range []string{"VTI", "AGG", "QQQ"} {
		_, err := repo.Create(ticker, ticker, "US", "")
		require.NoError(t, err)
	}

	etfs, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, etfs, 3)

	assert.Equal(t, "AGG", etfs[0].Ticker)
	assert.Equal(t, "QQQ", etfs[1].Ticker)
	assert.Equal(t, "VTI", etfs[2].Ticker)
}

func TestRepositoryDelete(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Create("VOO", "Vanguard S&P 500 ETF", "US", "US Large Cap")
	require.NoError(t, err)

	deleted, err := repo.Delete("voo")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete("VOO")
	require.NoError(t, err)
	assert.False(t, deleted, "second delete matches nothing")
}
