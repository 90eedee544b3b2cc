package etf

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Repository handles ETF database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new ETF repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "etf").Logger(),
	}
}

// Create inserts a new ETF and returns it with its assigned ID
func (r *Repository) Create(ticker, name, market, category string) (*ETF, error) {
	query := `
		INSERT INTO etfs (ticker, name, market, category)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, normalize(ticker), name, market, category)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ETF: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted ETF id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns an ETF by primary key, or nil if not found
func (r *Repository) GetByID(id int64) (*ETF, error) {
	row := r.db.QueryRow(
		"SELECT id, ticker, name, market, category, created_at, updated_at FROM etfs WHERE id = ?", id)
	return scanETF(row)
}

// GetByTicker returns an ETF by ticker, or nil if not found
func (r *Repository) GetByTicker(ticker string) (*ETF, error) {
	row := r.db.QueryRow(
		"SELECT id, ticker, name, market, category, created_at, updated_at FROM etfs WHERE ticker = ?",
		normalize(ticker))
	return scanETF(row)
}

// GetAll returns all registered ETFs ordered by ticker
func (r *Repository) GetAll() ([]ETF, error) {
	rows, err := r.db.Query(
		"SELECT id, ticker, name, market, category, created_at, updated_at FROM etfs ORDER BY ticker")
	if err != nil {
		return nil, fmt.Errorf("failed to query ETFs: %w", err)
	}
	defer rows.Close()

	var etfs []ETF
	for rows.Next() {
		var e ETF
		var market, category sql.NullString

		if err := rows.Scan(&e.ID, &e.Ticker, &e.Name, &market, &category, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ETF: %w", err)
		}
		e.Market = market.String
		e.Category = category.String

		etfs = append(etfs, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ETFs: %w", err)
	}

	return etfs, nil
}

// Delete removes an ETF by ticker. Holdings referencing it are removed by
// the foreign key cascade. Returns false if no row matched.
func (r *Repository) Delete(ticker string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM etfs WHERE ticker = ?", normalize(ticker))
	if err != nil {
		return false, fmt.Errorf("failed to delete ETF: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func scanETF(row *sql.Row) (*ETF, error) {
	var e ETF
	var market, category sql.NullString

	err := row.Scan(&e.ID, &e.Ticker, &e.Name, &market, &category, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // ETF not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan ETF: %w", err)
	}

	e.Market = market.String
	e.Category = category.String
	return &e, nil
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
