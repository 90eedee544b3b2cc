package portfolio

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles holding and snapshot database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new portfolio repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "portfolio").Logger(),
	}
}

const holdingColumns = `
	h.id, h.etf_id, h.quantity, h.average_price, h.purchase_date, h.created_at, h.updated_at,
	e.id, e.ticker, e.name, e.market, e.category, e.created_at, e.updated_at
`

// CreateHolding inserts a new holding and returns it joined with its ETF
func (r *Repository) CreateHolding(etfID int64, quantity, averagePrice float64, purchaseDate time.Time) (*Holding, error) {
	query := `
		INSERT INTO holdings (etf_id, quantity, average_price, purchase_date)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, etfID, quantity, averagePrice, purchaseDate.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to insert holding: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted holding id: %w", err)
	}

	return r.GetHolding(id)
}

// GetHolding returns one holding by id, or nil if not found
func (r *Repository) GetHolding(id int64) (*Holding, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM holdings h
		JOIN etfs e ON e.id = h.etf_id
		WHERE h.id = ?
	`, holdingColumns)

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	holding, err := scanHolding(rows)
	if err != nil {
		return nil, err
	}
	return &holding, nil
}

// GetHoldings returns every holding joined with its ETF
func (r *Repository) GetHoldings() ([]Holding, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM holdings h
		JOIN etfs e ON e.id = h.etf_id
		ORDER BY h.id
	`, holdingColumns)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []Holding
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, holding)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// UpdateHolding adjusts quantity and average price. Nil fields keep their
// current value. Returns the updated holding, or nil if the id is unknown.
func (r *Repository) UpdateHolding(id int64, quantity, averagePrice *float64) (*Holding, error) {
	existing, err := r.GetHolding(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	newQuantity := existing.Quantity
	if quantity != nil {
		newQuantity = *quantity
	}
	newPrice := existing.AveragePrice
	if averagePrice != nil {
		newPrice = *averagePrice
	}

	query := `
		UPDATE holdings
		SET quantity = ?, average_price = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, newQuantity, newPrice, id); err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}

	return r.GetHolding(id)
}

// DeleteHolding removes a holding by id. Returns false if no row matched.
func (r *Repository) DeleteHolding(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM holdings WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func scanHolding(rows *sql.Rows) (Holding, error) {
	var h Holding
	var market, category sql.NullString

	err := rows.Scan(
		&h.ID, &h.ETFID, &h.Quantity, &h.AveragePrice, &h.PurchaseDate, &h.CreatedAt, &h.UpdatedAt,
		&h.ETF.ID, &h.ETF.Ticker, &h.ETF.Name, &market, &category, &h.ETF.CreatedAt, &h.ETF.UpdatedAt,
	)
	if err != nil {
		return Holding{}, fmt.Errorf("failed to scan holding: %w", err)
	}

	h.ETF.Market = market.String
	h.ETF.Category = category.String
	return h, nil
}

// SaveSnapshot upserts the valuation for a date, one row per day
func (r *Repository) SaveSnapshot(s Snapshot) error {
	query := `
		INSERT INTO portfolio_snapshots (date, total_investment, total_value, holdings_count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			total_investment = excluded.total_investment,
			total_value = excluded.total_value,
			holdings_count = excluded.holdings_count
	`

	if _, err := r.db.Exec(query, s.Date, s.TotalInvestment, s.TotalValue, s.HoldingsCount); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	r.log.Debug().Str("date", s.Date).Float64("value", s.TotalValue).Msg("Snapshot saved")
	return nil
}

// GetSnapshots returns the most recent snapshots, newest first
func (r *Repository) GetSnapshots(days int) ([]Snapshot, error) {
	query := `
		SELECT date, total_investment, total_value, holdings_count
		FROM portfolio_snapshots
		ORDER BY date DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.Date, &s.TotalInvestment, &s.TotalValue, &s.HoldingsCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}
