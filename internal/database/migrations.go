package database

import "fmt"

// migrations are idempotent schema statements, applied in order on startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS etfs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		ticker      TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		market      TEXT,
		category    TEXT,
		created_at  TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_etfs_ticker ON etfs(ticker)`,
	`CREATE TABLE IF NOT EXISTS holdings (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		etf_id        INTEGER NOT NULL REFERENCES etfs(id) ON DELETE CASCADE,
		quantity      REAL NOT NULL,
		average_price REAL NOT NULL,
		purchase_date TEXT NOT NULL,
		created_at    TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at    TEXT NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_holdings_etf_id ON holdings(etf_id)`,
	`CREATE TABLE IF NOT EXISTS portfolio_snapshots (
		date             TEXT PRIMARY KEY,
		total_investment REAL NOT NULL,
		total_value      REAL NOT NULL,
		holdings_count   INTEGER NOT NULL,
		created_at       TEXT NOT NULL DEFAULT (datetime('now'))
	)`,
}

// Migrate applies all schema migrations
func (db *DB) Migrate() error {
	for i, stmt := range migrations {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
