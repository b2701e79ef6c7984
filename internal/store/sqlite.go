package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/FrankTrani/Stock-Prediction/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	return &SQLiteStore{db: db}, nil
}

// InitSchema creates the required tables if they do not exist.
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS stock_symbols (
		symbol TEXT PRIMARY KEY,
		name TEXT,
		sector TEXT
	);

	CREATE TABLE IF NOT EXISTS current (
		symbol TEXT PRIMARY KEY,
		name TEXT,
		z_score REAL
	);

	CREATE TABLE IF NOT EXISTS abnormal_stocks (
		symbol TEXT PRIMARY KEY,
		name TEXT,
		sector TEXT,
		reason TEXT
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// ResetRun drops and recreates the current table so a new screening run
// starts from a clean slate. The symbol universe and the abnormal-stock
// history survive across runs.
func (s *SQLiteStore) ResetRun(ctx context.Context) error {
	schema := `
	DROP TABLE IF EXISTS current;
	CREATE TABLE current (
		symbol TEXT PRIMARY KEY,
		name TEXT,
		z_score REAL
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to reset run tables: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AddSymbols inserts symbols into the universe, ignoring duplicates.
func (s *SQLiteStore) AddSymbols(ctx context.Context, symbols []models.StockInfo) error {
	if len(symbols) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO stock_symbols (symbol, name, sector)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, info := range symbols {
		if _, err := stmt.ExecContext(ctx, info.Symbol, info.Name, info.Sector); err != nil {
			return fmt.Errorf("failed to insert symbol %s: %w", info.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateSymbolInfo updates the display name and sector of one symbol.
func (s *SQLiteStore) UpdateSymbolInfo(ctx context.Context, info models.StockInfo) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE stock_symbols SET name = ?, sector = ? WHERE symbol = ?
	`, info.Name, info.Sector, info.Symbol)
	if err != nil {
		return fmt.Errorf("failed to update symbol %s: %w", info.Symbol, err)
	}
	return nil
}

// ListSymbols returns the full symbol universe in insertion-stable order.
func (s *SQLiteStore) ListSymbols(ctx context.Context) ([]models.StockInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, COALESCE(name, ''), COALESCE(sector, '')
		FROM stock_symbols
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []models.StockInfo
	for rows.Next() {
		var info models.StockInfo
		if err := rows.Scan(&info.Symbol, &info.Name, &info.Sector); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, info)
	}
	return symbols, rows.Err()
}

// AppendScored bulk-appends scored results. Symbols seen in a prior run
// are overwritten: symbol is the natural key.
func (s *SQLiteStore) AppendScored(ctx context.Context, scored []models.ScoredStock) error {
	if len(scored) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO current (symbol, name, z_score)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range scored {
		if _, err := stmt.ExecContext(ctx, r.Symbol, r.Name, r.ZScore); err != nil {
			return fmt.Errorf("failed to insert scored result %s: %w", r.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AppendExcluded bulk-appends excluded results.
func (s *SQLiteStore) AppendExcluded(ctx context.Context, excluded []models.ExcludedStock) error {
	if len(excluded) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO abnormal_stocks (symbol, name, sector, reason)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range excluded {
		if _, err := stmt.ExecContext(ctx, r.Symbol, r.Name, r.Sector, string(r.Reason)); err != nil {
			return fmt.Errorf("failed to insert excluded result %s: %w", r.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Candidates returns scored symbols at or below the z-score cutoff, sorted
// by z_score descending (least negative first).
func (s *SQLiteStore) Candidates(ctx context.Context, maxZScore float64) ([]models.ScoredStock, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, COALESCE(name, ''), z_score
		FROM current
		WHERE z_score <= ?
		ORDER BY z_score DESC
	`, maxZScore)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.ScoredStock
	for rows.Next() {
		var r models.ScoredStock
		if err := rows.Scan(&r.Symbol, &r.Name, &r.ZScore); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, r)
	}
	return candidates, rows.Err()
}
