package export

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/cwbudde/algo-resonance/measure/rank"
)

const peakSchema = `
CREATE TABLE IF NOT EXISTS PeakTable (
	PeakId INTEGER PRIMARY KEY,
	Substance TEXT NOT NULL,
	Position INTEGER NOT NULL,
	Resolved BOOL NOT NULL,
	IntegralRank INTEGER,
	X DOUBLE NOT NULL,
	EnergyRank INTEGER,
	TOF DOUBLE,
	Integral DOUBLE,
	Width DOUBLE,
	WidthRank INTEGER,
	Height DOUBLE NOT NULL,
	HeightRank INTEGER,
	Origin TEXT
);`

const insertPeak = `
INSERT INTO PeakTable (
	Substance, Position, Resolved, IntegralRank, X, EnergyRank, TOF,
	Integral, Width, WidthRank, Height, HeightRank, Origin
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteWriter appends peak tables to a SQLite database.
type SQLiteWriter struct {
	db *sql.DB
}

// NewSQLiteWriter opens (or creates) the database at path and ensures the
// PeakTable schema exists.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("export: open database: %w", err)
	}

	if _, err := db.Exec(peakSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("export: create PeakTable: %w", err)
	}

	return &SQLiteWriter{db: db}, nil
}

// WriteTable inserts all rows of one substance in a single transaction.
func (w *SQLiteWriter) WriteTable(substance string, rows []rank.Row) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("export: begin: %w", err)
	}

	stmt, err := tx.Prepare(insertPeak)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("export: prepare: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		var args []any

		switch r := row.(type) {
		case rank.Resolved:
			args = []any{substance, i, true, r.IntegralRank, r.X, r.EnergyRank, r.TOF,
				r.Integral, r.Width, r.WidthRank, r.Height, r.HeightRank, r.Origin}
		case rank.NoPeakData:
			args = []any{substance, i, false, nil, r.X, nil, nil,
				nil, nil, nil, r.Height, nil, r.Label}
		default:
			continue
		}

		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("export: insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export: commit: %w", err)
	}

	return nil
}

// Count returns the number of stored rows for substance.
func (w *SQLiteWriter) Count(substance string) (int, error) {
	var n int

	err := w.db.QueryRow(`SELECT COUNT(*) FROM PeakTable WHERE Substance = ?`, substance).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("export: count: %w", err)
	}

	return n, nil
}

// Close closes the database.
func (w *SQLiteWriter) Close() error {
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("export: close database: %w", err)
	}

	return nil
}
