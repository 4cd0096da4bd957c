// Package sqlite keeps the ledger tabs in a local SQLite database, for development without
// Google credentials.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/username/clientledger/src/ledger"
	"github.com/username/clientledger/src/logger"
	"github.com/username/clientledger/src/models"
)

type Ledger struct {
	db *sql.DB
}

// New wraps a database opened with database.Open.
func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) Connect(ctx context.Context) (ledger.Ledger, error) {
	if err := l.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrNotConnected, err)
	}
	return l, nil
}

// EnsureSheetsExist registers missing tabs; a tab's header is its first row.
func (l *Ledger) EnsureSheetsExist(ctx context.Context, schemas []models.SheetSchema) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range schemas {
		res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO ledger_sheets (title) VALUES (?)`, s.Name)
		if err != nil {
			return fmt.Errorf("creating sheet %q: %w", s.Name, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			continue
		}
		if err := insertRow(ctx, tx, s.Name, s.Headers); err != nil {
			return fmt.Errorf("writing header of sheet %q: %w", s.Name, err)
		}
		logger.FromContext(ctx).Info("Created sheet", "sheet", s.Name)
	}
	return tx.Commit()
}

func (l *Ledger) AppendRecord(ctx context.Context, sheetName string, cells []string) error {
	if err := l.appendRecord(ctx, sheetName, cells); err != nil {
		return fmt.Errorf("%w: sheet %q: %v", ledger.ErrAppendFailed, sheetName, err)
	}
	return nil
}

func (l *Ledger) appendRecord(ctx context.Context, sheetName string, cells []string) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var title string
	err = tx.QueryRowContext(ctx, `SELECT title FROM ledger_sheets WHERE title = ?`, sheetName).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("worksheet not found")
	}
	if err != nil {
		return err
	}
	if err := insertRow(ctx, tx, sheetName, cells); err != nil {
		return err
	}
	return tx.Commit()
}

func insertRow(ctx context.Context, tx *sql.Tx, sheetName string, cells []string) error {
	if cells == nil {
		cells = []string{}
	}
	encoded, err := json.Marshal(cells)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO ledger_rows (sheet_title, cells) VALUES (?, ?)`, sheetName, string(encoded))
	return err
}

// Rows returns every row of a tab in append order, header first.
func (l *Ledger) Rows(ctx context.Context, sheetName string) ([][]string, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT cells FROM ledger_rows WHERE sheet_title = ? ORDER BY id ASC`, sheetName)
	if err != nil {
		return nil, fmt.Errorf("error querying rows of sheet %q: %w", sheetName, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("error scanning row of sheet %q: %w", sheetName, err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("error decoding row of sheet %q: %w", sheetName, err)
		}
		out = append(out, cells)
	}
	return out, rows.Err()
}
