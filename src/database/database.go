package database

import (
	"database/sql"
	"fmt"
	stdlog "log"

	"github.com/username/clientledger/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

const createTableStatement = `
	CREATE TABLE IF NOT EXISTS ledger_sheets (
		title TEXT PRIMARY KEY,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS ledger_rows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sheet_title TEXT NOT NULL,
		cells TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(sheet_title) REFERENCES ledger_sheets(title)
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_rows_sheet ON ledger_rows(sheet_title, id);
	`

// InitDB opens the ledger database and stores it in DB. It exits the process on failure.
func InitDB(databasePath string) {
	db, err := Open(databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}
	DB = db
}

// Open opens a SQLite database and ensures the ledger tables exist. Pass ":memory:" for a
// private in-memory database.
func Open(databasePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, err
	}
	// One connection: keeps ":memory:" databases coherent and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableStatement); err != nil {
		logger.L.Error("failed to create tables", "error", err)
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	logger.L.Info("Database tables ensured/created.")
	return db, nil
}
