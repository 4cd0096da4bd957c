// Package ledger defines the capability the intake service writes client rows through.
package ledger

import (
	"context"
	"errors"

	"github.com/username/clientledger/src/models"
)

var (
	// ErrNotConnected reports a credential or handshake failure.
	ErrNotConnected = errors.New("ledger not connected")
	// ErrAppendFailed reports a remote write failure for one row.
	ErrAppendFailed = errors.New("ledger append failed")
)

// Connector opens a ledger session. Each call resolves credentials afresh.
type Connector interface {
	Connect(ctx context.Context) (Ledger, error)
}

// Ledger is a connected session on a spreadsheet-like store of named tabs.
type Ledger interface {
	// EnsureSheetsExist creates every missing tab with its header row. Existing tabs
	// are left untouched, so headers are never written twice.
	EnsureSheetsExist(ctx context.Context, schemas []models.SheetSchema) error
	// AppendRecord appends one row to the named tab. On failure no partial row is left.
	AppendRecord(ctx context.Context, sheetName string, cells []string) error
}
