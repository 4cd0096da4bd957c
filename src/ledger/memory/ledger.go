// Package memory is an in-process ledger that records appended rows. It backs tests and
// LEDGER_BACKEND=memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/username/clientledger/src/ledger"
	"github.com/username/clientledger/src/models"
)

// Ledger keeps tabs as slices of rows; the first row of a tab is its header.
type Ledger struct {
	mu     sync.Mutex
	sheets map[string][][]string
	order  []string

	// FailConnect makes Connect return an error wrapping ledger.ErrNotConnected.
	FailConnect error
	// FailEnsure makes EnsureSheetsExist return this error.
	FailEnsure error
	// FailAppend maps a tab name to the error its appends return.
	FailAppend map[string]error

	connects int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{sheets: make(map[string][][]string)}
}

// Connect returns the ledger itself.
func (l *Ledger) Connect(ctx context.Context) (ledger.Ledger, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connects++
	if l.FailConnect != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrNotConnected, l.FailConnect)
	}
	return l, nil
}

func (l *Ledger) EnsureSheetsExist(ctx context.Context, schemas []models.SheetSchema) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.FailEnsure != nil {
		return l.FailEnsure
	}
	for _, s := range schemas {
		if _, ok := l.sheets[s.Name]; ok {
			continue
		}
		l.sheets[s.Name] = [][]string{append([]string(nil), s.Headers...)}
		l.order = append(l.order, s.Name)
	}
	return nil
}

func (l *Ledger) AppendRecord(ctx context.Context, sheetName string, cells []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: sheet %q: %v", ledger.ErrAppendFailed, sheetName, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.FailAppend[sheetName]; err != nil {
		return fmt.Errorf("%w: sheet %q: %v", ledger.ErrAppendFailed, sheetName, err)
	}
	if _, ok := l.sheets[sheetName]; !ok {
		return fmt.Errorf("%w: sheet %q: worksheet not found", ledger.ErrAppendFailed, sheetName)
	}
	l.sheets[sheetName] = append(l.sheets[sheetName], append([]string(nil), cells...))
	return nil
}

// Rows returns a copy of the data rows of a tab, header excluded.
func (l *Ledger) Rows(sheetName string) [][]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows := l.sheets[sheetName]
	if len(rows) <= 1 {
		return nil
	}
	out := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		out = append(out, append([]string(nil), r...))
	}
	return out
}

// Header returns the header row of a tab, or nil if the tab does not exist.
func (l *Ledger) Header(sheetName string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows := l.sheets[sheetName]
	if len(rows) == 0 {
		return nil
	}
	return append([]string(nil), rows[0]...)
}

// SheetNames lists tabs in creation order.
func (l *Ledger) SheetNames() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.order...)
}

// Connects reports how many times Connect was called.
func (l *Ledger) Connects() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connects
}
