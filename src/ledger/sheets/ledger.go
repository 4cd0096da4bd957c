package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/patrickmn/go-cache"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/username/clientledger/src/ledger"
	"github.com/username/clientledger/src/logger"
	"github.com/username/clientledger/src/models"
)

// New tabs get this grid size.
const (
	newSheetRows = 100
	newSheetCols = 20
)

// Ledger is a session on one spreadsheet.
type Ledger struct {
	svc           *gsheets.Service
	spreadsheetID string
	tabs          *cache.Cache
}

// EnsureSheetsExist adds each missing tab and writes its header row. A tab that cannot be
// created is logged and skipped; the joined errors are returned after every schema was tried.
func (l *Ledger) EnsureSheetsExist(ctx context.Context, schemas []models.SheetSchema) error {
	log := logger.FromContext(ctx)

	existing, err := l.titles(ctx)
	if err != nil {
		return fmt.Errorf("listing sheets of %s: %w", l.spreadsheetID, err)
	}

	var errs []error
	for _, s := range schemas {
		if existing[s.Name] {
			continue
		}
		if err := l.addSheet(ctx, s); err != nil {
			log.Warn("Error creating sheet", "sheet", s.Name, "error", err)
			errs = append(errs, fmt.Errorf("creating sheet %q: %w", s.Name, err))
			continue
		}
		log.Info("Created sheet", "sheet", s.Name)
		existing = l.rememberTitle(existing, s.Name)
	}
	return errors.Join(errs...)
}

func (l *Ledger) addSheet(ctx context.Context, s models.SheetSchema) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title: s.Name,
					GridProperties: &gsheets.GridProperties{
						RowCount:    newSheetRows,
						ColumnCount: newSheetCols,
					},
				},
			},
		}},
	}
	resp, err := l.svc.Spreadsheets.BatchUpdate(l.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return err
	}
	if len(s.Headers) == 0 {
		return nil
	}
	if err := l.appendValues(ctx, s.Name, s.Headers); err != nil {
		headerErr := fmt.Errorf("writing header row: %w", err)
		// A tab without its header would be skipped by every later call, so remove it and
		// let the next EnsureSheetsExist create it again.
		if delErr := l.deleteSheet(ctx, resp); delErr != nil {
			logger.FromContext(ctx).Error("Sheet left without header row", "sheet", s.Name, "error", delErr)
			return errors.Join(headerErr, fmt.Errorf("removing headerless sheet: %w", delErr))
		}
		return headerErr
	}
	return nil
}

// deleteSheet removes the tab created by an AddSheet batch update.
func (l *Ledger) deleteSheet(ctx context.Context, added *gsheets.BatchUpdateSpreadsheetResponse) error {
	if added == nil || len(added.Replies) == 0 || added.Replies[0].AddSheet == nil ||
		added.Replies[0].AddSheet.Properties == nil {
		return errors.New("add sheet reply carries no sheet ID")
	}
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteSheet: &gsheets.DeleteSheetRequest{
				SheetId:         added.Replies[0].AddSheet.Properties.SheetId,
				ForceSendFields: []string{"SheetId"},
			},
		}},
	}
	_, err := l.svc.Spreadsheets.BatchUpdate(l.spreadsheetID, req).Context(ctx).Do()
	return err
}

// AppendRecord appends one row with RAW input, so cell text is never evaluated as a formula.
func (l *Ledger) AppendRecord(ctx context.Context, sheetName string, cells []string) error {
	if err := l.appendValues(ctx, sheetName, cells); err != nil {
		// The tab may have been removed behind our back; reload titles next time.
		l.tabs.Delete(l.spreadsheetID)
		return fmt.Errorf("%w: sheet %q: %v", ledger.ErrAppendFailed, sheetName, err)
	}
	return nil
}

func (l *Ledger) appendValues(ctx context.Context, sheetName string, cells []string) error {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	vr := &gsheets.ValueRange{Values: [][]interface{}{row}}
	_, err := l.svc.Spreadsheets.Values.Append(l.spreadsheetID, a1Range(sheetName), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// titles returns the cached tab titles, fetching them on a miss.
func (l *Ledger) titles(ctx context.Context) (map[string]bool, error) {
	if cached, found := l.tabs.Get(l.spreadsheetID); found {
		return cached.(map[string]bool), nil
	}
	_, titles, err := l.refreshTitles(ctx)
	return titles, err
}

// refreshTitles fetches spreadsheet metadata, caches the tab titles and returns them with
// the spreadsheet's own title.
func (l *Ledger) refreshTitles(ctx context.Context) (string, map[string]bool, error) {
	ss, err := l.svc.Spreadsheets.Get(l.spreadsheetID).
		Fields("properties.title", "sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", nil, err
	}
	titles := make(map[string]bool, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles[sh.Properties.Title] = true
		}
	}
	l.tabs.SetDefault(l.spreadsheetID, titles)

	if ss.Properties == nil {
		return "", titles, nil
	}
	return ss.Properties.Title, titles, nil
}

// rememberTitle caches a copy of known with name added. Cached maps are never mutated in
// place since other sessions may be reading them.
func (l *Ledger) rememberTitle(known map[string]bool, name string) map[string]bool {
	next := make(map[string]bool, len(known)+1)
	for k := range known {
		next[k] = true
	}
	next[name] = true
	l.tabs.SetDefault(l.spreadsheetID, next)
	return next
}

// a1Range anchors an append at the top-left cell of a tab, quoting the tab title.
func a1Range(sheetName string) string {
	return "'" + strings.ReplaceAll(sheetName, "'", "''") + "'!A1"
}
