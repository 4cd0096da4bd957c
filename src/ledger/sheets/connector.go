// Package sheets writes ledger rows to a Google Sheets spreadsheet through a service account.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/username/clientledger/src/ledger"
	"github.com/username/clientledger/src/logger"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

var spreadsheetURLRe = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

type Config struct {
	// Spreadsheet is a spreadsheet URL or a spreadsheet title.
	Spreadsheet     string
	CredentialsJSON string
	CredentialsFile string
	TabCacheTTL     time.Duration
	// ClientOptions, when set, replace credential resolution entirely. Callers that
	// manage their own HTTP client or endpoint use this.
	ClientOptions []option.ClientOption
}

// Connector opens sessions on one spreadsheet. Safe for concurrent use.
type Connector struct {
	cfg  Config
	tabs *cache.Cache
}

func NewConnector(cfg Config) *Connector {
	ttl := cfg.TabCacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Connector{
		cfg:  cfg,
		tabs: cache.New(ttl, 2*ttl),
	}
}

// Connect resolves credentials and opens the spreadsheet. Tab titles are fetched only when
// the cache holds none for it, so one metadata call serves every submission within the TTL.
// Every failure wraps ledger.ErrNotConnected.
func (c *Connector) Connect(ctx context.Context) (ledger.Ledger, error) {
	log := logger.FromContext(ctx)

	opts := c.cfg.ClientOptions
	if len(opts) == 0 {
		creds, source, err := loadCredentials(ctx, c.cfg.CredentialsJSON, c.cfg.CredentialsFile)
		if err != nil {
			log.Error("Failed to load Google credentials", "error", err)
			return nil, fmt.Errorf("%w: %v", ledger.ErrNotConnected, err)
		}
		log.Debug("Google credentials loaded", "source", source)
		opts = []option.ClientOption{option.WithCredentials(creds)}
	}

	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: creating sheets client: %v", ledger.ErrNotConnected, err)
	}

	id, err := c.spreadsheetID(ctx, opts)
	if err != nil {
		log.Error("Failed to resolve spreadsheet", "spreadsheet", c.cfg.Spreadsheet, "error", err)
		return nil, fmt.Errorf("%w: %v", ledger.ErrNotConnected, err)
	}

	l := &Ledger{svc: svc, spreadsheetID: id, tabs: c.tabs}
	if _, found := c.tabs.Get(id); found {
		log.Debug("Connected to Google Sheet using cached tab titles", "spreadsheetID", id)
		return l, nil
	}
	title, _, err := l.refreshTitles(ctx)
	if err != nil {
		log.Error("Failed to open spreadsheet", "spreadsheetID", id, "error", err)
		return nil, fmt.Errorf("%w: opening spreadsheet %s: %v", ledger.ErrNotConnected, id, err)
	}
	log.Info("Connected to Google Sheet", "title", title, "spreadsheetID", id)
	return l, nil
}

// spreadsheetID accepts a sheets URL directly; anything else is looked up by title on Drive.
func (c *Connector) spreadsheetID(ctx context.Context, opts []option.ClientOption) (string, error) {
	ref := strings.TrimSpace(c.cfg.Spreadsheet)
	if ref == "" {
		return "", errors.New("no spreadsheet configured")
	}
	if strings.HasPrefix(ref, "http") {
		return spreadsheetIDFromURL(ref)
	}

	drv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("creating drive client: %w", err)
	}
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(ref), spreadsheetMimeType)
	res, err := drv.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("searching spreadsheet %q: %w", ref, err)
	}
	if len(res.Files) == 0 {
		return "", fmt.Errorf("spreadsheet %q not found", ref)
	}
	return res.Files[0].Id, nil
}

func spreadsheetIDFromURL(u string) (string, error) {
	m := spreadsheetURLRe.FindStringSubmatch(u)
	if len(m) < 2 {
		return "", fmt.Errorf("no spreadsheet ID in URL %q", u)
	}
	return m[1], nil
}

// escapeQuery escapes a literal for a Drive search query.
func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
