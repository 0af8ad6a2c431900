package dictionary

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

const (
	sheetExportURL      = "https://docs.google.com/spreadsheets/d/%s/export"
	defaultFetchTimeout = 30 * time.Second
)

// Provider pulls a full snapshot, header excluded, from an external source
type Provider interface {
	Fetch(ctx context.Context) ([][]string, error)
}

// ProviderFunc adapts a plain function to Provider
type ProviderFunc func(ctx context.Context) ([][]string, error)

// Fetch calls f
func (f ProviderFunc) Fetch(ctx context.Context) ([][]string, error) {
	return f(ctx)
}

// SheetOptions locate the spreadsheet to pull
type SheetOptions struct {
	// SheetID is the spreadsheet key from its URL
	SheetID string
	// GID selects the worksheet; "0" is the first one
	GID string
	// URL overrides the export URL built from SheetID and GID
	URL string
	// Token is sent as a bearer token when set
	Token   string
	Timeout time.Duration
}

// SheetProvider fetches the CSV export of a spreadsheet
type SheetProvider struct {
	opts       SheetOptions
	httpClient *http.Client
}

// NewSheetProvider creates a provider for the given sheet
func NewSheetProvider(opts SheetOptions) *SheetProvider {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultFetchTimeout
	}
	if opts.GID == "" {
		opts.GID = "0"
	}
	return &SheetProvider{
		opts: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// ExportURL returns the URL the provider downloads from
func (p *SheetProvider) ExportURL() (string, error) {
	if p.opts.URL != "" {
		return p.opts.URL, nil
	}
	if p.opts.SheetID == "" {
		return "", errors.New("sheet source needs a sheet id or an url")
	}
	query := url.Values{}
	query.Set("format", "csv")
	query.Set("gid", p.opts.GID)
	return fmt.Sprintf(sheetExportURL, url.PathEscape(p.opts.SheetID)) + "?" + query.Encode(), nil
}

// Fetch downloads the sheet and returns every row after the header
func (p *SheetProvider) Fetch(ctx context.Context) ([][]string, error) {
	exportURL, err := p.ExportURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build sheet request: %w", err)
	}
	if p.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.opts.Token)
	}

	log.Debugf("Fetching sheet: %s", exportURL)
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet: status %d", resp.StatusCode)
	}

	rows, err := readRows(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode sheet: %w", err)
	}
	log.Debugf("Fetched %d rows", len(rows))
	return rows, nil
}

// readRows parses CSV and drops the header row. Rows keep their own width.
func readRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return [][]string{}, nil
	}
	return all[1:], nil
}
