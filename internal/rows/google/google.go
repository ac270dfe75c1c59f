// Package google implements the rows.Source port against the Google Sheets
// API, authorized through an injected auth.Provider.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"financas/internal/auth"
	ports "financas/internal/rows"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	readRange     string
	provider      auth.Provider
}

var _ ports.Source = (*Client)(nil)

// New creates a Sheets-backed row source. The read range defaults to the
// whole first sheet when empty.
func New(ctx context.Context, provider auth.Provider, spreadsheetID, readRange string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if provider == nil {
		return nil, errors.New("missing auth provider")
	}
	if strings.TrimSpace(readRange) == "" {
		readRange = "A:Z"
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithTokenSource(auth.TokenSource(ctx, provider)),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets row source initialized",
		"spreadsheet_id", spreadsheetID,
		"range", readRange)

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		provider:      provider,
	}, nil
}

// Fetch reads the configured range and returns the raw values grid.
// UNFORMATTED_VALUE keeps date cells as numeric serials and amount cells as
// numbers instead of locale-rendered strings.
func (c *Client) Fetch(ctx context.Context) ([][]any, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).Do()
	if err != nil {
		// Drop the cached credential; the next fetch re-acquires one.
		c.provider.Invalidate()
		return nil, fmt.Errorf("read %s!%s: %w", c.spreadsheetID, c.readRange, err)
	}

	slog.InfoContext(ctx, "Fetched spreadsheet rows",
		"spreadsheet_id", c.spreadsheetID,
		"rows", len(resp.Values))
	return resp.Values, nil
}
