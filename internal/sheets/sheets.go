// Package sheets appends rows to a Google Spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrNotConfigured is returned when the spreadsheet id or the service
// account key file is missing.
var ErrNotConfigured = errors.New("google sheets not configured")

// Config contains options for creating a new Appender.
type Config struct {
	SpreadsheetID   string
	CredentialsFile string // Path to the service account key JSON file.
	Range           string // A1 notation, e.g. "A1" or "Sheet1!A:C".
}

// Appender appends rows to one spreadsheet range.
type Appender struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	writeRange    string
}

// NewAppender creates an Appender authorised with the service account key
// in cfg.CredentialsFile.
func NewAppender(ctx context.Context, cfg Config) (*Appender, error) {
	if cfg.SpreadsheetID == "" || cfg.CredentialsFile == "" {
		return nil, ErrNotConfigured
	}
	if _, err := os.Stat(cfg.CredentialsFile); err != nil {
		return nil, fmt.Errorf("%w: credentials file %q: %v", ErrNotConfigured, cfg.CredentialsFile, err)
	}

	srv, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets.NewService: %w", err)
	}

	writeRange := cfg.Range
	if writeRange == "" {
		writeRange = "A1"
	}
	return &Appender{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		writeRange:    writeRange,
	}, nil
}

// AppendRow appends row after the last row of the table found at the
// configured range. Values are stored as-is (RAW input).
func (a *Appender) AppendRow(ctx context.Context, row []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := a.values.Append(a.spreadsheetID, a.writeRange, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to spreadsheet %s: %w", a.spreadsheetID, err)
	}
	return nil
}
