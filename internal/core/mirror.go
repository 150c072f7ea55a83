package core

import (
	"context"
	"encoding/json"
	"time"
)

// NoopMirror drops every submission. It is used when no spreadsheet is
// configured.
type NoopMirror struct{}

func (NoopMirror) Mirror(context.Context, time.Time, string, json.RawMessage) error { return nil }

// RowAppender appends one row to a spreadsheet. *sheets.Appender satisfies it.
type RowAppender interface {
	AppendRow(ctx context.Context, row []interface{}) error
}

// SheetMirror writes submissions as [timestamp, user_id, json_payload] rows.
type SheetMirror struct {
	appender RowAppender
}

// NewSheetMirror creates a SheetMirror around appender.
func NewSheetMirror(appender RowAppender) *SheetMirror {
	return &SheetMirror{appender: appender}
}

func (m *SheetMirror) Mirror(ctx context.Context, submittedAt time.Time, userID string, payload json.RawMessage) error {
	return m.appender.AppendRow(ctx, []interface{}{
		submittedAt.Format(time.RFC3339Nano),
		userID,
		string(payload),
	})
}
