package core

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/mistermo/internal/db"
	"github.com/example/mistermo/internal/models"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "core.db"))
	require.NoError(t, err)
	store := db.NewSQLiteStore(gdb)
	t.Cleanup(func() { store.Close() })
	return store
}

func fixedClock(ts time.Time) Clock {
	return func() time.Time { return ts }
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }
func strPtr(v string) *string     { return &v }

// recordingMirror records every mirrored submission and can fail on demand.
type recordingMirror struct {
	mu    sync.Mutex
	rows  []mirroredRow
	err   error
	calls int
}

type mirroredRow struct {
	UserID  string
	Payload string
	At      time.Time
}

func (m *recordingMirror) Mirror(_ context.Context, at time.Time, userID string, payload json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, mirroredRow{UserID: userID, Payload: string(payload), At: at})
	return nil
}

// failingOnboardingRepo always fails to write.
type failingOnboardingRepo struct{}

func (failingOnboardingRepo) Create(context.Context, *models.OnboardingSubmission) error {
	return errors.New("disk full")
}

func (failingOnboardingRepo) ListByUserID(context.Context, string) ([]*models.OnboardingSubmission, error) {
	return nil, nil
}

func nopLogger() *zap.Logger { return zap.NewNop() }
