package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mistermo/internal/models"
)

// Runs against the Firestore emulator only.
func newEmulatorStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "mistermo-test")
	require.NoError(t, err)
	store := NewFirestoreStore(client)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFirestoreStore_UserLifecycle(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()
	id := fmt.Sprintf("user_%d", time.Now().UnixNano())

	require.NoError(t, store.Users.UpdateState(ctx, id, boolPtr(true), nil))
	_, err := store.Users.GetByID(ctx, id)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = store.Users.UpsertIdentity(ctx, &models.User{ID: id, Username: "a"})
	require.NoError(t, err)
	require.NoError(t, store.Users.UpdateState(ctx, id, nil, strPtr("pro")))

	u, err := store.Users.UpsertIdentity(ctx, &models.User{ID: id, Username: "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", u.Username)
	require.NotNil(t, u.SubscriptionTier)
	assert.Equal(t, "pro", *u.SubscriptionTier)
}

func TestFirestoreStore_Progress(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()
	id := fmt.Sprintf("u_%d_2024-01-02", time.Now().UnixNano())

	created, err := store.Progress.GetOrCreate(ctx, &models.DailyProgress{
		ID: id, UserID: "u", Date: "2024-01-02", CaloriesTarget: floatPtr(1050), CompletedTasks: []string{},
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	again, err := store.Progress.GetOrCreate(ctx, &models.DailyProgress{ID: id, UserID: "u", Date: "2024-01-02"})
	require.NoError(t, err)
	assert.True(t, created.CreatedAt.Equal(again.CreatedAt))

	rec, err := store.Progress.Patch(ctx, id, models.ProgressPatch{Steps: intPtr(5000), CompletedTasks: []string{"c"}})
	require.NoError(t, err)
	assert.Equal(t, 5000, *rec.Steps)
	assert.Equal(t, 1050.0, *rec.CaloriesTarget)
	assert.Equal(t, []string{"c"}, rec.CompletedTasks)
}
