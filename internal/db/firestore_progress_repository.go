package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/example/mistermo/internal/models"
)

type firestoreProgressRepository struct {
	client *firestore.Client
}

// NewFirestoreProgressRepository creates a new Firestore-backed ProgressRepository.
func NewFirestoreProgressRepository(client *firestore.Client) ProgressRepository {
	return &firestoreProgressRepository{client: client}
}

func (r *firestoreProgressRepository) GetOrCreate(ctx context.Context, defaults *models.DailyProgress) (*models.DailyProgress, error) {
	if defaults.ID == "" {
		return nil, errors.New("progress ID cannot be empty for GetOrCreate operation")
	}
	ref := r.client.Collection(progressCollection).Doc(defaults.ID)

	var out models.DailyProgress
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if isNotFound(err) {
			out = *defaults
			if out.CreatedAt.IsZero() {
				now := time.Now().UTC()
				out.CreatedAt, out.UpdatedAt = now, now
			}
			return tx.Create(ref, &out)
		}
		if err != nil {
			return err
		}
		out = models.DailyProgress{}
		return snap.DataTo(&out)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create progress '%s': %w", defaults.ID, err)
	}
	out.ID = defaults.ID
	return &out, nil
}

func (r *firestoreProgressRepository) Patch(ctx context.Context, id string, patch models.ProgressPatch) (*models.DailyProgress, error) {
	ref := r.client.Collection(progressCollection).Doc(id)

	fields := patch.Fields()
	if len(fields) > 0 {
		updates := make([]firestore.Update, 0, len(fields)+1)
		for path, value := range fields {
			updates = append(updates, firestore.Update{Path: path, Value: value})
		}
		updates = append(updates, firestore.Update{Path: "updated_at", Value: time.Now().UTC()})

		if _, err := ref.Update(ctx, updates); err != nil {
			if isNotFound(err) {
				return nil, fmt.Errorf("progress '%s': %w", id, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to update progress '%s': %w", id, err)
		}
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("progress '%s': %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get progress '%s': %w", id, err)
	}
	var rec models.DailyProgress
	if err := snap.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode progress '%s': %w", id, err)
	}
	rec.ID = snap.Ref.ID
	return &rec, nil
}
