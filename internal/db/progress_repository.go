package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/mistermo/internal/models"
)

type gormProgressRepository struct {
	db *gorm.DB
}

// NewGormProgressRepository creates a new GORM-backed ProgressRepository.
func NewGormProgressRepository(db *gorm.DB) ProgressRepository {
	return &gormProgressRepository{db: db}
}

// GetOrCreate inserts defaults with ON CONFLICT DO NOTHING and reads the row
// back, so concurrent first reads never produce a duplicate.
func (r *gormProgressRepository) GetOrCreate(ctx context.Context, defaults *models.DailyProgress) (*models.DailyProgress, error) {
	if defaults.ID == "" {
		return nil, errors.New("progress ID cannot be empty for GetOrCreate operation")
	}

	row := *defaults
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to insert progress '%s': %w", defaults.ID, err)
	}
	return r.get(ctx, defaults.ID)
}

func (r *gormProgressRepository) Patch(ctx context.Context, id string, patch models.ProgressPatch) (*models.DailyProgress, error) {
	if patch.IsEmpty() {
		return r.get(ctx, id)
	}

	// Updates with a struct skips nil pointers and nil slices, which is
	// exactly the "only supplied fields" rule, and runs the JSON serializer
	// for completed_tasks.
	var changes models.DailyProgress
	patch.ApplyTo(&changes)

	res := r.db.WithContext(ctx).Model(&models.DailyProgress{ID: id}).Updates(&changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update progress '%s': %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("progress '%s': %w", id, ErrNotFound)
	}
	return r.get(ctx, id)
}

func (r *gormProgressRepository) get(ctx context.Context, id string) (*models.DailyProgress, error) {
	var rec models.DailyProgress
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("progress '%s': %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get progress '%s': %w", id, err)
	}
	return &rec, nil
}
