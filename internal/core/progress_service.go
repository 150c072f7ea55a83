package core

import (
	"context"
	"fmt"
	"time"

	"github.com/example/mistermo/internal/db"
	"github.com/example/mistermo/internal/models"
)

// Defaults for a freshly created day.
const (
	DefaultCaloriesTarget = 1050.0
	DefaultStepsTarget    = 8000
	DefaultWaterTarget    = 2.5
)

const dateLayout = "2006-01-02"

type progressService struct {
	progressRepo db.ProgressRepository
	now          Clock
}

// NewProgressService creates a ProgressService. A nil clock means time.Now.
func NewProgressService(progressRepo db.ProgressRepository, now Clock) ProgressService {
	if now == nil {
		now = time.Now
	}
	return &progressService{progressRepo: progressRepo, now: now}
}

// ProgressID derives the record id for a user and a YYYY-MM-DD date.
func ProgressID(userID, date string) string {
	return userID + "_" + date
}

// NewDailyProgress returns the record a user starts the day with, stamped
// with now.
func NewDailyProgress(userID, date string, now time.Time) *models.DailyProgress {
	caloriesTarget := DefaultCaloriesTarget
	stepsTarget := DefaultStepsTarget
	waterTarget := DefaultWaterTarget
	return &models.DailyProgress{
		ID:             ProgressID(userID, date),
		UserID:         userID,
		Date:           date,
		CaloriesTarget: &caloriesTarget,
		StepsTarget:    &stepsTarget,
		WaterTarget:    &waterTarget,
		CompletedTasks: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}


func (s *progressService) GetToday(ctx context.Context, userID string) (*models.DailyProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	now := s.now().UTC()
	rec, err := s.progressRepo.GetOrCreate(ctx, NewDailyProgress(userID, now.Format(dateLayout), now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return rec, nil
}

func (s *progressService) UpdateToday(ctx context.Context, userID string, patch models.ProgressPatch) (*models.DailyProgress, error) {
	rec, err := s.GetToday(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return rec, nil
	}

	updated, err := s.progressRepo.Patch(ctx, rec.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return updated, nil
}
