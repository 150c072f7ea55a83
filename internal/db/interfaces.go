package db

import (
	"context"
	"errors"

	"github.com/example/mistermo/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user data storage operations.
type UserRepository interface {
	// UpsertIdentity creates the user or overwrites its Telegram identity
	// fields, leaving onboarding flag, tier and created_at untouched.
	// It returns the stored record.
	UpsertIdentity(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// UpdateState patches onboarding flag and/or tier. Unknown users are
	// left alone and no error is returned.
	UpdateState(ctx context.Context, userID string, onboardingDone *bool, subscriptionTier *string) error
}

// ProgressRepository defines the interface for daily progress storage.
type ProgressRepository interface {
	// GetOrCreate returns the record with defaults.ID, inserting defaults
	// atomically when it does not exist yet.
	GetOrCreate(ctx context.Context, defaults *models.DailyProgress) (*models.DailyProgress, error)
	// Patch applies the set fields of patch to an existing record and
	// returns the updated record.
	Patch(ctx context.Context, id string, patch models.ProgressPatch) (*models.DailyProgress, error)
}

// OnboardingRepository defines the interface for onboarding submissions.
type OnboardingRepository interface {
	Create(ctx context.Context, sub *models.OnboardingSubmission) error
	ListByUserID(ctx context.Context, userID string) ([]*models.OnboardingSubmission, error)
}

// Store bundles the repositories of one storage backend.
type Store struct {
	Users      UserRepository
	Progress   ProgressRepository
	Onboarding OnboardingRepository
	closer     func() error
}

// Close releases the underlying storage handle.
func (s *Store) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer()
}
