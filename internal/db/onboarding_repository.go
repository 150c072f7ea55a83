package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/example/mistermo/internal/models"
)

type gormOnboardingRepository struct {
	db *gorm.DB
}

// NewGormOnboardingRepository creates a new GORM-backed OnboardingRepository.
func NewGormOnboardingRepository(db *gorm.DB) OnboardingRepository {
	return &gormOnboardingRepository{db: db}
}

func (r *gormOnboardingRepository) Create(ctx context.Context, sub *models.OnboardingSubmission) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("failed to insert onboarding submission '%s': %w", sub.ID, err)
	}
	return nil
}

func (r *gormOnboardingRepository) ListByUserID(ctx context.Context, userID string) ([]*models.OnboardingSubmission, error) {
	var subs []*models.OnboardingSubmission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list onboarding submissions of '%s': %w", userID, err)
	}
	return subs, nil
}
