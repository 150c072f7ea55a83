package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/mistermo/internal/models"
)

// Clock returns the current time. Services use it to decide what "today" is.
type Clock func() time.Time

// UserService defines authentication and user-state operations.
type UserService interface {
	// Authenticate verifies initData, upserts the user and returns it with
	// a session token.
	Authenticate(ctx context.Context, initData string) (*models.User, string, error)
	// GetState returns the onboarding flag and tier, or defaults for an
	// unknown user.
	GetState(ctx context.Context, userID string) (*models.UserState, error)
	// SetState patches the onboarding flag and/or tier.
	SetState(ctx context.Context, req models.UserStateRequest) error
}

// ProgressService defines operations on today's DailyProgress record.
type ProgressService interface {
	GetToday(ctx context.Context, userID string) (*models.DailyProgress, error)
	UpdateToday(ctx context.Context, userID string, patch models.ProgressPatch) (*models.DailyProgress, error)
}

// OnboardingService records questionnaire answers.
type OnboardingService interface {
	// Submit parses a raw request body and stores its answers.
	Submit(ctx context.Context, body []byte) error
}

// OnboardingMirror receives a best-effort copy of every submission.
type OnboardingMirror interface {
	Mirror(ctx context.Context, submittedAt time.Time, userID string, payload json.RawMessage) error
}
