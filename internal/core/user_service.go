package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/mistermo/internal/auth"
	"github.com/example/mistermo/internal/db"
	"github.com/example/mistermo/internal/models"
)

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
	verifier auth.InitDataVerifier
	logger   *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, verifier auth.InitDataVerifier, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		verifier: verifier,
		logger:   logger,
	}
}

// UserIDFor derives the stable user id from a Telegram id.
func UserIDFor(telegramID string) string {
	return "user_" + telegramID
}

// SessionToken derives the session token handed to the web app. It is an
// opaque label, not a credential.
func SessionToken(user *models.User) string {
	return "tg_" + user.ID
}

func (s *userService) Authenticate(ctx context.Context, initData string) (*models.User, string, error) {
	if initData == "" {
		return nil, "", fmt.Errorf("%w: init_data is required", ErrInvalidInput)
	}

	identity, err := s.verifier.Verify(ctx, initData)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmptyInitData):
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case errors.Is(err, auth.ErrInvalidInitData), errors.Is(err, auth.ErrExpiredInitData):
			return nil, "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
		default:
			return nil, "", fmt.Errorf("%w: verify init_data: %v", ErrInternal, err)
		}
	}

	user, err := s.userRepo.UpsertIdentity(ctx, &models.User{
		ID:         UserIDFor(identity.ID),
		TelegramID: identity.ID,
		Username:   identity.Username,
		FirstName:  identity.FirstName,
		LastName:   identity.LastName,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Debug("User authenticated", zap.String("user_id", user.ID))
	return user, SessionToken(user), nil
}

func (s *userService) GetState(ctx context.Context, userID string) (*models.UserState, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &models.UserState{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return &models.UserState{
		OnboardingDone:   user.OnboardingDone,
		SubscriptionTier: user.SubscriptionTier,
	}, nil
}

func (s *userService) SetState(ctx context.Context, req models.UserStateRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if err := s.userRepo.UpdateState(ctx, req.UserID, req.OnboardingDone, req.SubscriptionTier); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}
