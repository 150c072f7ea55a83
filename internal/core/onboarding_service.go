package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/mistermo/internal/db"
	"github.com/example/mistermo/internal/models"
)

// payloadKeys are the alternate names the web app uses for the answers.
// The first one present wins.
var payloadKeys = []string{"data", "answers"}

type onboardingService struct {
	onboardingRepo db.OnboardingRepository
	mirror         OnboardingMirror
	mirrorTimeout  time.Duration
	now            Clock
	logger         *zap.Logger
}

// OnboardingConfig contains options for NewOnboardingService.
type OnboardingConfig struct {
	Mirror        OnboardingMirror // nil disables mirroring
	MirrorTimeout time.Duration    // zero means no extra deadline
	Now           Clock
}

// NewOnboardingService creates an OnboardingService.
func NewOnboardingService(onboardingRepo db.OnboardingRepository, cfg OnboardingConfig, logger *zap.Logger) OnboardingService {
	mirror := cfg.Mirror
	if mirror == nil {
		mirror = NoopMirror{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &onboardingService{
		onboardingRepo: onboardingRepo,
		mirror:         mirror,
		mirrorTimeout:  cfg.MirrorTimeout,
		now:            now,
		logger:         logger,
	}
}

// onboardingRequest is the parsed form of POST /api/onboarding/save.
type onboardingRequest struct {
	UserID  string
	Payload json.RawMessage
}

func parseOnboardingRequest(body []byte) (*onboardingRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedPayload, err)
	}

	rawUserID, ok := fields["user_id"]
	if !ok {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidInput)
	}
	var userID string
	if err := json.Unmarshal(rawUserID, &userID); err != nil || userID == "" {
		return nil, fmt.Errorf("%w: user_id must be a non-empty string", ErrInvalidInput)
	}

	payload := json.RawMessage(`{}`)
	for _, key := range payloadKeys {
		raw, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, key, err)
		}
		payload = compact.Bytes()
		break
	}

	return &onboardingRequest{UserID: userID, Payload: payload}, nil
}

// Submit mirrors the answers to the external sink first and then stores
// them locally. Sink failures are logged and swallowed; local failures are
// returned as ErrInternal.
func (s *onboardingService) Submit(ctx context.Context, body []byte) error {
	req, err := parseOnboardingRequest(body)
	if err != nil {
		return err
	}

	submittedAt := s.now().UTC()
	s.mirrorBestEffort(ctx, submittedAt, req)

	sub := &models.OnboardingSubmission{
		ID:        req.UserID + "_" + submittedAt.Format(time.RFC3339Nano),
		UserID:    req.UserID,
		CreatedAt: submittedAt,
		Data:      string(req.Payload),
	}
	if err := s.onboardingRepo.Create(ctx, sub); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Onboarding answers saved", zap.String("user_id", req.UserID), zap.String("submission_id", sub.ID))
	return nil
}

func (s *onboardingService) mirrorBestEffort(ctx context.Context, submittedAt time.Time, req *onboardingRequest) {
	if s.mirrorTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.mirrorTimeout)
		defer cancel()
	}
	if err := s.mirror.Mirror(ctx, submittedAt, req.UserID, req.Payload); err != nil {
		s.logger.Warn("Onboarding mirror failed; continuing with local save",
			zap.String("user_id", req.UserID), zap.Error(err))
	}
}
