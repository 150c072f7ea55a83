package models

// AuthRequest is the body of POST /api/auth/telegram.
type AuthRequest struct {
	InitData string `json:"init_data"`
}

// ProgressUpdateRequest is the body of POST /api/progress/update.
type ProgressUpdateRequest struct {
	UserID string `json:"user_id"`
	ProgressPatch
}

// UserStateRequest is the body of POST /api/user/state.
// Pointers distinguish "not provided" from false / empty values.
type UserStateRequest struct {
	UserID           string  `json:"user_id"`
	OnboardingDone   *bool   `json:"onboarding_done,omitempty"`
	SubscriptionTier *string `json:"subscription_tier,omitempty"`
}
