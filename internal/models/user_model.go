package models

import "time"

// User represents a Telegram user of the mini app.
type User struct {
	ID               string    `json:"id" gorm:"primaryKey" firestore:"-"` // "user_<telegram id>", also the document ID
	TelegramID       string    `json:"telegram_id" gorm:"index" firestore:"telegram_id"`
	Username         string    `json:"username" firestore:"username"`
	FirstName        string    `json:"first_name" firestore:"first_name"`
	LastName         string    `json:"last_name" firestore:"last_name"`
	OnboardingDone   bool      `json:"onboarding_done" gorm:"not null;default:false" firestore:"onboarding_done"`
	SubscriptionTier *string   `json:"subscription_tier" firestore:"subscription_tier"`
	CreatedAt        time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" firestore:"updated_at"`
}

// UserState is the part of a user that the web app toggles independently of
// the Telegram identity.
type UserState struct {
	OnboardingDone   bool    `json:"onboarding_done"`
	SubscriptionTier *string `json:"subscription_tier"`
}

// TelegramIdentity is the identity extracted from a WebApp launch payload.
type TelegramIdentity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
