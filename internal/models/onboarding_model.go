package models

import "time"

// OnboardingSubmission is one append-only record of questionnaire answers.
type OnboardingSubmission struct {
	ID        string    `json:"id" gorm:"primaryKey" firestore:"-"` // "<user_id>_<timestamp>"
	UserID    string    `json:"user_id" gorm:"not null;index" firestore:"user_id"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	Data      string    `json:"data" gorm:"type:text;not null" firestore:"data"` // JSON text of the answers
}

// TableName keeps the table name used by earlier deployments.
func (OnboardingSubmission) TableName() string { return "onboarding" }
