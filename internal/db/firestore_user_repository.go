package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/example/mistermo/internal/models"
)

// firestoreUserRepository implements UserRepository using Firestore.
// The user ID is the document ID.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new Firestore-backed UserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	return &firestoreUserRepository{client: client}
}

func (r *firestoreUserRepository) UpsertIdentity(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		return nil, errors.New("user ID cannot be empty for UpsertIdentity operation")
	}
	ref := r.client.Collection(usersCollection).Doc(user.ID)
	now := time.Now().UTC()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(ref)
		if isNotFound(err) {
			row := *user
			row.OnboardingDone = false
			row.SubscriptionTier = nil
			row.CreatedAt = now
			row.UpdatedAt = now
			return tx.Create(ref, &row)
		}
		if err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "telegram_id", Value: user.TelegramID},
			{Path: "username", Value: user.Username},
			{Path: "first_name", Value: user.FirstName},
			{Path: "last_name", Value: user.LastName},
			{Path: "updated_at", Value: now},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user with ID '%s': %w", user.ID, err)
	}
	return r.GetByID(ctx, user.ID)
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", userID, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", userID, err)
	}
	user.ID = docSnap.Ref.ID
	return &user, nil
}

func (r *firestoreUserRepository) UpdateState(ctx context.Context, userID string, onboardingDone *bool, subscriptionTier *string) error {
	var updates []firestore.Update
	if onboardingDone != nil {
		updates = append(updates, firestore.Update{Path: "onboarding_done", Value: *onboardingDone})
	}
	if subscriptionTier != nil {
		updates = append(updates, firestore.Update{Path: "subscription_tier", Value: *subscriptionTier})
	}
	if len(updates) == 0 {
		return nil
	}
	updates = append(updates, firestore.Update{Path: "updated_at", Value: time.Now().UTC()})

	// Update fails with NotFound on a missing document, which matches an
	// UPDATE touching zero rows.
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, updates)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to update state of user '%s': %w", userID, err)
	}
	return nil
}
