package db

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/example/mistermo/internal/models"
)

type firestoreOnboardingRepository struct {
	client *firestore.Client
}

// NewFirestoreOnboardingRepository creates a new Firestore-backed OnboardingRepository.
func NewFirestoreOnboardingRepository(client *firestore.Client) OnboardingRepository {
	return &firestoreOnboardingRepository{client: client}
}

func (r *firestoreOnboardingRepository) Create(ctx context.Context, sub *models.OnboardingSubmission) error {
	_, err := r.client.Collection(onboardingCollection).Doc(sub.ID).Create(ctx, sub)
	if err != nil {
		return fmt.Errorf("failed to insert onboarding submission '%s': %w", sub.ID, err)
	}
	return nil
}

func (r *firestoreOnboardingRepository) ListByUserID(ctx context.Context, userID string) ([]*models.OnboardingSubmission, error) {
	iter := r.client.Collection(onboardingCollection).
		Where("user_id", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var subs []*models.OnboardingSubmission
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list onboarding submissions of '%s': %w", userID, err)
		}
		var sub models.OnboardingSubmission
		if err := doc.DataTo(&sub); err != nil {
			return nil, fmt.Errorf("failed to decode onboarding submission '%s': %w", doc.Ref.ID, err)
		}
		sub.ID = doc.Ref.ID
		subs = append(subs, &sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].CreatedAt.Before(subs[j].CreatedAt) })
	return subs, nil
}
