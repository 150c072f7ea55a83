package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/example/mistermo/internal/config"
)

const (
	usersCollection      = "users"
	progressCollection   = "daily_progress"
	onboardingCollection = "onboarding"
)

// NewFirestoreClient initializes the Firebase Admin SDK and returns its
// Firestore client. Credentials come from a file path, a Base64 encoded
// service account JSON or Application Default Credentials, in that order.
func NewFirestoreClient(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*firestore.Client, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("NewFirestoreClient: appConfig cannot be nil")
	}

	var opts []option.ClientOption
	switch {
	case appConfig.GoogleApplicationCredentials != "":
		if _, err := os.Stat(appConfig.GoogleApplicationCredentials); os.IsNotExist(err) {
			logger.Warn("Credentials file does not exist; relying on ADC",
				zap.String("path", appConfig.GoogleApplicationCredentials))
		} else {
			opts = append(opts, option.WithCredentialsFile(appConfig.GoogleApplicationCredentials))
		}
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		decodedJSON, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(decodedJSON))
	default:
		logger.Info("Initializing Firebase using Application Default Credentials (ADC).")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: appConfig.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}
	return client, nil
}

// NewFirestoreStore wires the Firestore repositories around client.
func NewFirestoreStore(client *firestore.Client) *Store {
	return &Store{
		Users:      NewFirestoreUserRepository(client),
		Progress:   NewFirestoreProgressRepository(client),
		Onboarding: NewFirestoreOnboardingRepository(client),
		closer:     client.Close,
	}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
