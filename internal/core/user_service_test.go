package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mistermo/internal/auth"
	"github.com/example/mistermo/internal/db"
	"github.com/example/mistermo/internal/models"
)

// identityVerifier returns whatever identity it is told to.
type identityVerifier struct {
	identity models.TelegramIdentity
	err      error
}

func (v *identityVerifier) Verify(context.Context, string) (*models.TelegramIdentity, error) {
	if v.err != nil {
		return nil, v.err
	}
	id := v.identity
	return &id, nil
}

func TestAuthenticate_StubIdentity(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store.Users, auth.NewStubVerifier(), nopLogger())

	user, token, err := svc.Authenticate(context.Background(), "query_id=abc")
	require.NoError(t, err)
	assert.Equal(t, "user_test_user", user.ID)
	assert.Equal(t, "test_user", user.TelegramID)
	assert.Equal(t, "test", user.Username)
	assert.Equal(t, "tg_user_test_user", token)
	assert.False(t, user.OnboardingDone)
	assert.Nil(t, user.SubscriptionTier)
}

func TestAuthenticate_IdempotentUpsert(t *testing.T) {
	store := newTestStore(t)
	verifier := &identityVerifier{identity: models.TelegramIdentity{ID: "42", Username: "first", FirstName: "A"}}
	svc := NewUserService(store.Users, verifier, nopLogger())
	ctx := context.Background()

	first, _, err := svc.Authenticate(ctx, "x")
	require.NoError(t, err)

	verifier.identity = models.TelegramIdentity{ID: "42", Username: "second", FirstName: "B", LastName: "C"}
	second, token, err := svc.Authenticate(ctx, "x")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "user_42", second.ID)
	assert.Equal(t, "second", second.Username)
	assert.Equal(t, "B", second.FirstName)
	assert.Equal(t, "C", second.LastName)
	assert.Equal(t, "tg_user_42", token)
}

func TestAuthenticate_Errors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	svc := NewUserService(store.Users, auth.NewStubVerifier(), nopLogger())
	_, _, err := svc.Authenticate(ctx, "")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	svc = NewUserService(store.Users, &identityVerifier{err: auth.ErrInvalidInitData}, nopLogger())
	_, _, err = svc.Authenticate(ctx, "bad")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	svc = NewUserService(store.Users, &identityVerifier{err: errors.New("boom")}, nopLogger())
	_, _, err = svc.Authenticate(ctx, "x")
	assert.True(t, errors.Is(err, ErrInternal))
}

func TestGetState_UnknownUser(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store.Users, auth.NewStubVerifier(), nopLogger())
	ctx := context.Background()

	state, err := svc.GetState(ctx, "user_never_seen")
	require.NoError(t, err)
	assert.False(t, state.OnboardingDone)
	assert.Nil(t, state.SubscriptionTier)

	_, err = store.Users.GetByID(ctx, "user_never_seen")
	assert.True(t, errors.Is(err, db.ErrNotFound), "GetState must not create a row")

	require.NoError(t, svc.SetState(ctx, models.UserStateRequest{UserID: "user_never_seen", OnboardingDone: boolPtr(true)}))
	_, err = store.Users.GetByID(ctx, "user_never_seen")
	assert.True(t, errors.Is(err, db.ErrNotFound), "SetState on unknown user is a no-op")
}

func TestSetState_PartialUpdate(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store.Users, auth.NewStubVerifier(), nopLogger())
	ctx := context.Background()

	user, _, err := svc.Authenticate(ctx, "x")
	require.NoError(t, err)

	require.NoError(t, svc.SetState(ctx, models.UserStateRequest{UserID: user.ID, SubscriptionTier: strPtr("premium")}))
	require.NoError(t, svc.SetState(ctx, models.UserStateRequest{UserID: user.ID, OnboardingDone: boolPtr(true)}))

	state, err := svc.GetState(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, state.OnboardingDone)
	require.NotNil(t, state.SubscriptionTier)
	assert.Equal(t, "premium", *state.SubscriptionTier)

	err = svc.SetState(ctx, models.UserStateRequest{})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
