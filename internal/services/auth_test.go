package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turathhub/archive-backend/internal/requestdata"
)

func TestRegisterCreatesProfileWithUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.auth.Register(ctx, RegisterInput{
		Email:    "Aisha@Example.com",
		Username: "Aisha",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	require.NotNil(t, result.Profile)
	assert.Equal(t, result.User.ID, result.Profile.UserID)
	assert.Equal(t, 1, result.Profile.Rank)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	// Email and username are stored normalized.
	assert.Equal(t, "aisha@example.com", result.User.Email)
	assert.Equal(t, "aisha", result.User.Username)

	profile, err := env.profiles.GetByUserID(ctx, nil, result.User.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterInput{Email: "dup@example.com", Username: "dupuser", Password: "password1"})
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, RegisterInput{Email: "dup@example.com", Username: "otheruser", Password: "password1"})
	require.Error(t, err)

	_, err = env.auth.Register(ctx, RegisterInput{Email: "other@example.com", Username: "dupuser", Password: "password1"})
	require.Error(t, err)

	_, err = env.auth.Register(ctx, RegisterInput{Email: "short@example.com", Username: "shortpw", Password: "short"})
	require.Error(t, err)
}

func TestLoginAndTokenContext(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered, err := env.auth.Register(ctx, RegisterInput{Email: "login@example.com", Username: "loginuser", Password: "password1"})
	require.NoError(t, err)

	result, err := env.auth.Login(ctx, "login@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)

	_, err = env.auth.Login(ctx, "login@example.com", "wrong-password")
	require.Error(t, err)

	authedCtx, err := env.auth.SetContextFromToken(ctx, result.AccessToken)
	require.NoError(t, err)
	rd := requestdata.GetRequestData(authedCtx)
	require.NotNil(t, rd)
	assert.Equal(t, registered.User.ID, rd.UserID)

	_, err = env.auth.SetContextFromToken(ctx, "not-a-token")
	require.Error(t, err)
}

func TestRefreshRotatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered, err := env.auth.Register(ctx, RegisterInput{Email: "rot@example.com", Username: "rotuser", Password: "password1"})
	require.NoError(t, err)

	refreshed, err := env.auth.Refresh(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is single use.
	_, err = env.auth.Refresh(ctx, registered.RefreshToken)
	require.Error(t, err)

	// The rotated-out access token no longer authenticates.
	_, err = env.auth.SetContextFromToken(ctx, registered.AccessToken)
	require.Error(t, err)
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered, err := env.auth.Register(ctx, RegisterInput{Email: "out@example.com", Username: "outuser", Password: "password1"})
	require.NoError(t, err)

	authedCtx, err := env.auth.SetContextFromToken(ctx, registered.AccessToken)
	require.NoError(t, err)
	require.NoError(t, env.auth.Logout(authedCtx))

	_, err = env.auth.SetContextFromToken(ctx, registered.AccessToken)
	require.Error(t, err)
}

func TestGoogleLoginProvisionsAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.google.identity = &GoogleIdentity{
		Subject:       "google-sub-1",
		Email:         "Traveler@Gmail.com",
		EmailVerified: true,
		Name:          "Traveler",
		Picture:       "https://lh3.example.com/photo-v1.jpg",
	}

	result, err := env.auth.LoginWithGoogle(ctx, "fake-id-token")
	require.NoError(t, err)
	assert.Equal(t, "traveler@gmail.com", result.User.Email)
	assert.Empty(t, result.User.Password)
	require.NotNil(t, result.Profile)
	assert.Equal(t, "https://lh3.example.com/photo-v1.jpg", result.Profile.PhotoURL)

	// Password login is not available for a Google-provisioned account.
	_, err = env.auth.Login(ctx, "traveler@gmail.com", "anything")
	require.Error(t, err)
}

func TestGoogleLoginSyncsPhoto(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.google.identity = &GoogleIdentity{
		Subject:       "google-sub-2",
		Email:         "sync@gmail.com",
		EmailVerified: true,
		Picture:       "https://lh3.example.com/photo-v1.jpg",
	}
	first, err := env.auth.LoginWithGoogle(ctx, "fake-id-token")
	require.NoError(t, err)

	// The provider photo changed; the next sign-in overwrites ours.
	env.google.identity.Picture = "https://lh3.example.com/photo-v2.jpg"
	second, err := env.auth.LoginWithGoogle(ctx, "fake-id-token")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "https://lh3.example.com/photo-v2.jpg", second.Profile.PhotoURL)

	profile, err := env.profiles.GetByUserID(ctx, nil, first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://lh3.example.com/photo-v2.jpg", profile.PhotoURL)
}

func TestGoogleLoginRequiresVerifiedEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.google.identity = &GoogleIdentity{
		Subject: "google-sub-3",
		Email:   "unverified@gmail.com",
	}
	_, err := env.auth.LoginWithGoogle(ctx, "fake-id-token")
	require.Error(t, err)
}

func TestGoogleLoginUsernameCollision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterInput{Email: "taken@example.com", Username: "shadi", Password: "password1"})
	require.NoError(t, err)

	env.google.identity = &GoogleIdentity{
		Subject:       "google-sub-4",
		Email:         "shadi@gmail.com",
		EmailVerified: true,
	}
	result, err := env.auth.LoginWithGoogle(ctx, "fake-id-token")
	require.NoError(t, err)
	assert.Equal(t, "shadi1", result.User.Username)
}
