package service

import (
	"strings"
	"testing"

	"lingolink/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAvatarBase = "https://avatars.example.com/public"

func newAuthService(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	middleware.InitAuth("test-secret")
	db := newTestDB(t)
	return NewAuthService(db, nil, testAvatarBase, 24), NewUserService(db)
}

func TestSignup_CreatesUserWithAvatarAndToken(t *testing.T) {
	auth, users := newAuthService(t)

	user, token, err := auth.Signup("alice@example.com", "secret123", "Alice Doe")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, strings.HasPrefix(user.ProfilePic, testAvatarBase+"/"))
	assert.False(t, user.IsOnboarded)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	// the token carries the new user's id
	userID, err := middleware.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	stored, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, stored.Email)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	_, _, err := auth.Signup("alice@example.com", "secret123", "Alice Doe")
	require.NoError(t, err)

	_, _, err = auth.Signup("alice@example.com", "othersecret", "Other Alice")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_RoundTrip(t *testing.T) {
	auth, _ := newAuthService(t)

	created, _, err := auth.Signup("bob@example.com", "secret123", "Bob Roe")
	require.NoError(t, err)

	user, token, err := auth.Login("bob@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPasswordAndUnknownEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	_, _, err := auth.Signup("bob@example.com", "secret123", "Bob Roe")
	require.NoError(t, err)

	_, _, err = auth.Login("bob@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown account fails with the same error
	_, _, err = auth.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestOnboard_CompletesProfile(t *testing.T) {
	auth, _ := newAuthService(t)

	user, _, err := auth.Signup("carol@example.com", "secret123", "Carol")
	require.NoError(t, err)

	updated, err := auth.Onboard(user.ID, OnboardInput{
		FullName:         "Carol Example",
		Bio:              "learning Spanish",
		Location:         "Lisbon",
		NativeLanguage:   "English",
		LearningLanguage: "Spanish",
	})
	require.NoError(t, err)
	assert.True(t, updated.IsOnboarded)
	assert.Equal(t, "Carol Example", updated.FullName)
	assert.Equal(t, "Spanish", updated.LearningLanguage)
	// signup avatar survives when onboarding sends none
	assert.True(t, strings.HasPrefix(updated.ProfilePic, testAvatarBase+"/"))
}
