package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	service Service
	users   *mockUserService
	repo    *mockTwoFactorRepository
	jwt     JWTManagerInterface
}

func newAuthFixture() *authFixture {
	users := newMockUserService(&user.User{ID: "user-1", Username: "alice", HashToken: "hash-1"})
	repo := &mockTwoFactorRepository{users: users, secrets: make(map[string]string)}
	jwtManager := NewJWTManager(testSecret, time.Minute, time.Hour)
	return &authFixture{
		service: NewAuthService(repo, users, jwtManager, NewAuthenticator("FinanceTracker")),
		users:   users,
		repo:    repo,
		jwt:     jwtManager,
	}
}

func currentCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	return code
}

func TestLogin_IssuesTokens(t *testing.T) {
	f := newAuthFixture()

	u, access, refresh, err := f.service.Login(context.Background(), "alice", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)

	userID, err := f.jwt.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.NoError(t, f.jwt.ValidateRefreshToken(refresh, "hash-1"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newAuthFixture()

	_, _, _, err := f.service.Login(context.Background(), "alice", "wrong", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = f.service.Login(context.Background(), "nobody", "password123", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_StorageError(t *testing.T) {
	f := newAuthFixture()
	f.users.err = errors.New("db down")

	_, _, _, err := f.service.Login(context.Background(), "alice", "password123", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestTwoFactorLifecycle(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	otpURI, secret, err := f.service.RegisterTwoFactor(ctx, "user-1")
	require.NoError(t, err)
	assert.Contains(t, otpURI, "otpauth://totp/FinanceTracker")
	assert.NotEmpty(t, secret)

	// registration alone does not enable 2fa
	_, _, _, err = f.service.Login(ctx, "alice", "password123", "")
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.VerifyTwoFactorRegistration(ctx, "user-1", "000000"), ErrInvalid2FACode)
	require.NoError(t, f.service.VerifyTwoFactorRegistration(ctx, "user-1", currentCode(t, secret)))

	_, _, _, err = f.service.Login(ctx, "alice", "password123", "")
	assert.ErrorIs(t, err, ErrTwoFactorRequired)

	_, _, _, err = f.service.Login(ctx, "alice", "password123", "000000")
	assert.ErrorIs(t, err, ErrInvalid2FACode)

	_, access, _, err := f.service.Login(ctx, "alice", "password123", currentCode(t, secret))
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	_, _, err = f.service.RegisterTwoFactor(ctx, "user-1")
	assert.ErrorIs(t, err, ErrUser2FAAlreadyEnabled)

	require.NoError(t, f.service.DisableTwoFactor(ctx, "user-1", currentCode(t, secret)))
	assert.ErrorIs(t, f.service.DisableTwoFactor(ctx, "user-1", currentCode(t, secret)), ErrUser2FANotEnabled)
}

func TestVerifyTwoFactorRegistration_NotRegistered(t *testing.T) {
	f := newAuthFixture()

	err := f.service.VerifyTwoFactorRegistration(context.Background(), "user-1", "123456")
	assert.ErrorIs(t, err, ErrUser2FANotRegistered)
}

func TestRefreshAccessToken(t *testing.T) {
	f := newAuthFixture()

	access, refresh, err := f.service.RefreshAccessToken(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NoError(t, f.jwt.ValidateRefreshToken(refresh, "hash-1"))

	_, _, err = f.service.RefreshAccessToken(context.Background(), "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
