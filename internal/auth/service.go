package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/user"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInternalError         = errors.New("internal Server Error")
	ErrTwoFactorRequired     = errors.New("two factor code is required")
	ErrUser2FANotEnabled     = errors.New("two factor auth is not enabled")
	ErrUser2FANotRegistered  = errors.New("two factor auth has not been registered")
	ErrInvalid2FACode        = errors.New("2fa code is invalid")
	ErrUser2FAAlreadyEnabled = errors.New("2fa auth already enabled")
)

type Service interface {
	// Login returns an access token and a refresh token. Users with 2FA
	// enabled must pass a valid TOTP code or ErrTwoFactorRequired is returned.
	Login(ctx context.Context, username, password, code string) (*user.User, string, string, error)
	RefreshAccessToken(ctx context.Context, userID string) (string, string, error)
	RegisterTwoFactor(ctx context.Context, userID string) (string, string, error)
	VerifyTwoFactorRegistration(ctx context.Context, userID, code string) error
	DisableTwoFactor(ctx context.Context, userID, code string) error
	JWTRefreshTokenMiddleware() func(http.Handler) http.Handler
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	repo          TwoFactorRepository
	userService   user.Service
	jwtManager    JWTManagerInterface
	authenticator TwoFactorAuthenticator
}

func NewAuthService(repo TwoFactorRepository, userService user.Service, jwtManager JWTManagerInterface, authenticator TwoFactorAuthenticator) Service {
	return &service{
		repo:          repo,
		userService:   userService,
		jwtManager:    jwtManager,
		authenticator: authenticator,
	}
}

func (s *service) issueTokens(existingUser *user.User) (string, string, error) {
	jwtToken, err := s.jwtManager.GenerateAccessJWT(existingUser.ID)
	if err != nil {
		return "", "", fmt.Errorf("could not generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(existingUser.ID, existingUser.HashToken)
	if err != nil {
		return "", "", fmt.Errorf("could not generate refresh token: %w", err)
	}
	return jwtToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, username, password, code string) (*user.User, string, string, error) {
	existingUser, err := s.userService.VerifyUser(ctx, username, password)
	if err != nil {
		return nil, "", "", fmt.Errorf("could not verify user: %w", err)
	}
	if existingUser == nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if existingUser.TwoFactorEnabled {
		if code == "" {
			return nil, "", "", ErrTwoFactorRequired
		}
		secret, err := s.repo.GetTwoFactorSecret(ctx, existingUser.ID)
		if err != nil {
			return nil, "", "", fmt.Errorf("could not load two-factor secret: %w", err)
		}
		if !s.authenticator.VerifyCode(secret, code) {
			return nil, "", "", ErrInvalid2FACode
		}
	}

	jwtToken, refreshToken, err := s.issueTokens(existingUser)
	if err != nil {
		return nil, "", "", err
	}
	return existingUser, jwtToken, refreshToken, nil
}

// RefreshAccessToken requests are already checked in refresh token middleware
func (s *service) RefreshAccessToken(ctx context.Context, userID string) (string, string, error) {
	existingUser, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return s.issueTokens(existingUser)
}

// RegisterTwoFactor stores a fresh TOTP secret. 2FA stays disabled until the
// first code is confirmed through VerifyTwoFactorRegistration.
func (s *service) RegisterTwoFactor(ctx context.Context, userID string) (string, string, error) {
	existingUser, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if existingUser.TwoFactorEnabled {
		return "", "", ErrUser2FAAlreadyEnabled
	}

	otpURI, secret, err := s.authenticator.GenerateSecret(existingUser.Username)
	if err != nil {
		return "", "", err
	}
	if err := s.repo.SaveTwoFactorSecret(ctx, userID, secret); err != nil {
		return "", "", err
	}
	return otpURI, secret, nil
}

func (s *service) VerifyTwoFactorRegistration(ctx context.Context, userID, code string) error {
	existingUser, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if existingUser.TwoFactorEnabled {
		return ErrUser2FAAlreadyEnabled
	}

	secret, err := s.repo.GetTwoFactorSecret(ctx, userID)
	if err != nil {
		return err
	}
	if !s.authenticator.VerifyCode(secret, code) {
		return ErrInvalid2FACode
	}
	return s.repo.EnableTwoFactor(ctx, userID)
}

func (s *service) DisableTwoFactor(ctx context.Context, userID, code string) error {
	existingUser, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !existingUser.TwoFactorEnabled {
		return ErrUser2FANotEnabled
	}

	secret, err := s.repo.GetTwoFactorSecret(ctx, userID)
	if err != nil {
		return err
	}
	if !s.authenticator.VerifyCode(secret, code) {
		return ErrInvalid2FACode
	}
	return s.repo.DisableTwoFactor(ctx, userID)
}
