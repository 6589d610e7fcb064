package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength    = 255
	maxUsernameLength = 30
	minUsernameLength = 3
	minPasswordLength = 8
	maxPasswordLength = 72
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address is too long, max length: %d", maxEmailLength)
	ErrUsernameLength     = fmt.Errorf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrPasswordTooLong    = fmt.Errorf("password must be at most %d bytes", maxPasswordLength)
	ErrInvalidOldPassword = errors.New("invalid old password")
)

type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	HashToken        string    `json:"-"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Service interface {
	// CreateUser reports false without an error when the username or email
	// is already taken.
	CreateUser(ctx context.Context, username, password, email string) (bool, error)
	// VerifyUser returns nil when the credentials do not match a user.
	VerifyUser(ctx context.Context, username, password string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	ChangePasswordWithOldPassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

type service struct {
	repo       Repository
	bcryptCost int
}

func NewUserService(repo Repository, bcryptCost int) Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{
		repo:       repo,
		bcryptCost: bcryptCost,
	}
}

func (s *service) hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	return string(hashedPasswordBytes), err
}

func generateHashToken() (string, error) {
	token := make([]byte, 32)
	_, err := rand.Read(token)
	if err != nil {
		return "", fmt.Errorf("could not generate hash token: %w", err)
	}
	return hex.EncodeToString(token), nil
}

func validateEmailAddress(email string) error {
	if len(email) > maxEmailLength {
		return ErrEmailLength
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func validateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return ErrUsernameLength
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// IsValidationError reports whether err was caused by invalid registration input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidEmail) || errors.Is(err, ErrEmailLength) ||
		errors.Is(err, ErrUsernameLength) || errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordTooLong)
}

func (s *service) CreateUser(ctx context.Context, username, password, email string) (bool, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateUsername(username); err != nil {
		return false, err
	}
	if err := validateEmailAddress(email); err != nil {
		return false, err
	}
	if err := validatePassword(password); err != nil {
		return false, err
	}

	passwordHash, err := s.hashPassword(password)
	if err != nil {
		return false, fmt.Errorf("could not hash password: %w", err)
	}
	hashToken, err := generateHashToken()
	if err != nil {
		return false, err
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		HashToken:    hashToken,
	}
	if err := s.repo.createUser(ctx, user); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) VerifyUser(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.getUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !doPasswordsMatch(user.PasswordHash, password) {
		return nil, nil
	}
	return user, nil
}

func (s *service) GetUserByID(ctx context.Context, userID string) (*User, error) {
	return s.repo.getUserByID(ctx, userID)
}

// ChangePasswordWithOldPassword also rotates the hash token, which
// invalidates every refresh token issued before the change.
func (s *service) ChangePasswordWithOldPassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.repo.getUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !doPasswordsMatch(user.PasswordHash, oldPassword) {
		return ErrInvalidOldPassword
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	newPasswordHash, err := s.hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}
	newHashToken, err := generateHashToken()
	if err != nil {
		return err
	}
	return s.repo.updateUserPasswordAndHashToken(ctx, userID, newPasswordHash, newHashToken)
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(currPassword))
	return err == nil
}
