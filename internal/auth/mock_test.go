package auth

import (
	"context"

	"github.com/sebuszqo/FinanceTracker/internal/user"
)

type mockUserService struct {
	users map[string]*user.User
	// passwords maps usernames to plain passwords.
	passwords map[string]string
	err       error
}

func newMockUserService(users ...*user.User) *mockUserService {
	m := &mockUserService{users: make(map[string]*user.User), passwords: make(map[string]string)}
	for _, u := range users {
		m.users[u.ID] = u
		m.passwords[u.Username] = "password123"
	}
	return m
}

func (m *mockUserService) CreateUser(ctx context.Context, username, password, email string) (bool, error) {
	return false, nil
}

func (m *mockUserService) VerifyUser(ctx context.Context, username, password string) (*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.passwords[username] != password {
		return nil, nil
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserService) GetUserByID(ctx context.Context, userID string) (*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserService) ChangePasswordWithOldPassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	return nil
}

// mockTwoFactorRepository writes through to the users held by mockUserService.
type mockTwoFactorRepository struct {
	users   *mockUserService
	secrets map[string]string
}

func (m *mockTwoFactorRepository) SaveTwoFactorSecret(ctx context.Context, userID, secret string) error {
	m.secrets[userID] = secret
	return nil
}

func (m *mockTwoFactorRepository) GetTwoFactorSecret(ctx context.Context, userID string) (string, error) {
	secret, ok := m.secrets[userID]
	if !ok {
		return "", ErrUser2FANotRegistered
	}
	return secret, nil
}

func (m *mockTwoFactorRepository) EnableTwoFactor(ctx context.Context, userID string) error {
	m.users.users[userID].TwoFactorEnabled = true
	return nil
}

func (m *mockTwoFactorRepository) DisableTwoFactor(ctx context.Context, userID string) error {
	m.users.users[userID].TwoFactorEnabled = false
	delete(m.secrets, userID)
	return nil
}
