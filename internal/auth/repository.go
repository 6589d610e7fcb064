package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sebuszqo/FinanceTracker/internal/user"
)

// TwoFactorRepository stores the TOTP state kept on the users table.
type TwoFactorRepository interface {
	SaveTwoFactorSecret(ctx context.Context, userID, secret string) error
	GetTwoFactorSecret(ctx context.Context, userID string) (string, error)
	EnableTwoFactor(ctx context.Context, userID string) error
	DisableTwoFactor(ctx context.Context, userID string) error
}

type twoFactorRepository struct {
	db *sql.DB
}

func NewTwoFactorRepository(db *sql.DB) TwoFactorRepository {
	return &twoFactorRepository{
		db: db,
	}
}

func (r *twoFactorRepository) exec(ctx context.Context, op, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("could not %s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not %s: %w", op, err)
	}
	if affected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *twoFactorRepository) SaveTwoFactorSecret(ctx context.Context, userID, secret string) error {
	query := `
        UPDATE users
        SET totp_secret = $1,
            updated_at = NOW()
        WHERE id = $2
    `
	return r.exec(ctx, "save two-factor secret", query, secret, userID)
}

func (r *twoFactorRepository) GetTwoFactorSecret(ctx context.Context, userID string) (string, error) {
	var secret sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT totp_secret FROM users WHERE id = $1`, userID).Scan(&secret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", user.ErrUserNotFound
		}
		return "", fmt.Errorf("could not get two-factor secret: %w", err)
	}
	if !secret.Valid || secret.String == "" {
		return "", ErrUser2FANotRegistered
	}
	return secret.String, nil
}

func (r *twoFactorRepository) EnableTwoFactor(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET two_factor_enabled = TRUE,
			updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, "enable two-factor authentication", query, userID)
}

// DisableTwoFactor clears the stored secret as well, so a new registration
// starts from a fresh key.
func (r *twoFactorRepository) DisableTwoFactor(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET two_factor_enabled = FALSE,
			totp_secret = NULL,
			updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, "disable two-factor authentication", query, userID)
}
