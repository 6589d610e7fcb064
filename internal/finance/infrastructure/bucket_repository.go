package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/dbx"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type BucketRepository struct {
	db dbx.DBTX
}

func NewBucketRepository(db dbx.DBTX) *BucketRepository {
	return &BucketRepository{db: db}
}

func (r *BucketRepository) Create(ctx context.Context, bucket *domain.Bucket) error {
	query := `INSERT INTO buckets (id, user_id, name, amount, type, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, bucket.ID, bucket.UserID, bucket.Name, bucket.Amount, bucket.Type, bucket.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not create bucket: %w", err)
	}
	return nil
}

func (r *BucketRepository) FindByUser(ctx context.Context, userID string) ([]domain.Bucket, error) {
	query := `SELECT id, user_id, name, amount, type, created_at
              FROM buckets WHERE user_id = $1
              ORDER BY created_at, name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list buckets: %w", err)
	}
	defer rows.Close()

	buckets := []domain.Bucket{}
	for rows.Next() {
		var bucket domain.Bucket
		if err := rows.Scan(&bucket.ID, &bucket.UserID, &bucket.Name, &bucket.Amount, &bucket.Type, &bucket.CreatedAt); err != nil {
			return nil, fmt.Errorf("could not scan bucket: %w", err)
		}
		buckets = append(buckets, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list buckets: %w", err)
	}
	return buckets, nil
}

func (r *BucketRepository) FindByID(ctx context.Context, bucketID uuid.UUID, userID string) (*domain.Bucket, error) {
	query := `SELECT id, user_id, name, amount, type, created_at
              FROM buckets WHERE id = $1 AND user_id = $2`

	var bucket domain.Bucket
	err := r.db.QueryRowContext(ctx, query, bucketID, userID).Scan(
		&bucket.ID, &bucket.UserID, &bucket.Name, &bucket.Amount, &bucket.Type, &bucket.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrBucketNotFound
		}
		return nil, fmt.Errorf("could not find bucket: %w", err)
	}
	return &bucket, nil
}

func (r *BucketRepository) UpdateAmount(ctx context.Context, bucketID uuid.UUID, userID string, amount decimal.Decimal) (int64, error) {
	query := `UPDATE buckets SET amount = $1 WHERE id = $2 AND user_id = $3`
	return r.exec(ctx, query, amount, bucketID, userID)
}

func (r *BucketRepository) Update(ctx context.Context, bucket *domain.Bucket) (int64, error) {
	query := `UPDATE buckets SET name = $1, type = $2 WHERE id = $3 AND user_id = $4`
	return r.exec(ctx, query, bucket.Name, bucket.Type, bucket.ID, bucket.UserID)
}

func (r *BucketRepository) Delete(ctx context.Context, bucketID uuid.UUID, userID string) (int64, error) {
	query := `DELETE FROM buckets WHERE id = $1 AND user_id = $2`
	return r.exec(ctx, query, bucketID, userID)
}

func (r *BucketRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return affected, nil
}
