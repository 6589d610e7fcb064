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

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalSelect = `
        SELECT g.id, g.user_id, g.name, g.target_amount, g.deadline, g.category, g.created_at,
               COALESCE(SUM(b.amount), 0) AS current_amount
        FROM goals g
        LEFT JOIN goal_buckets gb ON gb.goal_id = g.id
        LEFT JOIN buckets b ON b.id = gb.bucket_id
`

func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	query := `INSERT INTO goals (id, user_id, name, target_amount, deadline, category, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, goal.ID, goal.UserID, goal.Name, goal.TargetAmount, goal.Deadline, goal.Category, goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not create goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) FindByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := goalSelect + `
        WHERE g.user_id = $1
        GROUP BY g.id
        ORDER BY g.deadline, g.name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list goals: %w", err)
	}
	defer rows.Close()

	goals := []domain.Goal{}
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		index[goal.ID] = len(goals)
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list goals: %w", err)
	}

	links, err := r.db.QueryContext(ctx, `
        SELECT gb.goal_id, gb.bucket_id
        FROM goal_buckets gb
        JOIN goals g ON g.id = gb.goal_id
        WHERE g.user_id = $1
        ORDER BY gb.goal_id, gb.bucket_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list goal links: %w", err)
	}
	defer links.Close()

	for links.Next() {
		var goalID, bucketID uuid.UUID
		if err := links.Scan(&goalID, &bucketID); err != nil {
			return nil, fmt.Errorf("could not scan goal link: %w", err)
		}
		if i, ok := index[goalID]; ok {
			goals[i].LinkedBucketIDs = append(goals[i].LinkedBucketIDs, bucketID)
		}
	}
	if err := links.Err(); err != nil {
		return nil, fmt.Errorf("could not list goal links: %w", err)
	}
	return goals, nil
}

func (r *GoalRepository) FindByID(ctx context.Context, goalID uuid.UUID, userID string) (*domain.Goal, error) {
	query := goalSelect + `
        WHERE g.id = $1 AND g.user_id = $2
        GROUP BY g.id`

	goal, err := scanGoal(r.db.QueryRowContext(ctx, query, goalID, userID))
	if err != nil {
		return nil, err
	}

	goal.LinkedBucketIDs, err = linkedBucketIDs(ctx, r.db, goalID)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *GoalRepository) Delete(ctx context.Context, goalID uuid.UUID, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return 0, fmt.Errorf("could not delete goal: %w", err)
	}
	return result.RowsAffected()
}

// SetLinkedBuckets locks the goal row, removes every existing link and inserts
// the new set. The insert selects from buckets filtered by user, so a bucket of
// another user (or an unknown id) inserts nothing and aborts the transaction.
func (r *GoalRepository) SetLinkedBuckets(ctx context.Context, goalID uuid.UUID, userID string, bucketIDs []uuid.UUID) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var locked uuid.UUID
		err := tx.QueryRowContext(ctx, `SELECT id FROM goals WHERE id = $1 AND user_id = $2 FOR UPDATE`, goalID, userID).Scan(&locked)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return financeErrors.ErrGoalNotFound
			}
			return fmt.Errorf("could not lock goal: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM goal_buckets WHERE goal_id = $1`, goalID); err != nil {
			return fmt.Errorf("could not remove goal links: %w", err)
		}

		seen := make(map[uuid.UUID]struct{}, len(bucketIDs))
		for _, bucketID := range bucketIDs {
			if _, dup := seen[bucketID]; dup {
				continue
			}
			seen[bucketID] = struct{}{}

			result, err := tx.ExecContext(ctx, `
                INSERT INTO goal_buckets (goal_id, bucket_id)
                SELECT $1, id FROM buckets WHERE id = $2 AND user_id = $3`, goalID, bucketID, userID)
			if err != nil {
				return fmt.Errorf("could not link bucket: %w", err)
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("could not link bucket: %w", err)
			}
			if affected == 0 {
				return fmt.Errorf("bucket %s: %w", bucketID, financeErrors.ErrUnknownLinkedBucket)
			}
		}
		return nil
	})
}

// CurrentAmount sums the amounts of the buckets linked to the goal.
func (r *GoalRepository) CurrentAmount(ctx context.Context, goalID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(b.amount), 0)
              FROM goal_buckets gb
              JOIN buckets b ON b.id = gb.bucket_id
              WHERE gb.goal_id = $1`

	var amount decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, goalID).Scan(&amount); err != nil {
		return decimal.Zero, fmt.Errorf("could not compute goal amount: %w", err)
	}
	return amount, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var goal domain.Goal
	err := row.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.Deadline, &goal.Category, &goal.CreatedAt, &goal.CurrentAmount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrGoalNotFound
		}
		return nil, fmt.Errorf("could not scan goal: %w", err)
	}
	return &goal, nil
}

func linkedBucketIDs(ctx context.Context, db dbx.DBTX, goalID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.QueryContext(ctx, `SELECT bucket_id FROM goal_buckets WHERE goal_id = $1 ORDER BY bucket_id`, goalID)
	if err != nil {
		return nil, fmt.Errorf("could not list goal links: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("could not scan goal link: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
