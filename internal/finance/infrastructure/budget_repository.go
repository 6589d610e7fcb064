package infrastructure

import (
	"context"
	"fmt"

	"github.com/sebuszqo/FinanceTracker/internal/dbx"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

type BudgetRepository struct {
	db dbx.DBTX
}

func NewBudgetRepository(db dbx.DBTX) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Set upserts on (user_id, category). On conflict the existing row keeps its
// id and only the amount changes.
func (r *BudgetRepository) Set(ctx context.Context, budget *domain.Budget) error {
	query := `
        INSERT INTO budget (id, user_id, category, amount)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, category) DO UPDATE
        SET amount = EXCLUDED.amount
        RETURNING id
    `
	err := r.db.QueryRowContext(ctx, query, budget.ID, budget.UserID, budget.Category, budget.Amount).Scan(&budget.ID)
	if err != nil {
		return fmt.Errorf("could not save budget: %w", err)
	}
	return nil
}

func (r *BudgetRepository) FindByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, category, amount FROM budget WHERE user_id = $1 ORDER BY category`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		var budget domain.Budget
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.Category, &budget.Amount); err != nil {
			return nil, fmt.Errorf("could not scan budget: %w", err)
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list budgets: %w", err)
	}
	return budgets, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, userID string, category domain.ExpenseCategory) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM budget WHERE user_id = $1 AND category = $2`, userID, category)
	if err != nil {
		return 0, fmt.Errorf("could not delete budget: %w", err)
	}
	return result.RowsAffected()
}
