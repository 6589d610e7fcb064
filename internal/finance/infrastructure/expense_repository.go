package infrastructure

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/dbx"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

type ExpenseRepository struct {
	db dbx.DBTX
}

func NewExpenseRepository(db dbx.DBTX) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `INSERT INTO expenses (id, user_id, category, amount, date, description)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, expense.ID, expense.UserID, expense.Category, expense.Amount, expense.Date, expense.Description)
	if err != nil {
		return fmt.Errorf("could not create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) FindByUser(ctx context.Context, userID string) ([]domain.Expense, error) {
	query := `SELECT id, user_id, category, amount, date, description
              FROM expenses WHERE user_id = $1
              ORDER BY date DESC, id`
	return r.query(ctx, query, userID)
}

// FindByUserAndMonth returns the expenses dated within the calendar month.
func (r *ExpenseRepository) FindByUserAndMonth(ctx context.Context, userID string, month domain.Month) ([]domain.Expense, error) {
	query := `SELECT id, user_id, category, amount, date, description
              FROM expenses WHERE user_id = $1 AND date >= $2 AND date < $3
              ORDER BY date DESC, id`
	return r.query(ctx, query, userID, month.Start(), month.End())
}

func (r *ExpenseRepository) Delete(ctx context.Context, expenseID uuid.UUID, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, expenseID, userID)
	if err != nil {
		return 0, fmt.Errorf("could not delete expense: %w", err)
	}
	return result.RowsAffected()
}

func (r *ExpenseRepository) query(ctx context.Context, query string, args ...any) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(&expense.ID, &expense.UserID, &expense.Category, &expense.Amount, &expense.Date, &expense.Description); err != nil {
			return nil, fmt.Errorf("could not scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list expenses: %w", err)
	}
	return expenses, nil
}
