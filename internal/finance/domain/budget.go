package domain

import (
	"context"

	"github.com/google/uuid"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

// Budget is a monthly spending ceiling for one category. Budgets are not tied
// to a specific month; the same ceiling applies to every month.
type Budget struct {
	ID       uuid.UUID
	UserID   string
	Category ExpenseCategory
	Amount   decimal.Decimal
}

func (b *Budget) Validate() error {
	ve := &financeErrors.ValidationErrors{}
	if !IsValidExpenseCategory(b.Category) {
		ve.Add(financeErrors.ErrInvalidExpenseCategory)
	}
	if err := CheckAmount(b.Amount); err != nil {
		ve.Add(err)
	}
	return ve.ErrOrNil()
}

type BudgetRepository interface {
	// Set inserts the budget or replaces the amount of the existing
	// (user, category) row. The stored row is written back into budget.
	Set(ctx context.Context, budget *Budget) error
	FindByUser(ctx context.Context, userID string) ([]Budget, error)
	Delete(ctx context.Context, userID string, category ExpenseCategory) (int64, error)
}
