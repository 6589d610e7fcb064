package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type BudgetService struct {
	repo domain.BudgetRepository
}

func NewBudgetService(repo domain.BudgetRepository) *BudgetService {
	return &BudgetService{repo: repo}
}

// SetBudget creates the category budget or replaces its amount.
func (s *BudgetService) SetBudget(ctx context.Context, budget *domain.Budget) error {
	budget.ID = uuid.New()
	budget.Amount = budget.Amount.Round(2)
	if err := budget.Validate(); err != nil {
		return err
	}
	return s.repo.Set(ctx, budget)
}

func (s *BudgetService) GetBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *BudgetService) DeleteBudget(ctx context.Context, userID string, category domain.ExpenseCategory) error {
	if !domain.IsValidExpenseCategory(category) {
		return financeErrors.ErrInvalidExpenseCategory
	}
	affected, err := s.repo.Delete(ctx, userID, category)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrBudgetNotFound
	}
	return nil
}
