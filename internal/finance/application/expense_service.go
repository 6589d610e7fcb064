package application

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sebuszqo/FinanceTracker/internal/finance/scoring"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ExpenseService struct {
	repo    domain.ExpenseRepository
	budgets domain.BudgetRepository
}

func NewExpenseService(repo domain.ExpenseRepository, budgets domain.BudgetRepository) *ExpenseService {
	return &ExpenseService{repo: repo, budgets: budgets}
}

type CategoryTotal struct {
	Category domain.ExpenseCategory
	Amount   decimal.Decimal
}

type DailyTotal struct {
	Date   time.Time
	Amount decimal.Decimal
}

type ExpenseAnalysis struct {
	Month      domain.Month
	TotalSpent decimal.Decimal
	ByCategory []CategoryTotal
	// Breakdown only lists categories that have a positive budget.
	Breakdown []scoring.CategoryComparison
	Daily     []DailyTotal
}

func (s *ExpenseService) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	expense.ID = uuid.New()
	expense.Amount = expense.Amount.Round(2)
	if !expense.Date.IsZero() {
		expense.Date = time.Date(expense.Date.Year(), expense.Date.Month(), expense.Date.Day(), 0, 0, 0, 0, time.UTC)
	}
	if err := expense.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, expense)
}

func (s *ExpenseService) GetExpenses(ctx context.Context, userID string) ([]domain.Expense, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *ExpenseService) GetExpensesForMonth(ctx context.Context, userID string, month domain.Month) ([]domain.Expense, error) {
	return s.repo.FindByUserAndMonth(ctx, userID, month)
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID uuid.UUID, userID string) error {
	affected, err := s.repo.Delete(ctx, expenseID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrExpenseNotFound
	}
	return nil
}

func (s *ExpenseService) AnalyzeMonth(ctx context.Context, userID string, month domain.Month) (*ExpenseAnalysis, error) {
	var (
		expenses []domain.Expense
		budgets  []domain.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.repo.FindByUserAndMonth(gctx, userID, month)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.FindByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analysis := AnalyzeExpenses(month, expenses, budgets)
	return &analysis, nil
}

// AnalyzeExpenses summarises one month of expenses against the user's budgets.
func AnalyzeExpenses(month domain.Month, expenses []domain.Expense, budgets []domain.Budget) ExpenseAnalysis {
	analysis := ExpenseAnalysis{
		Month:      month,
		TotalSpent: decimal.Zero,
		ByCategory: []CategoryTotal{},
		Breakdown:  []scoring.CategoryComparison{},
		Daily:      []DailyTotal{},
	}

	byCategory := make(map[domain.ExpenseCategory]decimal.Decimal)
	daily := make(map[time.Time]decimal.Decimal)
	for _, e := range expenses {
		analysis.TotalSpent = analysis.TotalSpent.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		day := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
		daily[day] = daily[day].Add(e.Amount)
	}

	for _, row := range scoring.CategoryBreakdown(expenses, budgets) {
		if _, ok := byCategory[row.Category]; ok {
			analysis.ByCategory = append(analysis.ByCategory, CategoryTotal{Category: row.Category, Amount: row.Spent})
		}
		if row.Budgeted.IsPositive() {
			analysis.Breakdown = append(analysis.Breakdown, row)
		}
	}

	for day, amount := range daily {
		analysis.Daily = append(analysis.Daily, DailyTotal{Date: day, Amount: amount})
	}
	sort.Slice(analysis.Daily, func(i, j int) bool {
		return analysis.Daily[i].Date.Before(analysis.Daily[j].Date)
	})
	return analysis
}
