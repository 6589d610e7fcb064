package application

import (
	"context"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/finance/scoring"
	"golang.org/x/sync/errgroup"
)

type HealthService struct {
	buckets  domain.BucketRepository
	expenses domain.ExpenseRepository
	budgets  domain.BudgetRepository
	now      func() time.Time
}

func NewHealthService(buckets domain.BucketRepository, expenses domain.ExpenseRepository, budgets domain.BudgetRepository) *HealthService {
	return &HealthService{buckets: buckets, expenses: expenses, budgets: budgets, now: time.Now}
}

type HealthReport struct {
	Month           domain.Month
	Score           scoring.HealthScore
	Recommendations []string
}

// GetHealthReport scores the user's buckets, the current month's expenses
// and the budgets. The three snapshots are loaded concurrently.
func (s *HealthService) GetHealthReport(ctx context.Context, userID string) (*HealthReport, error) {
	month := domain.MonthOf(s.now())

	var (
		buckets  []domain.Bucket
		expenses []domain.Expense
		budgets  []domain.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		buckets, err = s.buckets.FindByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.FindByUserAndMonth(gctx, userID, month)
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

	score := scoring.ComputeHealthScore(buckets, expenses, budgets)
	return &HealthReport{
		Month:           month,
		Score:           score,
		Recommendations: scoring.Recommendations(score),
	}, nil
}
