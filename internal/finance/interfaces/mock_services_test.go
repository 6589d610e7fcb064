package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
)

type MockBucketService struct {
	CreateBucketFn       func(ctx context.Context, bucket *domain.Bucket) error
	GetBucketsFn         func(ctx context.Context, userID string) ([]domain.Bucket, error)
	GetBucketFn          func(ctx context.Context, bucketID uuid.UUID, userID string) (*domain.Bucket, error)
	UpdateBucketAmountFn func(ctx context.Context, bucketID uuid.UUID, userID string, amount decimal.Decimal) error
	UpdateBucketFn       func(ctx context.Context, bucket *domain.Bucket) error
	DeleteBucketFn       func(ctx context.Context, bucketID uuid.UUID, userID string) error
	GetSummaryFn         func(ctx context.Context, userID string) (*application.BucketsSummary, error)
}

func (m *MockBucketService) CreateBucket(ctx context.Context, bucket *domain.Bucket) error {
	return m.CreateBucketFn(ctx, bucket)
}

func (m *MockBucketService) GetBuckets(ctx context.Context, userID string) ([]domain.Bucket, error) {
	return m.GetBucketsFn(ctx, userID)
}

func (m *MockBucketService) GetBucket(ctx context.Context, bucketID uuid.UUID, userID string) (*domain.Bucket, error) {
	return m.GetBucketFn(ctx, bucketID, userID)
}

func (m *MockBucketService) UpdateBucketAmount(ctx context.Context, bucketID uuid.UUID, userID string, amount decimal.Decimal) error {
	return m.UpdateBucketAmountFn(ctx, bucketID, userID, amount)
}

func (m *MockBucketService) UpdateBucket(ctx context.Context, bucket *domain.Bucket) error {
	return m.UpdateBucketFn(ctx, bucket)
}

func (m *MockBucketService) DeleteBucket(ctx context.Context, bucketID uuid.UUID, userID string) error {
	return m.DeleteBucketFn(ctx, bucketID, userID)
}

func (m *MockBucketService) GetSummary(ctx context.Context, userID string) (*application.BucketsSummary, error) {
	return m.GetSummaryFn(ctx, userID)
}

type MockExpenseService struct {
	CreateExpenseFn       func(ctx context.Context, expense *domain.Expense) error
	GetExpensesFn         func(ctx context.Context, userID string) ([]domain.Expense, error)
	GetExpensesForMonthFn func(ctx context.Context, userID string, month domain.Month) ([]domain.Expense, error)
	DeleteExpenseFn       func(ctx context.Context, expenseID uuid.UUID, userID string) error
	AnalyzeMonthFn        func(ctx context.Context, userID string, month domain.Month) (*application.ExpenseAnalysis, error)
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	return m.CreateExpenseFn(ctx, expense)
}

func (m *MockExpenseService) GetExpenses(ctx context.Context, userID string) ([]domain.Expense, error) {
	return m.GetExpensesFn(ctx, userID)
}

func (m *MockExpenseService) GetExpensesForMonth(ctx context.Context, userID string, month domain.Month) ([]domain.Expense, error) {
	return m.GetExpensesForMonthFn(ctx, userID, month)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, expenseID uuid.UUID, userID string) error {
	return m.DeleteExpenseFn(ctx, expenseID, userID)
}

func (m *MockExpenseService) AnalyzeMonth(ctx context.Context, userID string, month domain.Month) (*application.ExpenseAnalysis, error) {
	return m.AnalyzeMonthFn(ctx, userID, month)
}

type MockBudgetService struct {
	SetBudgetFn    func(ctx context.Context, budget *domain.Budget) error
	GetBudgetsFn   func(ctx context.Context, userID string) ([]domain.Budget, error)
	DeleteBudgetFn func(ctx context.Context, userID string, category domain.ExpenseCategory) error
}

func (m *MockBudgetService) SetBudget(ctx context.Context, budget *domain.Budget) error {
	return m.SetBudgetFn(ctx, budget)
}

func (m *MockBudgetService) GetBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	return m.GetBudgetsFn(ctx, userID)
}

func (m *MockBudgetService) DeleteBudget(ctx context.Context, userID string, category domain.ExpenseCategory) error {
	return m.DeleteBudgetFn(ctx, userID, category)
}

type MockGoalService struct {
	CreateGoalFn       func(ctx context.Context, goal *domain.Goal) error
	GetGoalsFn         func(ctx context.Context, userID string) ([]application.GoalProgress, error)
	GetGoalFn          func(ctx context.Context, goalID uuid.UUID, userID string) (*application.GoalProgress, error)
	DeleteGoalFn       func(ctx context.Context, goalID uuid.UUID, userID string) error
	SetLinkedBucketsFn func(ctx context.Context, goalID uuid.UUID, userID string, bucketIDs []uuid.UUID) (*application.GoalProgress, error)
	GetSummaryFn       func(ctx context.Context, userID string) (*application.GoalsSummary, error)
}

func (m *MockGoalService) CreateGoal(ctx context.Context, goal *domain.Goal) error {
	return m.CreateGoalFn(ctx, goal)
}

func (m *MockGoalService) GetGoals(ctx context.Context, userID string) ([]application.GoalProgress, error) {
	return m.GetGoalsFn(ctx, userID)
}

func (m *MockGoalService) GetGoal(ctx context.Context, goalID uuid.UUID, userID string) (*application.GoalProgress, error) {
	return m.GetGoalFn(ctx, goalID, userID)
}

func (m *MockGoalService) DeleteGoal(ctx context.Context, goalID uuid.UUID, userID string) error {
	return m.DeleteGoalFn(ctx, goalID, userID)
}

func (m *MockGoalService) SetLinkedBuckets(ctx context.Context, goalID uuid.UUID, userID string, bucketIDs []uuid.UUID) (*application.GoalProgress, error) {
	return m.SetLinkedBucketsFn(ctx, goalID, userID, bucketIDs)
}

func (m *MockGoalService) GetSummary(ctx context.Context, userID string) (*application.GoalsSummary, error) {
	return m.GetSummaryFn(ctx, userID)
}

type MockHealthService struct {
	Report *application.HealthReport
	Err    error
}

func (m *MockHealthService) GetHealthReport(ctx context.Context, userID string) (*application.HealthReport, error) {
	return m.Report, m.Err
}
