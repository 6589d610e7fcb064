package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type MockBucketRepository struct {
	Buckets []domain.Bucket
	Err     error
}

func (m *MockBucketRepository) Create(ctx context.Context, bucket *domain.Bucket) error {
	if m.Err != nil {
		return m.Err
	}
	m.Buckets = append(m.Buckets, *bucket)
	return nil
}

func (m *MockBucketRepository) FindByUser(ctx context.Context, userID string) ([]domain.Bucket, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := []domain.Bucket{}
	for _, b := range m.Buckets {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *MockBucketRepository) FindByID(ctx context.Context, bucketID uuid.UUID, userID string) (*domain.Bucket, error) {
	for _, b := range m.Buckets {
		if b.ID == bucketID && b.UserID == userID {
			return &b, nil
		}
	}
	return nil, financeErrors.ErrBucketNotFound
}

func (m *MockBucketRepository) UpdateAmount(ctx context.Context, bucketID uuid.UUID, userID string, amount decimal.Decimal) (int64, error) {
	for i := range m.Buckets {
		if m.Buckets[i].ID == bucketID && m.Buckets[i].UserID == userID {
			m.Buckets[i].Amount = amount
			return 1, nil
		}
	}
	return 0, m.Err
}

func (m *MockBucketRepository) Update(ctx context.Context, bucket *domain.Bucket) (int64, error) {
	for i := range m.Buckets {
		if m.Buckets[i].ID == bucket.ID && m.Buckets[i].UserID == bucket.UserID {
			m.Buckets[i].Name = bucket.Name
			m.Buckets[i].Type = bucket.Type
			return 1, nil
		}
	}
	return 0, m.Err
}

func (m *MockBucketRepository) Delete(ctx context.Context, bucketID uuid.UUID, userID string) (int64, error) {
	for i := range m.Buckets {
		if m.Buckets[i].ID == bucketID && m.Buckets[i].UserID == userID {
			m.Buckets = append(m.Buckets[:i], m.Buckets[i+1:]...)
			return 1, nil
		}
	}
	return 0, m.Err
}

type MockExpenseRepository struct {
	Expenses []domain.Expense
	Err      error
	// LastMonth records the month passed to FindByUserAndMonth.
	LastMonth domain.Month
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if m.Err != nil {
		return m.Err
	}
	m.Expenses = append(m.Expenses, *expense)
	return nil
}

func (m *MockExpenseRepository) FindByUser(ctx context.Context, userID string) ([]domain.Expense, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := []domain.Expense{}
	for _, e := range m.Expenses {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockExpenseRepository) FindByUserAndMonth(ctx context.Context, userID string, month domain.Month) ([]domain.Expense, error) {
	m.LastMonth = month
	if m.Err != nil {
		return nil, m.Err
	}
	result := []domain.Expense{}
	for _, e := range m.Expenses {
		if e.UserID == userID && !e.Date.Before(month.Start()) && e.Date.Before(month.End()) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, expenseID uuid.UUID, userID string) (int64, error) {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expenseID && m.Expenses[i].UserID == userID {
			m.Expenses = append(m.Expenses[:i], m.Expenses[i+1:]...)
			return 1, nil
		}
	}
	return 0, m.Err
}

type MockBudgetRepository struct {
	Budgets []domain.Budget
	Err     error
}

func (m *MockBudgetRepository) Set(ctx context.Context, budget *domain.Budget) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Budgets {
		if m.Budgets[i].UserID == budget.UserID && m.Budgets[i].Category == budget.Category {
			m.Budgets[i].Amount = budget.Amount
			budget.ID = m.Budgets[i].ID
			return nil
		}
	}
	m.Budgets = append(m.Budgets, *budget)
	return nil
}

func (m *MockBudgetRepository) FindByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := []domain.Budget{}
	for _, b := range m.Budgets {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *MockBudgetRepository) Delete(ctx context.Context, userID string, category domain.ExpenseCategory) (int64, error) {
	for i := range m.Budgets {
		if m.Budgets[i].UserID == userID && m.Budgets[i].Category == category {
			m.Budgets = append(m.Budgets[:i], m.Budgets[i+1:]...)
			return 1, nil
		}
	}
	return 0, m.Err
}

// MockGoalRepository keeps goals and links in memory and derives current
// amounts from Buckets the same way the SQL join does.
type MockGoalRepository struct {
	Goals   []domain.Goal
	Links   map[uuid.UUID][]uuid.UUID
	Buckets *MockBucketRepository
	Err     error
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	if m.Err != nil {
		return m.Err
	}
	m.Goals = append(m.Goals, *goal)
	return nil
}

func (m *MockGoalRepository) FindByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := []domain.Goal{}
	for _, g := range m.Goals {
		if g.UserID == userID {
			result = append(result, m.fill(g))
		}
	}
	return result, nil
}

func (m *MockGoalRepository) FindByID(ctx context.Context, goalID uuid.UUID, userID string) (*domain.Goal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, g := range m.Goals {
		if g.ID == goalID && g.UserID == userID {
			filled := m.fill(g)
			return &filled, nil
		}
	}
	return nil, financeErrors.ErrGoalNotFound
}

func (m *MockGoalRepository) Delete(ctx context.Context, goalID uuid.UUID, userID string) (int64, error) {
	for i := range m.Goals {
		if m.Goals[i].ID == goalID && m.Goals[i].UserID == userID {
			m.Goals = append(m.Goals[:i], m.Goals[i+1:]...)
			delete(m.Links, goalID)
			return 1, nil
		}
	}
	return 0, m.Err
}

func (m *MockGoalRepository) SetLinkedBuckets(ctx context.Context, goalID uuid.UUID, userID string, bucketIDs []uuid.UUID) error {
	if _, err := m.FindByID(ctx, goalID, userID); err != nil {
		return err
	}
	links := []uuid.UUID{}
	seen := map[uuid.UUID]bool{}
	for _, id := range bucketIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := m.Buckets.FindByID(ctx, id, userID); err != nil {
			return financeErrors.ErrUnknownLinkedBucket
		}
		links = append(links, id)
	}
	if m.Links == nil {
		m.Links = map[uuid.UUID][]uuid.UUID{}
	}
	m.Links[goalID] = links
	return nil
}

func (m *MockGoalRepository) CurrentAmount(ctx context.Context, goalID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, id := range m.Links[goalID] {
		for _, b := range m.Buckets.Buckets {
			if b.ID == id {
				total = total.Add(b.Amount)
			}
		}
	}
	return total, nil
}

func (m *MockGoalRepository) fill(g domain.Goal) domain.Goal {
	g.CurrentAmount, _ = m.CurrentAmount(context.Background(), g.ID)
	g.LinkedBucketIDs = append([]uuid.UUID(nil), m.Links[g.ID]...)
	return g
}
