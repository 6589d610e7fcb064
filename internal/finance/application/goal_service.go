package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type GoalService struct {
	repo domain.GoalRepository
	now  func() time.Time
}

func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo, now: time.Now}
}

// GoalProgress is a goal together with the values derived from its links.
type GoalProgress struct {
	Goal            domain.Goal
	ProgressPercent float64
	DaysLeft        int
}

type GoalCategoryTotal struct {
	Category     domain.GoalCategory
	TargetAmount decimal.Decimal
}

type GoalsSummary struct {
	TotalTarget     decimal.Decimal
	TotalCurrent    decimal.Decimal
	OverallProgress float64
	ByCategory      []GoalCategoryTotal
}

func (s *GoalService) CreateGoal(ctx context.Context, goal *domain.Goal) error {
	goal.ID = uuid.New()
	goal.Name = strings.TrimSpace(goal.Name)
	goal.CreatedAt = s.now().UTC()
	goal.TargetAmount = goal.TargetAmount.Round(2)
	goal.CurrentAmount = decimal.Zero
	goal.LinkedBucketIDs = []uuid.UUID{}
	if !goal.Deadline.IsZero() {
		goal.Deadline = time.Date(goal.Deadline.Year(), goal.Deadline.Month(), goal.Deadline.Day(), 0, 0, 0, 0, time.UTC)
	}
	if err := goal.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, goal)
}

func (s *GoalService) GetGoals(ctx context.Context, userID string) ([]GoalProgress, error) {
	goals, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := s.now()
	result := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		result = append(result, progressOf(g, today))
	}
	return result, nil
}

func (s *GoalService) GetGoal(ctx context.Context, goalID uuid.UUID, userID string) (*GoalProgress, error) {
	goal, err := s.repo.FindByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	progress := progressOf(*goal, s.now())
	return &progress, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, goalID uuid.UUID, userID string) error {
	affected, err := s.repo.Delete(ctx, goalID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrGoalNotFound
	}
	return nil
}

// SetLinkedBuckets replaces the goal's linked buckets and returns the goal
// with its recomputed progress.
func (s *GoalService) SetLinkedBuckets(ctx context.Context, goalID uuid.UUID, userID string, bucketIDs []uuid.UUID) (*GoalProgress, error) {
	if err := s.repo.SetLinkedBuckets(ctx, goalID, userID, bucketIDs); err != nil {
		return nil, err
	}
	return s.GetGoal(ctx, goalID, userID)
}

func (s *GoalService) GetSummary(ctx context.Context, userID string) (*GoalsSummary, error) {
	goals, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := SummarizeGoals(goals)
	return &summary, nil
}

// SummarizeGoals totals targets and current amounts over all goals. The
// overall progress is 0 when the combined target is 0.
func SummarizeGoals(goals []domain.Goal) GoalsSummary {
	summary := GoalsSummary{
		TotalTarget:  decimal.Zero,
		TotalCurrent: decimal.Zero,
		ByCategory:   []GoalCategoryTotal{},
	}
	byCategory := make(map[domain.GoalCategory]decimal.Decimal)
	for _, g := range goals {
		summary.TotalTarget = summary.TotalTarget.Add(g.TargetAmount)
		summary.TotalCurrent = summary.TotalCurrent.Add(g.CurrentAmount)
		byCategory[g.Category] = byCategory[g.Category].Add(g.TargetAmount)
	}
	summary.OverallProgress = domain.ProgressPercent(summary.TotalCurrent, summary.TotalTarget)

	for _, c := range domain.GoalCategories {
		if amount, ok := byCategory[c]; ok {
			summary.ByCategory = append(summary.ByCategory, GoalCategoryTotal{Category: c, TargetAmount: amount})
		}
	}
	return summary
}

func progressOf(goal domain.Goal, today time.Time) GoalProgress {
	if goal.LinkedBucketIDs == nil {
		goal.LinkedBucketIDs = []uuid.UUID{}
	}
	return GoalProgress{
		Goal:            goal,
		ProgressPercent: goal.ProgressPercent(),
		DaysLeft:        goal.DaysLeft(today),
	}
}
