package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoalFixture(t *testing.T) (*GoalService, *MockGoalRepository, uuid.UUID, uuid.UUID) {
	t.Helper()
	x, y := uuid.New(), uuid.New()
	buckets := &MockBucketRepository{Buckets: []domain.Bucket{
		{ID: x, UserID: userID, Name: "X", Amount: dec("30"), Type: domain.BucketTypeCash},
		{ID: y, UserID: userID, Name: "Y", Amount: dec("70"), Type: domain.BucketTypeTFSA},
	}}
	repo := &MockGoalRepository{Buckets: buckets}
	service := NewGoalService(repo)
	service.now = func() time.Time { return time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC) }
	return service, repo, x, y
}

func TestCreateGoal(t *testing.T) {
	service, repo, _, _ := newGoalFixture(t)

	goal := &domain.Goal{
		UserID:       userID,
		Name:         " Car\t",
		TargetAmount: dec("200"),
		Deadline:     time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC),
		Category:     domain.GoalMajorPurchase,
	}
	require.NoError(t, service.CreateGoal(context.Background(), goal))
	require.Len(t, repo.Goals, 1)
	assert.Equal(t, "Car", repo.Goals[0].Name)
	assert.Equal(t, day(2024, time.January, 11), goal.Deadline)

	err := service.CreateGoal(context.Background(), &domain.Goal{UserID: userID, Name: "Bad", TargetAmount: dec("1"), Category: "Yacht"})
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*financeErrors.ValidationErrors))
}

func TestSetLinkedBuckets_ProgressFollowsLinks(t *testing.T) {
	service, _, x, y := newGoalFixture(t)
	ctx := context.Background()

	goal := &domain.Goal{UserID: userID, Name: "Trip", TargetAmount: dec("200"), Deadline: day(2024, time.January, 11), Category: domain.GoalSavings}
	require.NoError(t, service.CreateGoal(ctx, goal))

	progress, err := service.SetLinkedBuckets(ctx, goal.ID, userID, []uuid.UUID{x, y})
	require.NoError(t, err)
	assert.True(t, progress.Goal.CurrentAmount.Equal(dec("100")))
	assert.Equal(t, 50.0, progress.ProgressPercent)
	assert.Equal(t, 10, progress.DaysLeft)

	progress, err = service.SetLinkedBuckets(ctx, goal.ID, userID, []uuid.UUID{x})
	require.NoError(t, err)
	assert.True(t, progress.Goal.CurrentAmount.Equal(dec("30")))
	assert.Equal(t, []uuid.UUID{x}, progress.Goal.LinkedBucketIDs)
}

func TestSetLinkedBuckets_Errors(t *testing.T) {
	service, _, x, _ := newGoalFixture(t)
	ctx := context.Background()

	_, err := service.SetLinkedBuckets(ctx, uuid.New(), userID, []uuid.UUID{x})
	assert.ErrorIs(t, err, financeErrors.ErrGoalNotFound)

	goal := &domain.Goal{UserID: userID, Name: "Trip", TargetAmount: dec("200"), Deadline: day(2024, time.June, 1), Category: domain.GoalSavings}
	require.NoError(t, service.CreateGoal(ctx, goal))
	_, err = service.SetLinkedBuckets(ctx, goal.ID, userID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, financeErrors.ErrUnknownLinkedBucket)
}

func TestGetGoals_PastDeadlineHasNoDaysLeft(t *testing.T) {
	service, _, _, _ := newGoalFixture(t)
	ctx := context.Background()

	goal := &domain.Goal{UserID: userID, Name: "Old", TargetAmount: dec("0"), Deadline: day(2023, time.December, 1), Category: domain.GoalOther}
	require.NoError(t, service.CreateGoal(ctx, goal))

	goals, err := service.GetGoals(ctx, userID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, 0, goals[0].DaysLeft)
	assert.Equal(t, 0.0, goals[0].ProgressPercent)
	assert.NotNil(t, goals[0].Goal.LinkedBucketIDs)
}

func TestDeleteGoal(t *testing.T) {
	service, repo, _, _ := newGoalFixture(t)
	ctx := context.Background()

	goal := &domain.Goal{UserID: userID, Name: "Trip", TargetAmount: dec("10"), Deadline: day(2024, time.June, 1), Category: domain.GoalSavings}
	require.NoError(t, service.CreateGoal(ctx, goal))

	assert.ErrorIs(t, service.DeleteGoal(ctx, goal.ID, "other"), financeErrors.ErrGoalNotFound)
	require.NoError(t, service.DeleteGoal(ctx, goal.ID, userID))
	assert.Empty(t, repo.Goals)
}

func TestSummarizeGoals(t *testing.T) {
	goals := []domain.Goal{
		{Category: domain.GoalSavings, TargetAmount: dec("100"), CurrentAmount: dec("50")},
		{Category: domain.GoalRetirement, TargetAmount: dec("300"), CurrentAmount: dec("50")},
		{Category: domain.GoalSavings, TargetAmount: dec("100"), CurrentAmount: dec("0")},
	}

	summary := SummarizeGoals(goals)
	assert.True(t, summary.TotalTarget.Equal(dec("500")))
	assert.True(t, summary.TotalCurrent.Equal(dec("100")))
	assert.Equal(t, 20.0, summary.OverallProgress)
	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, domain.GoalSavings, summary.ByCategory[0].Category)
	assert.True(t, summary.ByCategory[0].TargetAmount.Equal(dec("200")))
	assert.Equal(t, domain.GoalRetirement, summary.ByCategory[1].Category)
}

func TestSummarizeGoals_Empty(t *testing.T) {
	summary := SummarizeGoals(nil)
	assert.Equal(t, 0.0, summary.OverallProgress)
	assert.Empty(t, summary.ByCategory)
}
