package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type GoalCategory string

const (
	GoalSavings       GoalCategory = "Savings"
	GoalInvestment    GoalCategory = "Investment"
	GoalEmergencyFund GoalCategory = "Emergency Fund"
	GoalRetirement    GoalCategory = "Retirement"
	GoalMajorPurchase GoalCategory = "Major Purchase"
	GoalOther         GoalCategory = "Other"
)

var GoalCategories = []GoalCategory{
	GoalSavings,
	GoalInvestment,
	GoalEmergencyFund,
	GoalRetirement,
	GoalMajorPurchase,
	GoalOther,
}

func IsValidGoalCategory(c GoalCategory) bool {
	for _, gc := range GoalCategories {
		if gc == c {
			return true
		}
	}
	return false
}

// Goal is a savings target. CurrentAmount is never stored: repositories fill
// it with the live sum of the linked buckets' amounts.
type Goal struct {
	ID              uuid.UUID
	UserID          string
	Name            string
	TargetAmount    decimal.Decimal
	Deadline        time.Time
	Category        GoalCategory
	CreatedAt       time.Time
	CurrentAmount   decimal.Decimal
	LinkedBucketIDs []uuid.UUID
}

func (g *Goal) Validate() error {
	ve := &financeErrors.ValidationErrors{}
	name := strings.TrimSpace(g.Name)
	if name == "" {
		ve.Add(financeErrors.NewFieldValidationError("name", "must not be empty"))
	} else if len(name) > maxBucketNameLength {
		ve.Add(financeErrors.NewFieldValidationError("name", "must be at most 100 characters"))
	}
	if err := CheckAmount(g.TargetAmount); err != nil {
		ve.Add(err)
	}
	if g.Deadline.IsZero() {
		ve.Add(financeErrors.NewFieldValidationError("deadline", "is required"))
	}
	if !IsValidGoalCategory(g.Category) {
		ve.Add(financeErrors.ErrInvalidGoalCategory)
	}
	return ve.ErrOrNil()
}

var hundred = decimal.NewFromInt(100)

// ProgressPercent returns current/target*100, or 0 when target is not positive.
func ProgressPercent(current, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	return current.Div(target).Mul(hundred).InexactFloat64()
}

// DaysLeft returns the number of calendar days from today until the deadline,
// never negative. Both dates are compared by their calendar day only.
func DaysLeft(deadline, today time.Time) int {
	d := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func (g *Goal) ProgressPercent() float64 {
	return ProgressPercent(g.CurrentAmount, g.TargetAmount)
}

func (g *Goal) DaysLeft(today time.Time) int {
	return DaysLeft(g.Deadline, today)
}

type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error
	// FindByUser returns the user's goals with CurrentAmount filled in.
	FindByUser(ctx context.Context, userID string) ([]Goal, error)
	// FindByID returns the goal with CurrentAmount and LinkedBucketIDs filled in.
	FindByID(ctx context.Context, goalID uuid.UUID, userID string) (*Goal, error)
	Delete(ctx context.Context, goalID uuid.UUID, userID string) (int64, error)
	// SetLinkedBuckets replaces every link of the goal with bucketIDs in one
	// transaction. Buckets not owned by userID are rejected.
	SetLinkedBuckets(ctx context.Context, goalID uuid.UUID, userID string, bucketIDs []uuid.UUID) error
	CurrentAmount(ctx context.Context, goalID uuid.UUID) (decimal.Decimal, error)
}
