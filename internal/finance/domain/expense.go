package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	CategoryHousing        ExpenseCategory = "Housing"
	CategoryTransportation ExpenseCategory = "Transportation"
	CategoryFood           ExpenseCategory = "Food"
	CategoryUtilities      ExpenseCategory = "Utilities"
	CategoryEntertainment  ExpenseCategory = "Entertainment"
	CategoryOther          ExpenseCategory = "Other"
)

// ExpenseCategories is shared by expenses and budgets.
var ExpenseCategories = []ExpenseCategory{
	CategoryHousing,
	CategoryTransportation,
	CategoryFood,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryOther,
}

func IsValidExpenseCategory(c ExpenseCategory) bool {
	for _, ec := range ExpenseCategories {
		if ec == c {
			return true
		}
	}
	return false
}

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	maxDescriptionLength = 200
)

type Expense struct {
	ID          uuid.UUID
	UserID      string
	Category    ExpenseCategory
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

func (e *Expense) Validate() error {
	ve := &financeErrors.ValidationErrors{}
	if !IsValidExpenseCategory(e.Category) {
		ve.Add(financeErrors.ErrInvalidExpenseCategory)
	}
	if err := CheckAmount(e.Amount); err != nil {
		ve.Add(err)
	}
	if e.Date.IsZero() {
		ve.Add(financeErrors.NewFieldValidationError("date", "is required"))
	}
	if len(e.Description) > maxDescriptionLength {
		ve.Add(financeErrors.NewFieldValidationError("description", "must be at most 200 characters"))
	}
	return ve.ErrOrNil()
}

// Month is a calendar month used to scope expense queries.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, financeErrors.ErrInvalidMonth
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Start returns the first day of the month in UTC.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first day of the following month, the exclusive upper bound.
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	FindByUser(ctx context.Context, userID string) ([]Expense, error)
	FindByUserAndMonth(ctx context.Context, userID string, month Month) ([]Expense, error)
	Delete(ctx context.Context, expenseID uuid.UUID, userID string) (int64, error)
}
