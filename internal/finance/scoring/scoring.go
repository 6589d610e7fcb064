// Package scoring computes the financial health score from snapshots of a
// user's buckets, current-month expenses and budgets.
//
// Every function here is pure and total: empty or degenerate input yields a
// score of 0 for the affected metric instead of an error.
package scoring

import (
	"math"
	"sort"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
)

const (
	savingsWeight         = 0.4
	diversificationWeight = 0.3
	budgetWeight          = 0.3

	// Share of total money in tax-advantaged accounts that earns full marks.
	savingsTargetRatio = 0.4
	// Concentration in a single account type above which diversification is penalised.
	concentrationThreshold = 0.5
	typeBonusPerType       = 5
	maxTypeBonus           = 20

	maxScore = 100.0
)

type HealthScore struct {
	Overall         float64 `json:"overall_score"`
	Savings         float64 `json:"savings_score"`
	Diversification float64 `json:"diversification_score"`
	Budget          float64 `json:"budget_score"`
}

// ComputeHealthScore combines the three sub-scores. The overall score is
// weighted from the unrounded sub-scores; every reported value is rounded to
// one decimal place.
func ComputeHealthScore(buckets []domain.Bucket, expenses []domain.Expense, budgets []domain.Budget) HealthScore {
	savings := SavingsScore(buckets)
	diversification := DiversificationScore(buckets)
	budget := BudgetScore(expenses, budgets)

	return HealthScore{
		Overall:         Overall(savings, diversification, budget),
		Savings:         Round1(savings),
		Diversification: Round1(diversification),
		Budget:          Round1(budget),
	}
}

// Overall returns round1(0.4*savings + 0.3*diversification + 0.3*budget).
func Overall(savings, diversification, budget float64) float64 {
	return Round1(savingsWeight*savings + diversificationWeight*diversification + budgetWeight*budget)
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SavingsScore scales the RRSP+TFSA share of total money linearly so that a
// 40% share or more scores 100.
func SavingsScore(buckets []domain.Bucket) float64 {
	total := decimal.Zero
	advantaged := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Amount)
		if b.Type.IsTaxAdvantaged() {
			advantaged = advantaged.Add(b.Amount)
		}
	}
	if !total.IsPositive() {
		return 0
	}

	ratio := advantaged.Div(total).InexactFloat64()
	return math.Min(maxScore, ratio/savingsTargetRatio*100)
}

// DiversificationScore penalises concentration above 50% in one account type
// and adds a bonus of 5 points per distinct type, capped at 20.
func DiversificationScore(buckets []domain.Bucket) float64 {
	if len(buckets) == 0 {
		return 0
	}

	total := decimal.Zero
	byType := make(map[domain.BucketType]decimal.Decimal)
	for _, b := range buckets {
		total = total.Add(b.Amount)
		byType[b.Type] = byType[b.Type].Add(b.Amount)
	}
	if !total.IsPositive() {
		return 0
	}

	maxShare := 0.0
	for _, amount := range byType {
		if share := amount.Div(total).InexactFloat64(); share > maxShare {
			maxShare = share
		}
	}

	base := maxScore - math.Max(0, (maxShare-concentrationThreshold)*200)
	bonus := math.Min(maxTypeBonus, float64(typeBonusPerType*len(byType)))
	return math.Min(maxScore, base+bonus)
}

// BudgetScore is the budget-weighted average of per-category adherence.
// Categories with a zero budget carry no weight.
func BudgetScore(expenses []domain.Expense, budgets []domain.Budget) float64 {
	if len(budgets) == 0 || len(expenses) == 0 {
		return 0
	}

	weighted := 0.0
	totalBudget := 0.0
	for _, row := range CategoryBreakdown(expenses, budgets) {
		if !row.Budgeted.IsPositive() {
			continue
		}
		budget := row.Budgeted.InexactFloat64()
		weighted += row.Adherence * budget
		totalBudget += budget
	}
	if totalBudget == 0 {
		return 0
	}
	return weighted / totalBudget
}

// CategoryComparison is one row of the budget-vs-actual breakdown.
type CategoryComparison struct {
	Category domain.ExpenseCategory `json:"category"`
	Spent    decimal.Decimal        `json:"spent"`
	Budgeted decimal.Decimal        `json:"budgeted"`
	// Remaining is budgeted minus spent; negative when over budget.
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed float64         `json:"percent_used"`
	// Adherence is 100 - |spent-budgeted|/budgeted*100 clipped to [0,100],
	// and 0 for categories without a positive budget.
	Adherence  float64 `json:"adherence"`
	OverBudget bool    `json:"over_budget"`
}

// CategoryBreakdown joins expense totals and budgets per category. Categories
// present on either side appear once, the missing side counting as zero.
// Rows follow the fixed category order; unknown categories sort last by name.
func CategoryBreakdown(expenses []domain.Expense, budgets []domain.Budget) []CategoryComparison {
	spent := make(map[domain.ExpenseCategory]decimal.Decimal)
	budgeted := make(map[domain.ExpenseCategory]decimal.Decimal)
	seen := make(map[domain.ExpenseCategory]struct{})

	for _, e := range expenses {
		spent[e.Category] = spent[e.Category].Add(e.Amount)
		seen[e.Category] = struct{}{}
	}
	for _, b := range budgets {
		budgeted[b.Category] = budgeted[b.Category].Add(b.Amount)
		seen[b.Category] = struct{}{}
	}

	categories := make([]domain.ExpenseCategory, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		oi, oj := categoryOrder(categories[i]), categoryOrder(categories[j])
		if oi != oj {
			return oi < oj
		}
		return categories[i] < categories[j]
	})

	rows := make([]CategoryComparison, 0, len(categories))
	for _, c := range categories {
		s, b := spent[c], budgeted[c]
		row := CategoryComparison{
			Category:   c,
			Spent:      s,
			Budgeted:   b,
			Remaining:  b.Sub(s),
			OverBudget: s.GreaterThan(b),
		}
		if b.IsPositive() {
			row.PercentUsed = s.Div(b).Mul(decimal.NewFromInt(100)).InexactFloat64()
			deviation := s.Sub(b).Abs().Div(b).InexactFloat64() * 100
			row.Adherence = clip(maxScore-deviation, 0, maxScore)
		}
		rows = append(rows, row)
	}
	return rows
}

func categoryOrder(c domain.ExpenseCategory) int {
	for i, known := range domain.ExpenseCategories {
		if known == c {
			return i
		}
	}
	return len(domain.ExpenseCategories)
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
