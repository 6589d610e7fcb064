package interfaces

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sebuszqo/FinanceTracker/internal/finance/tips"
	"github.com/sebuszqo/FinanceTracker/internal/logging"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"github.com/shopspring/decimal"
)

type BucketServiceInterface interface {
	CreateBucket(ctx context.Context, bucket *domain.Bucket) error
	GetBuckets(ctx context.Context, userID string) ([]domain.Bucket, error)
	GetBucket(ctx context.Context, bucketID uuid.UUID, userID string) (*domain.Bucket, error)
	UpdateBucketAmount(ctx context.Context, bucketID uuid.UUID, userID string, amount decimal.Decimal) error
	UpdateBucket(ctx context.Context, bucket *domain.Bucket) error
	DeleteBucket(ctx context.Context, bucketID uuid.UUID, userID string) error
	GetSummary(ctx context.Context, userID string) (*application.BucketsSummary, error)
}

type ExpenseServiceInterface interface {
	CreateExpense(ctx context.Context, expense *domain.Expense) error
	GetExpenses(ctx context.Context, userID string) ([]domain.Expense, error)
	GetExpensesForMonth(ctx context.Context, userID string, month domain.Month) ([]domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID uuid.UUID, userID string) error
	AnalyzeMonth(ctx context.Context, userID string, month domain.Month) (*application.ExpenseAnalysis, error)
}

type BudgetServiceInterface interface {
	SetBudget(ctx context.Context, budget *domain.Budget) error
	GetBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
	DeleteBudget(ctx context.Context, userID string, category domain.ExpenseCategory) error
}

type GoalServiceInterface interface {
	CreateGoal(ctx context.Context, goal *domain.Goal) error
	GetGoals(ctx context.Context, userID string) ([]application.GoalProgress, error)
	GetGoal(ctx context.Context, goalID uuid.UUID, userID string) (*application.GoalProgress, error)
	DeleteGoal(ctx context.Context, goalID uuid.UUID, userID string) error
	SetLinkedBuckets(ctx context.Context, goalID uuid.UUID, userID string, bucketIDs []uuid.UUID) (*application.GoalProgress, error)
	GetSummary(ctx context.Context, userID string) (*application.GoalsSummary, error)
}

type HealthServiceInterface interface {
	GetHealthReport(ctx context.Context, userID string) (*application.HealthReport, error)
}

type TipPicker interface {
	Pick(context tips.Context) tips.Tip
	ForPage(page string) tips.Tip
}

// FinanceHandler serves every finance endpoint of the protected API.
type FinanceHandler struct {
	bucketService  BucketServiceInterface
	expenseService ExpenseServiceInterface
	budgetService  BudgetServiceInterface
	goalService    GoalServiceInterface
	healthService  HealthServiceInterface
	tipPicker      TipPicker
	respondJSON    func(w http.ResponseWriter, status int, payload interface{})
	respondError   func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewFinanceHandler(
	bucketService BucketServiceInterface,
	expenseService ExpenseServiceInterface,
	budgetService BudgetServiceInterface,
	goalService GoalServiceInterface,
	healthService HealthServiceInterface,
	tipPicker TipPicker,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *FinanceHandler {
	return &FinanceHandler{
		bucketService:  bucketService,
		expenseService: expenseService,
		budgetService:  budgetService,
		goalService:    goalService,
		healthService:  healthService,
		tipPicker:      tipPicker,
		respondJSON:    respondJSON,
		respondError:   respondError,
	}
}

type pathParamKey string

func capitalizeFirstLetter(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(string(s[0])) + s[1:]
}

// ValidatePathParamsMiddleware parses the named path values as UUIDs and puts
// them into the request context. A malformed id cannot exist, so it answers 404.
func (h *FinanceHandler) ValidatePathParamsMiddleware(next http.Handler, params ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, param := range params {
			paramValue := r.PathValue(param)
			if paramValue == "" {
				h.respondError(w, http.StatusBadRequest, capitalizeFirstLetter(param+" is required"))
				return
			}

			parsedUUID, err := uuid.Parse(paramValue)
			if err != nil {
				logging.FromContext(r.Context()).Debug("invalid path parameter", "param", param, "value", paramValue)
				switch param {
				case "bucketID":
					h.respondError(w, http.StatusNotFound, "Bucket not found")
				case "expenseID":
					h.respondError(w, http.StatusNotFound, "Expense not found")
				case "goalID":
					h.respondError(w, http.StatusNotFound, "Goal not found")
				default:
					h.respondError(w, http.StatusBadRequest, "Invalid "+param+" format")
				}
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), pathParamKey(param), parsedUUID))
		}
		next.ServeHTTP(w, r)
	})
}

func pathUUID(r *http.Request, param string) uuid.UUID {
	id, _ := r.Context().Value(pathParamKey(param)).(uuid.UUID)
	return id
}

func (h *FinanceHandler) getUserIDReq(w http.ResponseWriter, r *http.Request) string {
	userID, ok := user.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return ""
	}
	return userID
}

var notFoundMessages = []struct {
	err     error
	message string
}{
	{financeErrors.ErrBucketNotFound, "Bucket not found"},
	{financeErrors.ErrExpenseNotFound, "Expense not found"},
	{financeErrors.ErrBudgetNotFound, "Budget not found"},
	{financeErrors.ErrGoalNotFound, "Goal not found"},
}

// handleServiceError maps service errors to responses: validation problems
// are 400, missing rows 404 and anything else a logged 500 with fallback.
func (h *FinanceHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validationErrors *financeErrors.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.respondError(w, http.StatusBadRequest, "Validation errors occurred", validationErrors.Messages())
		return
	}
	if financeErrors.IsValidationError(err) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			h.respondError(w, http.StatusNotFound, nf.message)
			return
		}
	}

	logging.FromContext(r.Context()).Error(fallback,
		slog.String(logging.FieldComponent, logging.ComponentFinance),
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String(logging.FieldError, err.Error()),
	)
	h.respondError(w, http.StatusInternalServerError, fallback)
}

func (h *FinanceHandler) respondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	h.respondJSON(w, status, map[string]interface{}{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}
