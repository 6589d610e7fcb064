package interfaces

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/finance/scoring"
	"github.com/shopspring/decimal"
)

type createExpenseRequest struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

type expenseResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

type categoryTotalResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type dailyTotalResponse struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type expenseAnalysisResponse struct {
	Month      string                       `json:"month"`
	TotalSpent decimal.Decimal              `json:"total_spent"`
	ByCategory []categoryTotalResponse      `json:"by_category"`
	Breakdown  []scoring.CategoryComparison `json:"budget_comparison"`
	Daily      []dailyTotalResponse         `json:"daily"`
}

func toExpenseResponse(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID.String(),
		Category:    string(e.Category),
		Amount:      e.Amount,
		Date:        e.Date.Format(domain.DateLayout),
		Description: e.Description,
	}
}

func toExpenseAnalysisResponse(a *application.ExpenseAnalysis) expenseAnalysisResponse {
	resp := expenseAnalysisResponse{
		Month:      a.Month.String(),
		TotalSpent: a.TotalSpent,
		ByCategory: make([]categoryTotalResponse, 0, len(a.ByCategory)),
		Breakdown:  a.Breakdown,
		Daily:      make([]dailyTotalResponse, 0, len(a.Daily)),
	}
	if resp.Breakdown == nil {
		resp.Breakdown = []scoring.CategoryComparison{}
	}
	for _, c := range a.ByCategory {
		resp.ByCategory = append(resp.ByCategory, categoryTotalResponse{Category: string(c.Category), Amount: c.Amount})
	}
	for _, d := range a.Daily {
		resp.Daily = append(resp.Daily, dailyTotalResponse{Date: d.Date.Format(domain.DateLayout), Amount: d.Amount})
	}
	return resp
}

// monthParam reads ?month=YYYY-MM, defaulting to the current month.
func (h *FinanceHandler) monthParam(w http.ResponseWriter, r *http.Request) (domain.Month, bool) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return domain.MonthOf(time.Now()), true
	}
	month, err := domain.ParseMonth(raw)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return domain.Month{}, false
	}
	return month, true
}

func (h *FinanceHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense := &domain.Expense{
		UserID:      userID,
		Category:    domain.ExpenseCategory(req.Category),
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != "" {
		date, err := time.Parse(domain.DateLayout, req.Date)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		expense.Date = date
	}

	if err := h.expenseService.CreateExpense(r.Context(), expense); err != nil {
		h.handleServiceError(w, r, err, "Failed to create expense")
		return
	}
	h.respondSuccess(w, http.StatusCreated, "Expense successfully created.", toExpenseResponse(*expense))
}

// GetExpenses lists the expenses of ?month=YYYY-MM, or every expense when the
// parameter is absent.
func (h *FinanceHandler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	var (
		expenses []domain.Expense
		err      error
	)
	if r.URL.Query().Get("month") == "" {
		expenses, err = h.expenseService.GetExpenses(r.Context(), userID)
	} else {
		month, ok := h.monthParam(w, r)
		if !ok {
			return
		}
		expenses, err = h.expenseService.GetExpensesForMonth(r.Context(), userID, month)
	}
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve expenses")
		return
	}

	resp := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toExpenseResponse(e))
	}
	h.respondSuccess(w, http.StatusOK, "Expenses successfully retrieved.", resp)
}

func (h *FinanceHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	if err := h.expenseService.DeleteExpense(r.Context(), pathUUID(r, "expenseID"), userID); err != nil {
		h.handleServiceError(w, r, err, "Failed to delete expense")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Expense successfully deleted.", nil)
}

func (h *FinanceHandler) GetExpenseAnalysis(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}
	month, ok := h.monthParam(w, r)
	if !ok {
		return
	}

	analysis, err := h.expenseService.AnalyzeMonth(r.Context(), userID, month)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to analyze expenses")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Expense analysis successfully retrieved.", toExpenseAnalysisResponse(analysis))
}

func (h *FinanceHandler) GetExpenseCategories(w http.ResponseWriter, r *http.Request) {
	categories := make([]string, 0, len(domain.ExpenseCategories))
	for _, c := range domain.ExpenseCategories {
		categories = append(categories, string(c))
	}
	h.respondSuccess(w, http.StatusOK, "Expense categories successfully retrieved.", categories)
}
