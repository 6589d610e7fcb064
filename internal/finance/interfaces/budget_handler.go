package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
)

type setBudgetRequest struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type budgetResponse struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

func toBudgetResponse(b domain.Budget) budgetResponse {
	return budgetResponse{ID: b.ID.String(), Category: string(b.Category), Amount: b.Amount}
}

func (h *FinanceHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	budget := &domain.Budget{UserID: userID, Category: domain.ExpenseCategory(req.Category), Amount: req.Amount}
	if err := h.budgetService.SetBudget(r.Context(), budget); err != nil {
		h.handleServiceError(w, r, err, "Failed to set budget")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Budget successfully saved.", toBudgetResponse(*budget))
}

func (h *FinanceHandler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	budgets, err := h.budgetService.GetBudgets(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve budgets")
		return
	}

	resp := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		resp = append(resp, toBudgetResponse(b))
	}
	h.respondSuccess(w, http.StatusOK, "Budgets successfully retrieved.", resp)
}

func (h *FinanceHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	category := domain.ExpenseCategory(r.PathValue("category"))
	if err := h.budgetService.DeleteBudget(r.Context(), userID, category); err != nil {
		h.handleServiceError(w, r, err, "Failed to delete budget")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Budget successfully deleted.", nil)
}
