package interfaces

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
)

type createGoalRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     string          `json:"deadline"`
	Category     string          `json:"category"`
}

type setLinkedBucketsRequest struct {
	BucketIDs []string `json:"bucket_ids"`
}

type goalResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	Deadline        string          `json:"deadline"`
	Category        string          `json:"category"`
	ProgressPercent float64         `json:"progress_percent"`
	DaysLeft        int             `json:"days_left"`
	LinkedBucketIDs []string        `json:"linked_bucket_ids"`
	CreatedAt       time.Time       `json:"created_at"`
}

type goalCategoryTotalResponse struct {
	Category     string          `json:"category"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}

type goalsSummaryResponse struct {
	TotalTarget     decimal.Decimal             `json:"total_target"`
	TotalCurrent    decimal.Decimal             `json:"total_current"`
	OverallProgress float64                     `json:"overall_progress"`
	ByCategory      []goalCategoryTotalResponse `json:"by_category"`
}

func toGoalResponse(p application.GoalProgress) goalResponse {
	links := make([]string, 0, len(p.Goal.LinkedBucketIDs))
	for _, id := range p.Goal.LinkedBucketIDs {
		links = append(links, id.String())
	}
	return goalResponse{
		ID:              p.Goal.ID.String(),
		Name:            p.Goal.Name,
		TargetAmount:    p.Goal.TargetAmount,
		CurrentAmount:   p.Goal.CurrentAmount,
		Deadline:        p.Goal.Deadline.Format(domain.DateLayout),
		Category:        string(p.Goal.Category),
		ProgressPercent: p.ProgressPercent,
		DaysLeft:        p.DaysLeft,
		LinkedBucketIDs: links,
		CreatedAt:       p.Goal.CreatedAt,
	}
}

func (h *FinanceHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal := &domain.Goal{
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Category:     domain.GoalCategory(req.Category),
	}
	if req.Deadline != "" {
		deadline, err := time.Parse(domain.DateLayout, req.Deadline)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid deadline format, expected YYYY-MM-DD")
			return
		}
		goal.Deadline = deadline
	}

	if err := h.goalService.CreateGoal(r.Context(), goal); err != nil {
		h.handleServiceError(w, r, err, "Failed to create goal")
		return
	}

	progress := application.GoalProgress{
		Goal:     *goal,
		DaysLeft: goal.DaysLeft(time.Now()),
	}
	h.respondSuccess(w, http.StatusCreated, "Goal successfully created.", toGoalResponse(progress))
}

func (h *FinanceHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	goals, err := h.goalService.GetGoals(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve goals")
		return
	}

	resp := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, toGoalResponse(g))
	}
	h.respondSuccess(w, http.StatusOK, "Goals successfully retrieved.", resp)
}

func (h *FinanceHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	goal, err := h.goalService.GetGoal(r.Context(), pathUUID(r, "goalID"), userID)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve goal")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Goal successfully retrieved.", toGoalResponse(*goal))
}

func (h *FinanceHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	if err := h.goalService.DeleteGoal(r.Context(), pathUUID(r, "goalID"), userID); err != nil {
		h.handleServiceError(w, r, err, "Failed to delete goal")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Goal successfully deleted.", nil)
}

func (h *FinanceHandler) SetGoalBuckets(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	var req setLinkedBucketsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bucketIDs := make([]uuid.UUID, 0, len(req.BucketIDs))
	for _, raw := range req.BucketIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid bucket id: "+raw)
			return
		}
		bucketIDs = append(bucketIDs, id)
	}

	goal, err := h.goalService.SetLinkedBuckets(r.Context(), pathUUID(r, "goalID"), userID, bucketIDs)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to link buckets")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Goal buckets successfully updated.", toGoalResponse(*goal))
}

func (h *FinanceHandler) GetGoalsSummary(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	summary, err := h.goalService.GetSummary(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to summarize goals")
		return
	}

	resp := goalsSummaryResponse{
		TotalTarget:     summary.TotalTarget,
		TotalCurrent:    summary.TotalCurrent,
		OverallProgress: summary.OverallProgress,
		ByCategory:      make([]goalCategoryTotalResponse, 0, len(summary.ByCategory)),
	}
	for _, c := range summary.ByCategory {
		resp.ByCategory = append(resp.ByCategory, goalCategoryTotalResponse{Category: string(c.Category), TargetAmount: c.TargetAmount})
	}
	h.respondSuccess(w, http.StatusOK, "Goals summary successfully retrieved.", resp)
}

func (h *FinanceHandler) GetGoalCategories(w http.ResponseWriter, r *http.Request) {
	categories := make([]string, 0, len(domain.GoalCategories))
	for _, c := range domain.GoalCategories {
		categories = append(categories, string(c))
	}
	h.respondSuccess(w, http.StatusOK, "Goal categories successfully retrieved.", categories)
}
