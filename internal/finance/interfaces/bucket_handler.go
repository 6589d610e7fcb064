package interfaces

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
)

type createBucketRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

type updateBucketRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type updateBucketAmountRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

type bucketResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

type bucketShareResponse struct {
	bucketResponse
	Percent float64 `json:"percent"`
}

type typeTotalResponse struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

type bucketsSummaryResponse struct {
	Total   decimal.Decimal       `json:"total"`
	Buckets []bucketShareResponse `json:"buckets"`
	ByType  []typeTotalResponse   `json:"by_type"`
}

func toBucketResponse(b domain.Bucket) bucketResponse {
	return bucketResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Amount:    b.Amount,
		Type:      string(b.Type),
		CreatedAt: b.CreatedAt,
	}
}

func toBucketsSummaryResponse(s *application.BucketsSummary) bucketsSummaryResponse {
	resp := bucketsSummaryResponse{
		Total:   s.Total,
		Buckets: make([]bucketShareResponse, 0, len(s.Buckets)),
		ByType:  make([]typeTotalResponse, 0, len(s.ByType)),
	}
	for _, share := range s.Buckets {
		resp.Buckets = append(resp.Buckets, bucketShareResponse{bucketResponse: toBucketResponse(share.Bucket), Percent: share.Percent})
	}
	for _, t := range s.ByType {
		resp.ByType = append(resp.ByType, typeTotalResponse{Type: string(t.Type), Amount: t.Amount})
	}
	return resp
}

func (h *FinanceHandler) CreateBucket(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	var req createBucketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bucket := &domain.Bucket{
		UserID: userID,
		Name:   req.Name,
		Amount: req.Amount,
		Type:   domain.BucketType(req.Type),
	}
	if err := h.bucketService.CreateBucket(r.Context(), bucket); err != nil {
		h.handleServiceError(w, r, err, "Failed to create bucket")
		return
	}

	h.respondSuccess(w, http.StatusCreated, "Bucket successfully created.", toBucketResponse(*bucket))
}

func (h *FinanceHandler) GetBuckets(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	buckets, err := h.bucketService.GetBuckets(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve buckets")
		return
	}

	resp := make([]bucketResponse, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, toBucketResponse(b))
	}
	h.respondSuccess(w, http.StatusOK, "Buckets successfully retrieved.", resp)
}

func (h *FinanceHandler) GetBucket(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	bucket, err := h.bucketService.GetBucket(r.Context(), pathUUID(r, "bucketID"), userID)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve bucket")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Bucket successfully retrieved.", toBucketResponse(*bucket))
}

func (h *FinanceHandler) UpdateBucketAmount(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}
	bucketID := pathUUID(r, "bucketID")

	var req updateBucketAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount == nil {
		h.respondError(w, http.StatusBadRequest, "Amount is required")
		return
	}

	if err := h.bucketService.UpdateBucketAmount(r.Context(), bucketID, userID, *req.Amount); err != nil {
		h.handleServiceError(w, r, err, "Failed to update bucket amount")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Bucket amount successfully updated.", nil)
}

func (h *FinanceHandler) UpdateBucket(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}
	bucketID := pathUUID(r, "bucketID")

	var req updateBucketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bucket := &domain.Bucket{ID: bucketID, UserID: userID, Name: req.Name, Type: domain.BucketType(req.Type)}
	if err := h.bucketService.UpdateBucket(r.Context(), bucket); err != nil {
		h.handleServiceError(w, r, err, "Failed to update bucket")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Bucket successfully updated.", nil)
}

func (h *FinanceHandler) DeleteBucket(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	if err := h.bucketService.DeleteBucket(r.Context(), pathUUID(r, "bucketID"), userID); err != nil {
		h.handleServiceError(w, r, err, "Failed to delete bucket")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Bucket successfully deleted.", nil)
}

func (h *FinanceHandler) GetBucketsSummary(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	summary, err := h.bucketService.GetSummary(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to summarize buckets")
		return
	}
	h.respondSuccess(w, http.StatusOK, "Buckets summary successfully retrieved.", toBucketsSummaryResponse(summary))
}

func (h *FinanceHandler) GetBucketTypes(w http.ResponseWriter, r *http.Request) {
	types := make([]string, 0, len(domain.BucketTypes))
	for _, t := range domain.BucketTypes {
		types = append(types, string(t))
	}
	h.respondSuccess(w, http.StatusOK, "Bucket types successfully retrieved.", types)
}
