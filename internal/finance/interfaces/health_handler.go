package interfaces

import (
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/finance/scoring"
	"github.com/sebuszqo/FinanceTracker/internal/finance/tips"
)

type healthScoreResponse struct {
	Month string `json:"month"`
	scoring.HealthScore
	Recommendations []string `json:"recommendations"`
}

type tipResponse struct {
	Tip     string `json:"tip"`
	Context string `json:"context"`
}

func (h *FinanceHandler) GetHealthScore(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	report, err := h.healthService.GetHealthReport(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to compute health score")
		return
	}

	h.respondSuccess(w, http.StatusOK, "Health score successfully computed.", healthScoreResponse{
		Month:           report.Month.String(),
		HealthScore:     report.Score,
		Recommendations: report.Recommendations,
	})
}

// GetTip returns a random tip for ?context=..., or for the context of ?page=...
// when no context is given. Unknown values fall back to general tips.
func (h *FinanceHandler) GetTip(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var tip tips.Tip
	if c := query.Get("context"); c != "" {
		tip = h.tipPicker.Pick(tips.Context(c))
	} else {
		tip = h.tipPicker.ForPage(query.Get("page"))
	}

	h.respondSuccess(w, http.StatusOK, "Tip successfully retrieved.", tipResponse{Tip: tip.Text, Context: string(tip.Context)})
}
