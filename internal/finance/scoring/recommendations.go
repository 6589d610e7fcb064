package scoring

const RecommendationThreshold = 70.0

const (
	SavingsRecommendation         = "Consider increasing your contributions to RRSP and TFSA accounts"
	DiversificationRecommendation = "Your portfolio could benefit from more diversification across different account types"
	BudgetRecommendation          = "Try to stick closer to your monthly budget to improve your financial health"
	HealthyRecommendation         = "Great job! Keep maintaining your current financial habits"
)

// Recommendations returns one advisory per sub-score below the threshold, or
// the single congratulatory message when none is.
func Recommendations(score HealthScore) []string {
	var recommendations []string

	if score.Savings < RecommendationThreshold {
		recommendations = append(recommendations, SavingsRecommendation)
	}
	if score.Diversification < RecommendationThreshold {
		recommendations = append(recommendations, DiversificationRecommendation)
	}
	if score.Budget < RecommendationThreshold {
		recommendations = append(recommendations, BudgetRecommendation)
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, HealthyRecommendation)
	}
	return recommendations
}
