package entities

// RecommendationPriority ranks how urgently a recommendation should be
// acted on. Critical requires both severity and coverage above elevated
// cutoffs.
type RecommendationPriority string

const (
	RecommendationCritical RecommendationPriority = "critical"
	RecommendationHigh     RecommendationPriority = "high"
	RecommendationMedium   RecommendationPriority = "medium"
	RecommendationLow      RecommendationPriority = "low"
)

// Rank orders priorities for sorting, highest severity first.
func (p RecommendationPriority) Rank() int {
	switch p {
	case RecommendationCritical:
		return 3
	case RecommendationHigh:
		return 2
	case RecommendationMedium:
		return 1
	default:
		return 0
	}
}

// Recommendation is a ranked, evidence-backed directive derived from the
// aggregated analysis. Evidence always cites a concrete count or quoted
// fragment; it is never an ungrounded template.
type Recommendation struct {
	Priority    RecommendationPriority `json:"priority"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Evidence    string                 `json:"evidence"`
	ActionItems []string               `json:"action_items"`
}
