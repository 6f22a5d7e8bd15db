package entities

// TrendDirection compares the current health score against a prior baseline.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// HealthScore is a 0-100 proxy for overall audience sentiment across
// aspects. With no aspect mentions at all the score sits at the neutral
// midpoint of 50; aspect absence is never treated as negative signal.
type HealthScore struct {
	OverallScore float64        `json:"overall_score"`
	Trend        TrendDirection `json:"trend"`
	Strengths    []AspectType   `json:"strengths"`
	Weaknesses   []AspectType   `json:"weaknesses"`
}
