package entities

// AspectType is a fixed content dimension a comment may reference.
// Unlike sentiment, aspects are non-exclusive: a comment may carry zero,
// one, or several.
type AspectType string

const (
	AspectContent    AspectType = "content"
	AspectAudio      AspectType = "audio"
	AspectProduction AspectType = "production"
	AspectPacing     AspectType = "pacing"
	AspectPresenter  AspectType = "presenter"
)

// AllAspects returns the aspect enumeration in its fixed display order.
func AllAspects() []AspectType {
	return []AspectType{AspectContent, AspectAudio, AspectProduction, AspectPacing, AspectPresenter}
}

// AspectStats holds per-aspect sentiment statistics.
// MentionPercentage is computed over ALL comments so that percentages are
// comparable across aspects. SentimentScore is the signed polarity mean in
// [-1, 1]; suggestion-labeled comments count into NeutralCount and are
// excluded from the sign.
type AspectStats struct {
	MentionCount      int     `json:"mention_count"`
	MentionPercentage float64 `json:"mention_percentage"`
	PositiveCount     int     `json:"positive_count"`
	NegativeCount     int     `json:"negative_count"`
	NeutralCount      int     `json:"neutral_count"`
	SentimentScore    float64 `json:"sentiment_score"`
	AvgConfidence     float64 `json:"avg_confidence"`
}
