package entities

// SentimentLabel is the classification bucket assigned to a comment.
// Exactly one label per comment. Suggestion is a peer category, not a
// polarity: it counts in summaries and topics but stays out of the signed
// aspect sentiment mean.
type SentimentLabel string

const (
	SentimentPositive   SentimentLabel = "positive"
	SentimentNegative   SentimentLabel = "negative"
	SentimentSuggestion SentimentLabel = "suggestion"
	SentimentNeutral    SentimentLabel = "neutral"
)

// AllSentimentLabels returns the labels in their fixed tie-break order.
func AllSentimentLabels() []SentimentLabel {
	return []SentimentLabel{SentimentPositive, SentimentNegative, SentimentSuggestion, SentimentNeutral}
}

// Valid reports whether l is one of the four known labels.
func (l SentimentLabel) Valid() bool {
	switch l {
	case SentimentPositive, SentimentNegative, SentimentSuggestion, SentimentNeutral:
		return true
	}
	return false
}

// SentimentSummary aggregates comment counts and engagement per label.
// Counts sum exactly to the number of analyzed comments: every comment lands
// in exactly one bucket.
type SentimentSummary struct {
	PositiveCount        int `json:"positive_count"`
	NegativeCount        int `json:"negative_count"`
	SuggestionCount      int `json:"suggestion_count"`
	NeutralCount         int `json:"neutral_count"`
	PositiveEngagement   int `json:"positive_engagement"`
	NegativeEngagement   int `json:"negative_engagement"`
	SuggestionEngagement int `json:"suggestion_engagement"`
	NeutralEngagement    int `json:"neutral_engagement"`
}

// Add buckets one comment into the summary.
func (s *SentimentSummary) Add(label SentimentLabel, likeCount int) {
	switch label {
	case SentimentPositive:
		s.PositiveCount++
		s.PositiveEngagement += likeCount
	case SentimentNegative:
		s.NegativeCount++
		s.NegativeEngagement += likeCount
	case SentimentSuggestion:
		s.SuggestionCount++
		s.SuggestionEngagement += likeCount
	default:
		s.NeutralCount++
		s.NeutralEngagement += likeCount
	}
}

// Total returns the number of comments counted across all buckets.
func (s SentimentSummary) Total() int {
	return s.PositiveCount + s.NegativeCount + s.SuggestionCount + s.NeutralCount
}

// Count returns the count for a single label.
func (s SentimentSummary) Count(label SentimentLabel) int {
	switch label {
	case SentimentPositive:
		return s.PositiveCount
	case SentimentNegative:
		return s.NegativeCount
	case SentimentSuggestion:
		return s.SuggestionCount
	default:
		return s.NeutralCount
	}
}
