package insights

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
)

const (
	// Critical needs BOTH severity and coverage elevated; a furious niche
	// or a lukewarm majority alone caps out at high.
	criticalSeverity = 0.5
	criticalCoverage = 0.5
	highCombined     = 0.5
	mediumCombined   = 0.25

	// Coverage saturates: once a quarter of all comments mention
	// something, it cannot get more urgent by volume alone.
	fullCoveragePct = 25.0

	quoteLimit = 80
)

var aspectTitles = map[entities.AspectType]string{
	entities.AspectContent:    "content depth",
	entities.AspectAudio:      "audio quality",
	entities.AspectProduction: "production polish",
	entities.AspectPacing:     "pacing",
	entities.AspectPresenter:  "presenter delivery",
}

var aspectActionItems = map[entities.AspectType][]string{
	entities.AspectContent: {
		"Plan a follow-up covering the questions viewers raised",
		"Add concrete examples to the segments viewers found thin",
	},
	entities.AspectAudio: {
		"Re-record or denoise the segments viewers flagged",
		"Normalize loudness across the whole video before publishing",
	},
	entities.AspectProduction: {
		"Tighten cuts and drop dead air in the edit",
		"Review lighting and framing before the next shoot",
	},
	entities.AspectPacing: {
		"Add chapter markers so viewers can navigate long sections",
		"Trim passages viewers describe as repetitive",
	},
	entities.AspectPresenter: {
		"Rehearse transitions between sections",
		"Keep the delivery style viewers respond to and cut the rest",
	},
}

// buildRecommendations derives the ordered recommendation list from the
// aggregated insights. Aspect weaknesses come first, then high-priority
// negative or suggestion topics; the final sort is by priority severity
// with insertion order preserved on ties.
func buildRecommendations(comments []*entities.Comment, in *Insights) []entities.Recommendation {
	total := len(comments)
	recs := []entities.Recommendation{}

	for _, aspect := range entities.AllAspects() {
		stats := in.AspectStats[aspect]
		if stats.SentimentScore > weaknessThreshold || stats.MentionPercentage < coverageFloorPct {
			continue
		}
		recs = append(recs, aspectRecommendation(aspect, stats, total))
	}

	for i := range in.Topics {
		t := &in.Topics[i]
		if t.Priority != entities.TopicPriorityHigh {
			continue
		}
		if t.SentimentCategory != entities.SentimentNegative && t.SentimentCategory != entities.SentimentSuggestion {
			continue
		}
		recs = append(recs, topicRecommendation(t, comments, total))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() > recs[j].Priority.Rank()
	})
	return recs
}

func aspectRecommendation(aspect entities.AspectType, stats entities.AspectStats, total int) entities.Recommendation {
	severity := clamp((weaknessThreshold-stats.SentimentScore)/(weaknessThreshold+1), 0, 1)
	coverage := clamp(stats.MentionPercentage/fullCoveragePct, 0, 1)

	return entities.Recommendation{
		Priority: derivePriority(severity, coverage),
		Title:    fmt.Sprintf("Improve %s", aspectTitles[aspect]),
		Description: fmt.Sprintf(
			"Comments mentioning %s skew negative: the aspect sentiment score is %.2f across %d mentions.",
			aspectTitles[aspect], stats.SentimentScore, stats.MentionCount,
		),
		Evidence: fmt.Sprintf(
			"%d of %d comments (%.1f%%) mention %s; %d negative vs %d positive",
			stats.MentionCount, total, stats.MentionPercentage, aspectTitles[aspect],
			stats.NegativeCount, stats.PositiveCount,
		),
		ActionItems: aspectActionItems[aspect],
	}
}

func topicRecommendation(t *entities.Topic, comments []*entities.Comment, total int) entities.Recommendation {
	severity := clamp(t.PriorityScore, 0, 1)
	coverage := 0.0
	if total > 0 {
		coverage = clamp(float64(t.MentionCount)/float64(total)*100/fullCoveragePct, 0, 1)
	}

	var title, description string
	var actions []string
	if t.SentimentCategory == entities.SentimentNegative {
		title = fmt.Sprintf("Address concerns around %q", t.Name)
		description = fmt.Sprintf(
			"A high-priority cluster of complaints formed around %q.", t.Phrase,
		)
		actions = []string{
			fmt.Sprintf("Reply to the most-liked comments about %s", strings.ToLower(t.Name)),
			"Cover the fix in the next upload or a pinned comment",
		}
	} else {
		title = fmt.Sprintf("Consider viewer requests around %q", t.Name)
		description = fmt.Sprintf(
			"Viewers are actively asking for %q.", t.Phrase,
		)
		actions = []string{
			fmt.Sprintf("Shortlist the requests about %s for the content calendar", strings.ToLower(t.Name)),
			"Acknowledge the request in a pinned comment",
		}
	}

	evidence := fmt.Sprintf(
		"%q drew %d comments with %d likes; dominant sentiment %s",
		t.Name, t.MentionCount, t.TotalEngagement, t.SentimentCategory,
	)
	if quote := firstQuote(t, comments); quote != "" {
		evidence += fmt.Sprintf("; e.g. %q", quote)
	}

	return entities.Recommendation{
		Priority:    derivePriority(severity, coverage),
		Title:       title,
		Description: description,
		Evidence:    evidence,
		ActionItems: actions,
	}
}

// derivePriority combines severity and coverage into the four priority
// buckets.
func derivePriority(severity, coverage float64) entities.RecommendationPriority {
	if severity >= criticalSeverity && coverage >= criticalCoverage {
		return entities.RecommendationCritical
	}
	combined := 0.6*severity + 0.4*coverage
	switch {
	case combined >= highCombined:
		return entities.RecommendationHigh
	case combined >= mediumCombined:
		return entities.RecommendationMedium
	default:
		return entities.RecommendationLow
	}
}

// topicAdvice is the one-line guidance stored on the topic itself.
func topicAdvice(t *entities.Topic) string {
	switch t.SentimentCategory {
	case entities.SentimentNegative:
		return fmt.Sprintf("Address the recurring complaints around %q", t.Phrase)
	case entities.SentimentSuggestion:
		return fmt.Sprintf("Evaluate the viewer requests grouped under %q", t.Phrase)
	case entities.SentimentPositive:
		return fmt.Sprintf("Double down on %q, viewers respond to it", t.Phrase)
	default:
		return ""
	}
}

// firstQuote returns the first member comment's text, truncated for
// display.
func firstQuote(t *entities.Topic, comments []*entities.Comment) string {
	if len(t.MemberIndexes) == 0 {
		return ""
	}
	idx := t.MemberIndexes[0]
	if idx < 0 || idx >= len(comments) {
		return ""
	}
	return truncate(strings.TrimSpace(comments[idx].Text), quoteLimit)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
