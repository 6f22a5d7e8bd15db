package insights

import (
	"go.uber.org/zap"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
	"github.com/vidinsight/vidinsight/internal/usecase/topics"
)

const (
	// Aspect thresholds for strengths/weaknesses. Coverage keeps a single
	// outlier comment from labeling a whole aspect.
	strengthThreshold = 0.4
	weaknessThreshold = -0.2
	coverageFloorPct  = 5.0

	// Health score movement below this margin reads as noise, not a trend.
	trendMargin = 3.0
)

// Insights is the reduced view of a fully annotated comment batch: counts,
// topics, per-aspect stats, health, and recommendations. Assembled once,
// then handed to the orchestrator.
type Insights struct {
	Sentiment       entities.SentimentSummary
	Topics          []entities.Topic
	AspectStats     map[entities.AspectType]entities.AspectStats
	Health          entities.HealthScore
	Recommendations []entities.Recommendation
}

// Aggregator reduces annotated comments plus cluster output into Insights.
// Pure reduction: no model calls, no I/O, deterministic for a fixed input
// ordering, so running it twice yields identical output.
type Aggregator struct {
	logger *zap.Logger
}

func NewAggregator(logger *zap.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Build runs the full reduction. comments must already carry sentiment and
// aspects; clusters may be nil when clustering was unavailable. baseline is
// the prior health score for the same video, nil when none exists.
func (a *Aggregator) Build(comments []*entities.Comment, clusters *topics.ClusterResult, baseline *entities.HealthScore) *Insights {
	out := &Insights{
		AspectStats: make(map[entities.AspectType]entities.AspectStats, len(entities.AllAspects())),
	}

	for _, c := range comments {
		out.Sentiment.Add(c.Label(), c.LikeCount)
	}

	for _, aspect := range entities.AllAspects() {
		out.AspectStats[aspect] = a.aspectStats(aspect, comments)
	}

	out.Topics = a.buildTopics(comments, clusters)
	rankTopics(out.Topics)
	for i := range out.Topics {
		out.Topics[i].Recommendation = topicAdvice(&out.Topics[i])
	}

	out.Health = a.healthScore(out.AspectStats, baseline)
	out.Recommendations = buildRecommendations(comments, out)

	if a.logger != nil {
		a.logger.Info("insights assembled",
			zap.Int("total_comments", len(comments)),
			zap.Int("topics", len(out.Topics)),
			zap.Int("recommendations", len(out.Recommendations)),
			zap.Float64("health", out.Health.OverallScore),
		)
	}
	return out
}

// aspectStats reduces the subset of comments tagged with one aspect.
// Suggestions land in the neutral bucket: they dampen the signed mean
// through the denominator without contributing polarity.
func (a *Aggregator) aspectStats(aspect entities.AspectType, comments []*entities.Comment) entities.AspectStats {
	var stats entities.AspectStats
	var confidenceSum float64

	for _, c := range comments {
		if !c.HasAspect(aspect) {
			continue
		}
		stats.MentionCount++
		confidenceSum += c.SentimentConfidence

		switch c.Label() {
		case entities.SentimentPositive:
			stats.PositiveCount++
		case entities.SentimentNegative:
			stats.NegativeCount++
		default:
			stats.NeutralCount++
		}
	}

	if len(comments) > 0 {
		stats.MentionPercentage = float64(stats.MentionCount) / float64(len(comments)) * 100
	}
	if denom := stats.PositiveCount + stats.NegativeCount + stats.NeutralCount; denom > 0 {
		stats.SentimentScore = float64(stats.PositiveCount-stats.NegativeCount) / float64(denom)
	}
	if stats.MentionCount > 0 {
		stats.AvgConfidence = confidenceSum / float64(stats.MentionCount)
	}
	return stats
}

// buildTopics turns cluster assignments into Topic entities with their
// per-topic statistics. Every comment counts toward at most one topic.
func (a *Aggregator) buildTopics(comments []*entities.Comment, clusters *topics.ClusterResult) []entities.Topic {
	if clusters == nil || clusters.NumClusters() == 0 {
		return []entities.Topic{}
	}

	result := make([]entities.Topic, 0, clusters.NumClusters())
	for idx := 0; idx < clusters.NumClusters(); idx++ {
		topic := entities.NewTopic(clusters.Names[idx], idx)
		topic.Phrase = clusters.Phrases[idx]
		topic.Keywords = clusters.Keywords[idx]

		labelCounts := make(map[entities.SentimentLabel]int)
		for i, assignment := range clusters.Assignments {
			if assignment != idx || i >= len(comments) {
				continue
			}
			topic.MemberIndexes = append(topic.MemberIndexes, i)
			topic.MentionCount++
			topic.TotalEngagement += comments[i].LikeCount
			labelCounts[comments[i].Label()]++
		}
		topic.SentimentCategory = dominantLabel(labelCounts)

		result = append(result, *topic)
	}
	return result
}

// dominantLabel picks the most frequent label; ties resolve in the fixed
// enum order so output never depends on map iteration.
func dominantLabel(counts map[entities.SentimentLabel]int) entities.SentimentLabel {
	best := entities.SentimentNeutral
	bestCount := -1
	for _, label := range entities.AllSentimentLabels() {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}

// healthScore computes the 0-100 overall score from aspect stats. Aspects
// nobody mentioned carry no weight; with zero aspect signal the score sits
// at the neutral midpoint. Trend needs a baseline, otherwise stable.
func (a *Aggregator) healthScore(stats map[entities.AspectType]entities.AspectStats, baseline *entities.HealthScore) entities.HealthScore {
	health := entities.HealthScore{
		OverallScore: 50,
		Trend:        entities.TrendStable,
		Strengths:    []entities.AspectType{},
		Weaknesses:   []entities.AspectType{},
	}

	var weightedSum float64
	var totalWeight float64
	for _, aspect := range entities.AllAspects() {
		s := stats[aspect]
		if s.MentionCount == 0 {
			continue
		}
		weight := float64(s.MentionCount)
		weightedSum += s.SentimentScore * weight
		totalWeight += weight

		if s.SentimentScore >= strengthThreshold && s.MentionPercentage >= coverageFloorPct {
			health.Strengths = append(health.Strengths, aspect)
		}
		if s.SentimentScore <= weaknessThreshold && s.MentionPercentage >= coverageFloorPct {
			health.Weaknesses = append(health.Weaknesses, aspect)
		}
	}

	if totalWeight > 0 {
		health.OverallScore = clamp(50+50*(weightedSum/totalWeight), 0, 100)
	}

	if baseline != nil {
		switch {
		case health.OverallScore >= baseline.OverallScore+trendMargin:
			health.Trend = entities.TrendImproving
		case health.OverallScore <= baseline.OverallScore-trendMargin:
			health.Trend = entities.TrendDeclining
		}
	}
	return health
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
