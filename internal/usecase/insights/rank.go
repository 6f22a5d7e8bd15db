package insights

import (
	"sort"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
)

// Priority blend weights. Polarity carries the most weight: a small angry
// cluster deserves attention before a large indifferent one.
const (
	volumeWeight     = 0.3
	engagementWeight = 0.3
	polarityWeight   = 0.4
)

// polarityIntensity maps a topic's dominant sentiment to actionability.
var polarityIntensity = map[entities.SentimentLabel]float64{
	entities.SentimentNegative:   1.0,
	entities.SentimentSuggestion: 0.9,
	entities.SentimentPositive:   0.6,
	entities.SentimentNeutral:    0.2,
}

// rankTopics scores every topic against the batch maxima and sorts the
// slice by score descending, ties by mention count then first-seen cluster
// index. Mutates in place.
func rankTopics(ts []entities.Topic) {
	if len(ts) == 0 {
		return
	}

	maxMentions := 0
	maxEngagement := 0
	for i := range ts {
		if ts[i].MentionCount > maxMentions {
			maxMentions = ts[i].MentionCount
		}
		if ts[i].TotalEngagement > maxEngagement {
			maxEngagement = ts[i].TotalEngagement
		}
	}

	for i := range ts {
		var volume, engagement float64
		if maxMentions > 0 {
			volume = float64(ts[i].MentionCount) / float64(maxMentions)
		}
		if maxEngagement > 0 {
			engagement = float64(ts[i].TotalEngagement) / float64(maxEngagement)
		}

		score := volumeWeight*volume +
			engagementWeight*engagement +
			polarityWeight*polarityIntensity[ts[i].SentimentCategory]

		ts[i].PriorityScore = score
		ts[i].Priority = entities.TopicPriorityFromScore(score)
	}

	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].PriorityScore != ts[j].PriorityScore {
			return ts[i].PriorityScore > ts[j].PriorityScore
		}
		if ts[i].MentionCount != ts[j].MentionCount {
			return ts[i].MentionCount > ts[j].MentionCount
		}
		return ts[i].ClusterIndex < ts[j].ClusterIndex
	})
}
