package insights

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
	"github.com/vidinsight/vidinsight/internal/usecase/topics"
)

func makeComment(text string, label entities.SentimentLabel, confidence float64, likes int, aspects ...entities.AspectType) *entities.Comment {
	c := entities.NewComment(uuid.New(), "ext-1", "viewer", text)
	c.LikeCount = likes
	c.SetSentiment(label, confidence)
	c.Aspects = aspects
	return c
}

func TestBuild_ZeroComments(t *testing.T) {
	agg := NewAggregator(nil)

	out := agg.Build(nil, nil, nil)

	if total := out.Sentiment.Total(); total != 0 {
		t.Errorf("Sentiment.Total() = %d, want 0", total)
	}
	if len(out.Topics) != 0 {
		t.Errorf("len(Topics) = %d, want 0", len(out.Topics))
	}
	if out.Health.OverallScore != 50 {
		t.Errorf("Health.OverallScore = %f, want 50", out.Health.OverallScore)
	}
	if out.Health.Trend != entities.TrendStable {
		t.Errorf("Health.Trend = %s, want stable", out.Health.Trend)
	}
	for aspect, stats := range out.AspectStats {
		if stats.MentionCount != 0 || stats.SentimentScore != 0 {
			t.Errorf("AspectStats[%s] = %+v, want zero", aspect, stats)
		}
	}
	if len(out.Recommendations) != 0 {
		t.Errorf("len(Recommendations) = %d, want 0", len(out.Recommendations))
	}
}

func TestBuild_SentimentCountsSumToTotal(t *testing.T) {
	agg := NewAggregator(nil)

	comments := []*entities.Comment{
		makeComment("Fantastic work", entities.SentimentPositive, 0.9, 4),
		makeComment("Loved it", entities.SentimentPositive, 0.8, 1),
		makeComment("Terrible", entities.SentimentNegative, 0.7, 0),
		makeComment("Please add chapters", entities.SentimentSuggestion, 0.9, 2),
		makeComment("First", entities.SentimentNeutral, 0.5, 0),
		makeComment("Meh", entities.SentimentNeutral, 0.4, 0),
	}

	out := agg.Build(comments, nil, nil)

	s := out.Sentiment
	if s.PositiveCount != 2 || s.NegativeCount != 1 || s.SuggestionCount != 1 || s.NeutralCount != 2 {
		t.Errorf("counts = %d/%d/%d/%d, want 2/1/1/2",
			s.PositiveCount, s.NegativeCount, s.SuggestionCount, s.NeutralCount)
	}
	if s.Total() != len(comments) {
		t.Errorf("Total() = %d, want %d", s.Total(), len(comments))
	}
	if s.PositiveEngagement != 5 || s.SuggestionEngagement != 2 {
		t.Errorf("engagement buckets = %d/%d, want 5/2", s.PositiveEngagement, s.SuggestionEngagement)
	}
}

func TestBuild_NoAspectMentionsMeansNeutralHealth(t *testing.T) {
	agg := NewAggregator(nil)

	var comments []*entities.Comment
	for i := 0; i < 8; i++ {
		comments = append(comments, makeComment("Wonderful", entities.SentimentPositive, 0.9, 0))
	}
	for i := 0; i < 2; i++ {
		comments = append(comments, makeComment("Awful", entities.SentimentNegative, 0.8, 0))
	}

	out := agg.Build(comments, nil, nil)

	if out.Sentiment.PositiveCount != 8 || out.Sentiment.NegativeCount != 2 {
		t.Fatalf("counts = %d/%d, want 8/2", out.Sentiment.PositiveCount, out.Sentiment.NegativeCount)
	}
	// Zero aspect mentions carry zero weight: the health score must sit at
	// the neutral midpoint rather than read absence as negative signal.
	if out.Health.OverallScore != 50 {
		t.Errorf("Health.OverallScore = %f, want exactly 50", out.Health.OverallScore)
	}
	if len(out.Health.Strengths) != 0 || len(out.Health.Weaknesses) != 0 {
		t.Errorf("Strengths/Weaknesses = %v/%v, want empty", out.Health.Strengths, out.Health.Weaknesses)
	}
}

func TestBuild_AspectStats(t *testing.T) {
	agg := NewAggregator(nil)

	comments := []*entities.Comment{
		makeComment("Audio is rough", entities.SentimentNegative, 0.8, 3, entities.AspectAudio),
		makeComment("Mic keeps peaking", entities.SentimentNegative, 0.8, 1, entities.AspectAudio),
		makeComment("Sound mix hurts", entities.SentimentNegative, 0.8, 0, entities.AspectAudio),
		makeComment("Audio was crisp for once", entities.SentimentPositive, 0.6, 2, entities.AspectAudio),
		makeComment("ok", entities.SentimentNeutral, 0.5, 0),
		makeComment("ok", entities.SentimentNeutral, 0.5, 0),
		makeComment("ok", entities.SentimentNeutral, 0.5, 0),
		makeComment("ok", entities.SentimentNeutral, 0.5, 0),
		makeComment("ok", entities.SentimentNeutral, 0.5, 0),
		makeComment("ok", entities.SentimentNeutral, 0.5, 0),
	}

	out := agg.Build(comments, nil, nil)

	audio := out.AspectStats[entities.AspectAudio]
	if audio.MentionCount != 4 {
		t.Errorf("MentionCount = %d, want 4", audio.MentionCount)
	}
	if audio.MentionPercentage != 40 {
		t.Errorf("MentionPercentage = %f, want 40", audio.MentionPercentage)
	}
	if audio.SentimentScore != -0.5 {
		t.Errorf("SentimentScore = %f, want -0.5", audio.SentimentScore)
	}
	if audio.AvgConfidence != 0.75 {
		t.Errorf("AvgConfidence = %f, want 0.75", audio.AvgConfidence)
	}

	// Only audio carries weight, so the health score follows its mean.
	if out.Health.OverallScore != 25 {
		t.Errorf("Health.OverallScore = %f, want 25", out.Health.OverallScore)
	}
	if !reflect.DeepEqual(out.Health.Weaknesses, []entities.AspectType{entities.AspectAudio}) {
		t.Errorf("Weaknesses = %v, want [audio]", out.Health.Weaknesses)
	}
	if len(out.Health.Strengths) != 0 {
		t.Errorf("Strengths = %v, want empty", out.Health.Strengths)
	}
}

func TestBuild_SuggestionsDampenAspectMean(t *testing.T) {
	agg := NewAggregator(nil)

	comments := []*entities.Comment{
		makeComment("Great topic choice", entities.SentimentPositive, 0.9, 0, entities.AspectContent),
		makeComment("Strong topic as always", entities.SentimentPositive, 0.9, 0, entities.AspectContent),
		makeComment("Shallow treatment of the topic", entities.SentimentNegative, 0.8, 0, entities.AspectContent),
		makeComment("Please cover this topic deeper", entities.SentimentSuggestion, 0.9, 0, entities.AspectContent),
		makeComment("You should do a topic poll", entities.SentimentSuggestion, 0.9, 0, entities.AspectContent),
	}

	out := agg.Build(comments, nil, nil)

	content := out.AspectStats[entities.AspectContent]
	if content.NeutralCount != 2 {
		t.Errorf("NeutralCount = %d, want 2 (suggestions land in the neutral bucket)", content.NeutralCount)
	}
	// (2 positive - 1 negative) / 5 mentions: suggestions dilute the mean
	// without contributing polarity.
	if content.SentimentScore != 0.2 {
		t.Errorf("SentimentScore = %f, want 0.2", content.SentimentScore)
	}
}

func TestBuild_Trend(t *testing.T) {
	agg := NewAggregator(nil)

	positive := []*entities.Comment{}
	for i := 0; i < 10; i++ {
		positive = append(positive, makeComment("Great audio", entities.SentimentPositive, 0.9, 0, entities.AspectAudio))
	}
	negative := []*entities.Comment{}
	for i := 0; i < 10; i++ {
		negative = append(negative, makeComment("Bad audio", entities.SentimentNegative, 0.9, 0, entities.AspectAudio))
	}

	tests := []struct {
		name     string
		comments []*entities.Comment
		baseline *entities.HealthScore
		want     entities.TrendDirection
	}{
		{"no baseline", positive, nil, entities.TrendStable},
		{"improving", positive, &entities.HealthScore{OverallScore: 90}, entities.TrendImproving},
		{"within margin", positive, &entities.HealthScore{OverallScore: 99}, entities.TrendStable},
		{"declining", negative, &entities.HealthScore{OverallScore: 50}, entities.TrendDeclining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := agg.Build(tt.comments, nil, tt.baseline)
			if out.Health.Trend != tt.want {
				t.Errorf("Trend = %s, want %s (score %f)", out.Health.Trend, tt.want, out.Health.OverallScore)
			}
		})
	}
}

func topicFixture() ([]*entities.Comment, *topics.ClusterResult) {
	comments := []*entities.Comment{
		makeComment("The audio is broken on mobile", entities.SentimentNegative, 0.8, 5),
		makeComment("Audio cuts out halfway", entities.SentimentNegative, 0.7, 3),
		makeComment("Please share the recipe doc", entities.SentimentSuggestion, 0.9, 0),
		makeComment("Could you post the recipe?", entities.SentimentSuggestion, 0.9, 7),
		makeComment("Unrelated rambling", entities.SentimentNeutral, 0.5, 1),
		makeComment("Audio sounded fine to me", entities.SentimentPositive, 0.6, 2),
	}
	clusters := &topics.ClusterResult{
		Assignments: []int{0, 0, 1, 1, topics.Unclustered, 0},
		Keywords:    [][]string{{"audio"}, {"recipe"}},
		Phrases:     []string{"Audio", "Recipe"},
		Names:       []string{"Audio", "Recipe"},
	}
	return comments, clusters
}

func TestBuild_TopicsFromClusters(t *testing.T) {
	agg := NewAggregator(nil)
	comments, clusters := topicFixture()

	out := agg.Build(comments, clusters, nil)

	if len(out.Topics) != 2 {
		t.Fatalf("len(Topics) = %d, want 2", len(out.Topics))
	}

	audio := out.Topics[0]
	if audio.Name != "Audio" {
		t.Fatalf("Topics[0].Name = %q, want Audio (highest priority first)", audio.Name)
	}
	if audio.MentionCount != 3 || audio.TotalEngagement != 10 {
		t.Errorf("audio topic = %d mentions / %d engagement, want 3/10", audio.MentionCount, audio.TotalEngagement)
	}
	if audio.SentimentCategory != entities.SentimentNegative {
		t.Errorf("audio dominant = %s, want negative", audio.SentimentCategory)
	}
	if !reflect.DeepEqual(audio.MemberIndexes, []int{0, 1, 5}) {
		t.Errorf("audio members = %v, want [0 1 5]", audio.MemberIndexes)
	}
	if audio.Recommendation == "" {
		t.Errorf("negative topic should carry advice")
	}

	recipe := out.Topics[1]
	if recipe.SentimentCategory != entities.SentimentSuggestion {
		t.Errorf("recipe dominant = %s, want suggestion", recipe.SentimentCategory)
	}
	if recipe.MentionCount != 2 || recipe.TotalEngagement != 7 {
		t.Errorf("recipe topic = %d mentions / %d engagement, want 2/7", recipe.MentionCount, recipe.TotalEngagement)
	}

	// No double counting across topics.
	counted := audio.MentionCount + recipe.MentionCount
	if counted != 5 {
		t.Errorf("topics count %d comments, want 5 (one unclustered)", counted)
	}
}

func TestBuild_NilClustersMeansNoTopics(t *testing.T) {
	agg := NewAggregator(nil)
	comments, _ := topicFixture()

	out := agg.Build(comments, nil, nil)
	if len(out.Topics) != 0 {
		t.Errorf("len(Topics) = %d, want 0 when clustering unavailable", len(out.Topics))
	}
}

func TestBuild_Idempotent(t *testing.T) {
	agg := NewAggregator(nil)
	comments, clusters := topicFixture()

	first := agg.Build(comments, clusters, nil)
	second := agg.Build(comments, clusters, nil)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Build is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
