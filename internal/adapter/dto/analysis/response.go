package analysis

import (
	"time"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
)

// VideoResponse represents video metadata in responses
type VideoResponse struct {
	ID              string   `json:"id"`
	ExternalID      string   `json:"external_id"`
	Title           string   `json:"title"`
	ChannelName     string   `json:"channel_name"`
	DurationSeconds int      `json:"duration_seconds"`
	ViewCount       int64    `json:"view_count"`
	CommentCount    int64    `json:"comment_count"`
	ThumbnailURL    string   `json:"thumbnail_url,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	URL             string   `json:"url"`
}

// TopicResponse represents a ranked topic in responses
type TopicResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Phrase            string   `json:"phrase,omitempty"`
	Keywords          []string `json:"keywords"`
	MentionCount      int      `json:"mention_count"`
	TotalEngagement   int      `json:"total_engagement"`
	SentimentCategory string   `json:"sentiment_category"`
	PriorityScore     float64  `json:"priority_score"`
	Priority          string   `json:"priority"`
	Recommendation    string   `json:"recommendation,omitempty"`
}

// SummaryBucketResponse carries one sentiment bucket's narrative summary.
// Text is null when generation was attempted and unavailable.
type SummaryBucketResponse struct {
	Title string  `json:"title"`
	Text  *string `json:"text"`
}

// AnalysisResponse represents a full analysis result. VideoID is the
// YouTube video ID; the internal row ID lives on the nested video.
type AnalysisResponse struct {
	ID                    string                           `json:"id"`
	VideoID               string                           `json:"video_id"`
	Video                 *VideoResponse                   `json:"video,omitempty"`
	TotalComments         int                              `json:"total_comments"`
	AnalyzedAt            time.Time                        `json:"analyzed_at"`
	Sentiment             entities.SentimentSummary        `json:"sentiment"`
	Topics                []TopicResponse                  `json:"topics"`
	AspectStats           map[string]entities.AspectStats  `json:"aspect_stats"`
	Health                entities.HealthScore             `json:"health"`
	Recommendations       []entities.Recommendation        `json:"recommendations"`
	Summaries             map[string]SummaryBucketResponse `json:"summaries,omitempty"`
	FailedClassifications int                              `json:"failed_classifications"`
	ProcessingTimeMs      int                              `json:"processing_time_ms,omitempty"`
}

// AnalysisListItemResponse represents one history row
type AnalysisListItemResponse struct {
	ID            string                    `json:"id"`
	VideoID       string                    `json:"video_id"`
	Video         *VideoResponse            `json:"video,omitempty"`
	TotalComments int                       `json:"total_comments"`
	Sentiment     entities.SentimentSummary `json:"sentiment"`
	Health        entities.HealthScore      `json:"health"`
	AnalyzedAt    time.Time                 `json:"analyzed_at"`
}

// CommentResponse represents one stored comment with its annotations
type CommentResponse struct {
	ID                  string     `json:"id"`
	ExternalID          string     `json:"external_id"`
	AuthorName          string     `json:"author_name"`
	Text                string     `json:"text"`
	LikeCount           int        `json:"like_count"`
	PublishedAt         *time.Time `json:"published_at,omitempty"`
	ParentID            *string    `json:"parent_id,omitempty"`
	Sentiment           *string    `json:"sentiment,omitempty"`
	SentimentConfidence float64    `json:"sentiment_confidence"`
	Aspects             []string   `json:"aspects"`
}

// VideoSearchResultResponse represents one YouTube search hit
type VideoSearchResultResponse struct {
	ExternalID      string `json:"external_id"`
	Title           string `json:"title"`
	ChannelName     string `json:"channel_name"`
	DurationSeconds int    `json:"duration_seconds"`
	ViewCount       int64  `json:"view_count"`
	URL             string `json:"url"`
}

// ProgressEventResponse is the payload of one SSE progress frame
type ProgressEventResponse struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Percent int    `json:"percent"`
}

// RunErrorResponse is the payload of the SSE error frame
type RunErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
