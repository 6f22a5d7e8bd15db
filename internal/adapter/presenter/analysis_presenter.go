package presenter

import (
	"encoding/json"

	"github.com/vidinsight/vidinsight/internal/adapter/dto/analysis"
	"github.com/vidinsight/vidinsight/internal/domain/entities"
	"github.com/vidinsight/vidinsight/internal/usecase/summary"
	"github.com/vidinsight/vidinsight/pkg/youtube"
)

// ToVideoResponse converts a Video entity to VideoResponse DTO
func ToVideoResponse(v *entities.Video) *analysis.VideoResponse {
	if v == nil {
		return nil
	}

	resp := &analysis.VideoResponse{
		ID:              v.ID.String(),
		ExternalID:      v.ExternalID,
		Title:           v.Title,
		ChannelName:     v.ChannelName,
		DurationSeconds: v.DurationSeconds,
		ViewCount:       v.ViewCount,
		CommentCount:    v.CommentCount,
		ThumbnailURL:    v.ThumbnailURL,
		URL:             youtube.WatchURL(v.ExternalID),
	}
	if len(v.Tags) > 0 {
		var tags []string
		if err := json.Unmarshal(v.Tags, &tags); err == nil {
			resp.Tags = tags
		}
	}
	return resp
}

// ToTopicResponses converts ranked topics to their response DTOs
func ToTopicResponses(topics []entities.Topic) []analysis.TopicResponse {
	responses := make([]analysis.TopicResponse, len(topics))
	for i, t := range topics {
		responses[i] = analysis.TopicResponse{
			ID:                t.ID.String(),
			Name:              t.Name,
			Phrase:            t.Phrase,
			Keywords:          t.Keywords,
			MentionCount:      t.MentionCount,
			TotalEngagement:   t.TotalEngagement,
			SentimentCategory: string(t.SentimentCategory),
			PriorityScore:     t.PriorityScore,
			Priority:          string(t.Priority),
			Recommendation:    t.Recommendation,
		}
	}
	return responses
}

// ToSummaryResponses converts bucket summaries to their response DTOs,
// keyed by sentiment label. A nil Text survives conversion so clients can
// tell "unavailable" apart from "not requested".
func ToSummaryResponses(summaries map[entities.SentimentLabel]*string) map[string]analysis.SummaryBucketResponse {
	if summaries == nil {
		return nil
	}

	responses := make(map[string]analysis.SummaryBucketResponse, len(summaries))
	for label, text := range summaries {
		responses[string(label)] = analysis.SummaryBucketResponse{
			Title: summary.BucketTitle(label),
			Text:  text,
		}
	}
	return responses
}

// ToRunResponse converts a freshly assembled run result to AnalysisResponse.
// The nested video stays empty here; run results identify the video by its
// YouTube ID and clients load stored metadata through the history endpoints.
func ToRunResponse(result *entities.AnalysisResult) *analysis.AnalysisResponse {
	if result == nil {
		return nil
	}

	return &analysis.AnalysisResponse{
		ID:                    result.ID.String(),
		VideoID:               result.VideoID,
		TotalComments:         result.TotalComments,
		AnalyzedAt:            result.AnalyzedAt,
		Sentiment:             result.Sentiment,
		Topics:                ToTopicResponses(result.Topics),
		AspectStats:           toAspectStats(result.AspectStats),
		Health:                result.Health,
		Recommendations:       result.Recommendations,
		Summaries:             ToSummaryResponses(result.Summaries),
		FailedClassifications: result.FailedClassifications,
	}
}

// ToAnalysisResponse converts a stored analysis to AnalysisResponse DTO
func ToAnalysisResponse(record *entities.Analysis) *analysis.AnalysisResponse {
	if record == nil {
		return nil
	}

	response := &analysis.AnalysisResponse{
		ID:                    record.ID.String(),
		TotalComments:         record.TotalComments,
		AnalyzedAt:            record.CreatedAt,
		Sentiment:             record.Sentiment,
		Topics:                ToTopicResponses(record.Topics),
		AspectStats:           toAspectStats(record.AspectStats),
		Health:                record.Health,
		Recommendations:       record.Recommendations,
		Summaries:             ToSummaryResponses(record.Summaries),
		FailedClassifications: record.FailedClassifications,
		ProcessingTimeMs:      record.ProcessingTimeMs,
	}

	// Include video if loaded
	if record.Video != nil {
		response.VideoID = record.Video.ExternalID
		response.Video = ToVideoResponse(record.Video)
	}

	return response
}

// ToAnalysisListItem converts a stored analysis to its history row DTO
func ToAnalysisListItem(record *entities.Analysis) *analysis.AnalysisListItemResponse {
	if record == nil {
		return nil
	}

	response := &analysis.AnalysisListItemResponse{
		ID:            record.ID.String(),
		TotalComments: record.TotalComments,
		Sentiment:     record.Sentiment,
		Health:        record.Health,
		AnalyzedAt:    record.CreatedAt,
	}

	if record.Video != nil {
		response.VideoID = record.Video.ExternalID
		response.Video = ToVideoResponse(record.Video)
	}

	return response
}

// ToAnalysisListItems converts a page of stored analyses to history row DTOs
func ToAnalysisListItems(records []*entities.Analysis) []*analysis.AnalysisListItemResponse {
	responses := make([]*analysis.AnalysisListItemResponse, len(records))
	for i, record := range records {
		responses[i] = ToAnalysisListItem(record)
	}
	return responses
}

// ToCommentResponse converts a Comment entity to CommentResponse DTO
func ToCommentResponse(c *entities.Comment) *analysis.CommentResponse {
	if c == nil {
		return nil
	}

	aspects := make([]string, len(c.Aspects))
	for i, a := range c.Aspects {
		aspects[i] = string(a)
	}

	response := &analysis.CommentResponse{
		ID:                  c.ID.String(),
		ExternalID:          c.ExternalID,
		AuthorName:          c.AuthorName,
		Text:                c.Text,
		LikeCount:           c.LikeCount,
		ParentID:            c.ParentID,
		SentimentConfidence: c.SentimentConfidence,
		Aspects:             aspects,
	}

	if !c.PublishedAt.IsZero() {
		publishedAt := c.PublishedAt
		response.PublishedAt = &publishedAt
	}
	if c.Sentiment != nil {
		sentiment := string(*c.Sentiment)
		response.Sentiment = &sentiment
	}

	return response
}

// ToCommentResponses converts a page of comments to their response DTOs
func ToCommentResponses(comments []*entities.Comment) []*analysis.CommentResponse {
	responses := make([]*analysis.CommentResponse, len(comments))
	for i, c := range comments {
		responses[i] = ToCommentResponse(c)
	}
	return responses
}

// ToVideoSearchResults converts search hits to their response DTOs
func ToVideoSearchResults(results []*entities.VideoSearchResult) []*analysis.VideoSearchResultResponse {
	responses := make([]*analysis.VideoSearchResultResponse, len(results))
	for i, r := range results {
		responses[i] = &analysis.VideoSearchResultResponse{
			ExternalID:      r.ExternalID,
			Title:           r.Title,
			ChannelName:     r.ChannelName,
			DurationSeconds: r.DurationSeconds,
			ViewCount:       r.ViewCount,
			URL:             r.URL,
		}
	}
	return responses
}

// ToProgressEvent converts a pipeline progress event to its SSE payload
func ToProgressEvent(event entities.ProgressEvent) analysis.ProgressEventResponse {
	return analysis.ProgressEventResponse{
		Stage:   string(event.Stage),
		Message: event.Message,
		Percent: event.Percent,
	}
}

// toAspectStats re-keys aspect statistics by plain strings for JSON output
func toAspectStats(stats map[entities.AspectType]entities.AspectStats) map[string]entities.AspectStats {
	if stats == nil {
		return nil
	}

	out := make(map[string]entities.AspectStats, len(stats))
	for aspect, s := range stats {
		out[string(aspect)] = s
	}
	return out
}
