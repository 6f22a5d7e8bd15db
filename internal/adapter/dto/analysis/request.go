package analysis

// AnalyzeRequest represents the request to start an analysis run
type AnalyzeRequest struct {
	URL         string `json:"url" validate:"required,youtubeurl"`
	MaxComments int    `json:"max_comments,omitempty" validate:"omitempty,min=10,max=2000"`
	EnableAI    bool   `json:"enable_ai,omitempty"`
}

// ListAnalysesRequest represents query parameters for the history list
type ListAnalysesRequest struct {
	VideoID string `query:"video_id" validate:"omitempty,uuid"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=50"`
	Offset  int    `query:"offset" validate:"omitempty,min=0"`
}

// ListCommentsRequest represents query parameters for listing the raw
// comments behind an analysis
type ListCommentsRequest struct {
	Sentiment string `query:"sentiment" validate:"omitempty,oneof=positive negative suggestion neutral"`
	Aspect    string `query:"aspect" validate:"omitempty,oneof=content audio production pacing presenter"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset    int    `query:"offset" validate:"omitempty,min=0"`
	SortBy    string `query:"sort_by" validate:"omitempty,oneof=like_count published_at created_at"`
	SortOrder string `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// SearchCommentsRequest represents query parameters for substring search
// within an analysis's comments
type SearchCommentsRequest struct {
	Query  string `query:"q" validate:"required,min=1,max=200"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

// SearchVideosRequest represents query parameters for YouTube search
type SearchVideosRequest struct {
	Query string `query:"q" validate:"required,min=1,max=200"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=10"`
}
