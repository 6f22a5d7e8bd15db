package entities

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisResult is the root aggregate assembled by the pipeline
// orchestrator once per completed run. It is immutable after assembly;
// persistence receives it as-is.
//
// Summaries maps a sentiment bucket to its narrative summary. A nil value
// means generation was attempted and unavailable for that bucket; consumers
// must treat nil as "unavailable", not as an empty string.
type AnalysisResult struct {
	ID                    uuid.UUID                  `json:"id"`
	VideoID               string                     `json:"video_id"`
	TotalComments         int                        `json:"total_comments"`
	AnalyzedAt            time.Time                  `json:"analyzed_at"`
	Sentiment             SentimentSummary           `json:"sentiment"`
	Topics                []Topic                    `json:"topics"`
	AspectStats           map[AspectType]AspectStats `json:"aspect_stats"`
	Health                HealthScore                `json:"health"`
	Recommendations       []Recommendation           `json:"recommendations"`
	Summaries             map[SentimentLabel]*string `json:"summaries"`
	FailedClassifications int                        `json:"failed_classifications"`
}

// Analysis is the persisted form of a completed run. The structured pieces
// are stored as JSONB columns; topics live in their own table keyed by
// AnalysisID.
type Analysis struct {
	ID                    uuid.UUID                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VideoID               uuid.UUID                  `json:"video_id" gorm:"type:uuid;not null;index"`
	TotalComments         int                        `json:"total_comments" gorm:"type:integer;not null"`
	Sentiment             SentimentSummary           `json:"sentiment" gorm:"type:jsonb;serializer:json"`
	AspectStats           map[AspectType]AspectStats `json:"aspect_stats" gorm:"type:jsonb;serializer:json"`
	Health                HealthScore                `json:"health" gorm:"type:jsonb;serializer:json"`
	Recommendations       []Recommendation           `json:"recommendations" gorm:"type:jsonb;serializer:json"`
	Summaries             map[SentimentLabel]*string `json:"summaries" gorm:"type:jsonb;serializer:json"`
	FailedClassifications int                        `json:"failed_classifications" gorm:"type:integer;default:0"`
	ProcessingTimeMs      int                        `json:"processing_time_ms" gorm:"type:integer;default:0"`
	CreatedAt             time.Time                  `json:"created_at" gorm:"autoCreateTime;index"`

	// Not columns; populated when loading a full result.
	Video  *Video  `json:"video,omitempty" gorm:"-"`
	Topics []Topic `json:"topics,omitempty" gorm:"-"`
}

// TableName specifies the table name for Analysis
func (Analysis) TableName() string {
	return "analyses"
}

// NewAnalysis converts an assembled result into its persisted form.
func NewAnalysis(videoID uuid.UUID, result *AnalysisResult, processingTime time.Duration) *Analysis {
	return &Analysis{
		ID:                    result.ID,
		VideoID:               videoID,
		TotalComments:         result.TotalComments,
		Sentiment:             result.Sentiment,
		AspectStats:           result.AspectStats,
		Health:                result.Health,
		Recommendations:       result.Recommendations,
		Summaries:             result.Summaries,
		FailedClassifications: result.FailedClassifications,
		ProcessingTimeMs:      int(processingTime.Milliseconds()),
	}
}
