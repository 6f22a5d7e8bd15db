package entities

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a raw YouTube comment annotated in place by the pipeline.
// The raw fields are immutable after extraction; Sentiment,
// SentimentConfidence and Aspects are filled during classification.
type Comment struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VideoID     uuid.UUID `json:"video_id" gorm:"type:uuid;not null;index"`
	ExternalID  string    `json:"external_id" gorm:"type:varchar(64);not null;index"` // YouTube comment ID
	AuthorName  string    `json:"author_name" gorm:"type:varchar(255)"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	LikeCount   int       `json:"like_count" gorm:"type:integer;default:0"`
	PublishedAt time.Time `json:"published_at"`
	ParentID    *string   `json:"parent_id,omitempty" gorm:"type:varchar(64)"` // reply threading, unused by aggregation

	// Pipeline annotations (nullable until classified)
	Sentiment           *SentimentLabel `json:"sentiment,omitempty" gorm:"type:varchar(20);index"`
	SentimentConfidence float64         `json:"sentiment_confidence" gorm:"type:numeric;default:0"`
	Aspects             []AspectType    `json:"aspects,omitempty" gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// NewComment creates a raw comment entity before classification.
func NewComment(videoID uuid.UUID, externalID, author, text string) *Comment {
	return &Comment{
		ID:         uuid.New(),
		VideoID:    videoID,
		ExternalID: externalID,
		AuthorName: author,
		Text:       text,
	}
}

// Label returns the assigned sentiment, defaulting to neutral while
// unclassified so aggregation never sees a hole.
func (c *Comment) Label() SentimentLabel {
	if c.Sentiment == nil {
		return SentimentNeutral
	}
	return *c.Sentiment
}

// SetSentiment records the classifier output on the comment.
func (c *Comment) SetSentiment(label SentimentLabel, confidence float64) {
	c.Sentiment = &label
	c.SentimentConfidence = confidence
}

// HasAspect reports whether the comment was tagged with the given aspect.
func (c *Comment) HasAspect(a AspectType) bool {
	for _, got := range c.Aspects {
		if got == a {
			return true
		}
	}
	return false
}
