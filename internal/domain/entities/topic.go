package entities

import (
	"time"

	"github.com/google/uuid"
)

// TopicPriority buckets a topic's priority score.
type TopicPriority string

const (
	TopicPriorityHigh   TopicPriority = "high"
	TopicPriorityMedium TopicPriority = "medium"
	TopicPriorityLow    TopicPriority = "low"
)

// TopicPriorityFromScore buckets a [0,1] priority score.
func TopicPriorityFromScore(score float64) TopicPriority {
	switch {
	case score >= 0.66:
		return TopicPriorityHigh
	case score >= 0.33:
		return TopicPriorityMedium
	default:
		return TopicPriorityLow
	}
}

// Topic is a cluster of comments sharing a latent theme, discovered by the
// clusterer and scored by the ranker. Every comment belongs to at most one
// topic; clusters below the minimum size are discarded as noise.
type Topic struct {
	ID                uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AnalysisID        uuid.UUID      `json:"analysis_id" gorm:"type:uuid;not null;index"`
	Name              string         `json:"name" gorm:"type:varchar(255);not null"`
	Phrase            string         `json:"phrase,omitempty" gorm:"type:text"`
	Keywords          []string       `json:"keywords" gorm:"type:jsonb;serializer:json"`
	MentionCount      int            `json:"mention_count" gorm:"type:integer;not null"`
	TotalEngagement   int            `json:"total_engagement" gorm:"type:integer;default:0"`
	SentimentCategory SentimentLabel `json:"sentiment_category" gorm:"type:varchar(20)"`
	PriorityScore     float64        `json:"priority_score" gorm:"type:numeric"`
	Priority          TopicPriority  `json:"priority" gorm:"type:varchar(20)"`
	Recommendation    string         `json:"recommendation,omitempty" gorm:"type:text"`
	ClusterIndex      int            `json:"cluster_index" gorm:"type:integer"` // first-seen cluster index, deterministic tie-break

	// MemberIndexes holds positions of member comments in the analyzed
	// batch. Persisted through topic_comments rows, not as a column.
	MemberIndexes []int `json:"-" gorm:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Topic
func (Topic) TableName() string {
	return "topics"
}

// NewTopic creates a topic shell for a surviving cluster. The ID stays
// zero until persistence assigns one, so aggregation output is
// deterministic for identical input.
func NewTopic(name string, clusterIndex int) *Topic {
	return &Topic{
		Name:         name,
		ClusterIndex: clusterIndex,
	}
}

// TopicComment links a stored comment to the topic cluster it belongs to.
type TopicComment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TopicID   uuid.UUID `json:"topic_id" gorm:"type:uuid;not null;index"`
	CommentID uuid.UUID `json:"comment_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for TopicComment
func (TopicComment) TableName() string {
	return "topic_comments"
}
