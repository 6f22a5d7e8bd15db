package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Video holds the metadata snapshot fetched before a run. ExternalID is the
// 11-character YouTube video ID.
type Video struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ExternalID      string         `json:"external_id" gorm:"type:varchar(16);not null;uniqueIndex"`
	Title           string         `json:"title" gorm:"type:text"`
	ChannelName     string         `json:"channel_name" gorm:"type:varchar(255)"`
	DurationSeconds int            `json:"duration_seconds" gorm:"type:integer;default:0"`
	ViewCount       int64          `json:"view_count" gorm:"type:bigint;default:0"`
	CommentCount    int64          `json:"comment_count" gorm:"type:bigint;default:0"`
	ThumbnailURL    string         `json:"thumbnail_url,omitempty" gorm:"type:text"`
	Tags            datatypes.JSON `json:"tags,omitempty" gorm:"type:jsonb;default:'[]'"`
	FetchedAt       time.Time      `json:"fetched_at"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Video
func (Video) TableName() string {
	return "videos"
}

// NewVideo creates a video entity for a freshly fetched metadata snapshot.
func NewVideo(externalID string) *Video {
	return &Video{
		ID:         uuid.New(),
		ExternalID: externalID,
		FetchedAt:  time.Now().UTC(),
	}
}

// VideoSearchResult is a lightweight hit from YouTube search, never
// persisted.
type VideoSearchResult struct {
	ExternalID      string `json:"external_id"`
	Title           string `json:"title"`
	ChannelName     string `json:"channel_name"`
	DurationSeconds int    `json:"duration_seconds"`
	ViewCount       int64  `json:"view_count"`
	URL             string `json:"url"`
}
