package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidinsight/vidinsight/internal/domain/entities"
)

// CommentRepository defines the interface for annotated comment access
type CommentRepository interface {
	// ReplaceForVideo atomically swaps the stored comment set for a video
	// with a freshly extracted batch
	ReplaceForVideo(ctx context.Context, videoID uuid.UUID, comments []*entities.Comment) error

	// FindByVideoID retrieves comments for a video with filters and pagination
	FindByVideoID(ctx context.Context, videoID uuid.UUID, filters CommentFilters) ([]*entities.Comment, int64, error)
}

// CommentFilters represents filter options for listing comments
type CommentFilters struct {
	Sentiment *entities.SentimentLabel
	Aspect    *entities.AspectType
	Search    string // substring match on comment text
	Limit     int
	Offset    int
	SortBy    string // "like_count", "published_at", "created_at"
	SortOrder string // "asc", "desc"
}
