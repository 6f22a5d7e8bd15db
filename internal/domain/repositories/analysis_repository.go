package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidinsight/vidinsight/internal/domain/entities"
)

// AnalysisRepository defines persistence operations for analysis runs
type AnalysisRepository interface {
	// Create stores an analysis row together with its topics and
	// topic-comment memberships in a single transaction
	Create(ctx context.Context, analysis *entities.Analysis, topics []*entities.Topic, memberships []*entities.TopicComment) error

	// FindByID retrieves an analysis by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Analysis, error)

	// FindLatestByVideoID retrieves the most recent analysis for a video,
	// used as the health trend baseline. Returns nil when none exists.
	FindLatestByVideoID(ctx context.Context, videoID uuid.UUID) (*entities.Analysis, error)

	// List retrieves past analyses ordered by most recent first
	List(ctx context.Context, filters AnalysisFilters) ([]*entities.Analysis, int64, error)

	// FindTopics retrieves the topics stored for an analysis, ordered by
	// priority score descending
	FindTopics(ctx context.Context, analysisID uuid.UUID) ([]*entities.Topic, error)

	// Delete removes an analysis and its dependent rows
	Delete(ctx context.Context, id uuid.UUID) error
}

// AnalysisFilters represents filter options for listing analysis history
type AnalysisFilters struct {
	VideoID *uuid.UUID
	Limit   int
	Offset  int
}
