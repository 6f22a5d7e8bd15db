package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidinsight/vidinsight/internal/domain/entities"
)

// VideoRepository defines the interface for video metadata access
type VideoRepository interface {
	// Upsert inserts the video or refreshes the metadata snapshot when the
	// external ID is already known. The entity's ID is populated either way.
	Upsert(ctx context.Context, video *entities.Video) error

	// FindByID retrieves a video by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Video, error)

	// FindByExternalID retrieves a video by its 11-character YouTube ID.
	// Returns nil when the video has never been analyzed.
	FindByExternalID(ctx context.Context, externalID string) (*entities.Video, error)
}
