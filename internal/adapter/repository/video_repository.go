package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
	"github.com/vidinsight/vidinsight/internal/domain/repositories"
)

// videoRepository implements the VideoRepository interface
type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *gorm.DB) repositories.VideoRepository {
	return &videoRepository{db: db}
}

// Upsert inserts or refreshes a video metadata snapshot. The caller keeps
// the row's ID stable across runs, so Save resolves to an update for known
// videos and an insert for new ones.
func (r *videoRepository) Upsert(ctx context.Context, video *entities.Video) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return fmt.Errorf("failed to upsert video: %w", err)
	}
	return nil
}

// FindByID retrieves a video by its ID
func (r *videoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Video, error) {
	var video entities.Video
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find video by ID: %w", err)
	}
	return &video, nil
}

// FindByExternalID retrieves a video by its YouTube ID
func (r *videoRepository) FindByExternalID(ctx context.Context, externalID string) (*entities.Video, error) {
	var video entities.Video
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find video by external ID: %w", err)
	}
	return &video, nil
}
