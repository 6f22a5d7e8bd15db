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

// analysisRepository implements the AnalysisRepository interface
type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) repositories.AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create stores a completed run with its topics and memberships atomically
func (r *analysisRepository) Create(ctx context.Context, analysis *entities.Analysis, topics []*entities.Topic, memberships []*entities.TopicComment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(analysis).Error; err != nil {
			return fmt.Errorf("failed to insert analysis: %w", err)
		}
		if len(topics) > 0 {
			if err := tx.Create(&topics).Error; err != nil {
				return fmt.Errorf("failed to insert topics: %w", err)
			}
		}
		if len(memberships) > 0 {
			if err := tx.Create(&memberships).Error; err != nil {
				return fmt.Errorf("failed to insert topic memberships: %w", err)
			}
		}
		return nil
	})
}

// FindByID retrieves an analysis by its ID
func (r *analysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Analysis, error) {
	var analysis entities.Analysis
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find analysis by ID: %w", err)
	}
	return &analysis, nil
}

// FindLatestByVideoID retrieves the most recent analysis for a video
func (r *analysisRepository) FindLatestByVideoID(ctx context.Context, videoID uuid.UUID) (*entities.Analysis, error) {
	var analysis entities.Analysis
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest analysis: %w", err)
	}
	return &analysis, nil
}

// List retrieves analyses with filters and pagination, most recent first
func (r *analysisRepository) List(ctx context.Context, filters repositories.AnalysisFilters) ([]*entities.Analysis, int64, error) {
	var analyses []*entities.Analysis
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Analysis{})

	if filters.VideoID != nil {
		query = query.Where("video_id = ?", *filters.VideoID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&analyses).Error
	return analyses, total, err
}

// FindTopics retrieves an analysis's topics in ranked order
func (r *analysisRepository) FindTopics(ctx context.Context, analysisID uuid.UUID) ([]*entities.Topic, error) {
	var topics []*entities.Topic
	err := r.db.WithContext(ctx).
		Where("analysis_id = ?", analysisID).
		Order("priority_score DESC, mention_count DESC, cluster_index ASC").
		Find(&topics).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find topics: %w", err)
	}
	return topics, nil
}

// Delete removes an analysis. Topics and topic memberships go with it
// through ON DELETE CASCADE.
func (r *analysisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Analysis{}).Error; err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	return nil
}
