package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
	"github.com/vidinsight/vidinsight/internal/domain/repositories"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) repositories.CommentRepository {
	return &commentRepository{db: db}
}

// ReplaceForVideo swaps the stored comment set for a video inside one
// transaction, so a re-run refreshes comments instead of duplicating them.
func (r *commentRepository) ReplaceForVideo(ctx context.Context, videoID uuid.UUID, comments []*entities.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", videoID).Delete(&entities.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to clear stored comments: %w", err)
		}
		if len(comments) == 0 {
			return nil
		}
		if err := tx.Create(&comments).Error; err != nil {
			return fmt.Errorf("failed to insert comments: %w", err)
		}
		return nil
	})
}

// FindByVideoID retrieves comments for a video with filters and pagination
func (r *commentRepository) FindByVideoID(ctx context.Context, videoID uuid.UUID, filters repositories.CommentFilters) ([]*entities.Comment, int64, error) {
	var comments []*entities.Comment
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("video_id = ?", videoID)

	if filters.Sentiment != nil {
		query = query.Where("sentiment = ?", *filters.Sentiment)
	}
	if filters.Aspect != nil {
		query = query.Where("aspects @> ?", fmt.Sprintf(`["%s"]`, *filters.Aspect))
	}
	if filters.Search != "" {
		query = query.Where("text ILIKE ?", fmt.Sprintf("%%%s%%", filters.Search))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sort columns come from query parameters; only known columns pass.
	sortBy := "like_count"
	switch filters.SortBy {
	case "like_count", "published_at", "created_at":
		sortBy = filters.SortBy
	}
	sortOrder := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&comments).Error
	return comments, total, err
}
