package videos

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
	"github.com/vidinsight/vidinsight/internal/domain/repositories"
	usecaseErrors "github.com/vidinsight/vidinsight/internal/usecase/errors"
)

const (
	defaultSearchLimit = 5
	maxSearchLimit     = 10

	defaultCommentLimit = 20
	maxCommentLimit     = 100
)

// Searcher finds videos on YouTube. Implemented by the yt-dlp client.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]*entities.VideoSearchResult, error)
}

// Service defines the interface for video search and comment browsing
type Service interface {
	// Search runs a YouTube search and returns up to limit hits
	Search(ctx context.Context, query string, limit int) ([]*entities.VideoSearchResult, error)

	// ListComments pages through the raw comments stored for the video an
	// analysis was built from
	ListComments(ctx context.Context, analysisID uuid.UUID, filters repositories.CommentFilters) ([]*entities.Comment, int64, error)
}

type videoService struct {
	analysisRepo repositories.AnalysisRepository
	commentRepo  repositories.CommentRepository
	searcher     Searcher
	logger       *zap.Logger
}

// NewVideoService creates a new video service
func NewVideoService(
	analysisRepo repositories.AnalysisRepository,
	commentRepo repositories.CommentRepository,
	searcher Searcher,
	logger *zap.Logger,
) Service {
	return &videoService{
		analysisRepo: analysisRepo,
		commentRepo:  commentRepo,
		searcher:     searcher,
		logger:       logger,
	}
}

// Search runs a YouTube search through yt-dlp.
func (s *videoService) Search(ctx context.Context, query string, limit int) ([]*entities.VideoSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	results, err := s.searcher.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("🔍 Video search completed",
			zap.String("query", query),
			zap.Int("results", len(results)),
		)
	}

	return results, nil
}

// ListComments resolves the analysis to its video and pages through that
// video's stored comments.
func (s *videoService) ListComments(ctx context.Context, analysisID uuid.UUID, filters repositories.CommentFilters) ([]*entities.Comment, int64, error) {
	record, err := s.analysisRepo.FindByID(ctx, analysisID)
	if err != nil {
		return nil, 0, err
	}
	if record == nil {
		return nil, 0, usecaseErrors.ErrAnalysisNotFound
	}

	if filters.Limit <= 0 {
		filters.Limit = defaultCommentLimit
	}
	if filters.Limit > maxCommentLimit {
		filters.Limit = maxCommentLimit
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	return s.commentRepo.FindByVideoID(ctx, record.VideoID, filters)
}
