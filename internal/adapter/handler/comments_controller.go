package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vidinsight/vidinsight/errors"
	"github.com/vidinsight/vidinsight/internal/adapter/dto/analysis"
	"github.com/vidinsight/vidinsight/internal/adapter/dto/common"
	"github.com/vidinsight/vidinsight/internal/adapter/presenter"
	"github.com/vidinsight/vidinsight/internal/domain/repositories"
	videosuse "github.com/vidinsight/vidinsight/internal/usecase/videos"
)

// CommentsController handles browsing the raw comments behind an analysis
type CommentsController struct {
	svc    videosuse.Service
	logger *zap.Logger
}

// NewCommentsController creates a new comments controller
func NewCommentsController(svc videosuse.Service, logger *zap.Logger) *CommentsController {
	return &CommentsController{svc: svc, logger: logger}
}

// ListComments pages through the comments an analysis was built from
// @Summary      List analyzed comments
// @Description  Returns the stored comments behind an analysis, filterable by sentiment and aspect, sorted by engagement by default
// @Tags         Comments
// @Produce      json
// @Param        id          path      string                  true   "Analysis ID (UUID)"
// @Param        sentiment   query     string                  false  "Filter by sentiment (positive, negative, suggestion, neutral)"
// @Param        aspect      query     string                  false  "Filter by aspect (content, audio, production, pacing, presenter)"
// @Param        limit       query     int                     false  "Page size (default 20, max 100)"
// @Param        offset      query     int                     false  "Rows to skip"
// @Param        sort_by     query     string                  false  "Sort column (like_count, published_at, created_at)"
// @Param        sort_order  query     string                  false  "Sort direction (asc, desc)"
// @Success      200         {object}  map[string]interface{}  "Page of comments"
// @Failure      400         {object}  map[string]interface{}  "Invalid query parameters"
// @Failure      404         {object}  map[string]interface{}  "Analysis not found"
// @Router       /analyses/{id}/comments [get]
func (cc *CommentsController) ListComments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(cc.logger, c, errors.ErrInvalidArgument("analysis id must be a UUID"))
	}

	var req analysis.ListCommentsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(cc.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(cc.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	// Set defaults
	if req.Limit == 0 {
		req.Limit = 20
	}

	comments, total, err := cc.svc.ListComments(c.Request().Context(), id, buildCommentFilters(&req))
	if err != nil {
		return HandleError(cc.logger, c, toAppError(err, id.String()))
	}

	items := presenter.ToCommentResponses(comments)
	return HandleSuccess(cc.logger, c, common.NewListResponse(items, req.Limit, req.Offset, total))
}

// SearchComments finds comments by substring within one analysis
// @Summary      Search analyzed comments
// @Description  Case-insensitive substring search over the stored comments behind an analysis
// @Tags         Comments
// @Produce      json
// @Param        id      path      string                  true   "Analysis ID (UUID)"
// @Param        q       query     string                  true   "Search phrase"
// @Param        limit   query     int                     false  "Page size (default 20, max 100)"
// @Param        offset  query     int                     false  "Rows to skip"
// @Success      200     {object}  map[string]interface{}  "Page of matching comments"
// @Failure      400     {object}  map[string]interface{}  "Missing or invalid search phrase"
// @Failure      404     {object}  map[string]interface{}  "Analysis not found"
// @Router       /analyses/{id}/comments/search [get]
func (cc *CommentsController) SearchComments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(cc.logger, c, errors.ErrInvalidArgument("analysis id must be a UUID"))
	}

	var req analysis.SearchCommentsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(cc.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(cc.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	// Set defaults
	if req.Limit == 0 {
		req.Limit = 20
	}

	filters := repositories.CommentFilters{
		Search: req.Query,
		Limit:  req.Limit,
		Offset: req.Offset,
	}

	comments, total, err := cc.svc.ListComments(c.Request().Context(), id, filters)
	if err != nil {
		return HandleError(cc.logger, c, toAppError(err, id.String()))
	}

	items := presenter.ToCommentResponses(comments)
	return HandleSuccess(cc.logger, c, common.NewListResponse(items, req.Limit, req.Offset, total))
}
