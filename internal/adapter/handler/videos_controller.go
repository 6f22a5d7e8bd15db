package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vidinsight/vidinsight/errors"
	"github.com/vidinsight/vidinsight/internal/adapter/dto/analysis"
	"github.com/vidinsight/vidinsight/internal/adapter/presenter"
	videosuse "github.com/vidinsight/vidinsight/internal/usecase/videos"
)

// VideosController handles YouTube video discovery endpoints
type VideosController struct {
	svc    videosuse.Service
	logger *zap.Logger
}

// NewVideosController creates a new videos controller
func NewVideosController(svc videosuse.Service, logger *zap.Logger) *VideosController {
	return &VideosController{svc: svc, logger: logger}
}

// SearchVideos finds candidate videos to analyze
// @Summary      Search YouTube videos
// @Description  Runs a YouTube search and returns lightweight hits suitable for picking a video to analyze
// @Tags         Videos
// @Produce      json
// @Param        q      query     string                  true   "Search phrase"
// @Param        limit  query     int                     false  "Maximum hits (default 5, max 10)"
// @Success      200    {object}  map[string]interface{}  "Search hits"
// @Failure      400    {object}  map[string]interface{}  "Missing or invalid search phrase"
// @Failure      502    {object}  map[string]interface{}  "Search backend unavailable"
// @Router       /videos/search [get]
func (vc *VideosController) SearchVideos(c echo.Context) error {
	var req analysis.SearchVideosRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(vc.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(vc.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	// Set defaults
	if req.Limit == 0 {
		req.Limit = 5
	}

	results, err := vc.svc.Search(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		return HandleError(vc.logger, c, toAppError(err, req.Query))
	}

	return HandleSuccess(vc.logger, c, presenter.ToVideoSearchResults(results))
}
