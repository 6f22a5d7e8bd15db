package handler

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vidinsight/vidinsight/errors"
	"github.com/vidinsight/vidinsight/internal/adapter/dto/analysis"
	"github.com/vidinsight/vidinsight/internal/adapter/dto/common"
	"github.com/vidinsight/vidinsight/internal/adapter/presenter"
	"github.com/vidinsight/vidinsight/internal/domain/entities"
	analysisuse "github.com/vidinsight/vidinsight/internal/usecase/analysis"
	usecaseErrors "github.com/vidinsight/vidinsight/internal/usecase/errors"
)

// progressBuffer bounds how many undelivered progress frames one stream
// keeps. The pipeline emits at stage granularity, so the buffer only fills
// when the client stops reading; further frames are dropped.
const progressBuffer = 16

// AnalysisController handles the analysis run and history endpoints
type AnalysisController struct {
	svc    analysisuse.Service
	logger *zap.Logger
}

// NewAnalysisController creates a new analysis controller
func NewAnalysisController(svc analysisuse.Service, logger *zap.Logger) *AnalysisController {
	return &AnalysisController{svc: svc, logger: logger}
}

// CreateAnalysis runs the comment analysis pipeline for one video
// @Summary      Analyze a YouTube video's comments
// @Description  Runs the full analysis pipeline for the given video URL. With "Accept: text/event-stream" the response streams progress events and ends with a complete or error event; otherwise the request blocks until the run finishes and returns the result as JSON.
// @Tags         Analyses
// @Accept       json
// @Produce      json
// @Param        request  body      analysis.AnalyzeRequest  true  "Video URL and run options"
// @Success      200      {object}  map[string]interface{}   "Completed analysis result"
// @Failure      400      {object}  map[string]interface{}   "Invalid payload or video URL"
// @Failure      404      {object}  map[string]interface{}   "Video unavailable or private"
// @Failure      409      {object}  map[string]interface{}   "Analysis already running for this video"
// @Failure      422      {object}  map[string]interface{}   "Comments disabled or too few to analyze"
// @Router       /analyses [post]
func (ac *AnalysisController) CreateAnalysis(c echo.Context) error {
	var req analysis.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	input := analysisuse.RunRequest{
		URL:         req.URL,
		MaxComments: req.MaxComments,
		EnableAI:    req.EnableAI,
	}

	if !wantsEventStream(c.Request()) {
		result, err := ac.svc.Analyze(c.Request().Context(), input, nil)
		if err != nil {
			return HandleError(ac.logger, c, toAppError(err, req.URL))
		}
		return HandleSuccess(ac.logger, c, presenter.ToRunResponse(result))
	}

	return ac.streamAnalysis(c, input)
}

// streamAnalysis runs the pipeline in the background and relays its
// progress as SSE frames. A slow or gone subscriber never blocks the run;
// undeliverable frames are dropped.
func (ac *AnalysisController) streamAnalysis(c echo.Context, input analysisuse.RunRequest) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	events := make(chan entities.ProgressEvent, progressBuffer)
	sink := func(event entities.ProgressEvent) {
		select {
		case events <- event:
		default:
		}
	}

	type outcome struct {
		result *entities.AnalysisResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := ac.svc.Analyze(c.Request().Context(), input, sink)
		done <- outcome{result: result, err: err}
		close(events)
	}()

	for event := range events {
		if err := writeEvent(res, "progress", presenter.ToProgressEvent(event)); err != nil {
			// Client is gone; the request context cancels the run.
			break
		}
	}

	out := <-done
	if out.err != nil {
		// A cancelled run has no one left to tell.
		if stdErrors.Is(out.err, usecaseErrors.ErrRunCancelled) {
			return nil
		}
		appErr := toAppError(out.err, input.URL)
		_ = writeEvent(res, "error", analysis.RunErrorResponse{
			Code:    appErr.Code.String(),
			Message: appErr.Message,
		})
		return nil
	}

	_ = writeEvent(res, "complete", presenter.ToRunResponse(out.result))
	return nil
}

// GetAnalysis returns one stored analysis with its video and topics
// @Summary      Get a stored analysis
// @Description  Loads a past analysis by ID, including its ranked topics and the analyzed video's metadata
// @Tags         Analyses
// @Produce      json
// @Param        id   path      string                  true  "Analysis ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Stored analysis"
// @Failure      400  {object}  map[string]interface{}  "Malformed analysis ID"
// @Failure      404  {object}  map[string]interface{}  "Analysis not found"
// @Router       /analyses/{id} [get]
func (ac *AnalysisController) GetAnalysis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidArgument("analysis id must be a UUID"))
	}

	record, err := ac.svc.GetAnalysis(c.Request().Context(), id)
	if err != nil {
		return HandleError(ac.logger, c, toAppError(err, id.String()))
	}

	return HandleSuccess(ac.logger, c, presenter.ToAnalysisResponse(record))
}

// ListAnalyses pages through past analyses, most recent first
// @Summary      List past analyses
// @Description  Returns stored analyses ordered by recency, optionally filtered to one video
// @Tags         Analyses
// @Produce      json
// @Param        video_id  query     string                  false  "Filter by internal video UUID"
// @Param        limit     query     int                     false  "Page size (default 10, max 50)"
// @Param        offset    query     int                     false  "Rows to skip"
// @Success      200       {object}  map[string]interface{}  "Page of history rows"
// @Failure      400       {object}  map[string]interface{}  "Invalid query parameters"
// @Router       /analyses [get]
func (ac *AnalysisController) ListAnalyses(c echo.Context) error {
	var req analysis.ListAnalysesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	// Set defaults
	if req.Limit == 0 {
		req.Limit = 10
	}

	var videoID *uuid.UUID
	if req.VideoID != "" {
		parsed, err := uuid.Parse(req.VideoID)
		if err != nil {
			return HandleError(ac.logger, c, errors.ErrInvalidArgument("video_id must be a UUID"))
		}
		videoID = &parsed
	}

	records, total, err := ac.svc.ListAnalyses(c.Request().Context(), videoID, req.Limit, req.Offset)
	if err != nil {
		return HandleError(ac.logger, c, toAppError(err, req.VideoID))
	}

	items := presenter.ToAnalysisListItems(records)
	return HandleSuccess(ac.logger, c, common.NewListResponse(items, req.Limit, req.Offset, total))
}

// DeleteAnalysis removes a stored analysis
// @Summary      Delete a stored analysis
// @Description  Removes an analysis along with its topics and topic memberships
// @Tags         Analyses
// @Produce      json
// @Param        id   path      string                  true  "Analysis ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Deleted"
// @Failure      400  {object}  map[string]interface{}  "Malformed analysis ID"
// @Failure      404  {object}  map[string]interface{}  "Analysis not found"
// @Router       /analyses/{id} [delete]
func (ac *AnalysisController) DeleteAnalysis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidArgument("analysis id must be a UUID"))
	}

	if err := ac.svc.DeleteAnalysis(c.Request().Context(), id); err != nil {
		return HandleError(ac.logger, c, toAppError(err, id.String()))
	}

	return HandleSuccess(ac.logger, c, map[string]interface{}{"deleted": id.String()})
}

// wantsEventStream reports whether the client asked for SSE progress
func wantsEventStream(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

// writeEvent writes one SSE frame and flushes it to the client
func writeEvent(res *echo.Response, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
