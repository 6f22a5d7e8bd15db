package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vidinsight/vidinsight/errors"
	"github.com/vidinsight/vidinsight/internal/adapter/dto/analysis"
	"github.com/vidinsight/vidinsight/internal/domain/entities"
	"github.com/vidinsight/vidinsight/internal/domain/repositories"
	usecaseErrors "github.com/vidinsight/vidinsight/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// buildCommentFilters converts ListCommentsRequest to repository filters
func buildCommentFilters(req *analysis.ListCommentsRequest) repositories.CommentFilters {
	filters := repositories.CommentFilters{
		Limit:     req.Limit,
		Offset:    req.Offset,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	if req.Sentiment != "" {
		label := entities.SentimentLabel(req.Sentiment)
		filters.Sentiment = &label
	}

	if req.Aspect != "" {
		aspect := entities.AspectType(req.Aspect)
		filters.Aspect = &aspect
	}

	return filters
}

// toAppError maps pipeline sentinels onto the HTTP error catalog. resource
// carries whatever identifier is in play at the call site, a URL, video ID
// or analysis ID, and lands in the error details.
func toAppError(err error, resource string) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrInvalidVideoURL):
		return errors.ErrInvalidVideoURL(resource)
	case stdErrors.Is(err, usecaseErrors.ErrVideoNotFound):
		return errors.ErrVideoNotFound(resource)
	case stdErrors.Is(err, usecaseErrors.ErrCommentsDisabled):
		return errors.ErrCommentsDisabled(resource)
	case stdErrors.Is(err, usecaseErrors.ErrTooFewComments),
		stdErrors.Is(err, usecaseErrors.ErrNoComments):
		return errors.ErrInsufficientComments(err)
	case stdErrors.Is(err, usecaseErrors.ErrRunInProgress):
		return errors.ErrAnalysisInProgress(resource)
	case stdErrors.Is(err, usecaseErrors.ErrRunTimeout):
		return errors.ErrRunTimeout()
	case stdErrors.Is(err, usecaseErrors.ErrRunCancelled):
		return errors.ErrRunCancelled()
	case stdErrors.Is(err, usecaseErrors.ErrAnalysisNotFound):
		return errors.ErrAnalysisNotFound(resource)
	case stdErrors.Is(err, usecaseErrors.ErrExtractionFailed):
		return errors.ErrExtractionFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrSearchUnavailable):
		return errors.ErrSearchFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrAggregationFailed):
		return errors.ErrAggregationFailed(err)
	default:
		return errors.ErrInternal(err)
	}
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	// Try to detect AppError from project errors package
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		// Structured logging
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	// Non-AppError => internal server error
	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}
