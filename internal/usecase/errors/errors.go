package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Video / extraction errors
var (
	ErrInvalidVideoURL   = errors.New("not a valid youtube video url")
	ErrVideoNotFound     = errors.New("video unavailable or private")
	ErrCommentsDisabled  = errors.New("comments are disabled for this video")
	ErrNoComments        = errors.New("video has no comments")
	ErrTooFewComments    = errors.New("not enough comments to analyze")
	ErrExtractionFailed  = errors.New("comment extraction failed")
	ErrSearchUnavailable = errors.New("video search unavailable")
)

// Analysis run errors
var (
	ErrRunCancelled      = errors.New("analysis run cancelled")
	ErrRunTimeout        = errors.New("analysis stage timed out")
	ErrRunInProgress     = errors.New("analysis already in progress for this video")
	ErrAnalysisNotFound  = errors.New("analysis not found")
	ErrAggregationFailed = errors.New("aggregation failed")
	ErrEmptyCommentBatch = errors.New("comment batch is empty")
)

// Model errors
var (
	ErrClassifierUnavailable = errors.New("sentiment classifier unavailable")
	ErrSummarizerUnavailable = errors.New("summary generator unavailable")
)
