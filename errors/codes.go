package errors

// ErrorCode is a machine-readable error code carried by AppError.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	// Video / extraction
	ErrorCode_VIDEO_INVALID_URL     ErrorCode = 2000
	ErrorCode_VIDEO_NOT_FOUND       ErrorCode = 2001
	ErrorCode_COMMENTS_DISABLED     ErrorCode = 2002
	ErrorCode_INSUFFICIENT_COMMENTS ErrorCode = 2003
	ErrorCode_EXTRACTION_FAILED     ErrorCode = 2004
	ErrorCode_SEARCH_FAILED         ErrorCode = 2005

	// Analysis run
	ErrorCode_ANALYSIS_NOT_FOUND   ErrorCode = 3000
	ErrorCode_ANALYSIS_IN_PROGRESS ErrorCode = 3001
	ErrorCode_RUN_TIMEOUT          ErrorCode = 3002
	ErrorCode_RUN_CANCELLED        ErrorCode = 3003
	ErrorCode_AGGREGATION_FAILED   ErrorCode = 3004

	// Integrations
	ErrorCode_INTEGRATION_MODEL_FAILED   ErrorCode = 4000
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4001
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 4002

	// Database
	ErrorCode_DB_CONNECTION_FAILED  ErrorCode = 5000
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 5001
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 5002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_VIDEO_INVALID_URL:          "VIDEO_INVALID_URL",
	ErrorCode_VIDEO_NOT_FOUND:            "VIDEO_NOT_FOUND",
	ErrorCode_COMMENTS_DISABLED:          "COMMENTS_DISABLED",
	ErrorCode_INSUFFICIENT_COMMENTS:      "INSUFFICIENT_COMMENTS",
	ErrorCode_EXTRACTION_FAILED:          "EXTRACTION_FAILED",
	ErrorCode_SEARCH_FAILED:              "SEARCH_FAILED",
	ErrorCode_ANALYSIS_NOT_FOUND:         "ANALYSIS_NOT_FOUND",
	ErrorCode_ANALYSIS_IN_PROGRESS:       "ANALYSIS_IN_PROGRESS",
	ErrorCode_RUN_TIMEOUT:                "RUN_TIMEOUT",
	ErrorCode_RUN_CANCELLED:              "RUN_CANCELLED",
	ErrorCode_AGGREGATION_FAILED:         "AGGREGATION_FAILED",
	ErrorCode_INTEGRATION_MODEL_FAILED:   "INTEGRATION_MODEL_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:       "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:      "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
