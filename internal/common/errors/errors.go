// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidFilterFormat   ErrorCode = "INVALID_FILTER_FORMAT"
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeKeywordLookupFailed      ErrorCode = "KEYWORD_LOOKUP_FAILED"
	ErrCodeKeywordLookupTimeout     ErrorCode = "KEYWORD_LOOKUP_TIMEOUT"

	ErrCodeProfileQueryFailed  ErrorCode = "PROFILE_QUERY_FAILED"
	ErrCodeProfileStoreTimeout ErrorCode = "PROFILE_STORE_TIMEOUT"
	ErrCodeProfileIndexMissing ErrorCode = "PROFILE_INDEX_NOT_FOUND"

	ErrCodeScoringFailed ErrorCode = "SCORING_FAILED"
	ErrCodeRankingFailed ErrorCode = "RANKING_FAILED"

	ErrCodeBrokerUnavailable ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to the error metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the process variables set alongside a failed or thrown job.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidFilterFormatError is returned when explicit search filters cannot be normalized.
func NewInvalidFilterFormatError(details string, cause error) *StandardError {
	return newError(ErrCodeInvalidFilterFormat, "Invalid search filter", details, false, cause)
}

// NewInputValidationFailedError is returned when job variables violate the activity schema.
func NewInputValidationFailedError(details string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Job input failed schema validation", details, false, nil)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true, err)
}

// NewKeywordLookupFailedError is a retryable keyword store failure.
func NewKeywordLookupFailedError(err error) *StandardError {
	return newError(ErrCodeKeywordLookupFailed, "Keyword lookup failed", err.Error(), true, err)
}

func NewKeywordLookupTimeoutError(err error) *StandardError {
	return newError(ErrCodeKeywordLookupTimeout, "Keyword lookup timed out", err.Error(), true, err)
}

// NewProfileQueryFailedError is a retryable profile store failure.
func NewProfileQueryFailedError(store string, err error) *StandardError {
	return newError(ErrCodeProfileQueryFailed, "Influencer profile query failed",
		fmt.Sprintf("store: %s, error: %s", store, err.Error()), true, err).
		WithMetadata("store", store)
}

func NewProfileStoreTimeoutError(store string, err error) *StandardError {
	return newError(ErrCodeProfileStoreTimeout, "Influencer profile query timed out",
		fmt.Sprintf("store: %s", store), true, err).
		WithMetadata("store", store)
}

// NewProfileIndexMissingError is not retried: a missing index needs an operator.
func NewProfileIndexMissingError(index string, err error) *StandardError {
	return newError(ErrCodeProfileIndexMissing, "Influencer index not found",
		fmt.Sprintf("index: %s", index), false, err).
		WithMetadata("index", index)
}

func NewScoringFailedError(details string) *StandardError {
	return newError(ErrCodeScoringFailed, "Match scoring failed", details, false, nil)
}

func NewRankingFailedError(details string) *StandardError {
	return newError(ErrCodeRankingFailed, "Relevance ranking failed", details, false, nil)
}

// NewBrokerUnavailableError reports a transient failure talking to the Zeebe gateway.
func NewBrokerUnavailableError(operation string, err error) *StandardError {
	return newError(ErrCodeBrokerUnavailable, "Workflow broker unavailable",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true, err).
		WithMetadata("operation", operation)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal codes to the error codes caught by boundary events.
// Timeouts surface under the failure code of the same store.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidFilterFormat:      "INVALID_FILTER_FORMAT",
	ErrCodeInputValidationFailed:    "INPUT_VALIDATION_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeKeywordLookupFailed:      "KEYWORD_LOOKUP_FAILED",
	ErrCodeKeywordLookupTimeout:     "KEYWORD_LOOKUP_FAILED",
	ErrCodeProfileQueryFailed:       "PROFILE_QUERY_FAILED",
	ErrCodeProfileStoreTimeout:      "PROFILE_QUERY_FAILED",
	ErrCodeProfileIndexMissing:      "PROFILE_INDEX_NOT_FOUND",
	ErrCodeScoringFailed:            "SCORING_FAILED",
	ErrCodeRankingFailed:            "RANKING_FAILED",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeKeywordLookupFailed,
		ErrCodeProfileQueryFailed:
		return 3

	case ErrCodeKeywordLookupTimeout,
		ErrCodeProfileStoreTimeout,
		ErrCodeBrokerUnavailable:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError finds a StandardError in the chain, wrapping anything else as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for log filtering.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "KEYWORD"), strings.HasPrefix(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.HasPrefix(codeStr, "PROFILE"):
		return "SEARCH"
	case strings.Contains(codeStr, "INVALID"), strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case codeStr == string(ErrCodeScoringFailed), codeStr == string(ErrCodeRankingFailed):
		return "RANKING"
	default:
		return "OTHER"
	}
}
