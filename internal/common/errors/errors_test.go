// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")

	tests := []struct {
		name            string
		err             *StandardError
		expectedCode    string
		expectedRetries int
	}{
		{
			name:            "retryable store failure",
			err:             NewProfileQueryFailedError("elasticsearch", cause),
			expectedCode:    "PROFILE_QUERY_FAILED",
			expectedRetries: 3,
		},
		{
			name:            "timeout surfaces under failure code",
			err:             NewKeywordLookupTimeoutError(cause),
			expectedCode:    "KEYWORD_LOOKUP_FAILED",
			expectedRetries: 2,
		},
		{
			name:            "business error is not retried",
			err:             NewInvalidFilterFormatError("invalid sortBy 'x'", nil),
			expectedCode:    "INVALID_FILTER_FORMAT",
			expectedRetries: 0,
		},
		{
			name:            "missing index needs an operator",
			err:             NewProfileIndexMissingError("influencers", cause),
			expectedCode:    "PROFILE_INDEX_NOT_FOUND",
			expectedRetries: 0,
		},
		{
			name:            "unmapped code passes through",
			err:             NewBrokerUnavailableError("topology", cause),
			expectedCode:    "BROKER_UNAVAILABLE",
			expectedRetries: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)

			assert.Equal(t, tt.expectedCode, bpmnErr.Code)
			assert.Equal(t, tt.expectedRetries, bpmnErr.Retries)
			assert.Equal(t, string(tt.err.Code), bpmnErr.ErrorVariables["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_CarriesMetadata(t *testing.T) {
	stdErr := NewProfileStoreTimeoutError("mongodb", stderrors.New("context deadline exceeded"))

	vars := ConvertToBPMNError(stdErr).ToErrorVariables()

	assert.Equal(t, "mongodb", vars["store"])
	assert.Equal(t, "PROFILE_QUERY_FAILED", vars["errorCode"])
	assert.Equal(t, true, vars["retryable"])
	assert.Contains(t, vars, "timestamp")
}

func TestAsStandardError(t *testing.T) {
	stdErr := NewRankingFailedError("unknown sort field")
	wrapped := fmt.Errorf("rank: %w", stdErr)

	assert.Same(t, stdErr, AsStandardError(wrapped))

	plain := AsStandardError(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.False(t, plain.Retryable)
}

func TestStandardError_Unwrap(t *testing.T) {
	cause := stderrors.New("no reachable servers")
	err := NewProfileQueryFailedError("mongodb", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "PROFILE_QUERY_FAILED: Influencer profile query failed (store: mongodb, error: no reachable servers)", err.Error())
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeKeywordLookupFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeProfileStoreTimeout))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInputValidationFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidFilterFormat))
	assert.Equal(t, "RANKING", GetErrorCategory(ErrCodeScoringFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeBrokerUnavailable))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeDatabaseConnectionFailed))
	assert.True(t, IsRetryableErrorCode(ErrCodeBrokerUnavailable))
	assert.False(t, IsRetryableErrorCode(ErrCodeRankingFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeInternal))
}
