// internal/workers/search/get-filter-options/handler_test.go
package getfilteroptions

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "influencer-search-workers/internal/common/errors"
	"influencer-search-workers/internal/common/logger"
	"influencer-search-workers/internal/models"
	"influencer-search-workers/internal/search/profiles"
)

type fakeInsights struct {
	options *models.FilterOptions
	err     error
	limit   int
}

func (f *fakeInsights) Suggest(context.Context, string, int) (*models.ProfileSuggestions, error) {
	return nil, errors.New("not used")
}

func (f *fakeInsights) FilterOptions(_ context.Context, limit int) (*models.FilterOptions, error) {
	f.limit = limit
	return f.options, f.err
}

func (f *fakeInsights) Kind() models.ProfileStoreKind { return models.ProfileStoreMongo }

func createTestHandler(t *testing.T, store *fakeInsights) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second, FacetLimit: 20, Index: "influencers"}, store, nil, logger.NewTestLogger(t), nil)
}

func TestHandler_Execute_Success(t *testing.T) {
	options := &models.FilterOptions{
		Platforms:       []models.FacetCount{{Value: "instagram", Count: 12}},
		Niches:          []models.FacetCount{{Value: "travel", Count: 4}},
		Categories:      []models.FacetCount{},
		Countries:       []models.FacetCount{{Value: "Japan", Count: 3}},
		FollowerRange:   models.FollowerRange{MinFollowers: 900, MaxFollowers: 1_200_000, AvgFollowers: 84000},
		EngagementRange: models.DefaultEngagementRange,
	}
	store := &fakeInsights{options: options}

	output, err := createTestHandler(t, store).Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, *options, output.FilterOptions)
}

func TestHandler_Execute_Limit(t *testing.T) {
	tests := []struct {
		name     string
		config   int
		input    int
		expected int
	}{
		{name: "configured", config: 20, expected: 20},
		{name: "requested", config: 20, input: 7, expected: 7},
		{name: "fallback", expected: defaultFacetLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeInsights{options: &models.FilterOptions{}}
			handler := NewHandler(&Config{Timeout: time.Second, FacetLimit: tt.config}, store, nil, logger.NewTestLogger(t), nil)

			_, err := handler.Execute(context.Background(), &Input{Limit: tt.input})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, store.limit)
		})
	}
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name          string
		storeErr      error
		input         *Input
		expectedCode  apperrors.ErrorCode
		expectedRetry bool
	}{
		{
			name:         "nil input",
			expectedCode: apperrors.ErrCodeInputValidationFailed,
		},
		{
			name:          "index missing",
			storeErr:      fmt.Errorf("%w: influencers", profiles.ErrIndexNotFound),
			input:         &Input{},
			expectedCode:  apperrors.ErrCodeProfileIndexMissing,
			expectedRetry: false,
		},
		{
			name:          "aggregation failure",
			storeErr:      errors.New("aggregate influencers: server selection timeout"),
			input:         &Input{},
			expectedCode:  apperrors.ErrCodeProfileQueryFailed,
			expectedRetry: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t, &fakeInsights{err: tt.storeErr})

			output, err := handler.Execute(context.Background(), tt.input)
			assert.Nil(t, output)
			require.Error(t, err)

			stdErr := apperrors.AsStandardError(handler.toStandardError(context.Background(), err))
			assert.Equal(t, tt.expectedCode, stdErr.Code)
			assert.Equal(t, tt.expectedRetry, stdErr.Retryable)
		})
	}
}

func TestHandler_ToStandardError_Timeout(t *testing.T) {
	handler := createTestHandler(t, &fakeInsights{})
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	stdErr := apperrors.AsStandardError(handler.toStandardError(ctx, ErrAggregationFailed))
	assert.Equal(t, apperrors.ErrCodeProfileStoreTimeout, stdErr.Code)
	assert.Equal(t, "mongodb", stdErr.Metadata["store"])
}
