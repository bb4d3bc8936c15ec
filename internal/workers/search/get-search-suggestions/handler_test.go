// internal/workers/search/get-search-suggestions/handler_test.go
package getsearchsuggestions

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
	suggestions *models.ProfileSuggestions
	err         error
	query       string
	limit       int
	calls       int
}

func (f *fakeInsights) Suggest(_ context.Context, query string, limit int) (*models.ProfileSuggestions, error) {
	f.calls++
	f.query, f.limit = query, limit
	return f.suggestions, f.err
}

func (f *fakeInsights) FilterOptions(context.Context, int) (*models.FilterOptions, error) {
	return nil, errors.New("not used")
}

func (f *fakeInsights) Kind() models.ProfileStoreKind { return models.ProfileStoreElasticsearch }

type fakeKeywords struct {
	names []string
	err   error
	calls int
}

func (f *fakeKeywords) Suggest(_ context.Context, _ string, _ int) ([]string, error) {
	f.calls++
	return f.names, f.err
}

func createTestHandler(t *testing.T, store *fakeInsights, kw *fakeKeywords) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second, Limit: 5, Index: "influencers"}, store, kw, nil, logger.NewTestLogger(t), nil)
}

func TestHandler_Execute_Success(t *testing.T) {
	store := &fakeInsights{suggestions: &models.ProfileSuggestions{
		Names:      []string{"Fitness Fiona"},
		Niches:     []string{"fitness"},
		Categories: []string{},
	}}
	kw := &fakeKeywords{names: []string{"Fitness", "Home Fitness"}}

	output, err := createTestHandler(t, store, kw).Execute(context.Background(), &Input{Query: "  fit "})

	require.NoError(t, err)
	assert.Equal(t, "fit", store.query)
	assert.Equal(t, 5, store.limit)
	assert.Equal(t, []string{"Fitness Fiona"}, output.Names)
	assert.Equal(t, []string{"fitness"}, output.Niches)
	assert.Empty(t, output.Categories)
	assert.Equal(t, []string{"Fitness", "Home Fitness"}, output.Keywords)
}

func TestHandler_Execute_ShortQueryReturnsEmpty(t *testing.T) {
	for _, q := range []string{"", " ", "a", " é "} {
		t.Run(fmt.Sprintf("%q", q), func(t *testing.T) {
			store := &fakeInsights{}
			kw := &fakeKeywords{}

			output, err := createTestHandler(t, store, kw).Execute(context.Background(), &Input{Query: q})

			require.NoError(t, err)
			assert.Equal(t, emptyOutput(), output)
			assert.Zero(t, store.calls)
			assert.Zero(t, kw.calls)
		})
	}
}

func TestHandler_Execute_DefaultLimit(t *testing.T) {
	store := &fakeInsights{suggestions: &models.ProfileSuggestions{}}
	handler := NewHandler(&Config{Timeout: time.Second}, store, &fakeKeywords{}, nil, logger.NewTestLogger(t), nil)

	_, err := handler.Execute(context.Background(), &Input{Query: "yoga"})

	require.NoError(t, err)
	assert.Equal(t, defaultLimit, store.limit)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name         string
		store        *fakeInsights
		kw           *fakeKeywords
		input        *Input
		expectedErr  error
		expectedCode apperrors.ErrorCode
	}{
		{
			name:         "nil input",
			store:        &fakeInsights{},
			kw:           &fakeKeywords{},
			expectedErr:  ErrNilInput,
			expectedCode: apperrors.ErrCodeInputValidationFailed,
		},
		{
			name:         "profile store",
			store:        &fakeInsights{err: errors.New("no reachable servers")},
			kw:           &fakeKeywords{},
			input:        &Input{Query: "beauty"},
			expectedErr:  ErrSuggestionFailed,
			expectedCode: apperrors.ErrCodeProfileQueryFailed,
		},
		{
			name:         "index missing",
			store:        &fakeInsights{err: fmt.Errorf("%w: influencers", profiles.ErrIndexNotFound)},
			kw:           &fakeKeywords{},
			input:        &Input{Query: "beauty"},
			expectedErr:  profiles.ErrIndexNotFound,
			expectedCode: apperrors.ErrCodeProfileIndexMissing,
		},
		{
			name:         "keyword store",
			store:        &fakeInsights{suggestions: &models.ProfileSuggestions{}},
			kw:           &fakeKeywords{err: errors.New("connection refused")},
			input:        &Input{Query: "beauty"},
			expectedErr:  ErrKeywordLookupFailed,
			expectedCode: apperrors.ErrCodeKeywordLookupFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t, tt.store, tt.kw)

			output, err := handler.Execute(context.Background(), tt.input)
			assert.Nil(t, output)
			require.ErrorIs(t, err, tt.expectedErr)

			stdErr := apperrors.AsStandardError(handler.toStandardError(context.Background(), err))
			assert.Equal(t, tt.expectedCode, stdErr.Code)
		})
	}
}
