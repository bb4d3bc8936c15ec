// internal/workers/search/get-recommendations/handler_test.go
package getrecommendations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "influencer-search-workers/internal/common/errors"
	"influencer-search-workers/internal/common/logger"
	"influencer-search-workers/internal/models"
	"influencer-search-workers/internal/search/matchscore"
)

type fakeKeywords struct {
	ids   []string
	err   error
	terms []string
}

func (f *fakeKeywords) Match(_ context.Context, terms []string) ([]string, error) {
	f.terms = terms
	return f.ids, f.err
}

type fakeProfiles struct {
	results  []models.Influencer
	err      error
	criteria *models.SearchCriteria
}

func (f *fakeProfiles) Find(_ context.Context, c *models.SearchCriteria) ([]models.Influencer, error) {
	f.criteria = c
	return f.results, f.err
}

func (f *fakeProfiles) Kind() models.ProfileStoreKind { return models.ProfileStoreMongo }

func createTestHandler(t *testing.T, kw *fakeKeywords, store *fakeProfiles) *Handler {
	scorer, err := matchscore.NewBatchScorer(2, 0)
	require.NoError(t, err)
	t.Cleanup(scorer.Release)
	return NewHandler(&Config{Timeout: 5 * time.Second, DefaultLimit: 10}, kw, store, scorer, nil, logger.NewTestLogger(t), nil)
}

func profile(id string, followers int, engagement float64) models.Influencer {
	return models.Influencer{
		ID:       id,
		Name:     "Influencer " + id,
		Keywords: []string{"kw-1"},
		Platforms: []models.PlatformAccount{
			{Platform: "instagram", Followers: followers, Engagement: engagement},
		},
	}
}

func TestHandler_Execute_RanksByScore(t *testing.T) {
	store := &fakeProfiles{results: []models.Influencer{
		profile("small", 5000, 1),
		profile("big", 2_000_000, 6),
		profile("mid", 60000, 3),
	}}

	output, err := createTestHandler(t, &fakeKeywords{}, store).Execute(context.Background(), &Input{})

	require.NoError(t, err)
	require.Equal(t, 3, output.Count)
	assert.Equal(t, "big", output.Data[0].ID)
	assert.Equal(t, "mid", output.Data[1].ID)
	assert.Equal(t, "small", output.Data[2].ID)
	for _, rec := range output.Data {
		inf := rec.Influencer
		assert.Equal(t, matchscore.Score(inf.ScoringInput(nil)), rec.RecommendationScore)
		assert.Equal(t, inf.TotalFollowers(), rec.TotalFollowers)
	}
}

func TestHandler_Execute_Criteria(t *testing.T) {
	budget := 250.7

	tests := []struct {
		name          string
		input         Input
		expectedFloor models.PlatformFloor
		expectedLimit int
		expectedPrice *float64
	}{
		{
			name:          "awareness with budget",
			input:         Input{CampaignObjective: models.ObjectiveAwareness, Budget: &budget, Limit: 3},
			expectedFloor: models.PlatformFloor{MinFollowers: 50_000, MinEngagement: 2},
			expectedLimit: 3,
			expectedPrice: floatPtr(250),
		},
		{
			name:          "sales",
			input:         Input{CampaignObjective: models.ObjectiveSales},
			expectedFloor: models.PlatformFloor{MinEngagement: 4},
			expectedLimit: 10,
		},
		{
			name:          "no objective and zero budget",
			input:         Input{Budget: floatPtr(0)},
			expectedFloor: models.PlatformFloor{MinFollowers: 10_000, MinEngagement: 3},
			expectedLimit: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeProfiles{}
			_, err := createTestHandler(t, &fakeKeywords{}, store).Execute(context.Background(), &tt.input)

			require.NoError(t, err)
			require.NotNil(t, store.criteria.PlatformFloor)
			assert.Equal(t, tt.expectedFloor, *store.criteria.PlatformFloor)
			assert.Equal(t, tt.expectedLimit, store.criteria.Limit)
			assert.Equal(t, tt.expectedPrice, store.criteria.MaxPostPrice)
		})
	}
}

func TestHandler_Execute_NicheAndPlatforms(t *testing.T) {
	kw := &fakeKeywords{ids: []string{"kw-fitness"}}
	store := &fakeProfiles{}

	_, err := createTestHandler(t, kw, store).Execute(context.Background(), &Input{
		Niche:     " fitness ",
		Platforms: []string{"Instagram", " ", "tiktok"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"fitness"}, kw.terms)
	assert.Equal(t, "fitness", store.criteria.Niche)
	assert.Equal(t, []string{"kw-fitness"}, store.criteria.NicheKeywordIDs)
	assert.Equal(t, []string{"Instagram", "tiktok"}, store.criteria.Platforms)
}

func TestHandler_Execute_NoNicheSkipsKeywordLookup(t *testing.T) {
	kw := &fakeKeywords{err: errors.New("should not be called")}

	_, err := createTestHandler(t, kw, &fakeProfiles{}).Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Nil(t, kw.terms)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name         string
		kw           *fakeKeywords
		store        *fakeProfiles
		input        *Input
		expectedErr  error
		expectedCode apperrors.ErrorCode
	}{
		{
			name:         "keyword lookup",
			kw:           &fakeKeywords{err: errors.New("connection refused")},
			store:        &fakeProfiles{},
			input:        &Input{Niche: "beauty"},
			expectedErr:  ErrKeywordLookupFailed,
			expectedCode: apperrors.ErrCodeKeywordLookupFailed,
		},
		{
			name:         "profile store",
			kw:           &fakeKeywords{},
			store:        &fakeProfiles{err: errors.New("no reachable servers")},
			input:        &Input{},
			expectedErr:  ErrProfileQueryFailed,
			expectedCode: apperrors.ErrCodeProfileQueryFailed,
		},
		{
			name:         "nil input",
			kw:           &fakeKeywords{},
			store:        &fakeProfiles{},
			input:        nil,
			expectedErr:  ErrNilInput,
			expectedCode: apperrors.ErrCodeInputValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t, tt.kw, tt.store)

			output, err := handler.Execute(context.Background(), tt.input)
			assert.Nil(t, output)
			require.ErrorIs(t, err, tt.expectedErr)

			stdErr := apperrors.AsStandardError(handler.toStandardError(context.Background(), err))
			assert.Equal(t, tt.expectedCode, stdErr.Code)
		})
	}
}

func floatPtr(v float64) *float64 { return &v }
