// internal/workers/search/apply-relevance-ranking/handler_test.go
package applyrelevanceranking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influencer-search-workers/internal/common/logger"
	"influencer-search-workers/internal/models"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, nil, logger.NewTestLogger(t), nil)
}

func scored(id, name string, followers int, engagement float64, score int) models.ScoredInfluencer {
	return models.ScoredInfluencer{
		Influencer:     models.Influencer{ID: id, Name: name},
		TotalFollowers: followers,
		AvgEngagement:  engagement,
		MatchScore:     score,
	}
}

func ids(data []models.ScoredInfluencer) []string {
	out := make([]string, len(data))
	for i, d := range data {
		out[i] = d.ID
	}
	return out
}

func testData() []models.ScoredInfluencer {
	return []models.ScoredInfluencer{
		scored("a", "alice", 5000, 6.5, 70),
		scored("b", "Bob", 90000, 2.1, 55),
		scored("c", "carol", 20000, 4.0, 90),
		scored("d", "dave", 90000, 3.3, 40),
	}
}

func TestHandler_Execute_Sorting(t *testing.T) {
	tests := []struct {
		name          string
		filters       models.SearchFilters
		expectedField string
		expectedIDs   []string
	}{
		{
			name:          "default ranks by match score desc",
			filters:       models.SearchFilters{},
			expectedField: "matchScore",
			expectedIDs:   []string{"c", "a", "b", "d"},
		},
		{
			name:          "followers sort without objective ranks by match score",
			filters:       models.SearchFilters{SortBy: models.SortFollowers, SortOrder: models.SortAsc},
			expectedField: "matchScore",
			expectedIDs:   []string{"d", "b", "a", "c"},
		},
		{
			name:          "engagement sort kept with objective both",
			filters:       models.SearchFilters{SortBy: models.SortEngagement, CampaignObjective: models.ObjectiveBoth},
			expectedField: "avgEngagement",
			expectedIDs:   []string{"a", "c", "d", "b"},
		},
		{
			name:          "awareness overrides sortBy and is stable on ties",
			filters:       models.SearchFilters{SortBy: models.SortName, CampaignObjective: models.ObjectiveAwareness},
			expectedField: "totalFollowers",
			expectedIDs:   []string{"b", "d", "c", "a"},
		},
		{
			name:          "sales ranks by engagement",
			filters:       models.SearchFilters{CampaignObjective: models.ObjectiveSales, SortOrder: models.SortDesc},
			expectedField: "avgEngagement",
			expectedIDs:   []string{"a", "c", "d", "b"},
		},
		{
			name:          "name ascending is case-insensitive",
			filters:       models.SearchFilters{SortBy: models.SortName, SortOrder: models.SortAsc},
			expectedField: "name",
			expectedIDs:   []string{"a", "b", "c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := createTestHandler(t).Execute(context.Background(), &Input{
				ScoredInfluencers: testData(),
				Filters:           tt.filters,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedField, output.SortField)
			assert.Equal(t, tt.expectedIDs, ids(output.Data))
			assert.Equal(t, 4, output.Total)
			assert.Equal(t, 4, output.Count)
		})
	}
}

func TestHandler_Execute_Pagination(t *testing.T) {
	tests := []struct {
		name        string
		skip, limit int
		expectedIDs []string
	}{
		{name: "first page", skip: 0, limit: 2, expectedIDs: []string{"c", "a"}},
		{name: "second page", skip: 2, limit: 2, expectedIDs: []string{"b", "d"}},
		{name: "partial page", skip: 3, limit: 5, expectedIDs: []string{"d"}},
		{name: "past the end", skip: 10, limit: 5, expectedIDs: []string{}},
		{name: "no limit ignores skip", skip: 2, limit: 0, expectedIDs: []string{"c", "a", "b", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := createTestHandler(t).Execute(context.Background(), &Input{
				ScoredInfluencers: testData(),
				Filters:           models.SearchFilters{Skip: tt.skip, Limit: tt.limit},
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedIDs, ids(output.Data))
			assert.Equal(t, len(tt.expectedIDs), output.Count)
			assert.Equal(t, 4, output.Total)
		})
	}
}

func TestHandler_Execute_Dedupe(t *testing.T) {
	data := append(testData(), scored("a", "alice again", 1, 1, 99))

	output, err := createTestHandler(t).Execute(context.Background(), &Input{ScoredInfluencers: data})

	require.NoError(t, err)
	assert.Equal(t, 4, output.Total)
	assert.Equal(t, "alice", output.Data[1].Name)
}

func TestHandler_Execute_CreatedAt(t *testing.T) {
	older := scored("old", "old", 0, 0, 0)
	older.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := scored("new", "new", 0, 0, 0)
	newer.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	output, err := createTestHandler(t).Execute(context.Background(), &Input{
		ScoredInfluencers: []models.ScoredInfluencer{older, newer},
		Filters:           models.SearchFilters{SortBy: models.SortCreatedAt},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, ids(output.Data))
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := createTestHandler(t)

	_, err := h.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilInput)

	_, err = h.Execute(context.Background(), &Input{Filters: models.SearchFilters{SortBy: "popularity"}})
	assert.ErrorIs(t, err, ErrRankingFailed)

	_, err = h.Execute(context.Background(), &Input{Filters: models.SearchFilters{CampaignObjective: "reach"}})
	assert.ErrorIs(t, err, ErrRankingFailed)
}

func TestHandler_Execute_Empty(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 0, output.Total)
	assert.NotNil(t, output.Data)
}
