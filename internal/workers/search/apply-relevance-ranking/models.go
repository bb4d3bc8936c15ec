// internal/workers/search/apply-relevance-ranking/models.go
package applyrelevanceranking

import "influencer-search-workers/internal/models"

type Input struct {
	ScoredInfluencers []models.ScoredInfluencer `json:"scoredInfluencers"`
	Filters           models.SearchFilters      `json:"filters"`
}

type Output struct {
	Count     int                       `json:"count"`
	Total     int                       `json:"total"`
	SortField string                    `json:"sortField"`
	Data      []models.ScoredInfluencer `json:"data"`
}
