// internal/workers/search/query-influencers/models.go
package queryinfluencers

import "influencer-search-workers/internal/models"

type Input struct {
	Criteria *models.SearchCriteria `json:"criteria"`
}

type Output struct {
	Influencers []models.Influencer `json:"influencers"`
	Total       int                 `json:"total"`
	Store       string              `json:"store"`
}
