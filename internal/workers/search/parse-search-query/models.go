// internal/workers/search/parse-search-query/models.go
package parsesearchquery

import (
	"influencer-search-workers/internal/models"
	"influencer-search-workers/internal/search/queryparser"
)

type Input struct {
	Search  string               `json:"search"`
	Filters models.SearchFilters `json:"filters"`
}

type Output struct {
	SearchID    string                  `json:"searchId"`
	ParsedQuery queryparser.ParsedQuery `json:"parsedQuery"`
	Criteria    models.SearchCriteria   `json:"criteria"`
	Filters     models.SearchFilters    `json:"filters"`
}
