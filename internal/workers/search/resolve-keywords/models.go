// internal/workers/search/resolve-keywords/models.go
package resolvekeywords

import "influencer-search-workers/internal/models"

type Input struct {
	Criteria *models.SearchCriteria `json:"criteria"`
}

type Output struct {
	Criteria          models.SearchCriteria `json:"criteria"`
	WordKeywordIDs    []string              `json:"wordKeywordIds"`
	NicheKeywordIDs   []string              `json:"nicheKeywordIds"`
	FilterKeywordIDs  []string              `json:"filterKeywordIds"`
	MatchedKeywordIDs []string              `json:"matchedKeywordIds"`
}
