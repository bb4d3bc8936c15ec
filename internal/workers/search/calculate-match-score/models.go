// internal/workers/search/calculate-match-score/models.go
package calculatematchscore

import "influencer-search-workers/internal/models"

type Input struct {
	Influencers       []models.Influencer `json:"influencers"`
	MatchedKeywordIDs []string            `json:"matchedKeywordIds"`
}

type Output struct {
	ScoredInfluencers []models.ScoredInfluencer `json:"scoredInfluencers"`
}
