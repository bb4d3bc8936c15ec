// internal/workers/search/get-recommendations/models.go
package getrecommendations

import "influencer-search-workers/internal/models"

type Input struct {
	CampaignObjective models.CampaignObjective `json:"campaignObjective"`
	Budget            *float64                 `json:"budget"`
	Platforms         []string                 `json:"platforms"`
	Niche             string                   `json:"niche"`
	Limit             int                      `json:"limit"`
}

// Recommendation is a profile ranked for a campaign.
type Recommendation struct {
	models.Influencer
	TotalFollowers      int     `json:"totalFollowers"`
	AvgEngagement       float64 `json:"avgEngagement"`
	RecommendationScore int     `json:"recommendationScore"`
}

type Output struct {
	Count int              `json:"count"`
	Data  []Recommendation `json:"data"`
}
