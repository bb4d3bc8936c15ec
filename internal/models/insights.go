// internal/models/insights.go
package models

// ProfileSuggestions are catalogue values containing a typed prefix.
type ProfileSuggestions struct {
	Names      []string `json:"names"`
	Niches     []string `json:"niches"`
	Categories []string `json:"categories"`
}

// FacetCount is one distinct value and the number of documents holding it.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type FollowerRange struct {
	MinFollowers int     `json:"minFollowers" bson:"minFollowers"`
	MaxFollowers int     `json:"maxFollowers" bson:"maxFollowers"`
	AvgFollowers float64 `json:"avgFollowers" bson:"avgFollowers"`
}

type EngagementRange struct {
	MinEngagement float64 `json:"minEngagement" bson:"minEngagement"`
	MaxEngagement float64 `json:"maxEngagement" bson:"maxEngagement"`
	AvgEngagement float64 `json:"avgEngagement" bson:"avgEngagement"`
}

// Ranges reported when the catalogue has no platform accounts.
var (
	DefaultFollowerRange   = FollowerRange{MaxFollowers: 500_000}
	DefaultEngagementRange = EngagementRange{MaxEngagement: 100}
)

// FilterOptions describes the values a search UI can offer as filters.
// Platforms are counted per account, the other facets per profile.
type FilterOptions struct {
	Platforms       []FacetCount    `json:"platforms"`
	Niches          []FacetCount    `json:"niches"`
	Categories      []FacetCount    `json:"categories"`
	Countries       []FacetCount    `json:"countries"`
	FollowerRange   FollowerRange   `json:"followerRange"`
	EngagementRange EngagementRange `json:"engagementRange"`
}
