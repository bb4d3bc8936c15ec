// internal/models/search.go
package models

// SearchFilters are the explicit filters sent with a search request. They
// take precedence over anything inferred from the free text.
type SearchFilters struct {
	Platforms         []string          `json:"platforms,omitempty"`
	Niche             string            `json:"niche,omitempty"`
	Location          string            `json:"location,omitempty"`
	Keywords          string            `json:"keywords,omitempty"`
	MinFollowers      *int              `json:"minFollowers,omitempty"`
	MaxFollowers      *int              `json:"maxFollowers,omitempty"`
	MinEngagement     *float64          `json:"minEngagement,omitempty"`
	MaxEngagement     *float64          `json:"maxEngagement,omitempty"`
	CampaignObjective CampaignObjective `json:"campaignObjective,omitempty"`
	SortBy            SortField         `json:"sortBy,omitempty"`
	SortOrder         SortOrder         `json:"sortOrder,omitempty"`
	Limit             int               `json:"limit,omitempty"`
	Skip              int               `json:"skip,omitempty"`
}

// SearchCriteria is the effective filter handed to a profile store.
// Every populated field becomes one conjunctive condition.
type SearchCriteria struct {
	SearchWords    []string `json:"searchWords,omitempty"`
	WordKeywordIDs []string `json:"wordKeywordIds,omitempty"`

	Platforms []string `json:"platforms,omitempty"`

	Niche           string   `json:"niche,omitempty"`
	NicheKeywordIDs []string `json:"nicheKeywordIds,omitempty"`

	Country string `json:"country,omitempty"`

	KeywordTerms     []string `json:"keywordTerms,omitempty"`
	FilterKeywordIDs []string `json:"filterKeywordIds,omitempty"`

	MinFollowers  *int     `json:"minFollowers,omitempty"`
	MaxFollowers  *int     `json:"maxFollowers,omitempty"`
	MinEngagement *float64 `json:"minEngagement,omitempty"`
	MaxEngagement *float64 `json:"maxEngagement,omitempty"`

	// PlatformFloor requires a single account meeting both minimums.
	PlatformFloor *PlatformFloor `json:"platformFloor,omitempty"`
	MaxPostPrice  *float64       `json:"maxPostPrice,omitempty"`

	Limit int `json:"limit,omitempty"`
}

type PlatformFloor struct {
	MinFollowers  int     `json:"minFollowers"`
	MinEngagement float64 `json:"minEngagement"`
}

// ObjectiveFloor returns the account minimums a campaign objective demands
// from recommended profiles.
func ObjectiveFloor(o CampaignObjective) PlatformFloor {
	switch o {
	case ObjectiveAwareness:
		return PlatformFloor{MinFollowers: 50_000, MinEngagement: 2}
	case ObjectiveSales:
		return PlatformFloor{MinEngagement: 4}
	default:
		return PlatformFloor{MinFollowers: 10_000, MinEngagement: 3}
	}
}

// MatchedKeywordIDs is the union of every resolved keyword ID in first-seen order.
func (c SearchCriteria) MatchedKeywordIDs() []string {
	return UnionIDs(c.WordKeywordIDs, c.NicheKeywordIDs, c.FilterKeywordIDs)
}

// IsEmpty reports whether the criteria match every profile.
func (c SearchCriteria) IsEmpty() bool {
	return len(c.SearchWords) == 0 && len(c.Platforms) == 0 && c.Niche == "" &&
		c.Country == "" && len(c.KeywordTerms) == 0 &&
		c.MinFollowers == nil && c.MaxFollowers == nil &&
		c.MinEngagement == nil && c.MaxEngagement == nil &&
		c.PlatformFloor == nil && c.MaxPostPrice == nil
}

// UnionIDs merges ID lists, dropping duplicates and empty values.
func UnionIDs(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, id := range list {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
