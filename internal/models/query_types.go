// internal/models/query_types.go
package models

// SortField is a sort key accepted from API requests.
type SortField string

const (
	SortFollowers           SortField = "followers"
	SortEngagement          SortField = "engagement"
	SortRating              SortField = "rating"
	SortTotalCollaborations SortField = "totalCollaborations"
	SortCreatedAt           SortField = "createdAt"
	SortName                SortField = "name"
	SortMatchScore          SortField = "matchScore"
)

// SortFieldMap maps request sort keys to the attribute actually compared.
var SortFieldMap = map[SortField]string{
	SortFollowers:           "totalFollowers",
	SortEngagement:          "avgEngagement",
	SortRating:              "rating.average",
	SortTotalCollaborations: "totalCollaborations",
	SortCreatedAt:           "createdAt",
	SortName:                "name",
	SortMatchScore:          "matchScore",
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// CampaignObjective steers ranking and recommendation thresholds.
type CampaignObjective string

const (
	ObjectiveAwareness CampaignObjective = "awareness"
	ObjectiveSales     CampaignObjective = "sales"
	ObjectiveBoth      CampaignObjective = "both"
)

var validObjectives = map[CampaignObjective]bool{
	ObjectiveAwareness: true,
	ObjectiveSales:     true,
	ObjectiveBoth:      true,
	"":                 true,
}

func (o CampaignObjective) Valid() bool {
	return validObjectives[o]
}

// ProfileStoreKind selects the backend holding influencer documents.
type ProfileStoreKind string

const (
	ProfileStoreElasticsearch ProfileStoreKind = "elasticsearch"
	ProfileStoreMongo         ProfileStoreKind = "mongodb"
)
