// internal/models/influencer_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInfluencer() Influencer {
	return Influencer{
		ID:   "inf-1",
		Name: "Ava Fit",
		Platforms: []PlatformAccount{
			{Platform: "instagram", Followers: 120_000, Engagement: 3.456},
			{Platform: "youtube", Followers: 30_000, Engagement: 5.1},
			{Platform: "tiktok", Followers: 250_000, Engagement: 1.2},
		},
		Keywords:            []string{"k-fitness", "k-health"},
		Rating:              Rating{Average: 4.2, Count: 12},
		TotalCollaborations: 7,
		IsVerified:          true,
	}
}

func TestInfluencer_Derived(t *testing.T) {
	inf := sampleInfluencer()

	assert.Equal(t, 400_000, inf.TotalFollowers())
	assert.Equal(t, 3.25, inf.AvgEngagement())
	assert.Equal(t, []string{"instagram", "youtube", "tiktok"}, inf.PlatformList())
	assert.True(t, inf.HasPlatform("YouTube"))
	assert.False(t, inf.HasPlatform("twitch"))

	top := inf.TopPlatform()
	require.NotNil(t, top)
	assert.Equal(t, "tiktok", top.Platform)
}

func TestInfluencer_NoPlatforms(t *testing.T) {
	var inf Influencer
	assert.Zero(t, inf.TotalFollowers())
	assert.Zero(t, inf.AvgEngagement())
	assert.Nil(t, inf.TopPlatform())
	assert.Empty(t, inf.PlatformList())
}

func TestInfluencer_ScoringInput(t *testing.T) {
	in := sampleInfluencer().ScoringInput([]string{"k-fitness"})

	assert.Equal(t, 3.25, in.EngagementRate)
	assert.Equal(t, 400_000, in.FollowerCount)
	assert.True(t, in.Verified)
	assert.Equal(t, 4.2, in.RatingAverage)
	assert.Equal(t, 7, in.TotalCollaborations)
	assert.Equal(t, []string{"k-fitness", "k-health"}, in.TagIDs)
	assert.Equal(t, []string{"k-fitness"}, in.BonusTagIDs)
}

func TestNewScoredInfluencer(t *testing.T) {
	s := NewScoredInfluencer(sampleInfluencer(), 88)

	assert.Equal(t, 400_000, s.TotalFollowers)
	assert.Equal(t, 3.25, s.AvgEngagement)
	assert.Equal(t, "tiktok", s.TopPlatform)
	assert.Equal(t, 88, s.MatchScore)
	assert.Equal(t, "inf-1", s.ID)
}

func TestSearchCriteria_MatchedKeywordIDs(t *testing.T) {
	c := SearchCriteria{
		WordKeywordIDs:   []string{"a", "b"},
		NicheKeywordIDs:  []string{"b", "c", ""},
		FilterKeywordIDs: []string{"a", "d"},
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, c.MatchedKeywordIDs())
	assert.Equal(t, []string{}, SearchCriteria{}.MatchedKeywordIDs())
}

func TestSearchCriteria_IsEmpty(t *testing.T) {
	assert.True(t, SearchCriteria{Limit: 50}.IsEmpty())
	assert.False(t, SearchCriteria{Country: "Canada"}.IsEmpty())
}

func TestObjectiveFloor(t *testing.T) {
	assert.Equal(t, PlatformFloor{MinFollowers: 50_000, MinEngagement: 2}, ObjectiveFloor(ObjectiveAwareness))
	assert.Equal(t, PlatformFloor{MinEngagement: 4}, ObjectiveFloor(ObjectiveSales))
	assert.Equal(t, PlatformFloor{MinFollowers: 10_000, MinEngagement: 3}, ObjectiveFloor(""))
	assert.Equal(t, PlatformFloor{MinFollowers: 10_000, MinEngagement: 3}, ObjectiveFloor(ObjectiveBoth))
}
