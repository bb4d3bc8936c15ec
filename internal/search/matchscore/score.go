// Package matchscore computes the 0-100 relevance score used to order
// influencer search results.
package matchscore

import "math"

// Input carries the scoring fields of one profile. Callers default missing
// values to zero before scoring.
type Input struct {
	EngagementRate      float64  `json:"engagementRate"`
	FollowerCount       int      `json:"followerCount"`
	Verified            bool     `json:"verified"`
	RatingAverage       float64  `json:"ratingAverage"`
	TotalCollaborations int      `json:"totalCollaborations"`
	TagIDs              []string `json:"tagIds"`
	BonusTagIDs         []string `json:"bonusTagIds"`
}

const (
	// MinScore and MaxScore bound every result of Score.
	MinScore = 0
	MaxScore = 100

	engagementWeight = 4.0
	engagementCap    = 40.0

	verifiedBonus = 10.0
	ratingWeight  = 3.0

	collaborationWeight = 3.0
	collaborationCap    = 15.0

	tagMatchBonus = 5.0
)

// followerTiers are checked top down; the last entry is the floor.
var followerTiers = []struct {
	min    int
	points float64
}{
	{100_000, 20},
	{50_000, 15},
	{10_000, 10},
	{0, 5},
}

// Score returns the match score for in, rounded and clamped to [0, 100].
func Score(in Input) int {
	sum := EngagementPoints(in.EngagementRate) +
		FollowerPoints(in.FollowerCount) +
		RatingPoints(in.RatingAverage) +
		CollaborationPoints(in.TotalCollaborations) +
		TagPoints(in.TagIDs, in.BonusTagIDs)
	if in.Verified {
		sum += verifiedBonus
	}

	score := math.Round(sum)
	switch {
	case math.IsNaN(score), score < MinScore:
		return MinScore
	case score > MaxScore:
		return MaxScore
	}
	return int(score)
}

// EngagementPoints is linear in the rate up to a 40 point cap.
func EngagementPoints(rate float64) float64 {
	return math.Min(finite(rate)*engagementWeight, engagementCap)
}

// FollowerPoints awards the points of the highest tier followers reaches.
func FollowerPoints(followers int) float64 {
	for _, tier := range followerTiers {
		if followers >= tier.min {
			return tier.points
		}
	}
	return followerTiers[len(followerTiers)-1].points
}

// RatingPoints scales the average rating; a 5 star average earns 15.
func RatingPoints(average float64) float64 {
	return finite(average) * ratingWeight
}

// CollaborationPoints is linear in past collaborations up to a 15 point cap.
func CollaborationPoints(total int) float64 {
	return math.Min(float64(total)*collaborationWeight, collaborationCap)
}

// TagPoints awards a bonus per distinct tag present in both sets. Uncapped;
// the final clamp bounds the score.
func TagPoints(tags, bonus []string) float64 {
	if len(tags) == 0 || len(bonus) == 0 {
		return 0
	}
	wanted := make(map[string]struct{}, len(bonus))
	for _, id := range bonus {
		wanted[id] = struct{}{}
	}
	matched := 0
	for _, id := range tags {
		if _, ok := wanted[id]; ok {
			matched++
			delete(wanted, id)
		}
	}
	return float64(matched) * tagMatchBonus
}

func finite(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
