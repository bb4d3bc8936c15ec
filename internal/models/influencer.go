// internal/models/influencer.go
package models

import (
	"math"
	"strings"
	"time"

	"influencer-search-workers/internal/search/matchscore"
)

type Influencer struct {
	ID                  string            `json:"id" bson:"_id,omitempty"`
	Name                string            `json:"name" bson:"name"`
	Email               string            `json:"email,omitempty" bson:"email,omitempty"`
	ProfileImage        string            `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	Bio                 string            `json:"bio,omitempty" bson:"bio,omitempty"`
	Platforms           []PlatformAccount `json:"platforms" bson:"platforms"`
	Keywords            []string          `json:"keywords" bson:"keywords"`
	Location            Location          `json:"location" bson:"location"`
	Niche               []string          `json:"niche,omitempty" bson:"niche,omitempty"`
	Categories          []string          `json:"categories,omitempty" bson:"categories,omitempty"`
	Languages           []string          `json:"languages,omitempty" bson:"languages,omitempty"`
	Status              string            `json:"status,omitempty" bson:"status,omitempty"`
	Rating              Rating            `json:"rating" bson:"rating"`
	TotalCollaborations int               `json:"totalCollaborations" bson:"totalCollaborations"`
	IsVerified          bool              `json:"isVerified" bson:"isVerified"`
	IsFeatured          bool              `json:"isFeatured" bson:"isFeatured"`
	CreatedAt           time.Time         `json:"createdAt" bson:"createdAt"`
}

type PlatformAccount struct {
	Platform    string  `json:"platform" bson:"platform"`
	Username    string  `json:"username" bson:"username"`
	ProfileURL  string  `json:"profileUrl,omitempty" bson:"profileUrl,omitempty"`
	Followers   int     `json:"followers" bson:"followers"`
	Engagement  float64 `json:"engagement" bson:"engagement"`
	AvgViews    int     `json:"avgViews,omitempty" bson:"avgViews,omitempty"`
	AvgLikes    int     `json:"avgLikes,omitempty" bson:"avgLikes,omitempty"`
	AvgComments int     `json:"avgComments,omitempty" bson:"avgComments,omitempty"`
	PostsCount  int     `json:"postsCount,omitempty" bson:"postsCount,omitempty"`
	Verified    bool    `json:"verified" bson:"verified"`
	Pricing     Pricing `json:"pricing" bson:"pricing"`
}

// Pricing is the per-deliverable rate card of one platform account.
type Pricing struct {
	Post  float64 `json:"post" bson:"post"`
	Story float64 `json:"story" bson:"story"`
	Video float64 `json:"video" bson:"video"`
	Reel  float64 `json:"reel" bson:"reel"`
	Short float64 `json:"short" bson:"short"`
	Live  float64 `json:"live" bson:"live"`
}

type Location struct {
	Country string `json:"country,omitempty" bson:"country,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
}

type Rating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

// TotalFollowers sums followers over every platform account.
func (i Influencer) TotalFollowers() int {
	total := 0
	for _, p := range i.Platforms {
		total += p.Followers
	}
	return total
}

// AvgEngagement is the mean engagement rate over platform accounts, rounded
// to two decimals. Zero when there are no accounts.
func (i Influencer) AvgEngagement() float64 {
	if len(i.Platforms) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range i.Platforms {
		sum += p.Engagement
	}
	return math.Round(sum/float64(len(i.Platforms))*100) / 100
}

func (i Influencer) PlatformList() []string {
	out := make([]string, 0, len(i.Platforms))
	for _, p := range i.Platforms {
		out = append(out, p.Platform)
	}
	return out
}

// TopPlatform returns the account with the most followers, or nil.
func (i Influencer) TopPlatform() *PlatformAccount {
	var top *PlatformAccount
	for idx := range i.Platforms {
		if top == nil || i.Platforms[idx].Followers > top.Followers {
			top = &i.Platforms[idx]
		}
	}
	return top
}

func (i Influencer) HasPlatform(name string) bool {
	for _, p := range i.Platforms {
		if strings.EqualFold(p.Platform, name) {
			return true
		}
	}
	return false
}

// ScoringInput projects the profile onto the match scorer's input.
func (i Influencer) ScoringInput(bonusTagIDs []string) matchscore.Input {
	return matchscore.Input{
		EngagementRate:      i.AvgEngagement(),
		FollowerCount:       i.TotalFollowers(),
		Verified:            i.IsVerified,
		RatingAverage:       i.Rating.Average,
		TotalCollaborations: i.TotalCollaborations,
		TagIDs:              i.Keywords,
		BonusTagIDs:         bonusTagIDs,
	}
}

// ScoredInfluencer is a profile with its derived totals and match score.
type ScoredInfluencer struct {
	Influencer
	TotalFollowers int     `json:"totalFollowers"`
	AvgEngagement  float64 `json:"avgEngagement"`
	TopPlatform    string  `json:"topPlatform,omitempty"`
	MatchScore     int     `json:"matchScore"`
}

// NewScoredInfluencer fills the derived fields of inf with the given score.
func NewScoredInfluencer(inf Influencer, score int) ScoredInfluencer {
	s := ScoredInfluencer{
		Influencer:     inf,
		TotalFollowers: inf.TotalFollowers(),
		AvgEngagement:  inf.AvgEngagement(),
		MatchScore:     score,
	}
	if top := inf.TopPlatform(); top != nil {
		s.TopPlatform = top.Platform
	}
	return s
}
