// Package profiles queries influencer documents from the configured profile
// store. Both backends translate models.SearchCriteria the same way: every
// populated field is one conjunctive condition, text conditions are
// case-insensitive substring matches.
package profiles

import (
	"context"
	"errors"

	"influencer-search-workers/internal/models"
)

var (
	ErrIndexNotFound = errors.New("profile index not found")
	ErrNilCriteria   = errors.New("search criteria is nil")
)

// Store finds influencer profiles matching criteria.
type Store interface {
	Find(ctx context.Context, c *models.SearchCriteria) ([]models.Influencer, error)
	Kind() models.ProfileStoreKind
}

// Insights answers catalogue-wide questions used to build search forms.
// Both stores implement it.
type Insights interface {
	Suggest(ctx context.Context, query string, limit int) (*models.ProfileSuggestions, error)
	FilterOptions(ctx context.Context, limit int) (*models.FilterOptions, error)
	Kind() models.ProfileStoreKind
}

// Platform accounts are few per profile, so every platform value is listed.
const platformBuckets = 100

// resultLimit applies the store-wide cap to the criteria limit.
func resultLimit(c *models.SearchCriteria, maxResults int) int {
	limit := c.Limit
	if limit <= 0 || (maxResults > 0 && limit > maxResults) {
		limit = maxResults
	}
	return limit
}

// followerBounds drops non-positive bounds, which place no restriction.
func followerBounds(c *models.SearchCriteria) (min, max *int) {
	if c.MinFollowers != nil && *c.MinFollowers > 0 {
		min = c.MinFollowers
	}
	if c.MaxFollowers != nil && *c.MaxFollowers > 0 {
		max = c.MaxFollowers
	}
	return min, max
}

// engagementBounds keeps a zero minimum but drops a zero maximum.
func engagementBounds(c *models.SearchCriteria) (min, max *float64) {
	if c.MinEngagement != nil && *c.MinEngagement >= 0 {
		min = c.MinEngagement
	}
	if c.MaxEngagement != nil && *c.MaxEngagement > 0 {
		max = c.MaxEngagement
	}
	return min, max
}
