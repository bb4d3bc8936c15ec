// internal/workers/search/get-filter-options/models.go
package getfilteroptions

import "influencer-search-workers/internal/models"

type Input struct {
	// Limit caps niche, category and country buckets; 0 uses the configured limit.
	Limit int `json:"limit,omitempty"`
}

type Output struct {
	FilterOptions models.FilterOptions `json:"filterOptions"`
}
