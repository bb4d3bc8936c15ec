// internal/search/profiles/elasticsearch_insights.go
package profiles

import (
	"context"
	"strings"
	"unicode"

	"influencer-search-workers/internal/models"
)

type termsAgg struct {
	Buckets []struct {
		Key      string `json:"key"`
		DocCount int    `json:"doc_count"`
	} `json:"buckets"`
}

type statsAgg struct {
	Count int      `json:"count"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Avg   *float64 `json:"avg"`
}

type suggestResponse struct {
	Hits struct {
		Hits []struct {
			Source struct {
				Name string `json:"name"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations struct {
		Niches     termsAgg `json:"niches"`
		Categories termsAgg `json:"categories"`
	} `json:"aggregations"`
}

type filterOptionsResponse struct {
	Aggregations struct {
		Platforms struct {
			Names      termsAgg `json:"names"`
			Followers  statsAgg `json:"followers"`
			Engagement statsAgg `json:"engagement"`
		} `json:"platforms"`
		Niches     termsAgg `json:"niches"`
		Categories termsAgg `json:"categories"`
		Countries  termsAgg `json:"countries"`
	} `json:"aggregations"`
}

// Suggest returns up to limit names, niches and categories containing query.
// Niche and category values come back lowercased by the index normalizer.
func (s *ElasticsearchStore) Suggest(ctx context.Context, query string, limit int) (*models.ProfileSuggestions, error) {
	var r suggestResponse
	if err := s.search(ctx, BuildSuggestQuery(query, limit), nil, &r); err != nil {
		return nil, err
	}

	out := &models.ProfileSuggestions{
		Names:      make([]string, 0, len(r.Hits.Hits)),
		Niches:     bucketKeys(r.Aggregations.Niches),
		Categories: bucketKeys(r.Aggregations.Categories),
	}
	for _, hit := range r.Hits.Hits {
		out.Names = append(out.Names, hit.Source.Name)
	}
	return out, nil
}

// BuildSuggestQuery matches names through a post_filter so that the niche
// and category aggregations still see every profile.
func BuildSuggestQuery(query string, limit int) map[string]interface{} {
	include := ".*" + escapeRegexp(strings.ToLower(query)) + ".*"
	return map[string]interface{}{
		"size":        limit,
		"_source":     []string{"name"},
		"query":       map[string]interface{}{"match_all": map[string]interface{}{}},
		"post_filter": wildcard("name", query),
		"aggs": map[string]interface{}{
			"niches":     matchingTerms("niche", include, limit),
			"categories": matchingTerms("categories", include, limit),
		},
	}
}

// FilterOptions counts facet values and summarises follower and engagement
// figures over all platform accounts.
func (s *ElasticsearchStore) FilterOptions(ctx context.Context, limit int) (*models.FilterOptions, error) {
	var r filterOptionsResponse
	if err := s.search(ctx, BuildFilterOptionsQuery(limit), nil, &r); err != nil {
		return nil, err
	}

	aggs := r.Aggregations
	out := &models.FilterOptions{
		Platforms:       facetCounts(aggs.Platforms.Names),
		Niches:          facetCounts(aggs.Niches),
		Categories:      facetCounts(aggs.Categories),
		Countries:       facetCounts(aggs.Countries),
		FollowerRange:   models.DefaultFollowerRange,
		EngagementRange: models.DefaultEngagementRange,
	}
	if f := aggs.Platforms.Followers; f.Count > 0 {
		out.FollowerRange = models.FollowerRange{
			MinFollowers: int(deref(f.Min)),
			MaxFollowers: int(deref(f.Max)),
			AvgFollowers: deref(f.Avg),
		}
	}
	if e := aggs.Platforms.Engagement; e.Count > 0 {
		out.EngagementRange = models.EngagementRange{
			MinEngagement: deref(e.Min),
			MaxEngagement: deref(e.Max),
			AvgEngagement: deref(e.Avg),
		}
	}
	return out, nil
}

func BuildFilterOptionsQuery(limit int) map[string]interface{} {
	countries := topTerms("location.country", limit)
	countries["terms"].(map[string]interface{})["exclude"] = []string{""}

	return map[string]interface{}{
		"size": 0,
		"aggs": map[string]interface{}{
			"platforms": map[string]interface{}{
				"nested": map[string]interface{}{"path": "platforms"},
				"aggs": map[string]interface{}{
					"names":      topTerms("platforms.platform", platformBuckets),
					"followers":  map[string]interface{}{"stats": map[string]interface{}{"field": "platforms.followers"}},
					"engagement": map[string]interface{}{"stats": map[string]interface{}{"field": "platforms.engagement"}},
				},
			},
			"niches":     topTerms("niche", limit),
			"categories": topTerms("categories", limit),
			"countries":  countries,
		},
	}
}

func topTerms(field string, size int) map[string]interface{} {
	return map[string]interface{}{
		"terms": map[string]interface{}{"field": field, "size": size},
	}
}

func matchingTerms(field, include string, size int) map[string]interface{} {
	return map[string]interface{}{
		"terms": map[string]interface{}{
			"field":   field,
			"size":    size,
			"include": include,
			"order":   map[string]string{"_key": "asc"},
		},
	}
}

// escapeRegexp quotes every non-alphanumeric rune for the Lucene regexp
// syntax used by terms include patterns.
func escapeRegexp(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func bucketKeys(agg termsAgg) []string {
	out := make([]string, 0, len(agg.Buckets))
	for _, b := range agg.Buckets {
		out = append(out, b.Key)
	}
	return out
}

func facetCounts(agg termsAgg) []models.FacetCount {
	out := make([]models.FacetCount, 0, len(agg.Buckets))
	for _, b := range agg.Buckets {
		out = append(out, models.FacetCount{Value: b.Key, Count: b.DocCount})
	}
	return out
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
