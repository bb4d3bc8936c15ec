// internal/search/profiles/elasticsearch.go
package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"influencer-search-workers/internal/models"
)

// IndexMapping is the mapping the influencer index is created with. Text
// fields are lowercase-normalized keywords so that wildcard queries give
// substring matches; platform accounts are nested so range conditions hold
// on a single account.
const IndexMapping = `{
  "settings": {
    "analysis": {
      "normalizer": {
        "lowercase": { "type": "custom", "filter": ["lowercase"] }
      }
    }
  },
  "mappings": {
    "properties": {
      "name":       { "type": "keyword", "normalizer": "lowercase" },
      "bio":        { "type": "keyword", "normalizer": "lowercase", "ignore_above": 4096 },
      "niche":      { "type": "keyword", "normalizer": "lowercase" },
      "categories": { "type": "keyword", "normalizer": "lowercase" },
      "keywords":   { "type": "keyword" },
      "status":     { "type": "keyword" },
      "location": {
        "properties": {
          "country": { "type": "keyword", "normalizer": "lowercase" },
          "city":    { "type": "keyword", "normalizer": "lowercase" },
          "state":   { "type": "keyword", "normalizer": "lowercase" }
        }
      },
      "platforms": {
        "type": "nested",
        "properties": {
          "platform":   { "type": "keyword", "normalizer": "lowercase" },
          "username":   { "type": "keyword", "normalizer": "lowercase" },
          "followers":  { "type": "long" },
          "engagement": { "type": "float" },
          "pricing": {
            "properties": {
              "post": { "type": "float" }
            }
          }
        }
      },
      "rating": {
        "properties": {
          "average": { "type": "float" },
          "count":   { "type": "integer" }
        }
      },
      "totalCollaborations": { "type": "integer" },
      "isVerified":          { "type": "boolean" },
      "createdAt":           { "type": "date" }
    }
  }
}`

// ElasticsearchStore reads influencer documents from a search index.
type ElasticsearchStore struct {
	client     *elasticsearch.Client
	index      string
	maxResults int
}

func NewElasticsearchStore(client *elasticsearch.Client, index string, maxResults int) *ElasticsearchStore {
	return &ElasticsearchStore{client: client, index: index, maxResults: maxResults}
}

func (s *ElasticsearchStore) Kind() models.ProfileStoreKind { return models.ProfileStoreElasticsearch }

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string            `json:"_id"`
			Source models.Influencer `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchStore) Find(ctx context.Context, c *models.SearchCriteria) ([]models.Influencer, error) {
	if c == nil {
		return nil, ErrNilCriteria
	}

	var size *int
	if n := resultLimit(c, s.maxResults); n > 0 {
		size = &n
	}

	var r searchResponse
	if err := s.search(ctx, BuildQuery(c), size, &r); err != nil {
		return nil, err
	}

	out := make([]models.Influencer, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		inf := hit.Source
		if inf.ID == "" {
			inf.ID = hit.ID
		}
		out = append(out, inf)
	}
	return out, nil
}

// search runs one _search request against the index and decodes the
// response into out.
func (s *ElasticsearchStore) search(ctx context.Context, query map[string]interface{}, size *int, out interface{}) error {
	body, err := json.Marshal(query)
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("search %s: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrIndexNotFound, s.index)
	}
	if res.IsError() {
		return fmt.Errorf("search %s failed: %s", s.index, res.String())
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode search response: %w", err)
	}
	return nil
}

// BuildQuery translates criteria into a bool query body. Empty criteria
// give match_all.
func BuildQuery(c *models.SearchCriteria) map[string]interface{} {
	filter := []interface{}{}

	if len(c.SearchWords) > 0 {
		should := []interface{}{}
		for _, w := range c.SearchWords {
			should = append(should,
				wildcard("name", w),
				nested(wildcard("platforms.username", w)),
				wildcard("bio", w),
				wildcard("niche", w),
				wildcard("categories", w),
			)
		}
		if len(c.WordKeywordIDs) > 0 {
			should = append(should, terms("keywords", c.WordKeywordIDs))
		}
		filter = append(filter, anyOf(should))
	}

	if len(c.Platforms) > 0 {
		names := make([]string, len(c.Platforms))
		for i, p := range c.Platforms {
			names[i] = strings.ToLower(strings.TrimSpace(p))
		}
		filter = append(filter, nested(terms("platforms.platform", names)))
	}

	if c.Niche != "" {
		should := []interface{}{wildcard("niche", c.Niche), wildcard("categories", c.Niche)}
		if len(c.NicheKeywordIDs) > 0 {
			should = append(should, terms("keywords", c.NicheKeywordIDs))
		}
		filter = append(filter, anyOf(should))
	}

	if c.Country != "" {
		filter = append(filter, anyOf([]interface{}{
			wildcard("location.country", c.Country),
			wildcard("location.city", c.Country),
		}))
	}

	if len(c.KeywordTerms) > 0 {
		should := []interface{}{}
		for _, k := range c.KeywordTerms {
			should = append(should, anyOf([]interface{}{
				wildcard("bio", k),
				wildcard("niche", k),
				wildcard("categories", k),
				wildcard("name", k),
			}))
		}
		if len(c.FilterKeywordIDs) > 0 {
			should = append(should, terms("keywords", c.FilterKeywordIDs))
		}
		filter = append(filter, anyOf(should))
	}

	if min, max := followerBounds(c); min != nil || max != nil {
		rng := map[string]interface{}{}
		if min != nil {
			rng["gte"] = *min
		}
		if max != nil {
			rng["lte"] = *max
		}
		filter = append(filter, nested(rangeOf("platforms.followers", rng)))
	}

	if min, max := engagementBounds(c); min != nil || max != nil {
		rng := map[string]interface{}{}
		if min != nil {
			rng["gte"] = *min
		}
		if max != nil {
			rng["lte"] = *max
		}
		filter = append(filter, nested(rangeOf("platforms.engagement", rng)))
	}

	if f := c.PlatformFloor; f != nil {
		must := []interface{}{rangeOf("platforms.engagement", map[string]interface{}{"gte": f.MinEngagement})}
		if f.MinFollowers > 0 {
			must = append(must, rangeOf("platforms.followers", map[string]interface{}{"gte": f.MinFollowers}))
		}
		filter = append(filter, nested(map[string]interface{}{
			"bool": map[string]interface{}{"filter": must},
		}))
	}

	if c.MaxPostPrice != nil {
		filter = append(filter, nested(rangeOf("platforms.pricing.post", map[string]interface{}{"lte": *c.MaxPostPrice})))
	}

	if len(filter) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filter},
		},
	}
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func wildcard(field, value string) map[string]interface{} {
	return map[string]interface{}{
		"wildcard": map[string]interface{}{
			field: map[string]interface{}{
				"value":            "*" + wildcardEscaper.Replace(strings.ToLower(value)) + "*",
				"case_insensitive": true,
			},
		},
	}
}

func terms(field string, values []string) map[string]interface{} {
	return map[string]interface{}{"terms": map[string]interface{}{field: values}}
}

func rangeOf(field string, bounds map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"range": map[string]interface{}{field: bounds}}
}

func nested(query map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"nested": map[string]interface{}{"path": "platforms", "query": query},
	}
}

func anyOf(should []interface{}) map[string]interface{} {
	return map[string]interface{}{
		"bool": map[string]interface{}{"should": should, "minimum_should_match": 1},
	}
}
