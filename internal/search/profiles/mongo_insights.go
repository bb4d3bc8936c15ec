// internal/search/profiles/mongo_insights.go
package profiles

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"influencer-search-workers/internal/models"
)

type bucket struct {
	ID    string `bson:"_id"`
	Count int    `bson:"count"`
}

type rangeStats struct {
	Min float64 `bson:"min"`
	Max float64 `bson:"max"`
	Avg float64 `bson:"avg"`
}

type suggestFacets struct {
	Names      []bucket `bson:"names"`
	Niches     []bucket `bson:"niches"`
	Categories []bucket `bson:"categories"`
}

type filterFacets struct {
	Platforms  []bucket     `bson:"platforms"`
	Niches     []bucket     `bson:"niches"`
	Categories []bucket     `bson:"categories"`
	Countries  []bucket     `bson:"countries"`
	Followers  []rangeStats `bson:"followers"`
	Engagement []rangeStats `bson:"engagement"`
}

// Suggest returns up to limit names, niches and categories containing query
// in a single aggregation.
func (s *MongoStore) Suggest(ctx context.Context, query string, limit int) (*models.ProfileSuggestions, error) {
	var facets suggestFacets
	if err := s.aggregateOne(ctx, SuggestPipeline(query, limit), &facets); err != nil {
		return nil, err
	}
	return &models.ProfileSuggestions{
		Names:      bucketIDs(facets.Names),
		Niches:     bucketIDs(facets.Niches),
		Categories: bucketIDs(facets.Categories),
	}, nil
}

func SuggestPipeline(query string, limit int) mongo.Pipeline {
	rx := contains(query)
	return mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"names": bson.A{
				bson.M{"$match": bson.M{"name": rx}},
				bson.M{"$limit": limit},
				bson.M{"$project": bson.M{"_id": "$name"}},
			},
			"niches":     distinctMatching("niche", rx, limit),
			"categories": distinctMatching("categories", rx, limit),
		}}},
	}
}

// FilterOptions counts facet values and summarises follower and engagement
// figures over all platform accounts.
func (s *MongoStore) FilterOptions(ctx context.Context, limit int) (*models.FilterOptions, error) {
	var facets filterFacets
	if err := s.aggregateOne(ctx, FilterOptionsPipeline(limit), &facets); err != nil {
		return nil, err
	}
	return toFilterOptions(facets), nil
}

func FilterOptionsPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"platforms": bson.A{
				bson.M{"$unwind": "$platforms"},
				countBy("$platforms.platform"),
				byCountDesc(),
			},
			"niches":     topValues("niche", limit),
			"categories": topValues("categories", limit),
			"countries": bson.A{
				bson.M{"$match": bson.M{"location.country": bson.M{"$nin": bson.A{nil, ""}}}},
				countBy("$location.country"),
				byCountDesc(),
				bson.M{"$limit": limit},
			},
			"followers":  platformStats("$platforms.followers"),
			"engagement": platformStats("$platforms.engagement"),
		}}},
	}
}

func (s *MongoStore) aggregateOne(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("aggregate influencers: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return fmt.Errorf("aggregate influencers: %w", err)
		}
		return nil
	}
	if err := cur.Decode(out); err != nil {
		return fmt.Errorf("decode aggregation: %w", err)
	}
	return nil
}

func toFilterOptions(f filterFacets) *models.FilterOptions {
	out := &models.FilterOptions{
		Platforms:       bucketCounts(f.Platforms),
		Niches:          bucketCounts(f.Niches),
		Categories:      bucketCounts(f.Categories),
		Countries:       bucketCounts(f.Countries),
		FollowerRange:   models.DefaultFollowerRange,
		EngagementRange: models.DefaultEngagementRange,
	}
	if len(f.Followers) > 0 {
		st := f.Followers[0]
		out.FollowerRange = models.FollowerRange{
			MinFollowers: int(st.Min),
			MaxFollowers: int(st.Max),
			AvgFollowers: st.Avg,
		}
	}
	if len(f.Engagement) > 0 {
		st := f.Engagement[0]
		out.EngagementRange = models.EngagementRange{
			MinEngagement: st.Min,
			MaxEngagement: st.Max,
			AvgEngagement: st.Avg,
		}
	}
	return out
}

func distinctMatching(field string, rx bson.M, limit int) bson.A {
	return bson.A{
		bson.M{"$unwind": "$" + field},
		bson.M{"$match": bson.M{field: rx}},
		bson.M{"$group": bson.M{"_id": "$" + field}},
		bson.M{"$sort": bson.D{{Key: "_id", Value: 1}}},
		bson.M{"$limit": limit},
	}
}

func topValues(field string, limit int) bson.A {
	return bson.A{
		bson.M{"$unwind": "$" + field},
		countBy("$" + field),
		byCountDesc(),
		bson.M{"$limit": limit},
	}
}

func platformStats(expr string) bson.A {
	return bson.A{
		bson.M{"$unwind": "$platforms"},
		bson.M{"$group": bson.M{
			"_id": nil,
			"min": bson.M{"$min": expr},
			"max": bson.M{"$max": expr},
			"avg": bson.M{"$avg": expr},
		}},
	}
}

func countBy(expr string) bson.M {
	return bson.M{"$group": bson.M{"_id": expr, "count": bson.M{"$sum": 1}}}
}

func byCountDesc() bson.M {
	return bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}
}

func bucketIDs(buckets []bucket) []string {
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b.ID)
	}
	return out
}

func bucketCounts(buckets []bucket) []models.FacetCount {
	out := make([]models.FacetCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, models.FacetCount{Value: b.ID, Count: b.Count})
	}
	return out
}
