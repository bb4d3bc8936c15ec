// internal/search/profiles/mongo.go
package profiles

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"influencer-search-workers/internal/models"
)

// MongoStore reads influencer documents from a MongoDB collection.
type MongoStore struct {
	coll       *mongo.Collection
	maxResults int
}

func NewMongoStore(coll *mongo.Collection, maxResults int) *MongoStore {
	return &MongoStore{coll: coll, maxResults: maxResults}
}

func (s *MongoStore) Kind() models.ProfileStoreKind { return models.ProfileStoreMongo }

func (s *MongoStore) Find(ctx context.Context, c *models.SearchCriteria) ([]models.Influencer, error) {
	if c == nil {
		return nil, ErrNilCriteria
	}

	opts := options.Find()
	if limit := resultLimit(c, s.maxResults); limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, BuildFilter(c), opts)
	if err != nil {
		return nil, fmt.Errorf("find influencers: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.Influencer{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode influencers: %w", err)
	}
	return out, nil
}

// BuildFilter translates criteria into a document filter. Empty criteria
// give an empty filter that matches every document.
func BuildFilter(c *models.SearchCriteria) bson.M {
	conds := bson.A{}

	if len(c.SearchWords) > 0 {
		or := bson.A{}
		for _, w := range c.SearchWords {
			or = append(or,
				bson.M{"name": contains(w)},
				bson.M{"platforms.username": contains(w)},
				bson.M{"bio": contains(w)},
				bson.M{"niche": bson.M{"$elemMatch": contains(w)}},
				bson.M{"categories": bson.M{"$elemMatch": contains(w)}},
			)
		}
		if len(c.WordKeywordIDs) > 0 {
			or = append(or, bson.M{"keywords": bson.M{"$in": c.WordKeywordIDs}})
		}
		conds = append(conds, bson.M{"$or": or})
	}

	if len(c.Platforms) > 0 {
		in := bson.A{}
		for _, p := range c.Platforms {
			in = append(in, primitive.Regex{Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(p)) + "$", Options: "i"})
		}
		conds = append(conds, bson.M{"platforms.platform": bson.M{"$in": in}})
	}

	if c.Niche != "" {
		or := bson.A{
			bson.M{"niche": bson.M{"$elemMatch": contains(c.Niche)}},
			bson.M{"categories": bson.M{"$elemMatch": contains(c.Niche)}},
		}
		if len(c.NicheKeywordIDs) > 0 {
			or = append(or, bson.M{"keywords": bson.M{"$in": c.NicheKeywordIDs}})
		}
		conds = append(conds, bson.M{"$or": or})
	}

	if c.Country != "" {
		conds = append(conds, bson.M{"$or": bson.A{
			bson.M{"location.country": contains(c.Country)},
			bson.M{"location.city": contains(c.Country)},
		}})
	}

	if len(c.KeywordTerms) > 0 {
		or := bson.A{}
		for _, k := range c.KeywordTerms {
			or = append(or, bson.M{"$or": bson.A{
				bson.M{"bio": contains(k)},
				bson.M{"niche": bson.M{"$elemMatch": contains(k)}},
				bson.M{"categories": bson.M{"$elemMatch": contains(k)}},
				bson.M{"name": contains(k)},
			}})
		}
		if len(c.FilterKeywordIDs) > 0 {
			or = append(or, bson.M{"keywords": bson.M{"$in": c.FilterKeywordIDs}})
		}
		conds = append(conds, bson.M{"$or": or})
	}

	if min, max := followerBounds(c); min != nil || max != nil {
		rng := bson.M{}
		if min != nil {
			rng["$gte"] = *min
		}
		if max != nil {
			rng["$lte"] = *max
		}
		conds = append(conds, bson.M{"platforms": bson.M{"$elemMatch": bson.M{"followers": rng}}})
	}

	if min, max := engagementBounds(c); min != nil || max != nil {
		rng := bson.M{}
		if min != nil {
			rng["$gte"] = *min
		}
		if max != nil {
			rng["$lte"] = *max
		}
		conds = append(conds, bson.M{"platforms": bson.M{"$elemMatch": bson.M{"engagement": rng}}})
	}

	if f := c.PlatformFloor; f != nil {
		match := bson.M{"engagement": bson.M{"$gte": f.MinEngagement}}
		if f.MinFollowers > 0 {
			match["followers"] = bson.M{"$gte": f.MinFollowers}
		}
		conds = append(conds, bson.M{"platforms": bson.M{"$elemMatch": match}})
	}

	if c.MaxPostPrice != nil {
		conds = append(conds, bson.M{"platforms.pricing.post": bson.M{"$lte": *c.MaxPostPrice}})
	}

	if len(conds) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": conds}
}

func contains(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}
