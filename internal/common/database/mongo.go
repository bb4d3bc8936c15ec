// internal/common/database/mongo.go
package database

import (
	"context"
	"fmt"

	"influencer-search-workers/internal/common/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient wraps the MongoDB client holding influencer documents.
type MongoClient struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo connects and pings the primary.
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*MongoClient, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(config.GetDuration(cfg.ConnectTimeout))

	mc, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := mc.Ping(ctx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoClient{Client: mc, DB: mc.Database(cfg.Database)}, nil
}

func (c *MongoClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

func (c *MongoClient) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}

// EnsureInfluencerIndexes creates the lookup indexes the search filters rely on.
func (c *MongoClient) EnsureInfluencerIndexes(ctx context.Context, collection string) error {
	_, err := c.DB.Collection(collection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "platforms.platform", Value: 1}, {Key: "platforms.followers", Value: -1}}},
		{Keys: bson.D{{Key: "keywords", Value: 1}}},
		{Keys: bson.D{{Key: "location.country", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "isVerified", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("influencer indexes: %w", err)
	}
	return nil
}
