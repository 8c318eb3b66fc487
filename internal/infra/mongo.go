package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongo connects to MongoDB, validates connectivity at startup, and
// ensures the indexes the catalog queries depend on.
func NewMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, nil, err
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return client, db, nil
}

// ensureIndexes creates the indexes backing the cursor-paginated catalog
// queries. Every filtered variant sorts on (createdAt desc, _id desc), so
// each filter field gets a compound index with that suffix. CreateMany is
// idempotent — re-running on an indexed collection is a no-op.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(model.ClothingCollection)
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "color", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "sizes", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "destaque", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	return err
}
