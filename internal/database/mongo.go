package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the repository layer.
const (
	ConfigCollection   = "ai_configs"
	AnalysisCollection = "analyses"
)

// Connect establishes a MongoDB client with a 10-second connection timeout,
// verifies it with a ping and returns the database handle the repositories
// operate on.
//
// Typical usage:
//
//	client, db, cancel, err := database.Connect(cfg.MongoURI, cfg.DBName)
//	if err != nil { … }
//	defer cancel()
//	defer client.Disconnect(context.Background())
func Connect(uri, dbName string) (*mongo.Client, *mongo.Database, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	clientOpts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, cancel, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		// Disconnect on ping failure to avoid leaking sockets.
		_ = client.Disconnect(ctx)
		return nil, nil, cancel, err
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, cancel, err
	}

	return client, db, cancel, nil
}

// ensureIndexes creates the indexes the query paths depend on:
// one config row per user, and the per-user newest-first job listing.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ConfigCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(AnalysisCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
