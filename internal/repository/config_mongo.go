package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codelearn-ai/server/internal/database"
	"github.com/codelearn-ai/server/internal/models"
)

// ConfigMongo provides Mongo-backed persistence for per-user AI configurations.
type ConfigMongo struct {
	col *mongo.Collection
}

// NewConfigRepository returns a ConfigMongo operating on the "ai_configs" collection.
func NewConfigRepository(db *mongo.Database) *ConfigMongo {
	return &ConfigMongo{
		col: db.Collection(database.ConfigCollection),
	}
}

// FindByUser returns the user's configuration. When no document exists it
// returns an empty AIConfig and a nil error so callers can treat the user as
// simply not configured.
func (r *ConfigMongo) FindByUser(ctx context.Context, userID string) (models.AIConfig, error) {
	var cfg models.AIConfig
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return models.AIConfig{}, nil
	}
	if err != nil {
		return models.AIConfig{}, err
	}
	return cfg, nil
}

// Upsert inserts or replaces the configuration for cfg.UserID.
func (r *ConfigMongo) Upsert(ctx context.Context, cfg models.AIConfig) error {
	_, err := r.col.ReplaceOne(
		ctx,
		bson.M{"user_id": cfg.UserID},
		cfg,
		options.Replace().SetUpsert(true),
	)
	return err
}
