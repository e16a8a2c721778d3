package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codelearn-ai/server/internal/database"
	"github.com/codelearn-ai/server/internal/models"
)

// AnalysisMongo provides Mongo-backed persistence for analysis jobs.
// Status transitions use $set so concurrent unrelated fields are never
// clobbered by a full-document replace.
type AnalysisMongo struct {
	col *mongo.Collection
}

// NewAnalysisRepository returns an AnalysisMongo operating on the "analyses" collection.
func NewAnalysisRepository(db *mongo.Database) *AnalysisMongo {
	return &AnalysisMongo{
		col: db.Collection(database.AnalysisCollection),
	}
}

// Insert stores a freshly created job.
func (r *AnalysisMongo) Insert(ctx context.Context, job models.Analysis) error {
	_, err := r.col.InsertOne(ctx, job)
	return err
}

// FindByID fetches a job by id. A missing document yields a zero-value
// Analysis and a nil error.
func (r *AnalysisMongo) FindByID(ctx context.Context, id string) (models.Analysis, error) {
	var job models.Analysis
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return models.Analysis{}, nil
	}
	if err != nil {
		return models.Analysis{}, err
	}
	return job, nil
}

// FindByUser returns the user's jobs ordered by created_at descending,
// capped at limit.
func (r *AnalysisMongo) FindByUser(ctx context.Context, userID string, limit int) ([]models.Analysis, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	jobs := []models.Analysis{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// SetStatus updates only the status field.
func (r *AnalysisMongo) SetStatus(ctx context.Context, id string, status models.AnalysisStatus) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status},
	})
	return err
}

// Complete marks the job completed and stores its results in one update.
func (r *AnalysisMongo) Complete(ctx context.Context, id string, cards []models.Flashcard, totalFiles int, languages []string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":      models.StatusCompleted,
			"flashcards":  cards,
			"total_files": totalFiles,
			"languages":   languages,
		},
	})
	return err
}

// Fail marks the job failed with a human-readable error message.
func (r *AnalysisMongo) Fail(ctx context.Context, id, message string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status": models.StatusFailed,
			"error":  message,
		},
	})
	return err
}
