package repositories

import (
	"context"
	"fmt"

	"github.com/trainerlms/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes used by the content store queries.
// It is idempotent and safe to run on every connect.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		models.CollectionModuleContent: {{
			Keys:    bson.D{{Key: "module_id", Value: 1}, {Key: "sequence_order", Value: 1}},
			Options: options.Index().SetName("module_id_sequence_order"),
		}},
		models.CollectionMediaFiles: {{
			Keys:    bson.D{{Key: "file_type", Value: 1}},
			Options: options.Index().SetName("file_type"),
		}},
		models.CollectionQuestionMedia: {{
			Keys:    bson.D{{Key: "question_id", Value: 1}},
			Options: options.Index().SetName("question_id"),
		}},
	}

	for _, name := range []string{
		models.CollectionModuleContent,
		models.CollectionMediaFiles,
		models.CollectionQuestionMedia,
	} {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes[name]); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", name, err)
		}
	}

	return nil
}
