package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/trainerlms/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// namespaceNotFound is the server error code for a collection that does not exist yet
const namespaceNotFound = 26

type statsRepository struct {
	db *mongo.Database
}

// NewStatsRepository creates a new collection statistics repository
func NewStatsRepository(db *mongo.Database) *statsRepository {
	return &statsRepository{db: db}
}

// CollectionStats returns document count and storage sizes of a collection.
// A collection that does not exist yet reports zeros.
func (r *statsRepository) CollectionStats(ctx context.Context, name string) (models.CollectionStats, error) {
	var raw bson.M
	err := r.db.RunCommand(ctx, bson.D{{Key: "collStats", Value: name}}).Decode(&raw)

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == namespaceNotFound {
		return models.CollectionStats{}, nil
	}
	if err != nil {
		return models.CollectionStats{}, fmt.Errorf("failed to get stats for collection %s: %w", name, err)
	}

	return models.CollectionStats{
		Count:           toInt64(raw["count"]),
		SizeBytes:       toInt64(raw["size"]),
		AvgObjSizeBytes: toInt64(raw["avgObjSize"]),
	}, nil
}

// toInt64 converts any numeric BSON value to int64, zero otherwise
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(math.Round(n))
	default:
		return 0
	}
}

// ServerVersion returns the version string reported by the buildInfo command
func (r *statsRepository) ServerVersion(ctx context.Context) (string, error) {
	var info struct {
		Version string `bson:"version"`
	}
	if err := r.db.RunCommand(ctx, bson.D{{Key: "buildInfo", Value: 1}}).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to get server version: %w", err)
	}
	return info.Version, nil
}
