package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/trainerlms/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// moduleContentDocument is the stored form of a module content item
type moduleContentDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ModuleID        string             `bson:"module_id"`
	ContentType     models.ContentType `bson:"content_type"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	FileReference   string             `bson:"file_reference"`
	FileSizeBytes   int64              `bson:"file_size_bytes"`
	DurationSeconds int64              `bson:"duration_seconds"`
	ThumbnailURL    string             `bson:"thumbnail_url"`
	SequenceOrder   int                `bson:"sequence_order"`
	Metadata        models.Metadata    `bson:"metadata"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (d moduleContentDocument) toModel() models.ModuleContentItem {
	return models.ModuleContentItem{
		ID:              d.ID.Hex(),
		ModuleID:        d.ModuleID,
		ContentType:     d.ContentType,
		Title:           d.Title,
		Description:     d.Description,
		FileReference:   d.FileReference,
		FileSizeBytes:   d.FileSizeBytes,
		DurationSeconds: d.DurationSeconds,
		ThumbnailURL:    d.ThumbnailURL,
		SequenceOrder:   d.SequenceOrder,
		Metadata:        d.Metadata,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type moduleContentRepository struct {
	collection *mongo.Collection
}

// NewModuleContentRepository creates a new module content repository
func NewModuleContentRepository(db *mongo.Database) *moduleContentRepository {
	return &moduleContentRepository{
		collection: db.Collection(models.CollectionModuleContent),
	}
}

// Create inserts a new module content item and sets its generated ID
func (r *moduleContentRepository) Create(ctx context.Context, item *models.ModuleContentItem) error {
	doc := moduleContentDocument{
		ModuleID:        item.ModuleID,
		ContentType:     item.ContentType,
		Title:           item.Title,
		Description:     item.Description,
		FileReference:   item.FileReference,
		FileSizeBytes:   item.FileSizeBytes,
		DurationSeconds: item.DurationSeconds,
		ThumbnailURL:    item.ThumbnailURL,
		SequenceOrder:   item.SequenceOrder,
		Metadata:        item.Metadata,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create module content: %w", err)
	}

	id, err := insertedID(result.InsertedID)
	if err != nil {
		return fmt.Errorf("failed to create module content: %w", err)
	}

	item.ID = id
	return nil
}

// ListByModule retrieves all content items of a module ordered by sequence order.
// Items with the same sequence order keep their creation order.
func (r *moduleContentRepository) ListByModule(ctx context.Context, moduleID string) ([]models.ModuleContentItem, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "sequence_order", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.D{{Key: "module_id", Value: moduleID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query module content: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.ModuleContentItem{}
	for cursor.Next(ctx) {
		var doc moduleContentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode module content: %w", err)
		}
		items = append(items, doc.toModel())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating module content: %w", err)
	}

	return items, nil
}

// Update merges the patch fields into the item and refreshes updated_at.
// Returns true if a document was modified.
func (r *moduleContentRepository) Update(ctx context.Context, id string, patch models.ModuleContentPatch, updatedAt time.Time) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	set := moduleContentSetFields(patch)
	set = append(set, bson.E{Key: "updated_at", Value: updatedAt})

	result, err := r.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update module content: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

// Delete removes a content item. Returns true if a document was deleted.
func (r *moduleContentRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, fmt.Errorf("failed to delete module content: %w", err)
	}

	return result.DeletedCount > 0, nil
}

func moduleContentSetFields(p models.ModuleContentPatch) bson.D {
	set := bson.D{}
	if p.ContentType != nil {
		set = append(set, bson.E{Key: "content_type", Value: *p.ContentType})
	}
	if p.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *p.Title})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *p.Description})
	}
	if p.FileReference != nil {
		set = append(set, bson.E{Key: "file_reference", Value: *p.FileReference})
	}
	if p.FileSizeBytes != nil {
		set = append(set, bson.E{Key: "file_size_bytes", Value: *p.FileSizeBytes})
	}
	if p.DurationSeconds != nil {
		set = append(set, bson.E{Key: "duration_seconds", Value: *p.DurationSeconds})
	}
	if p.ThumbnailURL != nil {
		set = append(set, bson.E{Key: "thumbnail_url", Value: *p.ThumbnailURL})
	}
	if p.SequenceOrder != nil {
		set = append(set, bson.E{Key: "sequence_order", Value: *p.SequenceOrder})
	}
	if p.Metadata != nil {
		set = append(set, bson.E{Key: "metadata", Value: *p.Metadata})
	}
	return set
}
