package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trainerlms/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// mediaFileDocument is the stored form of a media file
type mediaFileDocument struct {
	ID              primitive.ObjectID    `bson:"_id,omitempty"`
	FileType        models.FileType       `bson:"file_type"`
	Title           string                `bson:"title"`
	FilePath        string                `bson:"file_path"`
	FileSizeBytes   int64                 `bson:"file_size_bytes"`
	DurationSeconds int64                 `bson:"duration_seconds"`
	ThumbnailPath   *string               `bson:"thumbnail_path"`
	UploadMetadata  models.Metadata       `bson:"upload_metadata"`
	EncodingStatus  models.EncodingStatus `bson:"encoding_status"`
	CreatedAt       time.Time             `bson:"created_at"`
	UpdatedAt       time.Time             `bson:"updated_at"`
}

func (d mediaFileDocument) toModel() models.MediaFile {
	return models.MediaFile{
		ID:              d.ID.Hex(),
		FileType:        d.FileType,
		Title:           d.Title,
		FilePath:        d.FilePath,
		FileSizeBytes:   d.FileSizeBytes,
		DurationSeconds: d.DurationSeconds,
		ThumbnailPath:   d.ThumbnailPath,
		UploadMetadata:  d.UploadMetadata,
		EncodingStatus:  d.EncodingStatus,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type mediaFileRepository struct {
	collection *mongo.Collection
}

// NewMediaFileRepository creates a new media file repository
func NewMediaFileRepository(db *mongo.Database) *mediaFileRepository {
	return &mediaFileRepository{
		collection: db.Collection(models.CollectionMediaFiles),
	}
}

// Create inserts a new media file record and sets its generated ID
func (r *mediaFileRepository) Create(ctx context.Context, file *models.MediaFile) error {
	doc := mediaFileDocument{
		FileType:        file.FileType,
		Title:           file.Title,
		FilePath:        file.FilePath,
		FileSizeBytes:   file.FileSizeBytes,
		DurationSeconds: file.DurationSeconds,
		ThumbnailPath:   file.ThumbnailPath,
		UploadMetadata:  file.UploadMetadata,
		EncodingStatus:  file.EncodingStatus,
		CreatedAt:       file.CreatedAt,
		UpdatedAt:       file.UpdatedAt,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}

	id, err := insertedID(result.InsertedID)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}

	file.ID = id
	return nil
}

// GetByID retrieves a media file by ID.
// Returns nil without an error when no such file exists.
func (r *mediaFileRepository) GetByID(ctx context.Context, id string) (*models.MediaFile, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc mediaFileDocument
	err = r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media file by id: %w", err)
	}

	file := doc.toModel()
	return &file, nil
}

// ListByType retrieves all media files of the given type
func (r *mediaFileRepository) ListByType(ctx context.Context, fileType models.FileType) ([]models.MediaFile, error) {
	cursor, err := r.collection.Find(ctx, bson.D{{Key: "file_type", Value: fileType}})
	if err != nil {
		return nil, fmt.Errorf("failed to query media files: %w", err)
	}
	defer cursor.Close(ctx)

	files := []models.MediaFile{}
	for cursor.Next(ctx) {
		var doc mediaFileDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode media file: %w", err)
		}
		files = append(files, doc.toModel())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media files: %w", err)
	}

	return files, nil
}

// Update merges the patch fields into the media file and refreshes updated_at.
// Returns true if a document was modified.
func (r *mediaFileRepository) Update(ctx context.Context, id string, patch models.MediaFilePatch, updatedAt time.Time) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	set := mediaFileSetFields(patch)
	set = append(set, bson.E{Key: "updated_at", Value: updatedAt})

	result, err := r.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update media file: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

// Delete removes a media file record. Returns true if a document was deleted.
func (r *mediaFileRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, fmt.Errorf("failed to delete media file: %w", err)
	}

	return result.DeletedCount > 0, nil
}

func mediaFileSetFields(p models.MediaFilePatch) bson.D {
	set := bson.D{}
	if p.FileType != nil {
		set = append(set, bson.E{Key: "file_type", Value: *p.FileType})
	}
	if p.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *p.Title})
	}
	if p.FilePath != nil {
		set = append(set, bson.E{Key: "file_path", Value: *p.FilePath})
	}
	if p.FileSizeBytes != nil {
		set = append(set, bson.E{Key: "file_size_bytes", Value: *p.FileSizeBytes})
	}
	if p.DurationSeconds != nil {
		set = append(set, bson.E{Key: "duration_seconds", Value: *p.DurationSeconds})
	}
	if p.ThumbnailPath != nil {
		set = append(set, bson.E{Key: "thumbnail_path", Value: *p.ThumbnailPath})
	}
	if p.UploadMetadata != nil {
		set = append(set, bson.E{Key: "upload_metadata", Value: *p.UploadMetadata})
	}
	if p.EncodingStatus != nil {
		set = append(set, bson.E{Key: "encoding_status", Value: *p.EncodingStatus})
	}
	return set
}
