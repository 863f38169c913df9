package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/trainerlms/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// questionMediaDocument is the stored form of a question media attachment
type questionMediaDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	QuestionID    string             `bson:"question_id"`
	MediaType     models.FileType    `bson:"media_type"`
	FileReference string             `bson:"file_reference"`
	FileSizeBytes int64              `bson:"file_size_bytes"`
	Metadata      models.Metadata    `bson:"metadata"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (d questionMediaDocument) toModel() models.QuestionMedia {
	return models.QuestionMedia{
		ID:            d.ID.Hex(),
		QuestionID:    d.QuestionID,
		MediaType:     d.MediaType,
		FileReference: d.FileReference,
		FileSizeBytes: d.FileSizeBytes,
		Metadata:      d.Metadata,
		CreatedAt:     d.CreatedAt,
	}
}

// questionMediaRepository only creates and lists: question media is not updated or deleted
type questionMediaRepository struct {
	collection *mongo.Collection
}

// NewQuestionMediaRepository creates a new question media repository
func NewQuestionMediaRepository(db *mongo.Database) *questionMediaRepository {
	return &questionMediaRepository{
		collection: db.Collection(models.CollectionQuestionMedia),
	}
}

// Create inserts a new question media record and sets its generated ID
func (r *questionMediaRepository) Create(ctx context.Context, media *models.QuestionMedia) error {
	doc := questionMediaDocument{
		QuestionID:    media.QuestionID,
		MediaType:     media.MediaType,
		FileReference: media.FileReference,
		FileSizeBytes: media.FileSizeBytes,
		Metadata:      media.Metadata,
		CreatedAt:     media.CreatedAt,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create question media: %w", err)
	}

	id, err := insertedID(result.InsertedID)
	if err != nil {
		return fmt.Errorf("failed to create question media: %w", err)
	}

	media.ID = id
	return nil
}

// ListByQuestion retrieves all media attached to a question in no particular order
func (r *questionMediaRepository) ListByQuestion(ctx context.Context, questionID string) ([]models.QuestionMedia, error) {
	cursor, err := r.collection.Find(ctx, bson.D{{Key: "question_id", Value: questionID}})
	if err != nil {
		return nil, fmt.Errorf("failed to query question media: %w", err)
	}
	defer cursor.Close(ctx)

	media := []models.QuestionMedia{}
	for cursor.Next(ctx) {
		var doc questionMediaDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode question media: %w", err)
		}
		media = append(media, doc.toModel())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question media: %w", err)
	}

	return media, nil
}
