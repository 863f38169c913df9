package models

import "time"

// Collection names used by the content store
const (
	CollectionModuleContent = "module_content_items"
	CollectionMediaFiles    = "media_files"
	CollectionQuestionMedia = "test_question_media"
)

// ContentType represents the kind of content attached to a module
type ContentType string

const (
	ContentTypeVideo ContentType = "video"
	ContentTypePDF   ContentType = "pdf"
	ContentTypePPT   ContentType = "ppt"
	ContentTypeText  ContentType = "text"
	ContentTypeAudio ContentType = "audio"
	ContentTypeImage ContentType = "image"
)

// FileType represents the kind of an uploaded media asset
type FileType string

const (
	FileTypeVideo FileType = "video"
	FileTypeAudio FileType = "audio"
	FileTypeImage FileType = "image"
	FileTypePDF   FileType = "pdf"
	FileTypePPT   FileType = "ppt"
)

// EncodingStatus represents the processing state of a media file
type EncodingStatus string

const (
	EncodingStatusPending    EncodingStatus = "pending"
	EncodingStatusProcessing EncodingStatus = "processing"
	EncodingStatusCompleted  EncodingStatus = "completed"
	EncodingStatusFailed     EncodingStatus = "failed"
)

// ModuleContentItem represents a piece of rich media attached to a module (unit)
type ModuleContentItem struct {
	ID              string      `json:"id"`
	ModuleID        string      `json:"module_id"`
	ContentType     ContentType `json:"content_type"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	FileReference   string      `json:"file_reference"`
	FileSizeBytes   int64       `json:"file_size_bytes"`
	DurationSeconds int64       `json:"duration_seconds"`
	ThumbnailURL    string      `json:"thumbnail_url"`
	SequenceOrder   int         `json:"sequence_order"`
	Metadata        Metadata    `json:"metadata"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// MediaFile represents a globally registered uploaded asset
type MediaFile struct {
	ID              string         `json:"id"`
	FileType        FileType       `json:"file_type"`
	Title           string         `json:"title"`
	FilePath        string         `json:"file_path"`
	FileSizeBytes   int64          `json:"file_size_bytes"`
	DurationSeconds int64          `json:"duration_seconds"`
	ThumbnailPath   *string        `json:"thumbnail_path"`
	UploadMetadata  Metadata       `json:"upload_metadata"`
	EncodingStatus  EncodingStatus `json:"encoding_status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// QuestionMedia represents an attachment on a quiz question.
// It has no update timestamp: question media is not updated once attached.
type QuestionMedia struct {
	ID            string    `json:"id"`
	QuestionID    string    `json:"question_id"`
	MediaType     FileType  `json:"media_type"`
	FileReference string    `json:"file_reference"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	Metadata      Metadata  `json:"metadata"`
	CreatedAt     time.Time `json:"created_at"`
}

// ModuleContentPatch holds the fields to change on a module content item.
// Nil fields are left untouched.
type ModuleContentPatch struct {
	ContentType     *ContentType `json:"content_type,omitempty"`
	Title           *string      `json:"title,omitempty"`
	Description     *string      `json:"description,omitempty"`
	FileReference   *string      `json:"file_reference,omitempty"`
	FileSizeBytes   *int64       `json:"file_size_bytes,omitempty"`
	DurationSeconds *int64       `json:"duration_seconds,omitempty"`
	ThumbnailURL    *string      `json:"thumbnail_url,omitempty"`
	SequenceOrder   *int         `json:"sequence_order,omitempty"`
	Metadata        *Metadata    `json:"metadata,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p ModuleContentPatch) IsEmpty() bool {
	return p.ContentType == nil && p.Title == nil && p.Description == nil &&
		p.FileReference == nil && p.FileSizeBytes == nil && p.DurationSeconds == nil &&
		p.ThumbnailURL == nil && p.SequenceOrder == nil && p.Metadata == nil
}

// MediaFilePatch holds the fields to change on a media file.
// Nil fields are left untouched.
type MediaFilePatch struct {
	FileType        *FileType       `json:"file_type,omitempty"`
	Title           *string         `json:"title,omitempty"`
	FilePath        *string         `json:"file_path,omitempty"`
	FileSizeBytes   *int64          `json:"file_size_bytes,omitempty"`
	DurationSeconds *int64          `json:"duration_seconds,omitempty"`
	ThumbnailPath   *string         `json:"thumbnail_path,omitempty"`
	UploadMetadata  *Metadata       `json:"upload_metadata,omitempty"`
	EncodingStatus  *EncodingStatus `json:"encoding_status,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p MediaFilePatch) IsEmpty() bool {
	return p.FileType == nil && p.Title == nil && p.FilePath == nil &&
		p.FileSizeBytes == nil && p.DurationSeconds == nil && p.ThumbnailPath == nil &&
		p.UploadMetadata == nil && p.EncodingStatus == nil
}

// CollectionStats holds storage statistics for a collection
type CollectionStats struct {
	Count           int64 `json:"count"`
	SizeBytes       int64 `json:"size"`
	AvgObjSizeBytes int64 `json:"avg_obj_size"`
}
