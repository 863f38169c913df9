package models

// CreateModuleContentRequest is the body of a module content create request.
// The module ID comes from the path.
type CreateModuleContentRequest struct {
	ContentType     ContentType `json:"content_type"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	FileReference   string      `json:"file_reference"`
	FileSizeBytes   int64       `json:"file_size_bytes"`
	DurationSeconds int64       `json:"duration_seconds"`
	ThumbnailURL    string      `json:"thumbnail_url"`
	SequenceOrder   int         `json:"sequence_order"`
	Metadata        Metadata    `json:"metadata" swaggertype:"object"`
}

// ToItem builds the content item for the given module
func (r CreateModuleContentRequest) ToItem(moduleID string) *ModuleContentItem {
	return &ModuleContentItem{
		ModuleID:        moduleID,
		ContentType:     r.ContentType,
		Title:           r.Title,
		Description:     r.Description,
		FileReference:   r.FileReference,
		FileSizeBytes:   r.FileSizeBytes,
		DurationSeconds: r.DurationSeconds,
		ThumbnailURL:    r.ThumbnailURL,
		SequenceOrder:   r.SequenceOrder,
		Metadata:        r.Metadata,
	}
}

// CreateMediaFileRequest is the body of a media file create request
type CreateMediaFileRequest struct {
	FileType        FileType       `json:"file_type"`
	Title           string         `json:"title"`
	FilePath        string         `json:"file_path"`
	FileSizeBytes   int64          `json:"file_size_bytes"`
	DurationSeconds int64          `json:"duration_seconds"`
	ThumbnailPath   *string        `json:"thumbnail_path"`
	UploadMetadata  Metadata       `json:"upload_metadata" swaggertype:"object"`
	EncodingStatus  EncodingStatus `json:"encoding_status"`
}

// ToMediaFile builds the media file. A missing encoding status defaults to pending.
func (r CreateMediaFileRequest) ToMediaFile() *MediaFile {
	status := r.EncodingStatus
	if status == "" {
		status = EncodingStatusPending
	}
	return &MediaFile{
		FileType:        r.FileType,
		Title:           r.Title,
		FilePath:        r.FilePath,
		FileSizeBytes:   r.FileSizeBytes,
		DurationSeconds: r.DurationSeconds,
		ThumbnailPath:   r.ThumbnailPath,
		UploadMetadata:  r.UploadMetadata,
		EncodingStatus:  status,
	}
}

// CreateQuestionMediaRequest is the body of a question media create request.
// The question ID comes from the path.
type CreateQuestionMediaRequest struct {
	MediaType     FileType `json:"media_type"`
	FileReference string   `json:"file_reference"`
	FileSizeBytes int64    `json:"file_size_bytes"`
	Metadata      Metadata `json:"metadata" swaggertype:"object"`
}

// ToQuestionMedia builds the question media for the given question
func (r CreateQuestionMediaRequest) ToQuestionMedia(questionID string) *QuestionMedia {
	return &QuestionMedia{
		QuestionID:    questionID,
		MediaType:     r.MediaType,
		FileReference: r.FileReference,
		FileSizeBytes: r.FileSizeBytes,
		Metadata:      r.Metadata,
	}
}

// CreatedResponse carries the ID of a created record
type CreatedResponse struct {
	ID string `json:"id"`
}

// HealthResponse reports the service and document store status
type HealthResponse struct {
	Status        string `json:"status"`
	Store         string `json:"store"`
	Connected     bool   `json:"connected"`
	ServerVersion string `json:"server_version,omitempty"`
}
