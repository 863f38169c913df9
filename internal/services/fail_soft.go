package services

import (
	"context"

	"github.com/trainerlms/backend/internal/models"
	"go.uber.org/zap"
)

// FailSoft adapts a ContentStore to the best-effort contract used by the course API:
// no operation returns an error. Failures degrade to an empty ID, an empty slice,
// nil, false or zero stats, and are logged. A disabled store is not logged per call.
type FailSoft struct {
	store  *ContentStore
	logger *zap.Logger
}

// NewFailSoft creates a new fail-soft adapter over the given store
func NewFailSoft(store *ContentStore, logger *zap.Logger) *FailSoft {
	return &FailSoft{
		store:  store,
		logger: logger,
	}
}

// Connect establishes the connection and reports whether it succeeded
func (f *FailSoft) Connect(ctx context.Context) bool {
	err := f.store.Connect(ctx)
	f.report("connect", err)
	return err == nil
}

// IsConnected reports whether the current connection answers a probe
func (f *FailSoft) IsConnected(ctx context.Context) bool {
	return f.store.IsConnected(ctx)
}

// Close tears the connection down
func (f *FailSoft) Close(ctx context.Context) {
	f.report("close", f.store.Close(ctx))
}

// CreateModuleContent returns the generated ID, or "" on failure
func (f *FailSoft) CreateModuleContent(ctx context.Context, item *models.ModuleContentItem) string {
	if item == nil {
		f.logger.Error("content store operation rejected", zap.String("op", "create_module_content"), zap.String("reason", "nil item"))
		return ""
	}
	id, err := f.store.CreateModuleContent(ctx, item)
	f.report("create_module_content", err)
	return id
}

// ModuleContent returns the ordered content items of a module, or an empty slice on failure
func (f *FailSoft) ModuleContent(ctx context.Context, moduleID string) []models.ModuleContentItem {
	items, err := f.store.ModuleContent(ctx, moduleID)
	if err != nil {
		f.report("module_content", err)
		return []models.ModuleContentItem{}
	}
	return items
}

// UpdateModuleContent returns true only if the item changed
func (f *FailSoft) UpdateModuleContent(ctx context.Context, id string, patch models.ModuleContentPatch) bool {
	updated, err := f.store.UpdateModuleContent(ctx, id, patch)
	f.report("update_module_content", err)
	return updated
}

// DeleteModuleContent returns true only if the item was removed
func (f *FailSoft) DeleteModuleContent(ctx context.Context, id string) bool {
	deleted, err := f.store.DeleteModuleContent(ctx, id)
	f.report("delete_module_content", err)
	return deleted
}

// CreateMediaFile returns the generated ID, or "" on failure
func (f *FailSoft) CreateMediaFile(ctx context.Context, file *models.MediaFile) string {
	if file == nil {
		f.logger.Error("content store operation rejected", zap.String("op", "create_media_file"), zap.String("reason", "nil file"))
		return ""
	}
	id, err := f.store.CreateMediaFile(ctx, file)
	f.report("create_media_file", err)
	return id
}

// MediaFile returns the media file, or nil if it is absent or the lookup failed
func (f *FailSoft) MediaFile(ctx context.Context, id string) *models.MediaFile {
	file, err := f.store.MediaFile(ctx, id)
	f.report("media_file", err)
	return file
}

// MediaFilesByType returns matching media files, or an empty slice on failure
func (f *FailSoft) MediaFilesByType(ctx context.Context, fileType models.FileType) []models.MediaFile {
	files, err := f.store.MediaFilesByType(ctx, fileType)
	if err != nil {
		f.report("media_files_by_type", err)
		return []models.MediaFile{}
	}
	return files
}

// UpdateMediaFile returns true only if the media file changed
func (f *FailSoft) UpdateMediaFile(ctx context.Context, id string, patch models.MediaFilePatch) bool {
	updated, err := f.store.UpdateMediaFile(ctx, id, patch)
	f.report("update_media_file", err)
	return updated
}

// DeleteMediaFile returns true only if the media file was removed
func (f *FailSoft) DeleteMediaFile(ctx context.Context, id string) bool {
	deleted, err := f.store.DeleteMediaFile(ctx, id)
	f.report("delete_media_file", err)
	return deleted
}

// CreateQuestionMedia returns the generated ID, or "" on failure
func (f *FailSoft) CreateQuestionMedia(ctx context.Context, media *models.QuestionMedia) string {
	if media == nil {
		f.logger.Error("content store operation rejected", zap.String("op", "create_question_media"), zap.String("reason", "nil media"))
		return ""
	}
	id, err := f.store.CreateQuestionMedia(ctx, media)
	f.report("create_question_media", err)
	return id
}

// QuestionMedia returns the media attached to a question, or an empty slice on failure
func (f *FailSoft) QuestionMedia(ctx context.Context, questionID string) []models.QuestionMedia {
	media, err := f.store.QuestionMedia(ctx, questionID)
	if err != nil {
		f.report("question_media", err)
		return []models.QuestionMedia{}
	}
	return media
}

// CollectionStats returns collection statistics, or zero values on failure
func (f *FailSoft) CollectionStats(ctx context.Context, name string) models.CollectionStats {
	stats, err := f.store.CollectionStats(ctx, name)
	f.report("collection_stats", err)
	return stats
}

// report logs a failed operation. A disabled store is reported once at construction.
func (f *FailSoft) report(op string, err error) {
	if err == nil || IsCode(err, CodeNotConfigured) {
		return
	}
	f.logger.Error("content store operation failed",
		zap.String("op", op),
		zap.Error(err),
	)
}
