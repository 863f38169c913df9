package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trainerlms/backend/internal/models"
	"github.com/trainerlms/backend/internal/services"
	"go.uber.org/zap"
)

// ContentStore is the interface that wraps the typed content store operations used by the API.
type ContentStore interface {
	// Method CreateModuleContent stores a content item and returns its generated ID.
	//
	// The store assigns the ID and both timestamps, values set by the caller are replaced.
	// Failures are returned as *services.StoreError together with an empty ID.
	CreateModuleContent(ctx context.Context, item *models.ModuleContentItem) (string, error)
	// Method ModuleContent retrieve the content items of a module ordered by sequence order.
	//
	// An unknown module yields an empty slice.
	ModuleContent(ctx context.Context, moduleID string) ([]models.ModuleContentItem, error)
	// Method UpdateModuleContent merges "patch" into a content item.
	//
	// Returns false if the item does not exist or nothing changed.
	// A malformed "id" is reported with services.CodeInvalidID.
	UpdateModuleContent(ctx context.Context, id string, patch models.ModuleContentPatch) (bool, error)
	// Method DeleteModuleContent removes a content item. Returns false if it does not exist.
	DeleteModuleContent(ctx context.Context, id string) (bool, error)
	// Method CreateMediaFile stores a media file and returns its generated ID.
	//
	// Please reference CreateModuleContent method for ID, timestamp and error handling.
	CreateMediaFile(ctx context.Context, file *models.MediaFile) (string, error)
	// Method MediaFile retrieve a media file by its ID. Returns nil if it does not exist.
	MediaFile(ctx context.Context, id string) (*models.MediaFile, error)
	// Method MediaFilesByType retrieve all media files of a file type.
	MediaFilesByType(ctx context.Context, fileType models.FileType) ([]models.MediaFile, error)
	// Method UpdateMediaFile merges "patch" into a media file.
	//
	// Please reference UpdateModuleContent method for return values.
	UpdateMediaFile(ctx context.Context, id string, patch models.MediaFilePatch) (bool, error)
	// Method DeleteMediaFile removes a media file. Returns false if it does not exist.
	DeleteMediaFile(ctx context.Context, id string) (bool, error)
	// Method CreateQuestionMedia attaches media to a quiz question and returns the generated ID.
	//
	// Question media has no update or delete operation.
	CreateQuestionMedia(ctx context.Context, media *models.QuestionMedia) (string, error)
	// Method QuestionMedia retrieve all media attached to a question.
	QuestionMedia(ctx context.Context, questionID string) ([]models.QuestionMedia, error)
	// Method CollectionStats retrieve document count and storage sizes of a collection.
	CollectionStats(ctx context.Context, name string) (models.CollectionStats, error)
	// Method State reports the connection state without touching the database.
	State() services.State
	// Method IsConnected probes the current connection without reconnecting.
	IsConnected(ctx context.Context) bool
	// Method CurrentServerVersion retrieve the database server version over the current connection.
	//
	// It never dials, false is returned when there is no live connection.
	CurrentServerVersion(ctx context.Context) (string, bool)
}

// ContentHandler handles HTTP requests for module content, media files and question media
type ContentHandler struct {
	BaseHandler
	store            ContentStore
	authMiddleware   func(http.Handler) http.Handler
	apiKeyMiddleware func(http.Handler) http.Handler
}

// NewContentHandler creates a new content handler.
// Read routes are wrapped with authMw, write and stats routes with apiKeyMw.
func NewContentHandler(store ContentStore, logger *zap.Logger, authMw, apiKeyMw func(http.Handler) http.Handler) *ContentHandler {
	return &ContentHandler{
		BaseHandler:      BaseHandler{logger: logger},
		store:            store,
		authMiddleware:   authMw,
		apiKeyMiddleware: apiKeyMw,
	}
}

// RegisterRoutes registers all content handler routes
func (h *ContentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware)
			r.Get("/modules/{moduleID}/contents", h.ListModuleContent)
			r.Get("/media-files", h.ListMediaFiles)
			r.Get("/media-files/{id}", h.GetMediaFile)
			r.Get("/questions/{questionID}/media", h.ListQuestionMedia)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.apiKeyMiddleware)
			r.Post("/modules/{moduleID}/contents", h.CreateModuleContent)
			r.Patch("/contents/{id}", h.UpdateModuleContent)
			r.Delete("/contents/{id}", h.DeleteModuleContent)
			r.Post("/media-files", h.CreateMediaFile)
			r.Patch("/media-files/{id}", h.UpdateMediaFile)
			r.Delete("/media-files/{id}", h.DeleteMediaFile)
			r.Post("/questions/{questionID}/media", h.CreateQuestionMedia)
			r.Get("/stats/{collection}", h.GetCollectionStats)
		})
	})
}

// ListModuleContent handles GET /api/v1/modules/{moduleID}/contents
// @Summary List module content
// @Description Get the content items of a module ordered by sequence order
// @Tags contents
// @Produce json
// @Param moduleID path string true "Module ID"
// @Success 200 {array} models.ModuleContentItem
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /modules/{moduleID}/contents [get]
func (h *ContentHandler) ListModuleContent(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleID")

	items, err := h.store.ModuleContent(r.Context(), moduleID)
	if err != nil {
		h.respondStoreError(w, r, err, "failed to get module content")
		return
	}

	h.respondJSON(w, http.StatusOK, items)
}

// CreateModuleContent handles POST /api/v1/modules/{moduleID}/contents
// @Summary Create module content
// @Description Attach a content item to a module. Requires API key authentication.
// @Tags contents
// @Accept json
// @Produce json
// @Param moduleID path string true "Module ID"
// @Param request body models.CreateModuleContentRequest true "Content item"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid or missing API key"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /modules/{moduleID}/contents [post]
func (h *ContentHandler) CreateModuleContent(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleID")

	var req models.CreateModuleContentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ContentType == "" || req.Title == "" {
		h.respondError(w, http.StatusBadRequest, "content_type and title are required")
		return
	}

	id, err := h.store.CreateModuleContent(r.Context(), req.ToItem(moduleID))
	if err != nil {
		h.respondStoreError(w, r, err, "failed to create module content")
		return
	}

	h.respondJSON(w, http.StatusCreated, models.CreatedResponse{ID: id})
}

// UpdateModuleContent handles PATCH /api/v1/contents/{id}
// @Summary Update module content
// @Description Merge the given fields into a content item. Requires API key authentication.
// @Tags contents
// @Accept json
// @Produce json
// @Param id path string true "Content item ID"
// @Param request body models.ModuleContentPatch true "Fields to change"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid ID or request body"
// @Failure 404 {object} map[string]string "Content item not found or unchanged"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /contents/{id} [patch]
func (h *ContentHandler) UpdateModuleContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.ModuleContentPatch
	if err := decodeJSON(r, &patch); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.IsEmpty() {
		h.respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	updated, err := h.store.UpdateModuleContent(r.Context(), id, patch)
	if err != nil {
		h.respondStoreError(w, r, err, "failed to update module content")
		return
	}
	if !updated {
		h.respondError(w, http.StatusNotFound, "content item not found or unchanged")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "content item updated"})
}

// DeleteModuleContent handles DELETE /api/v1/contents/{id}
// @Summary Delete module content
// @Description Remove a content item. Requires API key authentication.
// @Tags contents
// @Param id path string true "Content item ID"
// @Success 204 "Content item deleted"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Content item not found"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /contents/{id} [delete]
func (h *ContentHandler) DeleteModuleContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.store.DeleteModuleContent(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err, "failed to delete module content")
		return
	}
	if !deleted {
		h.respondError(w, http.StatusNotFound, "content item not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListQuestionMedia handles GET /api/v1/questions/{questionID}/media
// @Summary List question media
// @Description Get all media attached to a quiz question
// @Tags questions
// @Produce json
// @Param questionID path string true "Question ID"
// @Success 200 {array} models.QuestionMedia
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /questions/{questionID}/media [get]
func (h *ContentHandler) ListQuestionMedia(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")

	media, err := h.store.QuestionMedia(r.Context(), questionID)
	if err != nil {
		h.respondStoreError(w, r, err, "failed to get question media")
		return
	}

	h.respondJSON(w, http.StatusOK, media)
}

// CreateQuestionMedia handles POST /api/v1/questions/{questionID}/media
// @Summary Attach question media
// @Description Attach an image or video to a quiz question. Requires API key authentication.
// @Tags questions
// @Accept json
// @Produce json
// @Param questionID path string true "Question ID"
// @Param request body models.CreateQuestionMediaRequest true "Question media"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /questions/{questionID}/media [post]
func (h *ContentHandler) CreateQuestionMedia(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")

	var req models.CreateQuestionMediaRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MediaType == "" || req.FileReference == "" {
		h.respondError(w, http.StatusBadRequest, "media_type and file_reference are required")
		return
	}

	id, err := h.store.CreateQuestionMedia(r.Context(), req.ToQuestionMedia(questionID))
	if err != nil {
		h.respondStoreError(w, r, err, "failed to create question media")
		return
	}

	h.respondJSON(w, http.StatusCreated, models.CreatedResponse{ID: id})
}
