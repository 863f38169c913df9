package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trainerlms/backend/internal/models"
)

// ListMediaFiles handles GET /api/v1/media-files
// @Summary List media files by type
// @Description Get all registered media files of a file type
// @Tags media-files
// @Produce json
// @Param type query string true "File type" Enums(video, audio, image, pdf, ppt)
// @Success 200 {array} models.MediaFile
// @Failure 400 {object} map[string]string "Missing type parameter"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /media-files [get]
func (h *ContentHandler) ListMediaFiles(w http.ResponseWriter, r *http.Request) {
	fileType := r.URL.Query().Get("type")
	if fileType == "" {
		h.respondError(w, http.StatusBadRequest, "type query parameter is required")
		return
	}

	files, err := h.store.MediaFilesByType(r.Context(), models.FileType(fileType))
	if err != nil {
		h.respondStoreError(w, r, err, "failed to get media files")
		return
	}

	h.respondJSON(w, http.StatusOK, files)
}

// GetMediaFile handles GET /api/v1/media-files/{id}
// @Summary Get media file
// @Description Get a registered media file by ID
// @Tags media-files
// @Produce json
// @Param id path string true "Media file ID"
// @Success 200 {object} models.MediaFile
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Media file not found"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /media-files/{id} [get]
func (h *ContentHandler) GetMediaFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	file, err := h.store.MediaFile(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err, "failed to get media file")
		return
	}
	if file == nil {
		h.respondError(w, http.StatusNotFound, "media file not found")
		return
	}

	h.respondJSON(w, http.StatusOK, file)
}

// CreateMediaFile handles POST /api/v1/media-files
// @Summary Register media file
// @Description Register an uploaded media asset. Requires API key authentication.
// @Tags media-files
// @Accept json
// @Produce json
// @Param request body models.CreateMediaFileRequest true "Media file"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid or missing API key"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /media-files [post]
func (h *ContentHandler) CreateMediaFile(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMediaFileRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FileType == "" || req.Title == "" || req.FilePath == "" {
		h.respondError(w, http.StatusBadRequest, "file_type, title and file_path are required")
		return
	}

	id, err := h.store.CreateMediaFile(r.Context(), req.ToMediaFile())
	if err != nil {
		h.respondStoreError(w, r, err, "failed to create media file")
		return
	}

	h.respondJSON(w, http.StatusCreated, models.CreatedResponse{ID: id})
}

// UpdateMediaFile handles PATCH /api/v1/media-files/{id}
// @Summary Update media file
// @Description Merge the given fields into a media file, e.g. its encoding status. Requires API key authentication.
// @Tags media-files
// @Accept json
// @Produce json
// @Param id path string true "Media file ID"
// @Param request body models.MediaFilePatch true "Fields to change"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid ID or request body"
// @Failure 404 {object} map[string]string "Media file not found or unchanged"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /media-files/{id} [patch]
func (h *ContentHandler) UpdateMediaFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.MediaFilePatch
	if err := decodeJSON(r, &patch); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.IsEmpty() {
		h.respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	updated, err := h.store.UpdateMediaFile(r.Context(), id, patch)
	if err != nil {
		h.respondStoreError(w, r, err, "failed to update media file")
		return
	}
	if !updated {
		h.respondError(w, http.StatusNotFound, "media file not found or unchanged")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "media file updated"})
}

// DeleteMediaFile handles DELETE /api/v1/media-files/{id}
// @Summary Delete media file
// @Description Remove a media file record. Requires API key authentication.
// @Tags media-files
// @Param id path string true "Media file ID"
// @Success 204 "Media file deleted"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Media file not found"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /media-files/{id} [delete]
func (h *ContentHandler) DeleteMediaFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.store.DeleteMediaFile(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err, "failed to delete media file")
		return
	}
	if !deleted {
		h.respondError(w, http.StatusNotFound, "media file not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
