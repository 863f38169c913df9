package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/trainerlms/backend/internal/models"
	"github.com/trainerlms/backend/internal/services"
)

const healthProbeTimeout = 2 * time.Second

var knownCollections = map[string]bool{
	models.CollectionModuleContent: true,
	models.CollectionMediaFiles:    true,
	models.CollectionQuestionMedia: true,
}

// Health handles GET /health
// @Summary Service health
// @Description Report the content store connection state. Never triggers a reconnect.
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *ContentHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
	defer cancel()

	connected := h.store.IsConnected(ctx)
	state := h.store.State()

	resp := models.HealthResponse{Status: "ok", Store: state.String(), Connected: connected}
	if connected {
		if version, ok := h.store.CurrentServerVersion(ctx); ok {
			resp.ServerVersion = version
		}
	} else if state != services.StateUnconfigured {
		resp.Status = "degraded"
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GetCollectionStats handles GET /api/v1/stats/{collection}
// @Summary Collection statistics
// @Description Get document count and storage sizes of a content collection. Requires API key authentication.
// @Tags stats
// @Produce json
// @Param collection path string true "Collection name" Enums(module_content_items, media_files, test_question_media)
// @Success 200 {object} models.CollectionStats
// @Failure 400 {object} map[string]string "Unknown collection"
// @Failure 401 {object} map[string]string "Invalid or missing API key"
// @Failure 503 {object} map[string]string "Content store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /stats/{collection} [get]
func (h *ContentHandler) GetCollectionStats(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	if !knownCollections[collection] {
		h.respondError(w, http.StatusBadRequest, "unknown collection")
		return
	}

	stats, err := h.store.CollectionStats(r.Context(), collection)
	if err != nil {
		h.respondStoreError(w, r, err, "failed to get collection stats")
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}
