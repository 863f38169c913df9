package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trainerlms/backend/internal/middlewares"
	"github.com/trainerlms/backend/internal/services"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError maps a content store error to a status code:
// 400 for a malformed id, 503 while the store is disabled or unreachable, 500 otherwise
func (h *BaseHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var storeErr *services.StoreError
	if !errors.As(err, &storeErr) {
		h.logServerError(r, err, message)
		h.respondError(w, http.StatusInternalServerError, message)
		return
	}

	switch storeErr.Code {
	case services.CodeInvalidID:
		h.respondError(w, http.StatusBadRequest, "invalid id")
	case services.CodeNotConfigured, services.CodeConnectionFailed:
		h.respondError(w, http.StatusServiceUnavailable, "content store unavailable")
	default:
		h.logServerError(r, err, message)
		h.respondError(w, http.StatusInternalServerError, message)
	}
}

func (h *BaseHandler) logServerError(r *http.Request, err error, message string) {
	h.logger.Error(message,
		zap.String("request_id", middlewares.GetRequestID(r.Context())),
		zap.Error(err),
	)
}

// decodeJSON decodes the request body into dst
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
