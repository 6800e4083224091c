package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/agrifield/agridir-be/internal/http/respond"
	"github.com/agrifield/agridir-be/internal/media"
	"github.com/agrifield/agridir-be/internal/middleware"
)

// MediaHandler hands out presigned upload URLs for directory images.
type MediaHandler struct {
	// nil when object storage is not configured; the endpoint then answers 503.
	presigner *media.Presigner
}

// NewMediaHandler constructs the handler.
func NewMediaHandler(presigner *media.Presigner) *MediaHandler {
	return &MediaHandler{presigner: presigner}
}

// Register attaches the uploads route to the mux.
func (h *MediaHandler) Register(mux *http.ServeMux, session *middleware.Session) {
	mux.Handle("POST /uploads", adminOnly(session, h.handleCreateUpload))
}

type uploadRequest struct {
	ContentType string `json:"contentType"`
}

func (h *MediaHandler) handleCreateUpload(w http.ResponseWriter, r *http.Request) {
	if h.presigner == nil {
		respond.Error(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		respond.Error(w, http.StatusBadRequest, "missing required fields: contentType")
		return
	}

	upload, err := h.presigner.PresignPut(r.Context(), contentType)
	if err != nil {
		slog.Error("presign upload failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while creating upload")
		return
	}
	respond.JSON(w, http.StatusOK, upload)
}
