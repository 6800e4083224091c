package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/agrifield/agridir-be/internal/http/respond"
	"github.com/agrifield/agridir-be/internal/middleware"
	"github.com/agrifield/agridir-be/internal/storage"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 500
)

// LogsHandler exposes the activity log to admins.
type LogsHandler struct {
	activity storage.ActivityStore
}

// NewLogsHandler constructs the handler.
func NewLogsHandler(activity storage.ActivityStore) *LogsHandler {
	return &LogsHandler{activity: activity}
}

// Register attaches the logs route to the mux.
func (h *LogsHandler) Register(mux *http.ServeMux, session *middleware.Session) {
	mux.Handle("GET /logs", adminOnly(session, h.handleList))
}

func (h *LogsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respond.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, maxLogLimit)
	}

	logs, err := h.activity.ListActivity(r.Context(), limit)
	if err != nil {
		slog.Error("list activity failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while getting logs")
		return
	}
	respond.JSON(w, http.StatusOK, logs)
}
