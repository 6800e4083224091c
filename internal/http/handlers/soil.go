package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/agrifield/agridir-be/internal/http/respond"
	"github.com/agrifield/agridir-be/internal/middleware"
	"github.com/agrifield/agridir-be/internal/models"
	"github.com/agrifield/agridir-be/internal/models/dto"
	"github.com/agrifield/agridir-be/internal/storage"
)

// SoilHandler owns the soil directory endpoints. Reads are public; mutations
// require an admin session.
type SoilHandler struct {
	store    storage.SoilStore
	activity storage.ActivityStore
}

// NewSoilHandler constructs the handler.
func NewSoilHandler(store storage.SoilStore, activity storage.ActivityStore) *SoilHandler {
	return &SoilHandler{store: store, activity: activity}
}

// Register attaches soil routes to the mux.
func (h *SoilHandler) Register(mux *http.ServeMux, session *middleware.Session) {
	mux.HandleFunc("GET /soil", h.handleList)
	mux.HandleFunc("GET /soil/{id}", h.handleGet)
	mux.Handle("POST /soil", adminOnly(session, h.handleCreate))
	mux.Handle("PUT /soil/{id}", adminOnly(session, h.handleUpdate))
	mux.Handle("DELETE /soil/{id}", adminOnly(session, h.handleDelete))
}

func (h *SoilHandler) handleList(w http.ResponseWriter, r *http.Request) {
	soils, err := h.store.ListSoilTypes(r.Context())
	if err != nil {
		slog.Error("list soils failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while getting soils")
		return
	}
	respond.JSON(w, http.StatusOK, soils)
}

func (h *SoilHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	soil, err := h.store.GetSoilType(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Soil not found")
			return
		}
		slog.Error("get soil failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while getting soil")
		return
	}
	respond.JSON(w, http.StatusOK, soil)
}

func (h *SoilHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeSoilInput(w, r)
	if !ok {
		return
	}
	soil, err := h.store.CreateSoilType(r.Context(), soilFromInput("", input))
	if err != nil {
		slog.Error("create soil failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while creating soil")
		return
	}
	h.recordActivity(r, "soil created", soil.Type)
	respond.JSON(w, http.StatusCreated, soil)
}

func (h *SoilHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeSoilInput(w, r)
	if !ok {
		return
	}
	soil, err := h.store.UpdateSoilType(r.Context(), soilFromInput(r.PathValue("id"), input))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Soil not found")
			return
		}
		slog.Error("update soil failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while updating soil")
		return
	}
	h.recordActivity(r, "soil updated", soil.Type)
	respond.JSON(w, http.StatusOK, soil)
}

func (h *SoilHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteSoilType(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Soil not found")
			return
		}
		slog.Error("delete soil failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while deleting soil")
		return
	}
	h.recordActivity(r, "soil deleted", id)
	respond.Message(w, http.StatusOK, "Soil deleted successfully")
}

func (h *SoilHandler) recordActivity(r *http.Request, action, subject string) {
	entry := models.ActivityLog{Action: action, Details: fmt.Sprintf("soil: %s", subject)}
	if user, ok := middleware.Identity(r.Context()); ok {
		entry.UserID = user.ID
		entry.Email = user.Email
	}
	if _, err := h.activity.AppendActivity(r.Context(), entry); err != nil {
		slog.Warn("record activity failed", "action", action, "error", err)
	}
}

func decodeSoilInput(w http.ResponseWriter, r *http.Request) (dto.SoilTypeInput, bool) {
	var input dto.SoilTypeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return dto.SoilTypeInput{}, false
	}
	if err := input.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return dto.SoilTypeInput{}, false
	}
	return input, true
}

func soilFromInput(id string, in dto.SoilTypeInput) models.SoilType {
	return models.SoilType{
		ID:              id,
		Type:            in.Type,
		Characteristics: in.Characteristics,
		SuitableCrops:   in.SuitableCrops,
		Region:          in.Region,
		Image:           in.Image,
		PH:              in.PH,
		NutrientContent: in.NutrientContent,
		WaterRetention:  in.WaterRetention,
		Cultivation:     in.Cultivation,
	}
}

// adminOnly chains the session middleware and the admin gate in front of fn.
func adminOnly(session *middleware.Session, fn http.HandlerFunc) http.Handler {
	return session.Protect(session.RequireAdmin(fn))
}
