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

// DistributorHandler owns the distributor directory endpoints. Reads are
// public; mutations require an admin session.
type DistributorHandler struct {
	store    storage.DistributorStore
	activity storage.ActivityStore
}

// NewDistributorHandler constructs the handler.
func NewDistributorHandler(store storage.DistributorStore, activity storage.ActivityStore) *DistributorHandler {
	return &DistributorHandler{store: store, activity: activity}
}

// Register attaches distributor routes to the mux.
func (h *DistributorHandler) Register(mux *http.ServeMux, session *middleware.Session) {
	mux.HandleFunc("GET /distributors", h.handleList)
	mux.HandleFunc("GET /distributors/{id}", h.handleGet)
	mux.Handle("POST /distributors", adminOnly(session, h.handleCreate))
	mux.Handle("PUT /distributors/{id}", adminOnly(session, h.handleUpdate))
	mux.Handle("DELETE /distributors/{id}", adminOnly(session, h.handleDelete))
}

func (h *DistributorHandler) handleList(w http.ResponseWriter, r *http.Request) {
	distributors, err := h.store.ListDistributors(r.Context())
	if err != nil {
		slog.Error("list distributors failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while getting distributors")
		return
	}
	respond.JSON(w, http.StatusOK, distributors)
}

func (h *DistributorHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.GetDistributor(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Distributor not found")
			return
		}
		slog.Error("get distributor failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while getting distributor")
		return
	}
	respond.JSON(w, http.StatusOK, d)
}

func (h *DistributorHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeDistributorInput(w, r)
	if !ok {
		return
	}
	d, err := h.store.CreateDistributor(r.Context(), distributorFromInput("", input))
	if err != nil {
		slog.Error("create distributor failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while creating distributor")
		return
	}
	h.recordActivity(r, "distributor created", d.Name)
	respond.JSON(w, http.StatusCreated, d)
}

func (h *DistributorHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeDistributorInput(w, r)
	if !ok {
		return
	}
	d, err := h.store.UpdateDistributor(r.Context(), distributorFromInput(r.PathValue("id"), input))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Distributor not found")
			return
		}
		slog.Error("update distributor failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while updating distributor")
		return
	}
	h.recordActivity(r, "distributor updated", d.Name)
	respond.JSON(w, http.StatusOK, d)
}

func (h *DistributorHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteDistributor(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Distributor not found")
			return
		}
		slog.Error("delete distributor failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error while deleting distributor")
		return
	}
	h.recordActivity(r, "distributor deleted", id)
	respond.Message(w, http.StatusOK, "Distributor deleted successfully")
}

func (h *DistributorHandler) recordActivity(r *http.Request, action, subject string) {
	entry := models.ActivityLog{Action: action, Details: fmt.Sprintf("distributor: %s", subject)}
	if user, ok := middleware.Identity(r.Context()); ok {
		entry.UserID = user.ID
		entry.Email = user.Email
	}
	if _, err := h.activity.AppendActivity(r.Context(), entry); err != nil {
		slog.Warn("record activity failed", "action", action, "error", err)
	}
}

func decodeDistributorInput(w http.ResponseWriter, r *http.Request) (dto.DistributorInput, bool) {
	var input dto.DistributorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return dto.DistributorInput{}, false
	}
	if err := input.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return dto.DistributorInput{}, false
	}
	return input, true
}

func distributorFromInput(id string, in dto.DistributorInput) models.Distributor {
	return models.Distributor{
		ID:             id,
		Name:           in.Name,
		Address:        in.Address,
		SupportedCrops: in.SupportedCrops,
		Contact:        in.Contact,
		Region:         in.Region,
		State:          in.State,
		City:           in.City,
		Image:          in.Image,
	}
}
