package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/restolog/restolog/internal/checklist"
	apperrors "github.com/restolog/restolog/internal/errors"
	"github.com/restolog/restolog/internal/models"
)

// ChecklistHandler handles checklist CRUD operations.
type ChecklistHandler struct {
	repo   *checklist.Repository
	notify Notifier
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(repo *checklist.Repository, notify Notifier) *ChecklistHandler {
	return &ChecklistHandler{repo: repo, notify: notify}
}

// List handles GET /checklists
func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.repo.ListSummaries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"checklists": summaries,
		"total":      len(summaries),
	})
}

// Create handles POST /checklists
func (h *ChecklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Title       string             `json:"title"`
		VehicleInfo models.VehicleInfo `json:"vehicle_info"`
		EngineInfo  models.EngineInfo  `json:"engine_info"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}

	cl, err := h.repo.Create(r.Context(), request.Title, request.VehicleInfo, request.EngineInfo)
	if err != nil {
		writeError(w, err)
		return
	}

	h.notify.Publish("checklist.created", map[string]interface{}{
		"id":    cl.ID,
		"title": cl.Title,
	})
	writeJSON(w, http.StatusCreated, cl)
}

// Get handles GET /checklists/{id}
func (h *ChecklistHandler) Get(w http.ResponseWriter, r *http.Request) {
	cl, err := h.repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cl)
}

// Delete handles DELETE /checklists/{id}
func (h *ChecklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	h.notify.Publish("checklist.deleted", map[string]interface{}{"id": id})
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "deleted"})
}
