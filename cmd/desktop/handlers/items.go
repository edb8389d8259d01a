package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/restolog/restolog/internal/checklist"
	apperrors "github.com/restolog/restolog/internal/errors"
)

// ItemHandler handles operations on the four parallel item lists.
type ItemHandler struct {
	repo   *checklist.Repository
	notify Notifier
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(repo *checklist.Repository, notify Notifier) *ItemHandler {
	return &ItemHandler{repo: repo, notify: notify}
}

// Append handles POST /checklists/{id}/items
func (h *ItemHandler) Append(w http.ResponseWriter, r *http.Request) {
	var request struct {
		List string `json:"list"`
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}
	list, err := checklist.ParseItemList(request.List)
	if err != nil {
		writeError(w, err)
		return
	}

	cl, err := h.repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	cl, err = h.repo.AppendItem(r.Context(), cl, list, request.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	h.notify.Publish("item.appended", map[string]interface{}{
		"id":   cl.ID,
		"list": string(list),
	})
	writeJSON(w, http.StatusOK, cl)
}

// Toggle handles POST /checklists/{id}/items/{itemID}/toggle
func (h *ItemHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	list, err := checklist.ParseItemList(r.URL.Query().Get("list"))
	if err != nil {
		writeError(w, err)
		return
	}

	cl, err := h.repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	cl, err = h.repo.ToggleItem(r.Context(), cl, list, r.PathValue("itemID"))
	if err != nil {
		writeError(w, err)
		return
	}

	h.notify.Publish("item.toggled", map[string]interface{}{
		"id":      cl.ID,
		"list":    string(list),
		"item_id": r.PathValue("itemID"),
	})
	writeJSON(w, http.StatusOK, cl)
}
