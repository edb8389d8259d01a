package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/restolog/restolog/internal/checklist"
	apperrors "github.com/restolog/restolog/internal/errors"
	"github.com/restolog/restolog/internal/media"
)

// PhotoHandler handles photo attachment operations.
type PhotoHandler struct {
	repo   *checklist.Repository
	notify Notifier
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(repo *checklist.Repository, notify Notifier) *PhotoHandler {
	return &PhotoHandler{repo: repo, notify: notify}
}

// Add handles POST /checklists/{id}/photos
func (h *PhotoHandler) Add(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Base64Data string `json:"base64_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}

	// Reject payloads that don't decode as an image before they reach
	// the store; the core itself stores payloads opaquely.
	if _, _, _, err := media.Validate(request.Base64Data); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrMediaInvalid, "invalid photo payload", err))
		return
	}

	cl, err := h.repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	cl, err = h.repo.AddPhoto(r.Context(), cl, request.Base64Data)
	if err != nil {
		writeError(w, err)
		return
	}

	h.notify.Publish("photo.added", map[string]interface{}{"id": cl.ID})
	writeJSON(w, http.StatusOK, cl)
}

// UpdateDescription handles PATCH /checklists/{id}/photos/{photoID}
func (h *PhotoHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}

	cl, err := h.repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	cl, err = h.repo.UpdatePhotoDescription(r.Context(), cl, r.PathValue("photoID"), request.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	h.notify.Publish("photo.updated", map[string]interface{}{
		"id":       cl.ID,
		"photo_id": r.PathValue("photoID"),
	})
	writeJSON(w, http.StatusOK, cl)
}

// Delete handles DELETE /checklists/{id}/photos/{photoID}
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cl, err := h.repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	cl, err = h.repo.DeletePhoto(r.Context(), cl, r.PathValue("photoID"))
	if err != nil {
		writeError(w, err)
		return
	}

	h.notify.Publish("photo.deleted", map[string]interface{}{
		"id":       cl.ID,
		"photo_id": r.PathValue("photoID"),
	})
	writeJSON(w, http.StatusOK, cl)
}

// Thumbnail handles GET /checklists/{id}/photos/{photoID}/thumbnail
// Query parameters w and h bound the thumbnail (default 200x200).
func (h *PhotoHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	cl, err := h.repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	photoID := r.PathValue("photoID")
	for _, p := range cl.Photos {
		if p.ID != photoID {
			continue
		}
		width := dimension(r.URL.Query().Get("w"), 200)
		height := dimension(r.URL.Query().Get("h"), 200)
		thumb, err := media.Thumbnail(p.Base64Data, width, height)
		if err != nil {
			writeError(w, apperrors.Wrap(apperrors.ErrMediaInvalid, "failed to generate thumbnail", err))
			return
		}
		raw, _ := base64.StdEncoding.DecodeString(thumb)
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(http.StatusOK)
		w.Write(raw)
		return
	}
	writeError(w, apperrors.New(apperrors.ErrNotFound, "photo "+photoID+" not found"))
}

func dimension(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 2048 {
		return fallback
	}
	return n
}
