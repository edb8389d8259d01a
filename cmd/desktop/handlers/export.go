package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/restolog/restolog/internal/errors"
	"github.com/restolog/restolog/internal/export"
)

// ExportHandler handles archive export/import requests.
type ExportHandler struct {
	service *export.Service
	notify  Notifier
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(service *export.Service, notify Notifier) *ExportHandler {
	return &ExportHandler{service: service, notify: notify}
}

// Export handles POST /export
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Path     string `json:"path"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}
	if request.Path == "" {
		writeError(w, apperrors.New(apperrors.ErrInvalid, "path is required"))
		return
	}

	result, err := h.service.Export(r.Context(), request.Path, request.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.notify.Publish("export.completed", map[string]interface{}{
		"file_path":  result.FilePath,
		"size_bytes": result.SizeBytes,
		"checklists": result.ChecklistCount,
		"checksum":   result.Checksum,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"file_path":  result.FilePath,
		"size_bytes": result.SizeBytes,
		"checklists": result.ChecklistCount,
		"checksum":   result.Checksum,
		"encrypted":  result.Encrypted,
	})
}

// Import handles POST /import
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Path     string `json:"path"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "invalid request body", err))
		return
	}
	if request.Path == "" {
		writeError(w, apperrors.New(apperrors.ErrInvalid, "path is required"))
		return
	}

	result, err := h.service.Import(r.Context(), request.Path, request.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.notify.Publish("import.completed", map[string]interface{}{
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
}
