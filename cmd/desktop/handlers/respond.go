// Package handlers provides the localhost REST API for the desktop shell.
package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/restolog/restolog/internal/errors"
)

// Notifier publishes mutation events to connected clients. The desktop
// binary backs it with the WebSocket hub; tests use a no-op.
type Notifier interface {
	Publish(eventType string, data map[string]interface{})
}

// NopNotifier discards all events.
type NopNotifier struct{}

// Publish implements Notifier.
func (NopNotifier) Publish(string, map[string]interface{}) {}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an AppError code onto an HTTP status and emits the
// error envelope the shell expects.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrNotFound:
		status = http.StatusNotFound
	case apperrors.ErrInvalid, apperrors.ErrMediaInvalid:
		status = http.StatusBadRequest
	case apperrors.ErrInvalidPassword:
		status = http.StatusForbidden
	}
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    string(code),
			"message": err.Error(),
		},
	})
}
