package server

import (
	"encoding/json"
	"net/http"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
)

const contentTypeJSON = "application/json; charset=utf-8"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError translates sentinel errors into HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errs.Is(err, errs.ErrInvalidRequest):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrTemplateNotFound):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrInvalidCredentials), errs.Is(err, errs.ErrInvalidToken):
		return http.StatusUnauthorized
	case errs.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errs.Is(err, errs.ErrSessionNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrNotReady):
		return http.StatusConflict
	case errs.Is(err, errs.ErrTimeout):
		return http.StatusGatewayTimeout
	case errs.Is(err, errs.ErrSendFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
