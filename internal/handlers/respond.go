package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"weddinghub/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError sends a JSON error body. Internal detail stays in the
// server log; the client only sees userMsg.
func respondError(w http.ResponseWriter, status int, userMsg string, err error) {
	if err != nil {
		log.Printf("%s: %v", userMsg, err)
	}
	respondJSON(w, status, map[string]string{"error": userMsg})
}

// respondServiceError maps service sentinel errors onto HTTP statuses.
// Unrecognized errors become opaque 500s.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found", nil)
	case errors.Is(err, service.ErrMalformedInput):
		respondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrConflict):
		respondError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid email or password", nil)
	case errors.Is(err, service.ErrLockedOut):
		respondError(w, http.StatusTooManyRequests, "too many failed attempts, try again later", nil)
	case errors.Is(err, service.ErrNotAuthorized):
		respondError(w, http.StatusForbidden, "not authorized", nil)
	default:
		respondError(w, http.StatusInternalServerError, "internal server error", err)
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
