package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/surveyhive/surveyhive/internal/domain"
)

type ErrorResponse struct {
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
}

type BaseResponse struct {
	Ok bool `json:"ok"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// If encoding fails, logs the error and sends a plain text response
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// respondWithDomainError maps domain errors onto HTTP statuses. Denials
// stay generic on purpose: the response never explains why access was
// refused.
func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		respondWithError(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOrganizationNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrSurveyNotFound),
		errors.Is(err, domain.ErrInvitationNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidPermissionLevel),
		errors.Is(err, domain.ErrInvalidGrantee),
		errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvitationExpired):
		respondWithError(w, http.StatusGone, "Invitation expired")
	case errors.Is(err, domain.ErrInvitationUsed):
		respondWithError(w, http.StatusConflict, "Invitation already used")
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
