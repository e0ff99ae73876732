// internal/handler/survey.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/surveyhive/surveyhive/internal/middleware"
	"github.com/surveyhive/surveyhive/internal/service"
)

type SurveyHandler struct {
	surveyService     *service.SurveyService
	invitationService *service.InvitationService
}

func NewSurveyHandler(surveyService *service.SurveyService, invitationService *service.InvitationService) *SurveyHandler {
	return &SurveyHandler{
		surveyService:     surveyService,
		invitationService: invitationService,
	}
}

func surveyID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateSurveyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	survey, err := h.surveyService.CreateSurvey(r.Context(), middleware.CurrentUser(r.Context()), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, survey)
}

func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := surveyID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid survey id")
		return
	}

	var input service.UpdateSurveyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	survey, err := h.surveyService.UpdateSurvey(r.Context(), middleware.CurrentUser(r.Context()), id, input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, survey)
}

func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := surveyID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid survey id")
		return
	}

	var input DeleteInput
	_ = json.NewDecoder(r.Body).Decode(&input)
	defer r.Body.Close()

	if err := h.surveyService.DeleteSurvey(r.Context(), middleware.CurrentUser(r.Context()), id, input.Reason); err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *SurveyHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	surveys, err := h.surveyService.ProjectSurveys(r.Context(), middleware.CurrentUser(r.Context()), id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, surveys)
}

func (h *SurveyHandler) Invite(w http.ResponseWriter, r *http.Request) {
	id, ok := surveyID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid survey id")
		return
	}

	var input service.InviteParticipantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	inv, err := h.invitationService.InviteParticipant(r.Context(), middleware.CurrentUser(r.Context()), id, input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, inv)
}

// Respond accepts a participant submission through its invitation key.
// This endpoint is public; the token is the only credential.
func (h *SurveyHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var input service.SubmitResponseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	response, err := h.surveyService.SubmitResponse(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, response)
}

// Export authorizes a survey data export and records it in the audit
// trail; the actual formatting is done by the caller.
func (h *SurveyHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := surveyID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid survey id")
		return
	}

	reason := r.URL.Query().Get("reason")

	survey, err := h.surveyService.AuthorizeExport(r.Context(), middleware.CurrentUser(r.Context()), id, reason)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, survey)
}
