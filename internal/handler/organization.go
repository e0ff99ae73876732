// internal/handler/organization.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/surveyhive/surveyhive/internal/middleware"
	"github.com/surveyhive/surveyhive/internal/model"
	"github.com/surveyhive/surveyhive/internal/service"
)

type OrganizationHandler struct {
	orgService        *service.OrganizationService
	invitationService *service.InvitationService
}

func NewOrganizationHandler(orgService *service.OrganizationService, invitationService *service.InvitationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService:        orgService,
		invitationService: invitationService,
	}
}

func orgID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.orgService.CreateOrganization(r.Context(), middleware.CurrentUser(r.Context()), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, org)
}

func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := orgID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	var input service.UpdateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.orgService.UpdateOrganization(r.Context(), middleware.CurrentUser(r.Context()), id, input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, org)
}

type DeleteInput struct {
	Reason string `json:"reason"`
}

func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := orgID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	var input DeleteInput
	// Reason is optional; a missing body is fine
	_ = json.NewDecoder(r.Body).Decode(&input)
	defer r.Body.Close()

	if err := h.orgService.DeleteOrganization(r.Context(), middleware.CurrentUser(r.Context()), id, input.Reason); err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *OrganizationHandler) Members(w http.ResponseWriter, r *http.Request) {
	id, ok := orgID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	members, err := h.orgService.Members(r.Context(), middleware.CurrentUser(r.Context()), id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, members)
}

type AddMemberInput struct {
	UserID uuid.UUID  `json:"user_id"`
	Role   model.Role `json:"role"`
}

type AddMemberResponse struct {
	BaseResponse
	Membership *model.Membership `json:"membership"`
	// AlreadyMember flags the idempotent outcome so the UI can show an
	// informational notice instead of an error.
	AlreadyMember bool `json:"already_member"`
}

func (h *OrganizationHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, ok := orgID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	var input AddMemberInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	membership, created, err := h.orgService.AddUser(r.Context(), middleware.CurrentUser(r.Context()), id, input.UserID, input.Role)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	respondWithJSON(w, status, AddMemberResponse{
		BaseResponse:  BaseResponse{Ok: true},
		Membership:    membership,
		AlreadyMember: !created,
	})
}

func (h *OrganizationHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := orgID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.orgService.RemoveUser(r.Context(), middleware.CurrentUser(r.Context()), id, userID); err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *OrganizationHandler) Invite(w http.ResponseWriter, r *http.Request) {
	id, ok := orgID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	var input service.InviteToOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	inv, err := h.invitationService.InviteToOrganization(r.Context(), middleware.CurrentUser(r.Context()), id, input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, inv)
}

type AcceptInvitationInput struct {
	Key string `json:"key"`
}

func (h *OrganizationHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var input AcceptInvitationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	membership, err := h.invitationService.AcceptOrgInvitation(r.Context(), middleware.CurrentUser(r.Context()), input.Key)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, membership)
}

func (h *OrganizationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgService.UserOrganization(r.Context(), middleware.CurrentUser(r.Context()))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if org == nil {
		respondWithError(w, http.StatusNotFound, "Not found")
		return
	}
	respondWithJSON(w, http.StatusOK, org)
}
