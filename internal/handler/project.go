// internal/handler/project.go
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

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func projectID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateProjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	project, err := h.projectService.CreateProject(r.Context(), middleware.CurrentUser(r.Context()), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var input service.UpdateProjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	project, err := h.projectService.UpdateProject(r.Context(), middleware.CurrentUser(r.Context()), id, input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var input DeleteInput
	_ = json.NewDecoder(r.Body).Decode(&input)
	defer r.Body.Close()

	if err := h.projectService.DeleteProject(r.Context(), middleware.CurrentUser(r.Context()), id, input.Reason); err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.UserProjects(r.Context(), middleware.CurrentUser(r.Context()))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, projects)
}

type GrantInput struct {
	UserID uuid.UUID             `json:"user_id"`
	Level  model.PermissionLevel `json:"level"`
}

func (h *ProjectHandler) Grant(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var input GrantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	grant, err := h.projectService.GrantPermission(r.Context(), middleware.CurrentUser(r.Context()), id, input.UserID, input.Level)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, grant)
}

func (h *ProjectHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.projectService.RevokePermission(r.Context(), middleware.CurrentUser(r.Context()), id, userID); err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
