// internal/service/project.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/surveyhive/surveyhive/internal/audit"
	"github.com/surveyhive/surveyhive/internal/domain"
	"github.com/surveyhive/surveyhive/internal/model"
	"github.com/surveyhive/surveyhive/internal/rbac"
	"github.com/surveyhive/surveyhive/internal/repository"
)

type ProjectService struct {
	projects repository.ProjectRepositoryIface
	orgs     repository.OrganizationRepositoryIface
	resolver *rbac.Resolver
	cascade  *CascadeCalculator
	auditor  audit.Logger
	validate *validator.Validate
}

func NewProjectService(
	projects repository.ProjectRepositoryIface,
	orgs repository.OrganizationRepositoryIface,
	resolver *rbac.Resolver,
	cascade *CascadeCalculator,
	auditor audit.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		orgs:     orgs,
		resolver: resolver,
		cascade:  cascade,
		auditor:  auditor,
		validate: validator.New(),
	}
}

type CreateProjectInput struct {
	Name           string    `json:"name" validate:"required"`
	Description    string    `json:"description"`
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
}

// CreateProject is admin-only in the owning organization. If the creator
// were a project manager an implicit edit grant is recorded so the grant
// table stays authoritative; under the admin-only rule creators are
// admins and no grant row is written.
func (s *ProjectService) CreateProject(ctx context.Context, actor *model.User, input CreateProjectInput) (*model.Project, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	org, err := s.orgs.FindByID(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermCreate, org, func(ctx context.Context) (bool, error) {
		return s.resolver.CanCreateProject(ctx, actor, org.ID)
	})
	if err != nil {
		return nil, logDenied(ctx, s.auditor, org, err)
	}

	project := &model.Project{
		OrganizationID: org.ID,
		Name:           input.Name,
		Description:    input.Description,
		CreatedByID:    actor.ID,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	role, err := s.resolver.RoleInOrganization(ctx, actor, org.ID)
	if err != nil {
		return nil, err
	}
	if role == model.RoleProjectManager {
		grant := &model.ProjectGrant{
			ProjectID:   project.ID,
			UserID:      actor.ID,
			Level:       model.LevelEdit,
			GrantedByID: actor.ID,
		}
		if err := s.projects.UpsertGrant(ctx, grant); err != nil {
			return nil, fmt.Errorf("recording creator grant: %w", err)
		}
	}

	return project, nil
}

type UpdateProjectInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateProject requires edit capability on the project.
func (s *ProjectService) UpdateProject(ctx context.Context, actor *model.User, projectID uuid.UUID, input UpdateProjectInput) (*model.Project, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermEdit, project, func(ctx context.Context) (bool, error) {
		return s.resolver.CanEditProject(ctx, actor, project)
	})
	if err != nil {
		return nil, logDenied(ctx, s.auditor, project, err)
	}

	project.Name = input.Name
	project.Description = input.Description
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject is admin-only. Cascade impact is computed before the
// delete and audited best-effort.
func (s *ProjectService) DeleteProject(ctx context.Context, actor *model.User, projectID uuid.UUID, reason string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermDelete, project, func(ctx context.Context) (bool, error) {
		return s.resolver.CanDeleteProject(ctx, actor, project)
	})
	if err != nil {
		return logDenied(ctx, s.auditor, project, err)
	}

	impact, err := s.cascade.ForProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("computing cascade impact: %w", err)
	}

	if err := s.projects.Delete(ctx, project.ID); err != nil {
		return err
	}

	if err := s.auditor.LogEntityDelete(ctx, actor.ID.String(), project, reason, impact.Map()); err != nil {
		slog.WarnContext(ctx, "audit log write failed", "error", err, "project", project.ID)
	}

	return nil
}

// GrantPermission gives a project manager view or edit access to the
// project. The grantee must hold the project-manager role in the owning
// organization; admins need no grants and cannot receive one.
func (s *ProjectService) GrantPermission(ctx context.Context, actor *model.User, projectID uuid.UUID, grantee uuid.UUID, level model.PermissionLevel) (*model.ProjectGrant, error) {
	if !level.Valid() {
		return nil, domain.ErrInvalidPermissionLevel
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermEdit, project, func(ctx context.Context) (bool, error) {
		return s.resolver.CanEditProject(ctx, actor, project)
	})
	if err != nil {
		return nil, logDenied(ctx, s.auditor, project, err)
	}

	granteeRole, err := s.orgs.GetRole(ctx, grantee, project.OrganizationID)
	if err != nil {
		return nil, err
	}
	if granteeRole != model.RoleProjectManager {
		return nil, domain.ErrInvalidGrantee
	}

	grant := &model.ProjectGrant{
		ProjectID:   project.ID,
		UserID:      grantee,
		Level:       level,
		GrantedByID: actor.ID,
	}

	if err := s.projects.UpsertGrant(ctx, grant); err != nil {
		return nil, err
	}

	if err := s.auditor.LogMembershipChange(ctx, model.ActionGrantChange, actor.ID.String(), grantee.String(), project); err != nil {
		slog.WarnContext(ctx, "audit log write failed", "error", err, "project", project.ID)
	}

	return grant, nil
}

// RevokePermission removes the grantee's access; revoking an absent
// grant is a no-op.
func (s *ProjectService) RevokePermission(ctx context.Context, actor *model.User, projectID uuid.UUID, grantee uuid.UUID) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermEdit, project, func(ctx context.Context) (bool, error) {
		return s.resolver.CanEditProject(ctx, actor, project)
	})
	if err != nil {
		return logDenied(ctx, s.auditor, project, err)
	}

	if err := s.projects.RemoveGrant(ctx, grantee, project.ID); err != nil {
		return err
	}

	if err := s.auditor.LogMembershipChange(ctx, model.ActionGrantChange, actor.ID.String(), grantee.String(), project); err != nil {
		slog.WarnContext(ctx, "audit log write failed", "error", err, "project", project.ID)
	}

	return nil
}

// UserPermission returns the user's grant for the project, or nil.
func (s *ProjectService) UserPermission(ctx context.Context, userID, projectID uuid.UUID) (*model.ProjectGrant, error) {
	return s.projects.GetGrant(ctx, userID, projectID)
}

// UserProjects returns the projects the user can reach: everything in
// organizations where they are admin, plus explicit grants elsewhere.
func (s *ProjectService) UserProjects(ctx context.Context, user *model.User) ([]*model.Project, error) {
	if user.IsAnonymous() {
		return nil, nil
	}

	orgs, err := s.orgs.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	var result []*model.Project

	for _, org := range orgs {
		role, err := s.orgs.GetRole(ctx, user.ID, org.ID)
		if err != nil {
			return nil, err
		}
		if role != model.RoleAdmin {
			continue
		}
		projects, err := s.projects.FindByOrganization(ctx, org.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			if !seen[p.ID] {
				seen[p.ID] = true
				result = append(result, p)
			}
		}
	}

	granted, err := s.projects.FindGranted(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range granted {
		if !seen[p.ID] {
			seen[p.ID] = true
			result = append(result, p)
		}
	}

	return result, nil
}
