// internal/rbac/resolver.go
package rbac

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/surveyhive/surveyhive/internal/model"
	"github.com/surveyhive/surveyhive/internal/repository"
)

// Resolver computes a user's effective capability for organizations,
// projects and surveys by walking the ownership hierarchy. Every check is
// scoped to the resource's own organization: a user may be admin in one
// organization and project manager in another, and neither role leaks
// across that boundary.
type Resolver struct {
	orgs     repository.OrganizationRepositoryIface
	projects repository.ProjectRepositoryIface
}

func NewResolver(orgs repository.OrganizationRepositoryIface, projects repository.ProjectRepositoryIface) *Resolver {
	return &Resolver{orgs: orgs, projects: projects}
}

// RoleInOrganization returns the user's role in the organization, or ""
// when the user is not a member or is anonymous.
func (r *Resolver) RoleInOrganization(ctx context.Context, user *model.User, orgID uuid.UUID) (model.Role, error) {
	if user.IsAnonymous() {
		return "", nil
	}
	role, err := r.orgs.GetRole(ctx, user.ID, orgID)
	if err != nil {
		return "", fmt.Errorf("resolving organization role: %w", err)
	}
	return role, nil
}

// RoleInProject resolves the user's role through the project's owning
// organization. Admin needs no further checks; project managers must be
// combined with a grant lookup for view/edit decisions.
func (r *Resolver) RoleInProject(ctx context.Context, user *model.User, project *model.Project) (model.Role, error) {
	return r.RoleInOrganization(ctx, user, project.OrganizationID)
}

// CanViewOrganization is satisfied by any membership.
func (r *Resolver) CanViewOrganization(ctx context.Context, user *model.User, orgID uuid.UUID) (bool, error) {
	role, err := r.RoleInOrganization(ctx, user, orgID)
	if err != nil {
		return false, err
	}
	return role != "", nil
}

// CanEditOrganization is satisfied only by the admin role.
func (r *Resolver) CanEditOrganization(ctx context.Context, user *model.User, orgID uuid.UUID) (bool, error) {
	role, err := r.RoleInOrganization(ctx, user, orgID)
	if err != nil {
		return false, err
	}
	return role == model.RoleAdmin, nil
}

// CanViewProject: admins always; project managers only with a grant of
// either level; everyone else never.
func (r *Resolver) CanViewProject(ctx context.Context, user *model.User, project *model.Project) (bool, error) {
	role, err := r.RoleInProject(ctx, user, project)
	if err != nil {
		return false, err
	}
	switch role {
	case model.RoleAdmin:
		return true, nil
	case model.RoleProjectManager:
		grant, err := r.projects.GetGrant(ctx, user.ID, project.ID)
		if err != nil {
			return false, fmt.Errorf("resolving project grant: %w", err)
		}
		return grant != nil, nil
	}
	return false, nil
}

// CanEditProject: admins always; project managers only with an edit grant.
func (r *Resolver) CanEditProject(ctx context.Context, user *model.User, project *model.Project) (bool, error) {
	role, err := r.RoleInProject(ctx, user, project)
	if err != nil {
		return false, err
	}
	switch role {
	case model.RoleAdmin:
		return true, nil
	case model.RoleProjectManager:
		grant, err := r.projects.GetGrant(ctx, user.ID, project.ID)
		if err != nil {
			return false, fmt.Errorf("resolving project grant: %w", err)
		}
		return grant != nil && grant.Level == model.LevelEdit, nil
	}
	return false, nil
}

// CanCreateProject is admin-only. Organization-level project manager
// membership alone never suffices.
func (r *Resolver) CanCreateProject(ctx context.Context, user *model.User, orgID uuid.UUID) (bool, error) {
	return r.CanEditOrganization(ctx, user, orgID)
}

// CanDeleteProject is admin-only.
func (r *Resolver) CanDeleteProject(ctx context.Context, user *model.User, project *model.Project) (bool, error) {
	role, err := r.RoleInProject(ctx, user, project)
	if err != nil {
		return false, err
	}
	return role == model.RoleAdmin, nil
}

// Survey checks delegate entirely to the owning project; surveys carry no
// ACL of their own.

func (r *Resolver) CanViewSurvey(ctx context.Context, user *model.User, survey *model.Survey) (bool, error) {
	project, err := r.projects.FindByID(ctx, survey.ProjectID)
	if err != nil {
		return false, err
	}
	return r.CanViewProject(ctx, user, project)
}

func (r *Resolver) CanEditSurvey(ctx context.Context, user *model.User, survey *model.Survey) (bool, error) {
	project, err := r.projects.FindByID(ctx, survey.ProjectID)
	if err != nil {
		return false, err
	}
	return r.CanEditProject(ctx, user, project)
}

func (r *Resolver) CanDeleteSurvey(ctx context.Context, user *model.User, survey *model.Survey) (bool, error) {
	project, err := r.projects.FindByID(ctx, survey.ProjectID)
	if err != nil {
		return false, err
	}
	return r.CanDeleteProject(ctx, user, project)
}
