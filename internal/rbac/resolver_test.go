package rbac_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/surveyhive/surveyhive/internal/mocks"
	"github.com/surveyhive/surveyhive/internal/model"
	"github.com/surveyhive/surveyhive/internal/rbac"
	"go.uber.org/mock/gomock"
)

func TestResolverOrganizationChecks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	orgID := uuid.New()
	admin := &model.User{ID: uuid.New(), Email: "admin@example.com"}
	manager := &model.User{ID: uuid.New(), Email: "pm@example.com"}
	stranger := &model.User{ID: uuid.New(), Email: "stranger@example.com"}

	t.Run("admin can view and edit", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, orgID).Return(model.RoleAdmin, nil).Times(2)

		canView, err := resolver.CanViewOrganization(ctx, admin, orgID)
		assert.NoError(t, err)
		assert.True(t, canView)

		canEdit, err := resolver.CanEditOrganization(ctx, admin, orgID)
		assert.NoError(t, err)
		assert.True(t, canEdit)
	})

	t.Run("project manager can view but not edit", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		orgRepo.EXPECT().GetRole(gomock.Any(), manager.ID, orgID).Return(model.RoleProjectManager, nil).Times(2)

		canView, err := resolver.CanViewOrganization(ctx, manager, orgID)
		assert.NoError(t, err)
		assert.True(t, canView)

		canEdit, err := resolver.CanEditOrganization(ctx, manager, orgID)
		assert.NoError(t, err)
		assert.False(t, canEdit)
	})

	t.Run("non-member can do nothing", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		orgRepo.EXPECT().GetRole(gomock.Any(), stranger.ID, orgID).Return(model.Role(""), nil).Times(2)

		canView, err := resolver.CanViewOrganization(ctx, stranger, orgID)
		assert.NoError(t, err)
		assert.False(t, canView)

		canEdit, err := resolver.CanEditOrganization(ctx, stranger, orgID)
		assert.NoError(t, err)
		assert.False(t, canEdit)
	})

	t.Run("anonymous user never hits the store", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		canView, err := resolver.CanViewOrganization(ctx, nil, orgID)
		assert.NoError(t, err)
		assert.False(t, canView)

		canEdit, err := resolver.CanEditOrganization(ctx, &model.User{}, orgID)
		assert.NoError(t, err)
		assert.False(t, canEdit)
	})
}

func TestResolverProjectChecks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	orgID := uuid.New()
	project := &model.Project{ID: uuid.New(), OrganizationID: orgID, Name: "Churn study"}
	admin := &model.User{ID: uuid.New()}
	manager := &model.User{ID: uuid.New()}
	stranger := &model.User{ID: uuid.New()}

	t.Run("admin needs no grant", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		// The grant table must never be consulted for admins.
		orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, orgID).Return(model.RoleAdmin, nil).Times(3)

		canView, err := resolver.CanViewProject(ctx, admin, project)
		assert.NoError(t, err)
		assert.True(t, canView)

		canEdit, err := resolver.CanEditProject(ctx, admin, project)
		assert.NoError(t, err)
		assert.True(t, canEdit)

		canDelete, err := resolver.CanDeleteProject(ctx, admin, project)
		assert.NoError(t, err)
		assert.True(t, canDelete)
	})

	t.Run("project manager without grant is denied", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		orgRepo.EXPECT().GetRole(gomock.Any(), manager.ID, orgID).Return(model.RoleProjectManager, nil).Times(2)
		projectRepo.EXPECT().GetGrant(gomock.Any(), manager.ID, project.ID).Return(nil, nil).Times(2)

		canView, err := resolver.CanViewProject(ctx, manager, project)
		assert.NoError(t, err)
		assert.False(t, canView)

		canEdit, err := resolver.CanEditProject(ctx, manager, project)
		assert.NoError(t, err)
		assert.False(t, canEdit)
	})

	t.Run("view grant allows view only", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		grant := &model.ProjectGrant{ProjectID: project.ID, UserID: manager.ID, Level: model.LevelView}
		orgRepo.EXPECT().GetRole(gomock.Any(), manager.ID, orgID).Return(model.RoleProjectManager, nil).Times(2)
		projectRepo.EXPECT().GetGrant(gomock.Any(), manager.ID, project.ID).Return(grant, nil).Times(2)

		canView, err := resolver.CanViewProject(ctx, manager, project)
		assert.NoError(t, err)
		assert.True(t, canView)

		canEdit, err := resolver.CanEditProject(ctx, manager, project)
		assert.NoError(t, err)
		assert.False(t, canEdit)
	})

	t.Run("edit grant allows view and edit but never delete", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		grant := &model.ProjectGrant{ProjectID: project.ID, UserID: manager.ID, Level: model.LevelEdit}
		orgRepo.EXPECT().GetRole(gomock.Any(), manager.ID, orgID).Return(model.RoleProjectManager, nil).Times(3)
		projectRepo.EXPECT().GetGrant(gomock.Any(), manager.ID, project.ID).Return(grant, nil).Times(2)

		canView, err := resolver.CanViewProject(ctx, manager, project)
		assert.NoError(t, err)
		assert.True(t, canView)

		canEdit, err := resolver.CanEditProject(ctx, manager, project)
		assert.NoError(t, err)
		assert.True(t, canEdit)

		canDelete, err := resolver.CanDeleteProject(ctx, manager, project)
		assert.NoError(t, err)
		assert.False(t, canDelete)
	})

	t.Run("grants do not help non-members", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		orgRepo.EXPECT().GetRole(gomock.Any(), stranger.ID, orgID).Return(model.Role(""), nil)

		canView, err := resolver.CanViewProject(ctx, stranger, project)
		assert.NoError(t, err)
		assert.False(t, canView)
	})

	t.Run("roles are scoped to the owning organization", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		// Admin of some other organization: the check runs against the
		// project's own organization, where this user has no role.
		otherOrgAdmin := &model.User{ID: uuid.New()}
		orgRepo.EXPECT().GetRole(gomock.Any(), otherOrgAdmin.ID, orgID).Return(model.Role(""), nil).Times(2)

		canView, err := resolver.CanViewProject(ctx, otherOrgAdmin, project)
		assert.NoError(t, err)
		assert.False(t, canView)

		canEdit, err := resolver.CanEditProject(ctx, otherOrgAdmin, project)
		assert.NoError(t, err)
		assert.False(t, canEdit)
	})
}

func TestResolverProjectCreation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	orgID := uuid.New()

	t.Run("admin may create", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		admin := &model.User{ID: uuid.New()}
		orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, orgID).Return(model.RoleAdmin, nil)

		ok, err := resolver.CanCreateProject(ctx, admin, orgID)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("project manager may not create", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		manager := &model.User{ID: uuid.New()}
		orgRepo.EXPECT().GetRole(gomock.Any(), manager.ID, orgID).Return(model.RoleProjectManager, nil)

		ok, err := resolver.CanCreateProject(ctx, manager, orgID)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestResolverSurveyChecks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	orgID := uuid.New()
	project := &model.Project{ID: uuid.New(), OrganizationID: orgID}
	survey := &model.Survey{ID: uuid.New(), ProjectID: project.ID}

	t.Run("survey checks follow the owning project", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		manager := &model.User{ID: uuid.New()}
		grant := &model.ProjectGrant{ProjectID: project.ID, UserID: manager.ID, Level: model.LevelView}

		projectRepo.EXPECT().FindByID(gomock.Any(), project.ID).Return(project, nil).Times(2)
		orgRepo.EXPECT().GetRole(gomock.Any(), manager.ID, orgID).Return(model.RoleProjectManager, nil).Times(2)
		projectRepo.EXPECT().GetGrant(gomock.Any(), manager.ID, project.ID).Return(grant, nil).Times(2)

		canView, err := resolver.CanViewSurvey(ctx, manager, survey)
		assert.NoError(t, err)
		assert.True(t, canView)

		canEdit, err := resolver.CanEditSurvey(ctx, manager, survey)
		assert.NoError(t, err)
		assert.False(t, canEdit)
	})

	t.Run("survey delete is admin only", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
		resolver := rbac.NewResolver(orgRepo, projectRepo)

		manager := &model.User{ID: uuid.New()}
		projectRepo.EXPECT().FindByID(gomock.Any(), project.ID).Return(project, nil)
		orgRepo.EXPECT().GetRole(gomock.Any(), manager.ID, orgID).Return(model.RoleProjectManager, nil)

		canDelete, err := resolver.CanDeleteSurvey(ctx, manager, survey)
		assert.NoError(t, err)
		assert.False(t, canDelete)
	})
}
