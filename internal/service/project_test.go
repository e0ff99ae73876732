package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyhive/surveyhive/internal/audit"
	"github.com/surveyhive/surveyhive/internal/domain"
	"github.com/surveyhive/surveyhive/internal/mocks"
	"github.com/surveyhive/surveyhive/internal/model"
	"github.com/surveyhive/surveyhive/internal/rbac"
	"github.com/surveyhive/surveyhive/internal/service"
	"go.uber.org/mock/gomock"
)

type projectFixture struct {
	orgRepo     *mocks.MockOrganizationRepositoryIface
	projectRepo *mocks.MockProjectRepositoryIface
	surveyRepo  *mocks.MockSurveyRepositoryIface
	svc         *service.ProjectService
}

func newProjectFixture(ctrl *gomock.Controller) *projectFixture {
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
	surveyRepo := mocks.NewMockSurveyRepositoryIface(ctrl)
	resolver := rbac.NewResolver(orgRepo, projectRepo)
	cascade := service.NewCascadeCalculator(projectRepo, surveyRepo)
	return &projectFixture{
		orgRepo:     orgRepo,
		projectRepo: projectRepo,
		surveyRepo:  surveyRepo,
		svc:         service.NewProjectService(projectRepo, orgRepo, resolver, cascade, &audit.NoopLogger{}),
	}
}

func TestCreateProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	org := &model.Organization{ID: uuid.New(), Name: "Acme"}

	t.Run("admin creates a project", func(t *testing.T) {
		f := newProjectFixture(ctrl)
		admin := &model.User{ID: uuid.New()}

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.projectRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
		)

		project, err := f.svc.CreateProject(ctx, admin, service.CreateProjectInput{
			Name:           "Churn study",
			OrganizationID: org.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, org.ID, project.OrganizationID)
		assert.Equal(t, admin.ID, project.CreatedByID)
	})

	t.Run("project manager may not create", func(t *testing.T) {
		f := newProjectFixture(ctrl)
		manager := &model.User{ID: uuid.New()}

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), manager.ID, org.ID).Return(model.RoleProjectManager, nil),
		)

		_, err := f.svc.CreateProject(ctx, manager, service.CreateProjectInput{
			Name:           "Churn study",
			OrganizationID: org.ID,
		})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("non-member may not create", func(t *testing.T) {
		f := newProjectFixture(ctrl)
		stranger := &model.User{ID: uuid.New()}

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), stranger.ID, org.ID).Return(model.Role(""), nil),
		)

		_, err := f.svc.CreateProject(ctx, stranger, service.CreateProjectInput{
			Name:           "Churn study",
			OrganizationID: org.ID,
		})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}

func TestGrantPermission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	org := &model.Organization{ID: uuid.New()}
	project := &model.Project{ID: uuid.New(), OrganizationID: org.ID, Name: "Churn study"}
	admin := &model.User{ID: uuid.New()}
	granteeID := uuid.New()

	t.Run("admin grants edit to a project manager", func(t *testing.T) {
		f := newProjectFixture(ctrl)

		gomock.InOrder(
			f.projectRepo.EXPECT().FindByID(gomock.Any(), project.ID).Return(project, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), granteeID, org.ID).Return(model.RoleProjectManager, nil),
			f.projectRepo.EXPECT().UpsertGrant(gomock.Any(), gomock.Any()).Return(nil),
		)

		grant, err := f.svc.GrantPermission(ctx, admin, project.ID, granteeID, model.LevelEdit)
		require.NoError(t, err)
		assert.Equal(t, granteeID, grant.UserID)
		assert.Equal(t, model.LevelEdit, grant.Level)
		assert.Equal(t, admin.ID, grant.GrantedByID)
	})

	t.Run("regranting overwrites the level", func(t *testing.T) {
		f := newProjectFixture(ctrl)

		gomock.InOrder(
			f.projectRepo.EXPECT().FindByID(gomock.Any(), project.ID).Return(project, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), granteeID, org.ID).Return(model.RoleProjectManager, nil),
			f.projectRepo.EXPECT().UpsertGrant(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, g *model.ProjectGrant) error {
					assert.Equal(t, model.LevelView, g.Level)
					return nil
				}),
		)

		grant, err := f.svc.GrantPermission(ctx, admin, project.ID, granteeID, model.LevelView)
		require.NoError(t, err)
		assert.Equal(t, model.LevelView, grant.Level)
	})

	t.Run("admins cannot receive grants", func(t *testing.T) {
		f := newProjectFixture(ctrl)
		otherAdminID := uuid.New()

		gomock.InOrder(
			f.projectRepo.EXPECT().FindByID(gomock.Any(), project.ID).Return(project, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), otherAdminID, org.ID).Return(model.RoleAdmin, nil),
		)

		_, err := f.svc.GrantPermission(ctx, admin, project.ID, otherAdminID, model.LevelView)
		assert.ErrorIs(t, err, domain.ErrInvalidGrantee)
	})

	t.Run("non-members cannot receive grants", func(t *testing.T) {
		f := newProjectFixture(ctrl)
		strangerID := uuid.New()

		gomock.InOrder(
			f.projectRepo.EXPECT().FindByID(gomock.Any(), project.ID).Return(project, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), strangerID, org.ID).Return(model.Role(""), nil),
		)

		_, err := f.svc.GrantPermission(ctx, admin, project.ID, strangerID, model.LevelEdit)
		assert.ErrorIs(t, err, domain.ErrInvalidGrantee)
	})

	t.Run("unknown level is rejected before any lookup", func(t *testing.T) {
		f := newProjectFixture(ctrl)

		_, err := f.svc.GrantPermission(ctx, admin, project.ID, granteeID, model.PermissionLevel("owner"))
		assert.ErrorIs(t, err, domain.ErrInvalidPermissionLevel)
	})
}

func TestRevokePermission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	org := &model.Organization{ID: uuid.New()}
	project := &model.Project{ID: uuid.New(), OrganizationID: org.ID}
	admin := &model.User{ID: uuid.New()}
	granteeID := uuid.New()

	t.Run("revoke then lookup returns nothing", func(t *testing.T) {
		f := newProjectFixture(ctrl)

		gomock.InOrder(
			f.projectRepo.EXPECT().FindByID(gomock.Any(), project.ID).Return(project, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.projectRepo.EXPECT().RemoveGrant(gomock.Any(), granteeID, project.ID).Return(nil),
			f.projectRepo.EXPECT().GetGrant(gomock.Any(), granteeID, project.ID).Return(nil, nil),
		)

		require.NoError(t, f.svc.RevokePermission(ctx, admin, project.ID, granteeID))

		grant, err := f.svc.UserPermission(ctx, granteeID, project.ID)
		require.NoError(t, err)
		assert.Nil(t, grant)
	})

	t.Run("revoking an absent grant succeeds", func(t *testing.T) {
		f := newProjectFixture(ctrl)

		gomock.InOrder(
			f.projectRepo.EXPECT().FindByID(gomock.Any(), project.ID).Return(project, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.projectRepo.EXPECT().RemoveGrant(gomock.Any(), granteeID, project.ID).Return(nil),
		)

		assert.NoError(t, f.svc.RevokePermission(ctx, admin, project.ID, granteeID))
	})
}

func TestDeleteProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	org := &model.Organization{ID: uuid.New()}
	project := &model.Project{ID: uuid.New(), OrganizationID: org.ID}

	t.Run("admin delete records cascade impact", func(t *testing.T) {
		f := newProjectFixture(ctrl)
		admin := &model.User{ID: uuid.New()}
		survey := &model.Survey{ID: uuid.New(), ProjectID: project.ID}

		gomock.InOrder(
			f.projectRepo.EXPECT().FindByID(gomock.Any(), project.ID).Return(project, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.surveyRepo.EXPECT().FindByProject(gomock.Any(), project.ID).Return([]*model.Survey{survey}, nil),
			f.surveyRepo.EXPECT().CountResponses(gomock.Any(), survey.ID).Return(int64(12), nil),
			f.projectRepo.EXPECT().Delete(gomock.Any(), project.ID).Return(nil),
		)

		assert.NoError(t, f.svc.DeleteProject(ctx, admin, project.ID, "study cancelled"))
	})

	t.Run("edit grant does not allow delete", func(t *testing.T) {
		f := newProjectFixture(ctrl)
		manager := &model.User{ID: uuid.New()}

		gomock.InOrder(
			f.projectRepo.EXPECT().FindByID(gomock.Any(), project.ID).Return(project, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), manager.ID, org.ID).Return(model.RoleProjectManager, nil),
		)

		err := f.svc.DeleteProject(ctx, manager, project.ID, "cleanup")
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}

func TestUserProjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("admin sees all organization projects plus grants", func(t *testing.T) {
		f := newProjectFixture(ctrl)
		user := &model.User{ID: uuid.New()}
		org := model.Organization{ID: uuid.New()}
		owned := &model.Project{ID: uuid.New(), OrganizationID: org.ID}
		granted := &model.Project{ID: uuid.New(), OrganizationID: uuid.New()}

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByUser(gomock.Any(), user.ID).Return([]model.Organization{org}, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), user.ID, org.ID).Return(model.RoleAdmin, nil),
			f.projectRepo.EXPECT().FindByOrganization(gomock.Any(), org.ID).Return([]*model.Project{owned}, nil),
			f.projectRepo.EXPECT().FindGranted(gomock.Any(), user.ID).Return([]*model.Project{granted, owned}, nil),
		)

		projects, err := f.svc.UserProjects(ctx, user)
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})

	t.Run("project manager sees only granted projects", func(t *testing.T) {
		f := newProjectFixture(ctrl)
		user := &model.User{ID: uuid.New()}
		org := model.Organization{ID: uuid.New()}
		granted := &model.Project{ID: uuid.New(), OrganizationID: org.ID}

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByUser(gomock.Any(), user.ID).Return([]model.Organization{org}, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), user.ID, org.ID).Return(model.RoleProjectManager, nil),
			f.projectRepo.EXPECT().FindGranted(gomock.Any(), user.ID).Return([]*model.Project{granted}, nil),
		)

		projects, err := f.svc.UserProjects(ctx, user)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, granted.ID, projects[0].ID)
	})

	t.Run("anonymous sees nothing", func(t *testing.T) {
		f := newProjectFixture(ctrl)

		projects, err := f.svc.UserProjects(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}
