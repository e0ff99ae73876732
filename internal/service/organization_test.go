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

type orgFixture struct {
	orgRepo     *mocks.MockOrganizationRepositoryIface
	projectRepo *mocks.MockProjectRepositoryIface
	surveyRepo  *mocks.MockSurveyRepositoryIface
	svc         *service.OrganizationService
}

func newOrgFixture(ctrl *gomock.Controller) *orgFixture {
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	projectRepo := mocks.NewMockProjectRepositoryIface(ctrl)
	surveyRepo := mocks.NewMockSurveyRepositoryIface(ctrl)
	resolver := rbac.NewResolver(orgRepo, projectRepo)
	cascade := service.NewCascadeCalculator(projectRepo, surveyRepo)
	return &orgFixture{
		orgRepo:     orgRepo,
		projectRepo: projectRepo,
		surveyRepo:  surveyRepo,
		svc:         service.NewOrganizationService(orgRepo, resolver, cascade, &audit.NoopLogger{}),
	}
}

func TestCreateOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("superuser creates organization with admin membership", func(t *testing.T) {
		f := newOrgFixture(ctrl)
		superuser := &model.User{ID: uuid.New(), IsSuperuser: true}

		f.orgRepo.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, org *model.Organization, admin *model.Membership) error {
				assert.Equal(t, "Acme Research", org.Name)
				assert.Equal(t, superuser.ID, org.CreatedByID)
				assert.Equal(t, superuser.ID, admin.UserID)
				assert.Equal(t, model.RoleAdmin, admin.Role)
				return nil
			})

		org, err := f.svc.CreateOrganization(ctx, superuser, service.CreateOrganizationInput{Name: "Acme Research"})
		require.NoError(t, err)
		assert.Equal(t, "Acme Research", org.Name)
	})

	t.Run("regular user is denied", func(t *testing.T) {
		f := newOrgFixture(ctrl)
		user := &model.User{ID: uuid.New()}

		_, err := f.svc.CreateOrganization(ctx, user, service.CreateOrganizationInput{Name: "Acme Research"})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("organization admin elsewhere is still denied", func(t *testing.T) {
		// Creating organizations is a platform capability; no
		// organization role reaches it.
		f := newOrgFixture(ctrl)
		admin := &model.User{ID: uuid.New()}

		_, err := f.svc.CreateOrganization(ctx, admin, service.CreateOrganizationInput{Name: "Side Venture"})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		f := newOrgFixture(ctrl)
		superuser := &model.User{ID: uuid.New(), IsSuperuser: true}

		_, err := f.svc.CreateOrganization(ctx, superuser, service.CreateOrganizationInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAddUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	admin := &model.User{ID: uuid.New()}
	newUserID := uuid.New()
	org := &model.Organization{ID: uuid.New(), Name: "Acme"}

	t.Run("adds a new member", func(t *testing.T) {
		f := newOrgFixture(ctrl)

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.orgRepo.EXPECT().GetMembership(gomock.Any(), newUserID, org.ID).Return(nil, nil),
			f.orgRepo.EXPECT().AddMembership(gomock.Any(), gomock.Any()).Return(nil),
		)

		membership, created, err := f.svc.AddUser(ctx, admin, org.ID, newUserID, model.RoleProjectManager)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, newUserID, membership.UserID)
		assert.Equal(t, model.RoleProjectManager, membership.Role)
		assert.Equal(t, admin.ID, membership.AddedByID)
	})

	t.Run("adding an existing member is a no-op", func(t *testing.T) {
		f := newOrgFixture(ctrl)
		existing := &model.Membership{
			ID:             uuid.New(),
			OrganizationID: org.ID,
			UserID:         newUserID,
			Role:           model.RoleProjectManager,
		}

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.orgRepo.EXPECT().GetMembership(gomock.Any(), newUserID, org.ID).Return(existing, nil),
		)

		membership, created, err := f.svc.AddUser(ctx, admin, org.ID, newUserID, model.RoleAdmin)
		require.NoError(t, err)
		assert.False(t, created)
		// The stored role wins; a second add never rewrites it.
		assert.Equal(t, model.RoleProjectManager, membership.Role)
		assert.Equal(t, existing.ID, membership.ID)
	})

	t.Run("losing the insert race returns the winner", func(t *testing.T) {
		f := newOrgFixture(ctrl)
		winner := &model.Membership{
			ID:             uuid.New(),
			OrganizationID: org.ID,
			UserID:         newUserID,
			Role:           model.RoleAdmin,
		}

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.orgRepo.EXPECT().GetMembership(gomock.Any(), newUserID, org.ID).Return(nil, nil),
			f.orgRepo.EXPECT().AddMembership(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateMembership),
			f.orgRepo.EXPECT().GetMembership(gomock.Any(), newUserID, org.ID).Return(winner, nil),
		)

		membership, created, err := f.svc.AddUser(ctx, admin, org.ID, newUserID, model.RoleProjectManager)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, winner.ID, membership.ID)
	})

	t.Run("project manager may not add members", func(t *testing.T) {
		f := newOrgFixture(ctrl)
		manager := &model.User{ID: uuid.New()}

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), manager.ID, org.ID).Return(model.RoleProjectManager, nil),
		)

		_, _, err := f.svc.AddUser(ctx, manager, org.ID, newUserID, model.RoleProjectManager)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("unknown role is rejected before any lookup", func(t *testing.T) {
		f := newOrgFixture(ctrl)

		_, _, err := f.svc.AddUser(ctx, admin, org.ID, newUserID, model.Role("owner"))
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})
}

func TestRemoveUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	admin := &model.User{ID: uuid.New()}
	memberID := uuid.New()
	org := &model.Organization{ID: uuid.New(), Name: "Acme"}

	t.Run("removes a member", func(t *testing.T) {
		f := newOrgFixture(ctrl)

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.orgRepo.EXPECT().RemoveMembership(gomock.Any(), memberID, org.ID).Return(nil),
		)

		assert.NoError(t, f.svc.RemoveUser(ctx, admin, org.ID, memberID))
	})

	t.Run("removing a non-member succeeds", func(t *testing.T) {
		f := newOrgFixture(ctrl)

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), admin.ID, org.ID).Return(model.RoleAdmin, nil),
			f.orgRepo.EXPECT().RemoveMembership(gomock.Any(), uuid.Nil, org.ID).Return(nil),
		)

		assert.NoError(t, f.svc.RemoveUser(ctx, admin, org.ID, uuid.Nil))
	})

	t.Run("non-admin may not remove", func(t *testing.T) {
		f := newOrgFixture(ctrl)
		manager := &model.User{ID: uuid.New()}

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil),
			f.orgRepo.EXPECT().GetRole(gomock.Any(), manager.ID, org.ID).Return(model.RoleProjectManager, nil),
		)

		err := f.svc.RemoveUser(ctx, manager, org.ID, memberID)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}

func TestDeleteOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	org := &model.Organization{ID: uuid.New(), Name: "Acme"}

	t.Run("superuser delete computes cascade impact first", func(t *testing.T) {
		f := newOrgFixture(ctrl)
		superuser := &model.User{ID: uuid.New(), IsSuperuser: true}
		project := &model.Project{ID: uuid.New(), OrganizationID: org.ID}
		survey := &model.Survey{ID: uuid.New(), ProjectID: project.ID}

		gomock.InOrder(
			f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil),
			f.projectRepo.EXPECT().FindByOrganization(gomock.Any(), org.ID).Return([]*model.Project{project}, nil),
			f.surveyRepo.EXPECT().FindByProject(gomock.Any(), project.ID).Return([]*model.Survey{survey}, nil),
			f.surveyRepo.EXPECT().CountResponses(gomock.Any(), survey.ID).Return(int64(4), nil),
			f.orgRepo.EXPECT().Delete(gomock.Any(), org.ID).Return(nil),
		)

		assert.NoError(t, f.svc.DeleteOrganization(ctx, superuser, org.ID, "project wound down"))
	})

	t.Run("organization admin may not delete", func(t *testing.T) {
		f := newOrgFixture(ctrl)
		admin := &model.User{ID: uuid.New()}

		f.orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil)

		err := f.svc.DeleteOrganization(ctx, admin, org.ID, "cleanup")
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}

func TestUserOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("member gets their organization", func(t *testing.T) {
		f := newOrgFixture(ctrl)
		user := &model.User{ID: uuid.New()}
		org := model.Organization{ID: uuid.New(), Name: "Acme"}

		f.orgRepo.EXPECT().FindByUser(gomock.Any(), user.ID).Return([]model.Organization{org}, nil)

		got, err := f.svc.UserOrganization(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, org.ID, got.ID)
	})

	t.Run("non-member gets nil", func(t *testing.T) {
		f := newOrgFixture(ctrl)
		user := &model.User{ID: uuid.New()}

		f.orgRepo.EXPECT().FindByUser(gomock.Any(), user.ID).Return(nil, nil)

		got, err := f.svc.UserOrganization(ctx, user)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("anonymous gets nil without a lookup", func(t *testing.T) {
		f := newOrgFixture(ctrl)

		got, err := f.svc.UserOrganization(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
