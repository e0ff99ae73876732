package rbac_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyhive/surveyhive/internal/domain"
	"github.com/surveyhive/surveyhive/internal/model"
	"github.com/surveyhive/surveyhive/internal/rbac"
)

func pass(ctx context.Context) (bool, error) { return true, nil }
func fail(ctx context.Context) (bool, error) { return false, nil }

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	actor := &model.User{ID: uuid.New(), Email: "actor@example.com"}
	org := &model.Organization{ID: uuid.New(), Name: "Acme"}

	t.Run("no predicates allows", func(t *testing.T) {
		assert.NoError(t, rbac.Authorize(ctx, actor, rbac.PermView, org))
	})

	t.Run("all passing predicates allow", func(t *testing.T) {
		assert.NoError(t, rbac.Authorize(ctx, actor, rbac.PermEdit, org, pass, pass, pass))
	})

	t.Run("any failing predicate denies", func(t *testing.T) {
		err := rbac.Authorize(ctx, actor, rbac.PermEdit, org, pass, fail, pass)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("evaluation short-circuits on first failure", func(t *testing.T) {
		evaluated := false
		err := rbac.Authorize(ctx, actor, rbac.PermDelete, org,
			fail,
			func(ctx context.Context) (bool, error) {
				evaluated = true
				return true, nil
			},
		)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		assert.False(t, evaluated, "predicates after a failure must not run")
	})

	t.Run("predicate errors propagate unchanged", func(t *testing.T) {
		boom := fmt.Errorf("store unavailable")
		err := rbac.Authorize(ctx, actor, rbac.PermView, org, func(ctx context.Context) (bool, error) {
			return false, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("denial carries actor, permission and resource", func(t *testing.T) {
		err := rbac.Authorize(ctx, actor, rbac.PermEdit, org, fail)

		var denied *domain.PermissionDeniedError
		require.True(t, errors.As(err, &denied))
		assert.Equal(t, actor.ID.String(), denied.UserID)
		assert.Equal(t, "edit", denied.Permission)
		assert.Equal(t, "organization:"+org.ID.String(), denied.Resource)
	})
}

func TestDenied(t *testing.T) {
	t.Run("anonymous actor", func(t *testing.T) {
		err := rbac.Denied(nil, rbac.PermCreate, nil)

		var denied *domain.PermissionDeniedError
		require.True(t, errors.As(err, &denied))
		assert.Equal(t, "anonymous", denied.UserID)
		assert.Equal(t, "platform", denied.Resource)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("typed resource target", func(t *testing.T) {
		actor := &model.User{ID: uuid.New()}
		project := &model.Project{ID: uuid.New()}
		err := rbac.Denied(actor, rbac.PermDelete, project)

		var denied *domain.PermissionDeniedError
		require.True(t, errors.As(err, &denied))
		assert.Equal(t, "project:"+project.ID.String(), denied.Resource)
		assert.Equal(t, "delete", denied.Permission)
	})
}
