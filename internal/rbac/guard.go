// internal/rbac/guard.go
package rbac

import (
	"context"

	"github.com/surveyhive/surveyhive/internal/domain"
	"github.com/surveyhive/surveyhive/internal/model"
)

// Permission names the capability kind a guard enforces. It ends up in
// denial errors and audit records.
type Permission string

const (
	PermView   Permission = "view"
	PermEdit   Permission = "edit"
	PermCreate Permission = "create"
	PermDelete Permission = "delete"
)

// Predicate is one capability check, typically a Resolver method bound to
// an actor and a typed resource via a closure.
type Predicate func(ctx context.Context) (bool, error)

// Authorize runs the predicates in declaration order and returns a
// PermissionDeniedError for the first one that does not hold. All
// predicates must pass; evaluation short-circuits on the first failure.
// Authorize never mutates anything, so guarded operations only run after
// every check has succeeded.
func Authorize(ctx context.Context, actor *model.User, perm Permission, resource model.Resource, checks ...Predicate) error {
	for _, check := range checks {
		ok, err := check(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return Denied(actor, perm, resource)
		}
	}
	return nil
}

// Denied builds the denial error carrying actor, permission kind and
// target for audit logging.
func Denied(actor *model.User, perm Permission, resource model.Resource) error {
	userID := "anonymous"
	if !actor.IsAnonymous() {
		userID = actor.ID.String()
	}
	target := "platform"
	if resource != nil {
		target = resource.ResourceType() + ":" + resource.ResourceID()
	}
	return &domain.PermissionDeniedError{
		UserID:     userID,
		Permission: string(perm),
		Resource:   target,
	}
}
