// internal/service/organization.go
package service

import (
	"context"
	"errors"
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

// OrganizationService owns organization lifecycle and membership
// mutations. All membership changes go through here; nothing writes the
// membership store directly.
type OrganizationService struct {
	orgs     repository.OrganizationRepositoryIface
	resolver *rbac.Resolver
	cascade  *CascadeCalculator
	auditor  audit.Logger
	validate *validator.Validate
}

func NewOrganizationService(
	orgs repository.OrganizationRepositoryIface,
	resolver *rbac.Resolver,
	cascade *CascadeCalculator,
	auditor audit.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgs:     orgs,
		resolver: resolver,
		cascade:  cascade,
		auditor:  auditor,
		validate: validator.New(),
	}
}

type CreateOrganizationInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateOrganization requires the platform-level superuser flag; an
// organization role can never grant it. The organization and the
// creator's admin membership are created in one transaction.
func (s *OrganizationService) CreateOrganization(ctx context.Context, actor *model.User, input CreateOrganizationInput) (*model.Organization, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if actor.IsAnonymous() || !actor.IsSuperuser {
		return nil, logDenied(ctx, s.auditor, nil, rbac.Denied(actor, rbac.PermCreate, nil))
	}

	org := &model.Organization{
		Name:        input.Name,
		Description: input.Description,
		CreatedByID: actor.ID,
	}
	admin := &model.Membership{
		UserID:    actor.ID,
		Role:      model.RoleAdmin,
		AddedByID: actor.ID,
	}

	if err := s.orgs.Create(ctx, org, admin); err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	return org, nil
}

type UpdateOrganizationInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateOrganization applies field updates; admin only.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, actor *model.User, orgID uuid.UUID, input UpdateOrganizationInput) (*model.Organization, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermEdit, org, func(ctx context.Context) (bool, error) {
		return s.resolver.CanEditOrganization(ctx, actor, org.ID)
	})
	if err != nil {
		return nil, logDenied(ctx, s.auditor, org, err)
	}

	org.Name = input.Name
	org.Description = input.Description
	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}

// DeleteOrganization is restricted to superusers. The cascade impact is
// computed before the delete and handed to the audit logger; an audit
// failure never aborts the delete.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, actor *model.User, orgID uuid.UUID, reason string) error {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return err
	}

	if actor.IsAnonymous() || !actor.IsSuperuser {
		return logDenied(ctx, s.auditor, org, rbac.Denied(actor, rbac.PermDelete, org))
	}

	impact, err := s.cascade.ForOrganization(ctx, org.ID)
	if err != nil {
		return fmt.Errorf("computing cascade impact: %w", err)
	}

	if err := s.orgs.Delete(ctx, org.ID); err != nil {
		return err
	}

	if err := s.auditor.LogEntityDelete(ctx, actor.ID.String(), org, reason, impact.Map()); err != nil {
		slog.WarnContext(ctx, "audit log write failed", "error", err, "organization", org.ID)
	}

	return nil
}

// AddUser adds a member with the given role; admin only. The operation
// is idempotent: adding an existing member returns the current membership
// with created=false instead of an error, including when a concurrent add
// wins the unique-constraint race.
func (s *OrganizationService) AddUser(ctx context.Context, actor *model.User, orgID uuid.UUID, userToAdd uuid.UUID, role model.Role) (*model.Membership, bool, error) {
	if !role.Valid() {
		return nil, false, domain.ErrInvalidRole
	}

	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, false, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermEdit, org, func(ctx context.Context) (bool, error) {
		return s.resolver.CanEditOrganization(ctx, actor, org.ID)
	})
	if err != nil {
		return nil, false, logDenied(ctx, s.auditor, org, err)
	}

	existing, err := s.orgs.GetMembership(ctx, userToAdd, org.ID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	membership := &model.Membership{
		OrganizationID: org.ID,
		UserID:         userToAdd,
		Role:           role,
		AddedByID:      actor.ID,
	}

	if err := s.orgs.AddMembership(ctx, membership); err != nil {
		if errors.Is(err, domain.ErrDuplicateMembership) {
			// Lost the race to a concurrent add; re-read the winner.
			existing, rerr := s.orgs.GetMembership(ctx, userToAdd, org.ID)
			if rerr != nil {
				return nil, false, rerr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	if err := s.auditor.LogMembershipChange(ctx, model.ActionMembershipAdd, actor.ID.String(), userToAdd.String(), org); err != nil {
		slog.WarnContext(ctx, "audit log write failed", "error", err, "organization", org.ID)
	}

	return membership, true, nil
}

// RemoveUser removes a member; admin only. Removing a non-member is a
// no-op, not an error.
func (s *OrganizationService) RemoveUser(ctx context.Context, actor *model.User, orgID uuid.UUID, userID uuid.UUID) error {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermEdit, org, func(ctx context.Context) (bool, error) {
		return s.resolver.CanEditOrganization(ctx, actor, org.ID)
	})
	if err != nil {
		return logDenied(ctx, s.auditor, org, err)
	}

	if err := s.orgs.RemoveMembership(ctx, userID, org.ID); err != nil {
		return err
	}

	if err := s.auditor.LogMembershipChange(ctx, model.ActionMembershipRemove, actor.ID.String(), userID.String(), org); err != nil {
		slog.WarnContext(ctx, "audit log write failed", "error", err, "organization", org.ID)
	}

	return nil
}

// UserOrganization returns the first organization the user belongs to,
// or nil for non-members and anonymous users.
func (s *OrganizationService) UserOrganization(ctx context.Context, user *model.User) (*model.Organization, error) {
	if user.IsAnonymous() {
		return nil, nil
	}
	orgs, err := s.orgs.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, nil
	}
	return &orgs[0], nil
}

// Members lists the organization's memberships; any member may view.
func (s *OrganizationService) Members(ctx context.Context, actor *model.User, orgID uuid.UUID) ([]*model.Membership, error) {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermView, org, func(ctx context.Context) (bool, error) {
		return s.resolver.CanViewOrganization(ctx, actor, org.ID)
	})
	if err != nil {
		return nil, logDenied(ctx, s.auditor, org, err)
	}

	return s.orgs.FindMembers(ctx, org.ID)
}
