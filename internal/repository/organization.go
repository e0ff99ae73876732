// internal/repository/organization.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/surveyhive/surveyhive/internal/domain"
	"github.com/surveyhive/surveyhive/internal/model"
	"gorm.io/gorm"
)

type OrganizationRepositoryIface interface {
	Create(ctx context.Context, org *model.Organization, admin *model.Membership) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountProjects(ctx context.Context, orgID uuid.UUID) (int64, error)

	GetRole(ctx context.Context, userID, orgID uuid.UUID) (model.Role, error)
	GetMembership(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error)
	AddMembership(ctx context.Context, m *model.Membership) error
	RemoveMembership(ctx context.Context, userID, orgID uuid.UUID) error
	FindMembers(ctx context.Context, orgID uuid.UUID) ([]*model.Membership, error)
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create stores the organization together with the creator's admin
// membership in one transaction; partial creation is never observable.
func (r *OrganizationRepository) Create(ctx context.Context, org *model.Organization, admin *model.Membership) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}

		admin.OrganizationID = org.ID
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("creating admin membership: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Organization, error) {
	var orgs []model.Organization
	if err := r.db.WithContext(ctx).
		Joins("JOIN memberships ON organizations.id = memberships.organization_id").
		Where("memberships.user_id = ?", userID).
		Order("memberships.created_at").
		Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("finding user organizations: %w", err)
	}
	return orgs, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *model.Organization) error {
	if err := r.db.WithContext(ctx).Save(org).Error; err != nil {
		return fmt.Errorf("updating organization: %w", err)
	}
	return nil
}

// Delete removes the organization and everything under it: memberships,
// project grants, surveys, responses, projects and pending invitations.
func (r *OrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var projectIDs []uuid.UUID
		if err := tx.Model(&model.Project{}).
			Where("organization_id = ?", id).
			Pluck("id", &projectIDs).Error; err != nil {
			return fmt.Errorf("listing projects: %w", err)
		}

		if len(projectIDs) > 0 {
			var surveyIDs []uuid.UUID
			if err := tx.Model(&model.Survey{}).
				Where("project_id IN ?", projectIDs).
				Pluck("id", &surveyIDs).Error; err != nil {
				return fmt.Errorf("listing surveys: %w", err)
			}

			if len(surveyIDs) > 0 {
				if err := tx.Where("survey_id IN ?", surveyIDs).Delete(&model.SurveyResponse{}).Error; err != nil {
					return fmt.Errorf("deleting survey responses: %w", err)
				}
				if err := tx.Where("survey_id IN ?", surveyIDs).Delete(&model.SurveyInvitation{}).Error; err != nil {
					return fmt.Errorf("deleting survey invitations: %w", err)
				}
				if err := tx.Where("id IN ?", surveyIDs).Delete(&model.Survey{}).Error; err != nil {
					return fmt.Errorf("deleting surveys: %w", err)
				}
			}

			if err := tx.Where("project_id IN ?", projectIDs).Delete(&model.ProjectGrant{}).Error; err != nil {
				return fmt.Errorf("deleting project grants: %w", err)
			}
			if err := tx.Where("id IN ?", projectIDs).Delete(&model.Project{}).Error; err != nil {
				return fmt.Errorf("deleting projects: %w", err)
			}
		}

		if err := tx.Where("organization_id = ?", id).Delete(&model.OrgInvitation{}).Error; err != nil {
			return fmt.Errorf("deleting invitations: %w", err)
		}
		if err := tx.Where("organization_id = ?", id).Delete(&model.Membership{}).Error; err != nil {
			return fmt.Errorf("deleting memberships: %w", err)
		}
		if err := tx.Delete(&model.Organization{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting organization: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *OrganizationRepository) CountProjects(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return count, nil
}

// GetRole returns the user's role in the organization, or "" without an
// error when the user is not a member.
func (r *OrganizationRepository) GetRole(ctx context.Context, userID, orgID uuid.UUID) (model.Role, error) {
	m, err := r.GetMembership(ctx, userID, orgID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", nil
	}
	return m.Role, nil
}

func (r *OrganizationRepository) GetMembership(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding membership: %w", err)
	}
	return &m, nil
}

// AddMembership inserts the row and surfaces ErrDuplicateMembership on a
// (user, organization) conflict. Idempotency is the service layer's job.
func (r *OrganizationRepository) AddMembership(ctx context.Context, m *model.Membership) error {
	if !m.Role.Valid() {
		return domain.ErrInvalidRole
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateMembership
		}
		return fmt.Errorf("creating membership: %w", err)
	}
	return nil
}

// RemoveMembership deletes the row if present; removing a non-member is
// a no-op.
func (r *OrganizationRepository) RemoveMembership(ctx context.Context, userID, orgID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		Delete(&model.Membership{}).Error
	if err != nil {
		return fmt.Errorf("deleting membership: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindMembers(ctx context.Context, orgID uuid.UUID) ([]*model.Membership, error) {
	var members []*model.Membership
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("organization_id = ?", orgID).
		Order("created_at").
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("finding organization members: %w", err)
	}
	return members, nil
}
