// internal/repository/invitation.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surveyhive/surveyhive/internal/domain"
	"github.com/surveyhive/surveyhive/internal/model"
	"gorm.io/gorm"
)

type InvitationRepositoryIface interface {
	CreateOrgInvitation(ctx context.Context, inv *model.OrgInvitation) error
	FindOrgInvitationByKey(ctx context.Context, key string) (*model.OrgInvitation, error)
	ConsumeOrgInvitation(ctx context.Context, id uuid.UUID, at time.Time) error
	RedeemOrgInvitation(ctx context.Context, id uuid.UUID, at time.Time, membership *model.Membership) error

	CreateSurveyInvitation(ctx context.Context, inv *model.SurveyInvitation) error
	FindSurveyInvitationByKey(ctx context.Context, key string) (*model.SurveyInvitation, error)
	RedeemSurveyInvitation(ctx context.Context, id uuid.UUID, at time.Time, response *model.SurveyResponse) error
}

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) CreateOrgInvitation(ctx context.Context, inv *model.OrgInvitation) error {
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("creating organization invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) FindOrgInvitationByKey(ctx context.Context, key string) (*model.OrgInvitation, error) {
	var inv model.OrgInvitation
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("finding organization invitation: %w", err)
	}
	return &inv, nil
}

// ConsumeOrgInvitation marks the invitation accepted. The accepted_at IS
// NULL predicate makes the key single-use even under concurrent accepts.
func (r *InvitationRepository) ConsumeOrgInvitation(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.OrgInvitation{}).
		Where("id = ? AND accepted_at IS NULL", id).
		Update("accepted_at", at)
	if result.Error != nil {
		return fmt.Errorf("consuming organization invitation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvitationUsed
	}
	return nil
}

// RedeemOrgInvitation consumes the invitation and writes the resulting
// membership in one transaction. A duplicate membership rolls the
// consume back too, so the caller can fall back to the existing
// membership and consume the key separately.
func (r *InvitationRepository) RedeemOrgInvitation(ctx context.Context, id uuid.UUID, at time.Time, m *model.Membership) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.OrgInvitation{}).
			Where("id = ? AND accepted_at IS NULL", id).
			Update("accepted_at", at)
		if result.Error != nil {
			return fmt.Errorf("consuming organization invitation: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrInvitationUsed
		}
		if err := tx.Create(m).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateMembership
			}
			return fmt.Errorf("creating membership: %w", err)
		}
		return nil
	})
}

func (r *InvitationRepository) CreateSurveyInvitation(ctx context.Context, inv *model.SurveyInvitation) error {
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("creating survey invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) FindSurveyInvitationByKey(ctx context.Context, key string) (*model.SurveyInvitation, error) {
	var inv model.SurveyInvitation
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("finding survey invitation: %w", err)
	}
	return &inv, nil
}

// RedeemSurveyInvitation consumes the invitation and records the
// participant's response in one transaction. If the response insert
// fails the consume rolls back and the key stays redeemable.
func (r *InvitationRepository) RedeemSurveyInvitation(ctx context.Context, id uuid.UUID, at time.Time, response *model.SurveyResponse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.SurveyInvitation{}).
			Where("id = ? AND accepted_at IS NULL", id).
			Update("accepted_at", at)
		if result.Error != nil {
			return fmt.Errorf("consuming survey invitation: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrInvitationUsed
		}
		if err := tx.Create(response).Error; err != nil {
			return fmt.Errorf("creating survey response: %w", err)
		}
		return nil
	})
}
