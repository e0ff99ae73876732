// internal/repository/project.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/surveyhive/surveyhive/internal/domain"
	"github.com/surveyhive/surveyhive/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepositoryIface interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountSurveys(ctx context.Context, projectID uuid.UUID) (int64, error)

	GetGrant(ctx context.Context, userID, projectID uuid.UUID) (*model.ProjectGrant, error)
	UpsertGrant(ctx context.Context, grant *model.ProjectGrant) error
	RemoveGrant(ctx context.Context, userID, projectID uuid.UUID) error
	FindGranted(ctx context.Context, userID uuid.UUID) ([]*model.Project, error)
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("finding project: %w", err)
	}
	return &project, nil
}

func (r *ProjectRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Project, error) {
	var projects []*model.Project
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("finding organization projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

// Delete removes the project with its grants, surveys, responses and
// pending survey invitations.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var surveyIDs []uuid.UUID
		if err := tx.Model(&model.Survey{}).
			Where("project_id = ?", id).
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

		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectGrant{}).Error; err != nil {
			return fmt.Errorf("deleting project grants: %w", err)
		}
		if err := tx.Delete(&model.Project{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting project: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *ProjectRepository) CountSurveys(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Survey{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting surveys: %w", err)
	}
	return count, nil
}

func (r *ProjectRepository) GetGrant(ctx context.Context, userID, projectID uuid.UUID) (*model.ProjectGrant, error) {
	var grant model.ProjectGrant
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding project grant: %w", err)
	}
	return &grant, nil
}

// UpsertGrant creates the grant or replaces the level of an existing one
// for the (user, project) pair.
func (r *ProjectRepository) UpsertGrant(ctx context.Context, grant *model.ProjectGrant) error {
	if !grant.Level.Valid() {
		return domain.ErrInvalidPermissionLevel
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"level", "granted_by_id", "updated_at"}),
	}).Create(grant).Error
	if err != nil {
		return fmt.Errorf("upserting project grant: %w", err)
	}
	return nil
}

func (r *ProjectRepository) RemoveGrant(ctx context.Context, userID, projectID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&model.ProjectGrant{}).Error
	if err != nil {
		return fmt.Errorf("deleting project grant: %w", err)
	}
	return nil
}

// FindGranted returns the projects the user holds an explicit grant on.
func (r *ProjectRepository) FindGranted(ctx context.Context, userID uuid.UUID) ([]*model.Project, error) {
	var projects []*model.Project
	if err := r.db.WithContext(ctx).
		Joins("JOIN project_grants ON projects.id = project_grants.project_id").
		Where("project_grants.user_id = ?", userID).
		Order("projects.created_at").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("finding granted projects: %w", err)
	}
	return projects, nil
}
