// internal/repository/survey.go
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

type SurveyRepositoryIface interface {
	Create(ctx context.Context, survey *model.Survey) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Survey, error)
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Survey, error)
	Update(ctx context.Context, survey *model.Survey) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountResponses(ctx context.Context, surveyID uuid.UUID) (int64, error)
}

type SurveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

func (r *SurveyRepository) Create(ctx context.Context, survey *model.Survey) error {
	if err := r.db.WithContext(ctx).Create(survey).Error; err != nil {
		return fmt.Errorf("creating survey: %w", err)
	}
	return nil
}

func (r *SurveyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Survey, error) {
	var survey model.Survey
	if err := r.db.WithContext(ctx).First(&survey, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSurveyNotFound
		}
		return nil, fmt.Errorf("finding survey: %w", err)
	}
	return &survey, nil
}

func (r *SurveyRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Survey, error) {
	var surveys []*model.Survey
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&surveys).Error; err != nil {
		return nil, fmt.Errorf("finding project surveys: %w", err)
	}
	return surveys, nil
}

func (r *SurveyRepository) Update(ctx context.Context, survey *model.Survey) error {
	if err := r.db.WithContext(ctx).Save(survey).Error; err != nil {
		return fmt.Errorf("updating survey: %w", err)
	}
	return nil
}

func (r *SurveyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", id).Delete(&model.SurveyResponse{}).Error; err != nil {
			return fmt.Errorf("deleting survey responses: %w", err)
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.SurveyInvitation{}).Error; err != nil {
			return fmt.Errorf("deleting survey invitations: %w", err)
		}
		if err := tx.Delete(&model.Survey{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting survey: %w", err)
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *SurveyRepository) CountResponses(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.SurveyResponse{}).
		Where("survey_id = ?", surveyID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting survey responses: %w", err)
	}
	return count, nil
}
