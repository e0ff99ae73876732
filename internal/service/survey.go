// internal/service/survey.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/surveyhive/surveyhive/internal/audit"
	"github.com/surveyhive/surveyhive/internal/domain"
	"github.com/surveyhive/surveyhive/internal/model"
	"github.com/surveyhive/surveyhive/internal/rbac"
	"github.com/surveyhive/surveyhive/internal/repository"
)

// SurveyService manages surveys and participant responses. Surveys carry
// no ACL of their own; every check delegates to the owning project. The
// CanView/CanEdit/CanDelete methods are the boundary the dashboard and
// export collaborators call before rendering or exporting.
type SurveyService struct {
	surveys     repository.SurveyRepositoryIface
	projects    repository.ProjectRepositoryIface
	invitations repository.InvitationRepositoryIface
	resolver    *rbac.Resolver
	cascade     *CascadeCalculator
	auditor     audit.Logger
	validate    *validator.Validate
}

func NewSurveyService(
	surveys repository.SurveyRepositoryIface,
	projects repository.ProjectRepositoryIface,
	invitations repository.InvitationRepositoryIface,
	resolver *rbac.Resolver,
	cascade *CascadeCalculator,
	auditor audit.Logger,
) *SurveyService {
	return &SurveyService{
		surveys:     surveys,
		projects:    projects,
		invitations: invitations,
		resolver:    resolver,
		cascade:     cascade,
		auditor:     auditor,
		validate:    validator.New(),
	}
}

func (s *SurveyService) CanView(ctx context.Context, user *model.User, survey *model.Survey) (bool, error) {
	return s.resolver.CanViewSurvey(ctx, user, survey)
}

func (s *SurveyService) CanEdit(ctx context.Context, user *model.User, survey *model.Survey) (bool, error) {
	return s.resolver.CanEditSurvey(ctx, user, survey)
}

func (s *SurveyService) CanDelete(ctx context.Context, user *model.User, survey *model.Survey) (bool, error) {
	return s.resolver.CanDeleteSurvey(ctx, user, survey)
}

type CreateSurveyInput struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
}

// CreateSurvey requires edit capability on the owning project.
func (s *SurveyService) CreateSurvey(ctx context.Context, actor *model.User, input CreateSurveyInput) (*model.Survey, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	project, err := s.projects.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermCreate, project, func(ctx context.Context) (bool, error) {
		return s.resolver.CanEditProject(ctx, actor, project)
	})
	if err != nil {
		return nil, logDenied(ctx, s.auditor, project, err)
	}

	survey := &model.Survey{
		ProjectID:   project.ID,
		Name:        input.Name,
		Description: input.Description,
		CreatedByID: actor.ID,
	}

	if err := s.surveys.Create(ctx, survey); err != nil {
		return nil, err
	}

	return survey, nil
}

type UpdateSurveyInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (s *SurveyService) UpdateSurvey(ctx context.Context, actor *model.User, surveyID uuid.UUID, input UpdateSurveyInput) (*model.Survey, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermEdit, survey, func(ctx context.Context) (bool, error) {
		return s.resolver.CanEditSurvey(ctx, actor, survey)
	})
	if err != nil {
		return nil, logDenied(ctx, s.auditor, survey, err)
	}

	survey.Name = input.Name
	survey.Description = input.Description
	if err := s.surveys.Update(ctx, survey); err != nil {
		return nil, err
	}

	return survey, nil
}

// DeleteSurvey is admin-only through the owning project. Response counts
// are captured before the delete for the audit trail.
func (s *SurveyService) DeleteSurvey(ctx context.Context, actor *model.User, surveyID uuid.UUID, reason string) error {
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		return err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermDelete, survey, func(ctx context.Context) (bool, error) {
		return s.resolver.CanDeleteSurvey(ctx, actor, survey)
	})
	if err != nil {
		return logDenied(ctx, s.auditor, survey, err)
	}

	impact, err := s.cascade.ForSurvey(ctx, survey.ID)
	if err != nil {
		return fmt.Errorf("computing cascade impact: %w", err)
	}

	if err := s.surveys.Delete(ctx, survey.ID); err != nil {
		return err
	}

	if err := s.auditor.LogEntityDelete(ctx, actor.ID.String(), survey, reason, impact.Map()); err != nil {
		slog.WarnContext(ctx, "audit log write failed", "error", err, "survey", survey.ID)
	}

	return nil
}

// ProjectSurveys lists the surveys under a project for viewers.
func (s *SurveyService) ProjectSurveys(ctx context.Context, actor *model.User, projectID uuid.UUID) ([]*model.Survey, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermView, project, func(ctx context.Context) (bool, error) {
		return s.resolver.CanViewProject(ctx, actor, project)
	})
	if err != nil {
		return nil, logDenied(ctx, s.auditor, project, err)
	}

	return s.surveys.FindByProject(ctx, project.ID)
}

// AuthorizeExport checks view capability on the survey and records the
// export in the audit trail. Export formatting itself lives outside this
// service.
func (s *SurveyService) AuthorizeExport(ctx context.Context, actor *model.User, surveyID uuid.UUID, reason string) (*model.Survey, error) {
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermView, survey, func(ctx context.Context) (bool, error) {
		return s.resolver.CanViewSurvey(ctx, actor, survey)
	})
	if err != nil {
		return nil, logDenied(ctx, s.auditor, survey, err)
	}

	if err := s.auditor.LogDataExport(ctx, actor.ID.String(), survey, reason); err != nil {
		slog.WarnContext(ctx, "audit log write failed", "error", err, "survey", survey.ID)
	}

	return survey, nil
}

type SubmitResponseInput struct {
	Key     string        `json:"key" validate:"required"`
	Answers model.JSONMap `json:"answers" validate:"required"`
}

// SubmitResponse records a participant submission through a survey
// invitation token. The token must be unexpired and unconsumed; it is
// consumed atomically so a key can only ever produce one response.
func (s *SurveyService) SubmitResponse(ctx context.Context, input SubmitResponseInput) (*model.SurveyResponse, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	inv, err := s.invitations.FindSurveyInvitationByKey(ctx, input.Key)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if inv.Consumed() {
		return nil, domain.ErrInvitationUsed
	}
	if inv.Expired(now) {
		return nil, domain.ErrInvitationExpired
	}

	response := &model.SurveyResponse{
		SurveyID:     inv.SurveyID,
		InvitationID: inv.ID,
		Answers:      input.Answers,
		SubmittedAt:  now,
	}

	// Consume and insert commit together; a failed insert leaves the
	// key redeemable so the participant can retry.
	if err := s.invitations.RedeemSurveyInvitation(ctx, inv.ID, now, response); err != nil {
		if errors.Is(err, domain.ErrInvitationUsed) {
			return nil, err
		}
		return nil, fmt.Errorf("redeeming invitation: %w", err)
	}

	return response, nil
}
