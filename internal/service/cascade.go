package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/surveyhive/surveyhive/internal/model"
	"github.com/surveyhive/surveyhive/internal/repository"
)

// CascadeImpact counts the dependent rows a destructive delete would take
// with it. It is computed read-only, before the delete, and handed to the
// audit logger.
type CascadeImpact struct {
	Projects  int64 `json:"projects"`
	Surveys   int64 `json:"surveys"`
	Responses int64 `json:"responses"`
}

// Map renders the counts for an audit log context.
func (i CascadeImpact) Map() model.JSONMap {
	return model.JSONMap{
		"projects":  i.Projects,
		"surveys":   i.Surveys,
		"responses": i.Responses,
	}
}

// CascadeCalculator performs the read-only dependent-row counting. It
// never mutates anything.
type CascadeCalculator struct {
	projects repository.ProjectRepositoryIface
	surveys  repository.SurveyRepositoryIface
}

func NewCascadeCalculator(projects repository.ProjectRepositoryIface, surveys repository.SurveyRepositoryIface) *CascadeCalculator {
	return &CascadeCalculator{projects: projects, surveys: surveys}
}

// ForOrganization counts projects under the organization plus their
// surveys and responses.
func (c *CascadeCalculator) ForOrganization(ctx context.Context, orgID uuid.UUID) (CascadeImpact, error) {
	var impact CascadeImpact

	projects, err := c.projects.FindByOrganization(ctx, orgID)
	if err != nil {
		return impact, fmt.Errorf("listing projects: %w", err)
	}
	impact.Projects = int64(len(projects))

	for _, project := range projects {
		sub, err := c.ForProject(ctx, project.ID)
		if err != nil {
			return impact, err
		}
		impact.Surveys += sub.Surveys
		impact.Responses += sub.Responses
	}

	return impact, nil
}

// ForProject counts surveys under the project and their responses.
func (c *CascadeCalculator) ForProject(ctx context.Context, projectID uuid.UUID) (CascadeImpact, error) {
	var impact CascadeImpact

	surveys, err := c.surveys.FindByProject(ctx, projectID)
	if err != nil {
		return impact, fmt.Errorf("listing surveys: %w", err)
	}
	impact.Surveys = int64(len(surveys))

	for _, survey := range surveys {
		responses, err := c.surveys.CountResponses(ctx, survey.ID)
		if err != nil {
			return impact, fmt.Errorf("counting responses: %w", err)
		}
		impact.Responses += responses
	}

	return impact, nil
}

// ForSurvey counts the responses under one survey.
func (c *CascadeCalculator) ForSurvey(ctx context.Context, surveyID uuid.UUID) (CascadeImpact, error) {
	responses, err := c.surveys.CountResponses(ctx, surveyID)
	if err != nil {
		return CascadeImpact{}, fmt.Errorf("counting responses: %w", err)
	}
	return CascadeImpact{Responses: responses}, nil
}
