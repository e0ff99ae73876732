package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/surveyhive/surveyhive/internal/audit"
	"github.com/surveyhive/surveyhive/internal/domain"
	"github.com/surveyhive/surveyhive/internal/model"
	"github.com/surveyhive/surveyhive/internal/repository"
)

// logDenied records a refused capability check in the audit trail and
// returns the error unchanged. Non-denial errors pass through untouched.
func logDenied(ctx context.Context, auditor audit.Logger, resource model.Resource, err error) error {
	var denied *domain.PermissionDeniedError
	if errors.As(err, &denied) {
		if aerr := auditor.LogPermissionDenied(ctx, denied.UserID, denied.Permission, resource); aerr != nil {
			slog.WarnContext(ctx, "audit log write failed", "error", aerr)
		}
	}
	return err
}

// Ensure AuditLogService implements the audit.Logger interface
var _ audit.Logger = (*AuditLogService)(nil)

// AuditLogService persists audit log entries
type AuditLogService struct {
	repo *repository.AuditLogRepository
}

// NewAuditLogService creates a new AuditLogService
func NewAuditLogService(repo *repository.AuditLogRepository) *AuditLogService {
	return &AuditLogService{
		repo: repo,
	}
}

func (s *AuditLogService) entry(ctx context.Context, action string, actorID string, resource model.Resource) *model.AuditLog {
	log := &model.AuditLog{
		ActionType: action,
		ActorID:    actorID,
		Timestamp:  time.Now().UTC(),
		RequestID:  middleware.GetReqID(ctx),
	}
	if resource != nil {
		log.ResourceType = resource.ResourceType()
		log.ResourceID = resource.ResourceID()
	}
	return log
}

// LogPermissionDenied logs a rejected capability check
func (s *AuditLogService) LogPermissionDenied(
	ctx context.Context,
	actorID string,
	permission string,
	resource model.Resource,
) error {
	log := s.entry(ctx, model.ActionPermissionDenied, actorID, resource)
	log.Permission = permission
	return s.repo.Create(ctx, log)
}

// LogEntityDelete logs a destructive operation with its cascade impact
func (s *AuditLogService) LogEntityDelete(
	ctx context.Context,
	actorID string,
	resource model.Resource,
	reason string,
	impact model.JSONMap,
) error {
	log := s.entry(ctx, model.ActionEntityDelete, actorID, resource)
	log.Reason = reason
	log.Context = impact
	return s.repo.Create(ctx, log)
}

// LogMembershipChange logs a membership add/remove or grant change
func (s *AuditLogService) LogMembershipChange(
	ctx context.Context,
	action string,
	actorID string,
	subjectID string,
	resource model.Resource,
) error {
	log := s.entry(ctx, action, actorID, resource)
	log.Context = model.JSONMap{"subject_id": subjectID}
	return s.repo.Create(ctx, log)
}

// LogDataExport logs an export of survey data
func (s *AuditLogService) LogDataExport(
	ctx context.Context,
	actorID string,
	resource model.Resource,
	reason string,
) error {
	log := s.entry(ctx, model.ActionDataExport, actorID, resource)
	log.Reason = reason
	return s.repo.Create(ctx, log)
}
