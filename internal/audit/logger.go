package audit

import (
	"context"

	"github.com/surveyhive/surveyhive/internal/model"
)

// Logger defines the interface for auditing operations. Callers treat
// failures as non-fatal: an audit write never aborts the primary
// operation.
type Logger interface {
	// LogPermissionDenied logs a rejected capability check
	LogPermissionDenied(
		ctx context.Context,
		actorID string,
		permission string,
		resource model.Resource,
	) error

	// LogEntityDelete logs a destructive operation together with the
	// cascade-impact counts computed before the delete
	LogEntityDelete(
		ctx context.Context,
		actorID string,
		resource model.Resource,
		reason string,
		impact model.JSONMap,
	) error

	// LogMembershipChange logs a membership add/remove or grant change
	LogMembershipChange(
		ctx context.Context,
		action string,
		actorID string,
		subjectID string,
		resource model.Resource,
	) error

	// LogDataExport logs an export of survey data
	LogDataExport(
		ctx context.Context,
		actorID string,
		resource model.Resource,
		reason string,
	) error
}

// NoopLogger is a logger that does nothing
type NoopLogger struct{}

// LogPermissionDenied implements Logger.LogPermissionDenied
func (l *NoopLogger) LogPermissionDenied(
	ctx context.Context,
	actorID string,
	permission string,
	resource model.Resource,
) error {
	return nil
}

// LogEntityDelete implements Logger.LogEntityDelete
func (l *NoopLogger) LogEntityDelete(
	ctx context.Context,
	actorID string,
	resource model.Resource,
	reason string,
	impact model.JSONMap,
) error {
	return nil
}

// LogMembershipChange implements Logger.LogMembershipChange
func (l *NoopLogger) LogMembershipChange(
	ctx context.Context,
	action string,
	actorID string,
	subjectID string,
	resource model.Resource,
) error {
	return nil
}

// LogDataExport implements Logger.LogDataExport
func (l *NoopLogger) LogDataExport(
	ctx context.Context,
	actorID string,
	resource model.Resource,
	reason string,
) error {
	return nil
}
