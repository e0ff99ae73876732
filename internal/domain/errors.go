// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooWeak    = errors.New("password too weak")
	ErrUnauthorized       = errors.New("unauthorized")

	// Organization-related errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrDuplicateMembership  = errors.New("user is already a member of the organization")

	// Role and grant errors
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidPermissionLevel = errors.New("invalid permission level")
	ErrInvalidGrantee         = errors.New("grantee is not a project manager in the organization")
	ErrGrantNotFound          = errors.New("project grant not found")

	// Project/survey errors
	ErrProjectNotFound = errors.New("project not found")
	ErrSurveyNotFound  = errors.New("survey not found")

	// Invitation-related errors
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation expired")
	ErrInvitationUsed     = errors.New("invitation already accepted")

	// Permission denial sentinel, matched by PermissionDeniedError via errors.Is
	ErrPermissionDenied = errors.New("permission denied")
)

// PermissionDeniedError is returned when an actor lacks the capability an
// operation requires. It carries the actor, the permission kind and the
// target resource so the denial can be audited; callers match it with
// errors.Is(err, ErrPermissionDenied).
type PermissionDeniedError struct {
	UserID     string
	Permission string
	Resource   string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: user %s lacks %s on %s", e.UserID, e.Permission, e.Resource)
}

func (e *PermissionDeniedError) Is(target error) bool {
	return target == ErrPermissionDenied
}
