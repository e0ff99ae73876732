// internal/model/role.go
package model

// Role is the closed set of organization-level roles.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
)

// Valid reports whether the role belongs to the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProjectManager:
		return true
	}
	return false
}

// PermissionLevel is the closed set of per-project grant levels for
// project managers. Admins never need a grant.
type PermissionLevel string

const (
	LevelView PermissionLevel = "view"
	LevelEdit PermissionLevel = "edit"
)

func (l PermissionLevel) Valid() bool {
	switch l {
	case LevelView, LevelEdit:
		return true
	}
	return false
}
