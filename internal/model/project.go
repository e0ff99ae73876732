// internal/model/project.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Project belongs to exactly one organization.
type Project struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	CreatedByID    uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	CreatedBy    User         `gorm:"foreignKey:CreatedByID" json:"-"`
}

func (p *Project) ResourceType() string { return "project" }
func (p *Project) ResourceID() string   { return p.ID.String() }

// ProjectGrant gives a project manager view or edit access to one project.
// Admins have full access without a grant row. (user, project) is unique.
type ProjectGrant struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_project_user" json:"user_id"`
	Level       PermissionLevel `gorm:"type:text;not null" json:"level"`
	GrantedByID uuid.UUID       `gorm:"type:uuid" json:"granted_by_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}
