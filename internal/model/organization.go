// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	CreatedBy User         `gorm:"foreignKey:CreatedByID" json:"-"`
	Members   []Membership `gorm:"foreignKey:OrganizationID" json:"-"`
}

func (o *Organization) ResourceType() string { return "organization" }
func (o *Organization) ResourceID() string   { return o.ID.String() }

// Membership links a user to an organization with exactly one role.
// The (user, organization) pair is unique; a user holds at most one role
// per organization.
type Membership struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_org_user" json:"organization_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_org_user" json:"user_id"`
	Role           Role      `gorm:"type:text;not null" json:"role"`
	AddedByID      uuid.UUID `gorm:"type:uuid" json:"added_by_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	User         User         `gorm:"foreignKey:UserID" json:"-"`
}
