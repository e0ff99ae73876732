// internal/model/survey.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Survey belongs to exactly one project and inherits its effective
// permissions; there is no survey-level ACL.
type Survey struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Project   Project `gorm:"foreignKey:ProjectID" json:"-"`
	CreatedBy User    `gorm:"foreignKey:CreatedByID" json:"-"`
}

func (s *Survey) ResourceType() string { return "survey" }
func (s *Survey) ResourceID() string   { return s.ID.String() }

// SurveyResponse is a participant submission, recorded through a survey
// invitation token.
type SurveyResponse struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SurveyID     uuid.UUID `gorm:"type:uuid;not null;index" json:"survey_id"`
	InvitationID uuid.UUID `gorm:"type:uuid;not null" json:"invitation_id"`
	Answers      JSONMap   `gorm:"type:jsonb" json:"answers"`
	SubmittedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"submitted_at"`

	Survey Survey `gorm:"foreignKey:SurveyID" json:"-"`
}
