// internal/model/invitation.go
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// InviteToken is the token/expiry state shared by both invitation kinds.
// Keys are 32 random bytes, hex encoded, and single-use once accepted.
type InviteToken struct {
	Key        string     `gorm:"type:text;uniqueIndex;not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

// NewInviteToken issues a fresh unguessable token valid for ttl.
func NewInviteToken(ttl time.Duration) InviteToken {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic(err) // This should never happen
	}
	return InviteToken{
		Key:       hex.EncodeToString(bytes),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
}

// Expired reports whether the token's window has passed at the given time.
func (t InviteToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Consumed reports whether the token was already accepted.
func (t InviteToken) Consumed() bool {
	return t.AcceptedAt != nil
}

// OrgInvitation is a pending offer to join an organization with a role.
type OrgInvitation struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Email          string    `gorm:"type:citext;not null" json:"email"`
	Role           Role      `gorm:"type:text;not null" json:"role"`
	InvitedByID    uuid.UUID `gorm:"type:uuid;not null" json:"invited_by_id"`
	InviteToken
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	InvitedBy    User         `gorm:"foreignKey:InvitedByID" json:"-"`
}

// SurveyInvitation is a pending offer to respond to a survey. It is a
// separate entity from OrgInvitation; the two only share the token shape.
type SurveyInvitation struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SurveyID    uuid.UUID `gorm:"type:uuid;not null;index" json:"survey_id"`
	Email       string    `gorm:"type:citext;not null" json:"email"`
	InvitedByID uuid.UUID `gorm:"type:uuid;not null" json:"invited_by_id"`
	InviteToken
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Survey    Survey `gorm:"foreignKey:SurveyID" json:"-"`
	InvitedBy User   `gorm:"foreignKey:InvitedByID" json:"-"`
}
