// internal/email/mailer/org_invitation.go
package mailer

import (
	"fmt"

	"github.com/surveyhive/surveyhive/internal/email"
)

// OrgInvitationTemplateData contains data for the organization invitation template
type OrgInvitationTemplateData struct {
	OrganizationName string
	AcceptLink       string
}

// SendOrgInvitationEmail sends the tokenized join link to the invitee
func SendOrgInvitationEmail(s *email.Service, to, organizationName, acceptLink string) error {
	templateData := OrgInvitationTemplateData{
		OrganizationName: organizationName,
		AcceptLink:       acceptLink,
	}

	emailData := email.EmailData{
		To:           to,
		FromName:     "SurveyHive",
		Subject:      fmt.Sprintf("You have been invited to join %s on SurveyHive", organizationName),
		TemplateName: "org_invitation",
		TemplateData: templateData,
	}

	return s.SendEmail(emailData)
}
