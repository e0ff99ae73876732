// internal/email/mailer/survey_invitation.go
package mailer

import (
	"fmt"

	"github.com/surveyhive/surveyhive/internal/email"
)

// SurveyInvitationTemplateData contains data for the survey invitation template
type SurveyInvitationTemplateData struct {
	SurveyName  string
	RespondLink string
}

// SendSurveyInvitationEmail sends the tokenized response link to a participant
func SendSurveyInvitationEmail(s *email.Service, to, surveyName, respondLink string) error {
	templateData := SurveyInvitationTemplateData{
		SurveyName:  surveyName,
		RespondLink: respondLink,
	}

	emailData := email.EmailData{
		To:           to,
		FromName:     "SurveyHive",
		Subject:      fmt.Sprintf("You are invited to take the survey %q", surveyName),
		TemplateName: "survey_invitation",
		TemplateData: templateData,
	}

	return s.SendEmail(emailData)
}
