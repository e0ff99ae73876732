package email

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendWithSendgrid delivers an invitation message through the Sendgrid
// API. Sendgrid acknowledges accepted mail with 202; anything else is
// surfaced with the response body for operators to chase.
func (s *Service) sendWithSendgrid(data EmailData, htmlContent, textContent string) error {
	if s.sendgridClient == nil {
		return fmt.Errorf("sendgrid client not configured")
	}

	from := mail.NewEmail(data.FromName, data.From)
	to := mail.NewEmail("", data.To)
	message := mail.NewSingleEmail(from, data.Subject, to, textContent, htmlContent)

	response, err := s.sendgridClient.Send(message)
	if err != nil {
		return fmt.Errorf("sending email via Sendgrid: %w", err)
	}

	if response.StatusCode != http.StatusAccepted {
		return fmt.Errorf("sendgrid rejected message: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
