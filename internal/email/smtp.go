package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"time"
)

// sendWithSMTP delivers a message over plain SMTP using the server
// configured for the active provider.
func (s *Service) sendWithSMTP(data EmailData, htmlContent, textContent string) error {
	server, ok := s.config.SMTP[string(s.provider)]
	if !ok {
		return fmt.Errorf("no SMTP server configured for provider %q", s.provider)
	}

	message := buildMultipartMessage(data, htmlContent, textContent)

	auth := smtp.PlainAuth("", server.Username, server.Password, server.Host)
	addr := fmt.Sprintf("%s:%d", server.Host, server.Port)

	if err := smtp.SendMail(addr, auth, data.From, []string{data.To}, message); err != nil {
		return fmt.Errorf("sending email via SMTP: %w", err)
	}

	return nil
}

// buildMultipartMessage assembles a multipart/alternative body so mail
// clients fall back to the plaintext part when they cannot render HTML.
func buildMultipartMessage(data EmailData, htmlContent, textContent string) []byte {
	boundary := fmt.Sprintf("surveyhive_%d", time.Now().UnixNano())

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", data.FromName, data.From)
	fmt.Fprintf(&buf, "To: %s\r\n", data.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", data.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	writePart(&buf, boundary, "text/plain", textContent)
	writePart(&buf, boundary, "text/html", htmlContent)
	fmt.Fprintf(&buf, "\r\n--%s--", boundary)

	return buf.Bytes()
}

func writePart(buf *bytes.Buffer, boundary, contentType, content string) {
	fmt.Fprintf(buf, "--%s\r\n", boundary)
	fmt.Fprintf(buf, "Content-Type: %s; charset=utf-8\r\n", contentType)
	buf.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	buf.WriteString(base64.StdEncoding.EncodeToString([]byte(content)))
	buf.WriteString("\r\n\r\n")
}
