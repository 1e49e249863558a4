package services

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService delivers reminder notifications through SendGrid. It satisfies
// the reminder engine's Sender interface.
type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_NOTIFICATIONS_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")

	client := sendgrid.NewSendClient(apiKey)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Send delivers a single notification to the given address. The body is plain
// text; a simple HTML rendering is derived from it for the HTML part.
func (s *EmailService) Send(address, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", address)
	htmlContent := fmt.Sprintf("<p>%s</p><p>This mail was sent automatically by Day Memory.</p>", body)

	message := mail.NewSingleEmail(from, subject, to, body, htmlContent)

	response, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", address, response.StatusCode)
	}
	return nil
}
