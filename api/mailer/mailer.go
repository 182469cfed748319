package mailer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"PickEm/api/config"

	"github.com/matcornic/hermes/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrNotConfigured = errors.New("mail delivery is not configured")

// Mailer delivers account mail.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, username, link string) error
}

func product(frontendURL string) hermes.Hermes {
	return hermes.Hermes{
		Product: hermes.Product{
			Name:      "PickEm",
			Link:      frontendURL,
			Copyright: "PickEm bracket challenge",
		},
	}
}

// RenderPasswordReset returns the HTML and plain text bodies of the reset
// mail.
func RenderPasswordReset(frontendURL, username, link string) (string, string, error) {
	h := product(frontendURL)
	email := hermes.Email{
		Body: hermes.Body{
			Name:   username,
			Intros: []string{"Someone asked to reset the password on your PickEm account."},
			Actions: []hermes.Action{
				{
					Instructions: "Click the button below to choose a new password. The link expires in one hour.",
					Button: hermes.Button{
						Color: "#1F6FEB",
						Text:  "Reset your password",
						Link:  link,
					},
				},
			},
			Outros: []string{"If you did not ask for this, you can ignore this email."},
		},
	}

	html, err := h.GenerateHTML(email)
	if err != nil {
		return "", "", fmt.Errorf("render reset html: %w", err)
	}
	text, err := h.GeneratePlainText(email)
	if err != nil {
		return "", "", fmt.Errorf("render reset text: %w", err)
	}
	return html, text, nil
}

type SendGridMailer struct {
	client      *sendgrid.Client
	from        string
	frontendURL string
}

// NewSendGrid returns nil when no API key is configured.
func NewSendGrid(cfg config.Config) *SendGridMailer {
	if cfg.SendGridAPIKey == "" {
		return nil
	}
	return &SendGridMailer{
		client:      sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:        cfg.MailFrom,
		frontendURL: cfg.FrontendURL,
	}
}

func (m *SendGridMailer) SendPasswordReset(ctx context.Context, to, username, link string) error {
	if m == nil || m.client == nil {
		return ErrNotConfigured
	}
	html, text, err := RenderPasswordReset(m.frontendURL, username, link)
	if err != nil {
		return err
	}

	message := mail.NewSingleEmail(
		mail.NewEmail("PickEm", m.from),
		"Reset your PickEm password",
		mail.NewEmail(username, to),
		text,
		html,
	)
	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}
	log.Printf("[mailer] password reset sent to %s", to)
	return nil
}
