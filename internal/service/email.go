package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailService delivers transactional mail through Resend. In development
// (or without an API key) it logs instead of sending, so the verification
// flow stays exercisable locally.
type EmailService struct {
	client    *resend.Client
	fromEmail string
	appURL    string
	appName   string
	isDev     bool
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		appURL:    appURL,
		appName:   appName,
		isDev:     isDev,
	}
}

// SendVerificationEmail sends the verification link. The raw token is
// included in the body as well: the manual fallback flow asks users to
// paste it when the link itself is unusable (mobile mail clients opening
// the wrong host, blocked redirects).
func (s *EmailService) SendVerificationEmail(email, name, verificationToken string) error {
	verifyURL := fmt.Sprintf("%s/verify-email/%s", s.appURL, verificationToken)
	subject, html, text := verificationEmailTemplate(name, verifyURL, verificationToken, s.appName)

	return s.send("verification", email, subject, html, text)
}

// SendWelcomeEmail confirms a completed verification.
func (s *EmailService) SendWelcomeEmail(email, name string) error {
	subject, html, text := welcomeEmailTemplate(name, s.appURL, s.appName)

	return s.send("welcome", email, subject, html, text)
}

func (s *EmailService) send(kind, to, subject, html, text string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", to)
	}
	return err
}
