// Package email sends transactional mail over SMTP: password resets and
// shopkeeper welcome messages.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

const appName = "DukaHub"

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendPasswordResetEmail mails a reset link carrying the token. The link
// points at the frontend reset page.
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	body, err := render(passwordResetTemplate, map[string]string{
		"Email":    toEmail,
		"ResetURL": resetURL,
		"AppName":  appName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Reset Your Password - " + appName
	return s.send(toEmail, s.compose(toEmail, subject, body))
}

// SendShopWelcomeEmail mails login credentials to a newly provisioned
// shopkeeper.
func (s *EmailService) SendShopWelcomeEmail(toEmail, firstName, shopName, tempPassword string) error {
	body, err := render(shopWelcomeTemplate, map[string]string{
		"FirstName":    firstName,
		"ShopName":     shopName,
		"Email":        toEmail,
		"TempPassword": tempPassword,
		"LoginURL":     s.config.FrontendURL + "/login",
		"AppName":      appName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your %s account is ready - %s", shopName, appName)
	return s.send(toEmail, s.compose(toEmail, subject, body))
}

func (s *EmailService) send(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// compose assembles the headers and HTML body into a full MIME message.
func (s *EmailService) compose(to, subject, htmlBody string) []byte {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(htmlBody)
	return msg.Bytes()
}

func render(tmpl *template.Template, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
