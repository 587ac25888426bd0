package mail

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"admin-dashboard/internal/config"
	"admin-dashboard/internal/logger"
)

// Mailer dispatches transactional email. Implementations must not block the
// caller beyond an ordinary SMTP round trip.
type Mailer interface {
	SendPasswordResetEmail(email, token string) error
	SendWelcomeEmail(email, name string) error
}

// SMTPMailer sends email through a configured SMTP relay.
type SMTPMailer struct {
	cfg         config.SMTPConfig
	frontendURL string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	frontendURL := cfg.Server.FrontendURL
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	return &SMTPMailer{
		cfg:         cfg.SMTP,
		frontendURL: frontendURL,
	}
}

func (m *SMTPMailer) send(to, subject, body string) error {
	from := m.cfg.From
	if from == "" {
		from = m.cfg.User
	}

	msg := gomail.NewMessage()
	if m.cfg.FromName != "" {
		msg.SetAddressHeader("From", from, m.cfg.FromName)
	} else {
		msg.SetHeader("From", from)
	}
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (m *SMTPMailer) SendPasswordResetEmail(email, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)

	body := fmt.Sprintf(`<p>Hello,</p>
<p>We received a request to reset the password for your account.</p>
<p><a href="%s">Reset your password</a></p>
<p>Or copy and paste this link into your browser:</p>
<p>%s</p>
<p><strong>This link expires in 1 hour.</strong></p>
<p>If you did not request a password reset, you can ignore this email.</p>`, resetURL, resetURL)

	return m.send(email, "Password Reset - Admin Dashboard", body)
}

func (m *SMTPMailer) SendWelcomeEmail(email, name string) error {
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>Welcome to Admin Dashboard! Your account has been created successfully.</p>
<p>If you have any questions, feel free to contact us.</p>`, name)

	return m.send(email, "Welcome to Admin Dashboard!", body)
}

// NoopMailer logs instead of sending. Used when SMTP is not configured so
// that auth flows keep working in development.
type NoopMailer struct{}

func (NoopMailer) SendPasswordResetEmail(email, token string) error {
	logger.Info("SMTP not configured, skipping password reset email",
		zap.String("email", email),
	)
	return nil
}

func (NoopMailer) SendWelcomeEmail(email, _ string) error {
	logger.Info("SMTP not configured, skipping welcome email",
		zap.String("email", email),
	)
	return nil
}

// NewMailer returns an SMTP mailer when a host is configured, the noop
// mailer otherwise.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTP.Host == "" {
		return NoopMailer{}
	}
	return NewSMTPMailer(cfg)
}
