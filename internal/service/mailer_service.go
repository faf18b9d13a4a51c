package service

import (
	"fmt"

	"github.com/papergen/papergen-backend/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// MailerService sends transactional email over SMTP.
type MailerService struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewMailerService creates a new MailerService.
func NewMailerService(cfg *config.Config, log zerolog.Logger) *MailerService {
	return &MailerService{
		cfg: cfg,
		log: log.With().Str("component", "mailer_service").Logger(),
	}
}

// SendPasswordReset emails a reset link built from the frontend URL and token.
func (s *MailerService) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendURL, token)

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SMTPFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password Reset Request")
	m.SetBody("text/html", fmt.Sprintf(
		`<p>A password reset was requested for your account.</p>
<p><a href="%s">Click here to reset your password</a></p>
<p>The link expires in %d minutes. If you did not request this, ignore this email.</p>`,
		link, int(s.cfg.ResetTokenTTL.Minutes())))

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		s.log.Error().Err(err).Str("to", to).Msg("password reset mail failed")
		return fmt.Errorf("send mail: %w", err)
	}

	s.log.Info().Str("to", to).Msg("password reset mail sent")
	return nil
}
