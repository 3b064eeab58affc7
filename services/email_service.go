// File: /services/email_service.go
package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"livewall-api/config"
	"livewall-api/models"
)

// EmailService sends audit mail about irreversible moderation actions to
// the configured inbox. With no AUDIT_EMAIL set it stays silent.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendDeletionNotice reports a permanent post deletion, including whether
// the associated media object could be released.
func (es *EmailService) SendDeletionNotice(post *models.Post, releaseErr error) error {
	if es.config.AuditEmail == "" {
		return nil
	}

	body := fmt.Sprintf(`A post was permanently deleted.

Post ID:    %s
Kind:       %s
Created:    %s
Like count: %d
`, post.ID, post.Kind, post.CreatedAt.Format(time.RFC3339), post.LikeCount)

	if media, ok := post.Media(); ok {
		body += fmt.Sprintf("Media:      %s\n", media.URL)
		if releaseErr != nil {
			body += fmt.Sprintf("\nWARNING: the stored media object could not be released:\n%v\n", releaseErr)
		} else {
			body += "\nThe stored media object was released.\n"
		}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", es.config.AuditEmail)
	m.SetHeader("Subject", fmt.Sprintf("Post %s deleted", post.ID))
	m.SetBody("text/plain", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send deletion notice: %w", err)
	}
	return nil
}
