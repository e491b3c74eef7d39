package services

import (
	"context"
	"fmt"
	"log/slog"

	"voterlink/internal/domain"
)

// TemplateNumberBlocked is the email template for the operator lockout alert.
const TemplateNumberBlocked = "number_blocked"

type alertService struct {
	mailer    domain.Mailer
	renderer  domain.EmailTemplateRenderer
	recipient string
	logger    *slog.Logger
}

// NewAlertService returns an AlertService that emails recipient using the given Mailer and template renderer.
// With an empty recipient alerts are only logged.
func NewAlertService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, recipient string, logger *slog.Logger) domain.AlertService {
	return &alertService{mailer: mailer, renderer: renderer, recipient: recipient, logger: logger}
}

// SendNumberBlocked notifies operators that a phone number reached the abuse threshold.
func (s *alertService) SendNumberBlocked(ctx context.Context, data *domain.NumberBlockedEmailData) error {
	if data == nil {
		return fmt.Errorf("number blocked data is nil")
	}
	if data.To == "" {
		data.To = s.recipient
	}
	if data.To == "" {
		s.logger.WarnContext(ctx, "number blocked, no alert recipient configured", "phone", data.PhoneNumber)
		return nil
	}
	subject, htmlBody, textBody, err := s.renderer.Render(TemplateNumberBlocked, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", TemplateNumberBlocked, err)
	}
	if err := s.mailer.Send(ctx, data.To, subject, htmlBody, textBody); err != nil {
		outboundFailuresCounter.WithLabelValues("email", TemplateNumberBlocked).Inc()
		return fmt.Errorf("failed to send number blocked email: %w", err)
	}
	s.logger.InfoContext(ctx, "number blocked alert sent", "to", data.To, "phone", data.PhoneNumber)
	return nil
}
