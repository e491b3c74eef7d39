package services

import (
	"context"
	"fmt"
	"log/slog"

	"voterlink/internal/domain"
)

// Message template names.
const (
	TemplateVotingLink   = "voting_link"
	TemplateAbuseWarning = "abuse_warning"
	TemplateLockedOut    = "locked_out"
	TemplateLinkRejected = "link_rejected"
)

type notificationService struct {
	sender   domain.MessageSender
	renderer domain.MessageRenderer
	logger   *slog.Logger
}

// NewNotificationService returns a NotificationService that renders message templates and sends them through sender.
func NewNotificationService(sender domain.MessageSender, renderer domain.MessageRenderer, logger *slog.Logger) domain.NotificationService {
	return &notificationService{sender: sender, renderer: renderer, logger: logger}
}

func (s *notificationService) SendVotingLink(ctx context.Context, data *domain.VotingLinkMessageData) error {
	if data == nil {
		return fmt.Errorf("voting link data is nil")
	}
	return s.send(ctx, data.PhoneNumber, TemplateVotingLink, data)
}

func (s *notificationService) SendAbuseWarning(ctx context.Context, data *domain.AbuseWarningMessageData) error {
	if data == nil {
		return fmt.Errorf("abuse warning data is nil")
	}
	return s.send(ctx, data.PhoneNumber, TemplateAbuseWarning, data)
}

func (s *notificationService) SendLockoutNotice(ctx context.Context, phone string) error {
	return s.send(ctx, phone, TemplateLockedOut, nil)
}

func (s *notificationService) SendLinkRejected(ctx context.Context, phone string) error {
	return s.send(ctx, phone, TemplateLinkRejected, nil)
}

func (s *notificationService) send(ctx context.Context, to, templateName string, data any) error {
	body, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.sender.Send(ctx, to, body); err != nil {
		outboundFailuresCounter.WithLabelValues("whatsapp", templateName).Inc()
		return fmt.Errorf("failed to send %s message: %w", templateName, err)
	}
	s.logger.InfoContext(ctx, "whatsapp message sent", "to", to, "template", templateName)
	return nil
}
