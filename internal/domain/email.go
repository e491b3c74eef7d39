package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// NumberBlockedEmailData holds data for the operator lockout alert.
type NumberBlockedEmailData struct {
	To          string
	PhoneNumber string
	Attempts    int
	BlockedAt   time.Time
}

// AlertService sends operator alerts.
type AlertService interface {
	SendNumberBlocked(ctx context.Context, data *NumberBlockedEmailData) error
}
