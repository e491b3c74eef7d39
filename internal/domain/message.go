package domain

import (
	"context"
	"time"
)

// InboundMessage is a provider-agnostic inbound WhatsApp message.
type InboundMessage struct {
	MessageID  string
	FromNumber string
	Text       string
}

// ProcessedMessage records an inbound message id so retries are ignored.
type ProcessedMessage struct {
	ID          string    `json:"id"`
	MessageID   string    `json:"message_id"`
	PhoneNumber string    `json:"phone_number"`
	ReceivedAt  time.Time `json:"received_at"`
}

// ProcessedMessageRepository stores processed message ids. Record returns
// ErrDuplicateMessage when the id is already stored.
type ProcessedMessageRepository interface {
	Record(ctx context.Context, m *ProcessedMessage) error
	Exists(ctx context.Context, messageID string) (bool, error)
}

// WebhookOutcome is what handling one inbound webhook delivery resulted in.
type WebhookOutcome string

const (
	OutcomeIgnored   WebhookOutcome = "ignored"
	OutcomeDuplicate WebhookOutcome = "duplicate"
	OutcomeBlocked   WebhookOutcome = "blocked"
	OutcomeWarned    WebhookOutcome = "warned"
	OutcomeLockedOut WebhookOutcome = "locked_out"
	OutcomeLinkSent  WebhookOutcome = "link_sent"
)

// WebhookService processes raw inbound webhook payloads.
type WebhookService interface {
	HandleInbound(ctx context.Context, rawPayload []byte) (WebhookOutcome, error)
}

// MessageSender delivers a text message to a phone number (infrastructure port).
type MessageSender interface {
	Send(ctx context.Context, to, body string) error
}

// MessageRenderer renders outbound message bodies from named templates.
type MessageRenderer interface {
	Render(templateName string, data any) (string, error)
}

// VotingLinkMessageData holds data for the voting link message.
type VotingLinkMessageData struct {
	PhoneNumber  string
	Link         string
	ValidMinutes int
}

// AbuseWarningMessageData holds data for the unregistered-number warning.
type AbuseWarningMessageData struct {
	PhoneNumber string
	Attempt     int
	MaxWarnings int
	RegisterURL string
}

// NotificationService sends the domain-level WhatsApp messages.
type NotificationService interface {
	SendVotingLink(ctx context.Context, data *VotingLinkMessageData) error
	SendAbuseWarning(ctx context.Context, data *AbuseWarningMessageData) error
	SendLockoutNotice(ctx context.Context, phone string) error
	SendLinkRejected(ctx context.Context, phone string) error
}
