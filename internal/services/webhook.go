package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"voterlink/internal/domain"
)

// WebhookConfig holds the settings the webhook flow needs.
type WebhookConfig struct {
	// ServingDomain is the scheme and host links are built on, without a trailing slash.
	ServingDomain string
	TokenTTL      time.Duration
}

type webhookService struct {
	store    domain.Store
	tokens   domain.LinkTokenIssuer
	guard    domain.AbuseGuard
	notifier domain.NotificationService
	alerts   domain.AlertService
	cfg      WebhookConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewWebhookService creates a WebhookService. alerts may be nil.
func NewWebhookService(store domain.Store, tokens domain.LinkTokenIssuer, guard domain.AbuseGuard, notifier domain.NotificationService, alerts domain.AlertService, cfg WebhookConfig, logger *slog.Logger) domain.WebhookService {
	return &webhookService{
		store:    store,
		tokens:   tokens,
		guard:    guard,
		notifier: notifier,
		alerts:   alerts,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// webhookResult is what the transaction decided; replies are sent after commit.
type webhookResult struct {
	outcome domain.WebhookOutcome
	token   string
	counter *domain.AbuseCounter
}

// HandleInbound processes one webhook delivery. Replies are sent at most once
// per message id, after the state change has been committed. Send failures are
// logged and never returned.
func (s *webhookService) HandleInbound(ctx context.Context, rawPayload []byte) (domain.WebhookOutcome, error) {
	msg := NormalizePayload(rawPayload)
	if msg == nil || msg.FromNumber == "" {
		s.logger.DebugContext(ctx, "webhook without messages")
		return s.done(domain.OutcomeIgnored), nil
	}
	phone := msg.FromNumber
	s.logger.InfoContext(ctx, "whatsapp message received", "phone", phone, "message_id", msg.MessageID, "text", msg.Text)
	if !hasTrigger(msg.Text) {
		s.logger.InfoContext(ctx, "message without keyword, continuing if number is authorized", "phone", phone)
	}

	if msg.MessageID != "" {
		seen, err := s.store.Repos().Messages.Exists(ctx, msg.MessageID)
		if err != nil {
			return "", fmt.Errorf("check processed message: %w", err)
		}
		if seen {
			s.logger.InfoContext(ctx, "duplicate message ignored", "message_id", msg.MessageID)
			return s.done(domain.OutcomeDuplicate), nil
		}
	}

	now := s.now().UTC()
	var res webhookResult
	err := s.store.WithTx(ctx, func(r domain.Repositories) error {
		res = webhookResult{}
		if msg.MessageID != "" {
			pm := &domain.ProcessedMessage{MessageID: msg.MessageID, PhoneNumber: phone, ReceivedAt: now}
			if err := r.Messages.Record(ctx, pm); err != nil {
				return err
			}
		}

		blocked, err := s.guard.IsBlocked(ctx, r.Abuse, phone)
		if err != nil {
			return err
		}
		if blocked {
			res.outcome = domain.OutcomeBlocked
			return nil
		}

		_, err = r.Pending.GetByPhone(ctx, phone)
		if errors.Is(err, domain.ErrNotFound) {
			verdict, counter, err := s.guard.RecordUnauthorized(ctx, r.Abuse, phone)
			if err != nil {
				return err
			}
			res.counter = counter
			switch verdict {
			case domain.VerdictWarn:
				res.outcome = domain.OutcomeWarned
			case domain.VerdictLockedOut:
				res.outcome = domain.OutcomeLockedOut
			default:
				res.outcome = domain.OutcomeBlocked
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("load pending authorization: %w", err)
		}

		token, err := s.tokens.Issue(phone)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		if err := r.Pending.Upsert(ctx, phone, token, now); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
		res.outcome = domain.OutcomeLinkSent
		res.token = token
		return nil
	})
	if errors.Is(err, domain.ErrDuplicateMessage) {
		s.logger.InfoContext(ctx, "duplicate message ignored", "message_id", msg.MessageID)
		return s.done(domain.OutcomeDuplicate), nil
	}
	if err != nil {
		return "", err
	}

	s.reply(ctx, phone, res, now)
	return s.done(res.outcome), nil
}

func (s *webhookService) reply(ctx context.Context, phone string, res webhookResult, now time.Time) {
	switch res.outcome {
	case domain.OutcomeBlocked:
		s.logger.InfoContext(ctx, "blocked number, no reply", "phone", phone)

	case domain.OutcomeWarned:
		s.logger.InfoContext(ctx, "unauthorized number warned", "phone", phone, "attempts", res.counter.Attempts)
		data := &domain.AbuseWarningMessageData{
			PhoneNumber: phone,
			Attempt:     res.counter.Attempts,
			MaxWarnings: s.guard.MaxWarnings(),
			RegisterURL: s.cfg.ServingDomain + "/generar_link",
		}
		if err := s.notifier.SendAbuseWarning(ctx, data); err != nil {
			s.logger.ErrorContext(ctx, "failed to send warning", "phone", phone, "err", err)
		}

	case domain.OutcomeLockedOut:
		s.logger.WarnContext(ctx, "number blocked", "phone", phone, "attempts", res.counter.Attempts)
		if err := s.notifier.SendLockoutNotice(ctx, phone); err != nil {
			s.logger.ErrorContext(ctx, "failed to send lockout notice", "phone", phone, "err", err)
		}
		if s.alerts != nil {
			alert := &domain.NumberBlockedEmailData{PhoneNumber: phone, Attempts: res.counter.Attempts, BlockedAt: now}
			if err := s.alerts.SendNumberBlocked(ctx, alert); err != nil {
				s.logger.ErrorContext(ctx, "failed to send number blocked alert", "phone", phone, "err", err)
			}
		}

	case domain.OutcomeLinkSent:
		linksIssuedCounter.WithLabelValues("webhook").Inc()
		data := &domain.VotingLinkMessageData{
			PhoneNumber:  phone,
			Link:         VotingLink(s.cfg.ServingDomain, res.token),
			ValidMinutes: int(s.cfg.TokenTTL / time.Minute),
		}
		s.logger.InfoContext(ctx, "voting link issued", "phone", phone)
		if err := s.notifier.SendVotingLink(ctx, data); err != nil {
			s.logger.ErrorContext(ctx, "failed to send voting link", "phone", phone, "err", err)
		}
	}
}

func (s *webhookService) done(o domain.WebhookOutcome) domain.WebhookOutcome {
	webhookOutcomesCounter.WithLabelValues(string(o)).Inc()
	return o
}

// VotingLink builds the voting URL for token on servingDomain.
func VotingLink(servingDomain, token string) string {
	return servingDomain + "/votar?token=" + url.QueryEscape(token)
}
