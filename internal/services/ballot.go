package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"voterlink/internal/domain"
)

// BallotConfig holds link and grant lifetimes.
type BallotConfig struct {
	TokenTTL time.Duration
	GrantTTL time.Duration
}

type ballotService struct {
	store    domain.Store
	tokens   domain.LinkTokenValidator
	notifier domain.NotificationService
	validate *validator.Validate
	cfg      BallotConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewBallotService creates a BallotService.
func NewBallotService(store domain.Store, tokens domain.LinkTokenValidator, notifier domain.NotificationService, cfg BallotConfig, logger *slog.Logger) domain.BallotService {
	return &ballotService{
		store:    store,
		tokens:   tokens,
		notifier: notifier,
		validate: newFormValidator(),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// VisitLink checks a voting link token and returns a grant allowing one submission.
// A valid signature whose token is no longer the stored one yields
// ErrAlreadyUsedOrInvalid and a WhatsApp notice to the number.
func (s *ballotService) VisitLink(ctx context.Context, token string) (*domain.AuthorizationGrant, error) {
	claims, err := s.tokens.Validate(token, s.cfg.TokenTTL)
	if err != nil {
		if !domain.IsTokenError(err) {
			return nil, fmt.Errorf("validate token: %w", err)
		}
		linkVisitsCounter.WithLabelValues(visitResult(err)).Inc()
		return nil, err
	}
	phone := NormalizePhone(claims.PhoneNumber)
	repos := s.store.Repos()

	if _, err := repos.Pending.GetByPhoneAndToken(ctx, phone, token); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load pending authorization: %w", err)
		}
		linkVisitsCounter.WithLabelValues("already_used_or_invalid").Inc()
		s.logger.WarnContext(ctx, "link no longer valid", "phone", phone)
		if err := s.notifier.SendLinkRejected(ctx, phone); err != nil {
			s.logger.ErrorContext(ctx, "failed to send link rejected notice", "phone", phone, "err", err)
		}
		return nil, domain.ErrAlreadyUsedOrInvalid
	}

	voted, err := repos.Ballots.ExistsForPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("check ballot: %w", err)
	}
	if voted {
		linkVisitsCounter.WithLabelValues("already_voted").Inc()
		return nil, domain.ErrDuplicateVote
	}

	grant := domain.NewAuthorizationGrant(uuid.NewString(), phone, s.now(), s.cfg.GrantTTL)
	if err := repos.Grants.Upsert(ctx, grant); err != nil {
		return nil, fmt.Errorf("store grant: %w", err)
	}
	linkVisitsCounter.WithLabelValues("granted").Inc()
	s.logger.InfoContext(ctx, "ballot form granted", "phone", phone)
	return grant, nil
}

// Submit records one ballot for the number bound to grantID. The phone number is
// taken from the grant, never from the form. The grant is kept when validation
// fails so the form can be corrected and resubmitted. Submitting again with a
// grant that already recorded a ballot returns ErrDuplicateVote.
func (s *ballotService) Submit(ctx context.Context, grantID string, form *domain.BallotForm, submitterIP string) (*domain.Ballot, error) {
	if grantID == "" {
		ballotsCounter.WithLabelValues("unauthorized").Inc()
		return nil, domain.ErrUnauthorized
	}
	now := s.now().UTC()
	grant, err := s.store.Repos().Grants.GetActive(ctx, grantID, now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ballotsCounter.WithLabelValues("unauthorized").Inc()
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("load grant: %w", err)
	}
	if grant.Used() {
		ballotsCounter.WithLabelValues("duplicate").Inc()
		s.logger.InfoContext(ctx, "duplicate ballot rejected", "phone", grant.PhoneNumber)
		return nil, domain.ErrDuplicateVote
	}

	ballot, err := buildBallot(s.validate, form)
	if err != nil {
		ballotsCounter.WithLabelValues("invalid").Inc()
		return nil, err
	}
	ballot.ID = uuid.NewString()
	ballot.PhoneNumber = grant.PhoneNumber
	ballot.SubmitterIP = submitterIP
	ballot.SubmittedAt = now

	err = s.store.WithTx(ctx, func(r domain.Repositories) error {
		if err := r.Grants.MarkUsed(ctx, grant.ID, now); err != nil {
			return err
		}
		voted, err := r.Ballots.ExistsForPhone(ctx, grant.PhoneNumber)
		if err != nil {
			return fmt.Errorf("check ballot: %w", err)
		}
		if voted {
			return domain.ErrDuplicateVote
		}
		if err := r.Ballots.Create(ctx, ballot); err != nil {
			return err
		}
		if err := r.Pending.DeleteByPhone(ctx, grant.PhoneNumber); err != nil {
			return fmt.Errorf("delete pending authorization: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateVote) {
			ballotsCounter.WithLabelValues("duplicate").Inc()
			s.logger.InfoContext(ctx, "duplicate ballot rejected", "phone", grant.PhoneNumber)
			return nil, domain.ErrDuplicateVote
		}
		ballotsCounter.WithLabelValues("error").Inc()
		return nil, err
	}
	ballotsCounter.WithLabelValues("accepted").Inc()
	s.logger.InfoContext(ctx, "ballot recorded", "phone", grant.PhoneNumber, "municipality_id", ballot.MunicipalityID)
	return ballot, nil
}

func visitResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrDomainMismatch):
		return "domain_mismatch"
	default:
		return "invalid"
	}
}
