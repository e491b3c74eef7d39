package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"voterlink/internal/domain"
	"voterlink/internal/textnorm"
)

type registrationService struct {
	store  domain.Store
	tokens domain.LinkTokenIssuer
	logger *slog.Logger
	now    func() time.Time
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(store domain.Store, tokens domain.LinkTokenIssuer, logger *slog.Logger) domain.RegistrationService {
	return &registrationService{store: store, tokens: tokens, logger: logger, now: time.Now}
}

// Register authorizes the number to request a voting link. Registering again
// replaces the stored token. Numbers that already voted get ErrDuplicateVote.
func (s *registrationService) Register(ctx context.Context, countryCode, number string) (string, error) {
	if strings.TrimSpace(countryCode) == "" {
		return "", domain.NewFieldError("pais", domain.ErrMissingField)
	}
	if strings.TrimSpace(number) == "" {
		return "", domain.NewFieldError("numero", domain.ErrMissingField)
	}
	if textnorm.Digits(number) == "" {
		return "", domain.NewFieldError("numero", domain.ErrInvalidField)
	}
	phone := CanonicalPhone(countryCode, number)

	err := s.store.WithTx(ctx, func(r domain.Repositories) error {
		voted, err := r.Ballots.ExistsForPhone(ctx, phone)
		if err != nil {
			return fmt.Errorf("check ballot: %w", err)
		}
		if voted {
			return domain.ErrDuplicateVote
		}
		token, err := s.tokens.Issue(phone)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		return r.Pending.Upsert(ctx, phone, token, s.now().UTC())
	})
	if err != nil {
		return "", err
	}
	linksIssuedCounter.WithLabelValues("registration").Inc()
	s.logger.InfoContext(ctx, "number registered", "phone", phone)
	return phone, nil
}
