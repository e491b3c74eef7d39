package services

import (
	"context"
	"errors"
	"fmt"

	"voterlink/internal/domain"
)

type abuseGuard struct {
	threshold int
}

// NewAbuseGuard returns an AbuseGuard that blocks a number on its threshold-th
// unauthorized contact. Numbers below the threshold are warned.
func NewAbuseGuard(threshold int) domain.AbuseGuard {
	if threshold < 1 {
		threshold = 1
	}
	return &abuseGuard{threshold: threshold}
}

func (g *abuseGuard) MaxWarnings() int { return g.threshold - 1 }

func (g *abuseGuard) IsBlocked(ctx context.Context, repo domain.AbuseCounterRepository, phone string) (bool, error) {
	c, err := repo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load abuse counter: %w", err)
	}
	return c.Blocked, nil
}

func (g *abuseGuard) RecordUnauthorized(ctx context.Context, repo domain.AbuseCounterRepository, phone string) (domain.AbuseVerdict, *domain.AbuseCounter, error) {
	current, err := repo.GetByPhone(ctx, phone)
	switch {
	case err == nil && current.Blocked:
		return domain.VerdictSilent, current, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return domain.VerdictSilent, nil, fmt.Errorf("load abuse counter: %w", err)
	}
	c, err := repo.RecordAttempt(ctx, phone, g.threshold)
	if err != nil {
		return domain.VerdictSilent, nil, fmt.Errorf("record attempt: %w", err)
	}
	if c.Blocked {
		return domain.VerdictLockedOut, c, nil
	}
	return domain.VerdictWarn, c, nil
}
