package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"voterlink/internal/domain"
)

type abuseCounterRepository struct {
	DB DBTX
}

func NewAbuseCounterRepository(db DBTX) domain.AbuseCounterRepository {
	return &abuseCounterRepository{DB: db}
}

func (r *abuseCounterRepository) GetByPhone(ctx context.Context, phone string) (*domain.AbuseCounter, error) {
	query := `
		SELECT id, phone_number, attempts, blocked
		FROM abuse_counters
		WHERE phone_number = $1
	`
	c := &domain.AbuseCounter{}
	err := r.DB.QueryRowContext(ctx, query, phone).Scan(&c.ID, &c.PhoneNumber, &c.Attempts, &c.Blocked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *abuseCounterRepository) RecordAttempt(ctx context.Context, phone string, threshold int) (*domain.AbuseCounter, error) {
	query := `
		INSERT INTO abuse_counters (id, phone_number, attempts, blocked)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (phone_number) DO UPDATE
		SET attempts = abuse_counters.attempts + 1,
		    blocked = abuse_counters.blocked OR abuse_counters.attempts + 1 >= $4
		RETURNING id, phone_number, attempts, blocked
	`
	c := &domain.AbuseCounter{}
	err := r.DB.QueryRowContext(ctx, query, uuid.NewString(), phone, threshold <= 1, threshold).
		Scan(&c.ID, &c.PhoneNumber, &c.Attempts, &c.Blocked)
	if err != nil {
		return nil, err
	}
	return c, nil
}
