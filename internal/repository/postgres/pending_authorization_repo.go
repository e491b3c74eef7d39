package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"voterlink/internal/domain"
)

type pendingAuthorizationRepository struct {
	DB DBTX
}

func NewPendingAuthorizationRepository(db DBTX) domain.PendingAuthorizationRepository {
	return &pendingAuthorizationRepository{DB: db}
}

func (r *pendingAuthorizationRepository) Upsert(ctx context.Context, phone, token string, issuedAt time.Time) error {
	query := `
		INSERT INTO pending_authorizations (id, phone_number, token, issued_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phone_number) DO UPDATE
		SET token = EXCLUDED.token, issued_at = EXCLUDED.issued_at
	`
	_, err := r.DB.ExecContext(ctx, query, uuid.NewString(), phone, token, issuedAt.UTC())
	return err
}

func (r *pendingAuthorizationRepository) GetByPhone(ctx context.Context, phone string) (*domain.PendingAuthorization, error) {
	query := `
		SELECT id, phone_number, token, issued_at
		FROM pending_authorizations
		WHERE phone_number = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, phone))
}

func (r *pendingAuthorizationRepository) GetByPhoneAndToken(ctx context.Context, phone, token string) (*domain.PendingAuthorization, error) {
	query := `
		SELECT id, phone_number, token, issued_at
		FROM pending_authorizations
		WHERE phone_number = $1 AND token = $2
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, phone, token))
}

func (r *pendingAuthorizationRepository) DeleteByPhone(ctx context.Context, phone string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM pending_authorizations WHERE phone_number = $1`, phone)
	return err
}

func (r *pendingAuthorizationRepository) scanOne(row *sql.Row) (*domain.PendingAuthorization, error) {
	p := &domain.PendingAuthorization{}
	if err := row.Scan(&p.ID, &p.PhoneNumber, &p.Token, &p.IssuedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
