package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"voterlink/internal/domain"
)

type authorizationGrantRepository struct {
	DB DBTX
}

func NewAuthorizationGrantRepository(db DBTX) domain.AuthorizationGrantRepository {
	return &authorizationGrantRepository{DB: db}
}

func (r *authorizationGrantRepository) Upsert(ctx context.Context, g *domain.AuthorizationGrant) error {
	query := `
		INSERT INTO authorization_grants (id, phone_number, expires_at, used_at)
		VALUES ($1, $2, $3, NULL)
		ON CONFLICT (phone_number) DO UPDATE
		SET id = EXCLUDED.id, expires_at = EXCLUDED.expires_at, used_at = NULL
	`
	_, err := r.DB.ExecContext(ctx, query, g.ID, g.PhoneNumber, g.ExpiresAt.UTC())
	return err
}

// GetActive compares expiry in Go so the query stays identical on both drivers.
func (r *authorizationGrantRepository) GetActive(ctx context.Context, id string, now time.Time) (*domain.AuthorizationGrant, error) {
	query := `
		SELECT id, phone_number, expires_at, used_at
		FROM authorization_grants
		WHERE id = $1
	`
	g := &domain.AuthorizationGrant{}
	var usedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.PhoneNumber, &g.ExpiresAt, &usedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !g.ExpiresAt.After(now) {
		return nil, domain.ErrNotFound
	}
	if usedAt.Valid {
		g.UsedAt = &usedAt.Time
	}
	return g, nil
}

// MarkUsed only updates an unused row, so of two racing callers exactly one
// sees a row affected.
func (r *authorizationGrantRepository) MarkUsed(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE authorization_grants SET used_at = $2 WHERE id = $1 AND used_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, id, at.UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDuplicateVote
	}
	return nil
}
