package domain

import (
	"context"
	"time"
)

// PendingAuthorization is the currently live link token for a phone number.
// There is at most one per number; reissuing overwrites Token.
type PendingAuthorization struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Token       string    `json:"-"`
	IssuedAt    time.Time `json:"issued_at"`
}

// AuthorizationGrant permits exactly one ballot submission for PhoneNumber until ExpiresAt.
// It is created by a successful link visit and referenced by an opaque ID held in a cookie.
// UsedAt is set when the ballot is recorded; the row stays until it expires so
// a repeated submission with the same cookie resolves to the same number.
type AuthorizationGrant struct {
	ID          string     `json:"id"`
	PhoneNumber string     `json:"phone_number"`
	ExpiresAt   time.Time  `json:"expires_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
}

// Used reports whether a ballot was already recorded with g.
func (g *AuthorizationGrant) Used() bool {
	return g.UsedAt != nil
}

// NewAuthorizationGrant returns a grant for phone that expires ttl after now.
func NewAuthorizationGrant(id, phone string, now time.Time, ttl time.Duration) *AuthorizationGrant {
	return &AuthorizationGrant{
		ID:          id,
		PhoneNumber: phone,
		ExpiresAt:   now.Add(ttl).UTC(),
	}
}

// LinkClaims is the payload carried by a voting link token.
type LinkClaims struct {
	PhoneNumber string
	Domain      string
	IssuedAt    time.Time
}

// LinkTokenIssuer signs voting link tokens bound to the serving domain.
type LinkTokenIssuer interface {
	Issue(phoneNumber string) (string, error)
}

// LinkTokenValidator checks signature, age and domain of a voting link token.
// It returns ErrTokenExpired, ErrTokenInvalid or ErrDomainMismatch.
type LinkTokenValidator interface {
	Validate(token string, maxAge time.Duration) (*LinkClaims, error)
}

// LinkTokenService issues and validates voting link tokens.
type LinkTokenService interface {
	LinkTokenIssuer
	LinkTokenValidator
}

// PendingAuthorizationRepository stores the live token per phone number.
type PendingAuthorizationRepository interface {
	// Upsert creates the row for phone or overwrites its token and issue time.
	Upsert(ctx context.Context, phone, token string, issuedAt time.Time) error
	GetByPhone(ctx context.Context, phone string) (*PendingAuthorization, error)
	GetByPhoneAndToken(ctx context.Context, phone, token string) (*PendingAuthorization, error)
	DeleteByPhone(ctx context.Context, phone string) error
}

// AuthorizationGrantRepository stores single-use submission grants.
type AuthorizationGrantRepository interface {
	// Upsert stores g, replacing any existing grant for the same phone number.
	Upsert(ctx context.Context, g *AuthorizationGrant) error
	// GetActive returns the grant with id if it has not expired at now, used or not.
	GetActive(ctx context.Context, id string, now time.Time) (*AuthorizationGrant, error)
	// MarkUsed consumes the grant. It returns ErrDuplicateVote when the grant
	// was already used.
	MarkUsed(ctx context.Context, id string, at time.Time) error
}

// RegistrationService authorizes a phone number to request a voting link.
type RegistrationService interface {
	Register(ctx context.Context, countryCode, number string) (phone string, err error)
}

// TokenVerifier checks a bearer credential and returns the caller identity.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}
