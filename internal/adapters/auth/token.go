package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"voterlink/internal/domain"
)

type linkClaims struct {
	jwt.RegisteredClaims
	Domain string `json:"dom"`
}

type linkTokenService struct {
	key    []byte
	domain string
	now    func() time.Time
}

// NewLinkTokenService returns a LinkTokenService that signs voting link tokens with HS256.
// The signing key is derived from secret; every token is bound to servingDomain.
func NewLinkTokenService(secret, servingDomain string) (domain.LinkTokenService, error) {
	key, err := DeriveKey(secret, PurposeVotingLink)
	if err != nil {
		return nil, err
	}
	return newLinkTokenService(key, servingDomain, time.Now), nil
}

func newLinkTokenService(key []byte, servingDomain string, now func() time.Time) *linkTokenService {
	return &linkTokenService{key: key, domain: servingDomain, now: now}
}

func (s *linkTokenService) Issue(phoneNumber string) (string, error) {
	if phoneNumber == "" {
		return "", fmt.Errorf("issue token: empty phone number")
	}
	claims := linkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  phoneNumber,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
		Domain: s.domain,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *linkTokenService) Validate(token string, maxAge time.Duration) (*domain.LinkClaims, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	claims := &linkClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: incomplete claims", domain.ErrTokenInvalid)
	}
	// iat has whole-second precision; compare it against a clock truncated the same way.
	issuedAt := claims.IssuedAt.Time
	if s.now().Truncate(time.Second).Sub(issuedAt) > maxAge {
		return nil, domain.ErrTokenExpired
	}
	if claims.Domain != s.domain {
		return nil, domain.ErrDomainMismatch
	}
	return &domain.LinkClaims{
		PhoneNumber: claims.Subject,
		Domain:      claims.Domain,
		IssuedAt:    issuedAt,
	}, nil
}
