package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"voterlink/internal/domain"
)

// AdminSubject is the identity returned for a valid admin API key.
const AdminSubject = "admin"

type apiKeyVerifier struct {
	hash []byte
}

// NewAPIKeyVerifier returns a TokenVerifier that accepts only key.
// Only a bcrypt hash of the key is kept in memory. An empty key rejects every request.
func NewAPIKeyVerifier(key string, cost int) (domain.TokenVerifier, error) {
	if key == "" {
		return &apiKeyVerifier{}, nil
	}
	hash, err := bcrypt.GenerateFromPassword(prehash(key), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash api key: %w", err)
	}
	return &apiKeyVerifier{hash: hash}, nil
}

func (v *apiKeyVerifier) Verify(token string) (string, error) {
	if len(v.hash) == 0 || token == "" {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(v.hash, prehash(token)); err != nil {
		return "", domain.ErrUnauthorized
	}
	return AdminSubject, nil
}

// prehash keeps bcrypt input under its 72 byte limit.
func prehash(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return []byte(hex.EncodeToString(sum[:]))
}
