package services

import (
	"strings"

	"voterlink/internal/textnorm"
)

// NormalizePhone returns the canonical form "+<digits>" of raw. Invisible
// characters, spaces, dashes and combining marks are dropped. It returns ""
// when raw has no digits. NormalizePhone is idempotent.
func NormalizePhone(raw string) string {
	digits := textnorm.Digits(raw)
	if digits == "" {
		return ""
	}
	return "+" + digits
}

// CanonicalPhone joins a country calling code and a local number into a canonical phone number.
func CanonicalPhone(countryCode, number string) string {
	countryCode = strings.TrimSpace(countryCode)
	if !strings.HasPrefix(countryCode, "+") {
		countryCode = "+" + countryCode
	}
	return NormalizePhone(countryCode + number)
}
