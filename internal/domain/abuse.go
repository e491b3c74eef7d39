package domain

import "context"

// AbuseCounter tracks contact attempts from a number that is not authorized.
// Attempts only grow; once Blocked is set it is never cleared.
type AbuseCounter struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	Attempts    int    `json:"attempts"`
	Blocked     bool   `json:"blocked"`
}

// AbuseCounterRepository stores abuse counters.
type AbuseCounterRepository interface {
	GetByPhone(ctx context.Context, phone string) (*AbuseCounter, error)
	// RecordAttempt atomically creates the counter with one attempt or increments it,
	// setting Blocked when attempts reach threshold, and returns the new state.
	RecordAttempt(ctx context.Context, phone string, threshold int) (*AbuseCounter, error)
}

// AbuseVerdict tells the caller how to answer an unauthorized contact.
type AbuseVerdict int

const (
	// VerdictSilent means the number was already blocked: no reply.
	VerdictSilent AbuseVerdict = iota
	// VerdictWarn means a warning reply should be sent.
	VerdictWarn
	// VerdictLockedOut means this attempt reached the threshold: one final notice.
	VerdictLockedOut
)

func (v AbuseVerdict) String() string {
	switch v {
	case VerdictWarn:
		return "warn"
	case VerdictLockedOut:
		return "locked_out"
	default:
		return "silent"
	}
}

// AbuseGuard applies the progressive lockout policy.
type AbuseGuard interface {
	IsBlocked(ctx context.Context, repo AbuseCounterRepository, phone string) (bool, error)
	RecordUnauthorized(ctx context.Context, repo AbuseCounterRepository, phone string) (AbuseVerdict, *AbuseCounter, error)
	// MaxWarnings is the number of warnings sent before lockout.
	MaxWarnings() int
}
