package domain

import "context"

// Repositories groups the repositories that share one database handle,
// either the pool or a single transaction.
type Repositories struct {
	Pending  PendingAuthorizationRepository
	Ballots  BallotRepository
	Messages ProcessedMessageRepository
	Abuse    AbuseCounterRepository
	Grants   AuthorizationGrantRepository
}

// Store owns all persisted entities.
type Store interface {
	// Repos returns repositories bound to the connection pool.
	Repos() Repositories
	// WithTx runs fn inside one transaction. It commits when fn returns nil
	// and rolls back otherwise.
	WithTx(ctx context.Context, fn func(r Repositories) error) error
}
