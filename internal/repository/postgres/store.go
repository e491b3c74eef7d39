package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"voterlink/internal/domain"
)

const sqliteScheme = "sqlite://"

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to databaseURL. URLs starting with sqlite:// use the embedded
// SQLite driver; anything else is handed to lib/pq.
func Open(databaseURL string) (*sql.DB, error) {
	driver, dsn := driverFor(databaseURL)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// SQLite allows one writer; a single connection serialises transactions.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// driverFor maps a database URL to a driver name and DSN.
// sqlite:///votos.db is relative, sqlite:////var/votos.db is absolute.
func driverFor(databaseURL string) (driver, dsn string) {
	if !strings.HasPrefix(databaseURL, sqliteScheme) {
		return "postgres", databaseURL
	}
	path := strings.TrimPrefix(databaseURL, sqliteScheme)
	if strings.HasPrefix(path, "/") {
		path = path[1:]
	}
	if path == "" {
		path = "votos.db"
	}
	return "sqlite", path
}

type store struct {
	DB *sql.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) domain.Store {
	return &store{DB: db}
}

func (s *store) Repos() domain.Repositories {
	return newRepositories(s.DB)
}

func (s *store) WithTx(ctx context.Context, fn func(r domain.Repositories) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(newRepositories(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func newRepositories(db DBTX) domain.Repositories {
	return domain.Repositories{
		Pending:  NewPendingAuthorizationRepository(db),
		Ballots:  NewBallotRepository(db),
		Messages: NewProcessedMessageRepository(db),
		Abuse:    NewAbuseCounterRepository(db),
		Grants:   NewAuthorizationGrantRepository(db),
	}
}
