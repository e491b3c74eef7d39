package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables. Safe to call multiple times.
// The DDL is valid for both PostgreSQL and SQLite.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS pending_authorizations (
    id TEXT PRIMARY KEY,
    phone_number TEXT NOT NULL UNIQUE,
    token TEXT NOT NULL,
    issued_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS ballots (
    id TEXT PRIMARY KEY,
    phone_number TEXT NOT NULL UNIQUE,
    gender TEXT NOT NULL,
    country TEXT NOT NULL,
    department TEXT NOT NULL,
    province TEXT NOT NULL,
    municipality_id TEXT NOT NULL,
    municipality TEXT NOT NULL,
    precinct TEXT NOT NULL,
    birth_day INTEGER NOT NULL,
    birth_month INTEGER NOT NULL,
    birth_year INTEGER NOT NULL,
    latitude DOUBLE PRECISION,
    longitude DOUBLE PRECISION,
    candidate TEXT NOT NULL,
    control_volunteer TEXT NOT NULL,
    identity_document BIGINT,
    submitter_ip TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS processed_messages (
    id TEXT PRIMARY KEY,
    message_id TEXT NOT NULL UNIQUE,
    phone_number TEXT NOT NULL,
    received_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS abuse_counters (
    id TEXT PRIMARY KEY,
    phone_number TEXT NOT NULL UNIQUE,
    attempts INTEGER NOT NULL DEFAULT 0,
    blocked BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS authorization_grants (
    id TEXT PRIMARY KEY,
    phone_number TEXT NOT NULL UNIQUE,
    expires_at TIMESTAMP NOT NULL,
    used_at TIMESTAMP
);
`
