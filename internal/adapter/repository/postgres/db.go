package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Connection retry settings for NewDB
const (
	connectAttempts = 5
	connectBackoff  = time.Second
)

// NewDB opens a connection pool and waits for Postgres to accept connections
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=inventory sslmode=disable"
func NewDB(ctx context.Context, connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	for attempt := 1; ; attempt++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			db.Close()
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempt, err)
		}
		log.Printf("Database not ready (attempt %d/%d): %v", attempt, connectAttempts, err)

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// schema holds the DDL for the products table
// Monetary columns are NUMERIC and travel as decimal strings
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id           BIGSERIAL PRIMARY KEY,
	ledger_id    BIGINT,
	asset_id     TEXT NOT NULL DEFAULT '',
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	quantity     INTEGER NOT NULL,
	price        NUMERIC(18, 6) NOT NULL,
	vat          NUMERIC(18, 6) NOT NULL DEFAULT 0,
	future_price NUMERIC(18, 6) NOT NULL DEFAULT 0,
	future_vat   NUMERIC(18, 6) NOT NULL DEFAULT 0,
	attributes   JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at   TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the tables the repositories need if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
