// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"docushield-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// AuditReportsSchema creates the table the save-audit-report worker writes to.
const AuditReportsSchema = `
CREATE TABLE IF NOT EXISTS audit_reports (
	id               UUID PRIMARY KEY,
	audit_id         TEXT NOT NULL UNIQUE,
	applicant_id     TEXT NOT NULL DEFAULT '',
	case_type        TEXT NOT NULL,
	overall_risk     TEXT NOT NULL,
	readiness_score  INTEGER NOT NULL,
	stream           TEXT NOT NULL DEFAULT '',
	result           JSONB NOT NULL,
	score            JSONB NOT NULL,
	issues           JSONB NOT NULL,
	schema_mismatch  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS audit_reports_applicant_idx ON audit_reports (applicant_id, created_at DESC);
`

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres creates a new PostgreSQL client
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Migrate applies the audit report schema. It is idempotent.
func (c *PostgresClient) Migrate(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, AuditReportsSchema); err != nil {
		return fmt.Errorf("migrate audit_reports: %w", err)
	}
	return nil
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
