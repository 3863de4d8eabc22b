// Package postgres implements the key-value store on top of PostgreSQL.
package postgres

import (
	"context"
	"fmt"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE USER STATE
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create user_state table
-- Version: 001

-- Single key-value table for all persisted user state.
-- Values are opaque JSON documents owned by the domain layer.
CREATE TABLE IF NOT EXISTS user_state (
    key TEXT PRIMARY KEY,
    value JSONB NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_user_state_updated_at ON user_state(updated_at);
`

// Migrate applies all migrations in order. Safe to run repeatedly.
func (c *Connection) Migrate(ctx context.Context) error {
	migrations := []string{
		migration001Up,
	}

	for i, migration := range migrations {
		if _, err := c.Pool().Exec(ctx, migration); err != nil {
			return fmt.Errorf("%w: migration %03d: %v", ErrMigrationFailed, i+1, err)
		}
	}
	return nil
}
