package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/courseit/courseit-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// KEY-VALUE STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store implements shared.KeyValueStore on top of the user_state table.
type Store struct {
	conn *Connection
}

// NewStore creates a key-value store over an established connection.
// Call Connection.Migrate beforehand to ensure the table exists.
func NewStore(conn *Connection) *Store {
	return &Store{conn: conn}
}

// Get implements shared.KeyValueStore.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.conn.IsClosed() {
		return nil, ErrConnectionClosed
	}

	var value []byte
	err := s.conn.Pool().QueryRow(ctx,
		`SELECT value FROM user_state WHERE key = $1`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set implements shared.KeyValueStore.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.conn.IsClosed() {
		return ErrConnectionClosed
	}

	_, err := s.conn.Pool().Exec(ctx,
		`INSERT INTO user_state (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value,
	)
	return err
}

// Remove implements shared.KeyValueStore. Removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	if s.conn.IsClosed() {
		return ErrConnectionClosed
	}

	_, err := s.conn.Pool().Exec(ctx, `DELETE FROM user_state WHERE key = $1`, key)
	return err
}
