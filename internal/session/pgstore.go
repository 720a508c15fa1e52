package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL for the sessions table.
const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id UUID PRIMARY KEY,
	state JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions (expires_at);
`

// PGStore persists sessions in PostgreSQL, for deployments where the web
// tier is replicated and a local data directory is not shared.
type PGStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewPGStore connects, verifies the connection, and ensures the schema.
func NewPGStore(ctx context.Context, databaseURL string, ttl time.Duration) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect session db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping session db: %w", err)
	}
	if _, err := pool.Exec(ctx, Schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure session schema: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PGStore{pool: pool, ttl: ttl}, nil
}

// Create mints and persists a new session row.
func (st *PGStore) Create(ctx context.Context) (*Session, error) {
	s := newSession(st.ttl)
	stateJSON, err := json.Marshal(s.State)
	if err != nil {
		return nil, fmt.Errorf("encode session state: %w", err)
	}
	_, err = st.pool.Exec(ctx,
		`INSERT INTO sessions (id, state, created_at, expires_at) VALUES ($1, $2, $3, $4)`,
		s.ID, stateJSON, s.CreatedAt, s.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

// Get loads a live session. Expired rows are reported as ErrNotFound and
// cleaned up opportunistically.
func (st *PGStore) Get(ctx context.Context, id string) (*Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	s, err := scanSession(st.pool.QueryRow(ctx,
		`SELECT id, state, created_at, expires_at FROM sessions WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if s.Expired(time.Now().UTC()) {
		_, _ = st.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
		return nil, ErrNotFound
	}
	return s, nil
}

// Update applies the mutation inside a transaction with the row locked, so
// concurrent handlers updating different fields never lose writes.
func (st *PGStore) Update(ctx context.Context, id string, apply func(*State) error) (*Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	tx, err := st.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	defer tx.Rollback(ctx)

	s, err := scanSession(tx.QueryRow(ctx,
		`SELECT id, state, created_at, expires_at FROM sessions WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}
	if s.Expired(time.Now().UTC()) {
		return nil, ErrNotFound
	}
	if err := apply(&s.State); err != nil {
		return nil, err
	}
	stateJSON, err := json.Marshal(s.State)
	if err != nil {
		return nil, fmt.Errorf("encode session state: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE sessions SET state = $1 WHERE id = $2`, stateJSON, id); err != nil {
		return nil, fmt.Errorf("update session %s: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("update session %s: %w", id, err)
	}
	return s, nil
}

// Delete removes the session row. Deleting a missing row is not an error.
func (st *PGStore) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if _, err := st.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func (st *PGStore) Close() error {
	st.pool.Close()
	return nil
}

// SweepExpired deletes expired rows and returns how many were removed.
func (st *PGStore) SweepExpired(ctx context.Context) (int64, error) {
	tag, err := st.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	var stateJSON []byte
	if err := row.Scan(&s.ID, &stateJSON, &s.CreatedAt, &s.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if err := json.Unmarshal(stateJSON, &s.State); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &s, nil
}
