// Package postgres persists per-guild worker state as one JSONB
// document per guild, so workers survive restarts with their league
// selection, followed channels and credentials intact.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fantasy-critic-bot/internal/core/domain"
)

// DBTX is the query surface shared by *pgxpool.Pool and test doubles.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...interface{}) pgx.Row
}

type PostgresStore struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{pool: pool, db: pool}, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const getStateSQL = `SELECT state FROM worker_states WHERE guild_id = $1`

// Get returns (nil, nil) when the guild has no stored state.
func (s *PostgresStore) Get(ctx context.Context, guildID string) (*domain.WorkerState, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, getStateSQL, guildID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get worker state: %w", err)
	}

	var state domain.WorkerState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode worker state: %w", err)
	}
	return &state, nil
}

const saveStateSQL = `
INSERT INTO worker_states (guild_id, state, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (guild_id)
DO UPDATE SET state = EXCLUDED.state, updated_at = now()`

func (s *PostgresStore) Save(ctx context.Context, state *domain.WorkerState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode worker state: %w", err)
	}

	if _, err := s.db.Exec(ctx, saveStateSQL, state.GuildID, raw); err != nil {
		return fmt.Errorf("save worker state: %w", err)
	}
	return nil
}

const deleteStateSQL = `DELETE FROM worker_states WHERE guild_id = $1`

func (s *PostgresStore) Delete(ctx context.Context, guildID string) error {
	if _, err := s.db.Exec(ctx, deleteStateSQL, guildID); err != nil {
		return fmt.Errorf("delete worker state: %w", err)
	}
	return nil
}
