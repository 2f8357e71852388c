package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/buildagent/multibuild/internal/db"
)

const currentSessionKey = "current_session_id"

// SQLiteStore persists sessions in the sessions table.
type SQLiteStore struct {
	db db.DBTX
}

func NewSQLiteStore(dbtx db.DBTX) *SQLiteStore {
	return &SQLiteStore{db: dbtx}
}

var _ Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) Get(ctx context.Context, id string) (*State, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM sessions WHERE id = ?`, id,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	return decodeState(blob)
}

func (s *SQLiteStore) Put(ctx context.Context, state *State) error {
	state.UpdatedAt = time.Now().UTC()
	blob, err := encodeState(state)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, state, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at`,
		state.ID, blob,
		state.CreatedAt.Format(time.RFC3339Nano),
		state.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", state.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) CurrentID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, currentSessionKey,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("loading current session id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) SetCurrentID(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		currentSessionKey, id,
	)
	if err != nil {
		return fmt.Errorf("setting current session id: %w", err)
	}
	return nil
}
