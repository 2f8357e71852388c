package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no session exists under the given id.
	ErrNotFound = errors.New("session not found")

	// ErrCorrupt indicates a stored blob could not be decoded into the
	// current state shape. Callers should treat the session as absent
	// rather than crash.
	ErrCorrupt = errors.New("session state corrupt")
)

// schemaVersion is bumped whenever State changes incompatibly. A blob
// with a different version decodes to ErrCorrupt.
const schemaVersion = 1

// Store persists session state under generated session ids and tracks
// which session is current.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Put(ctx context.Context, state *State) error
	Delete(ctx context.Context, id string) error

	// CurrentID returns the current session pointer, or ErrNotFound.
	CurrentID(ctx context.Context) (string, error)
	SetCurrentID(ctx context.Context, id string) error
}

// envelope wraps serialized state with its schema version.
type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// encodeState produces the versioned blob stored for a session.
func encodeState(state *State) ([]byte, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encoding session state: %w", err)
	}
	return json.Marshal(envelope{Version: schemaVersion, State: raw})
}

// decodeState reverses encodeState. Any shape or version problem comes
// back as ErrCorrupt so readers can fail soft.
func decodeState(blob []byte) (*State, error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if env.Version != schemaVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, env.Version)
	}
	var state State
	if err := json.Unmarshal(env.State, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &state, nil
}
