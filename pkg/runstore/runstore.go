// Package runstore persists finished telephone game runs so they can be
// listed and replayed later. The store holds immutable terminal-session
// snapshots; the per-run game log stays on disk next to its artifacts and is
// only referenced by path.
//
// The package includes a BadgerDB-backed implementation for the CLI and an
// in-memory implementation for testing.
package runstore

import (
	"context"
	"errors"

	"github.com/driftworks/telephone/pkg/game"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when no run with the given ID exists.
	ErrNotFound = errors.New("runstore: not found")
)

// Store is the interface for run history persistence.
//
// Save accepts any terminal session and overwrites a previous snapshot with
// the same ID, so every implementation also satisfies game.Recorder.
type Store interface {
	// Save stores a snapshot of the session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a run by ID. Returns ErrNotFound if not present.
	Get(ctx context.Context, id string) (*game.Session, error)

	// List returns all stored runs, newest first.
	List(ctx context.Context) ([]*game.Session, error)

	// Delete removes a run. No error if the run does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases the underlying resources.
	Close() error
}
