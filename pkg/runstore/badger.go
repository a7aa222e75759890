package runstore

import (
	"context"
	"errors"
	"log"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/driftworks/telephone/pkg/game"
)

var runKeyPrefix = []byte("run:")

// Badger is a Store implementation backed by BadgerDB v4.
type Badger struct {
	db *badger.DB
}

// BadgerOptions configures the BadgerDB store.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files. Required unless
	// InMemory is set.
	Dir string

	// InMemory runs BadgerDB in memory-only mode (no disk persistence).
	// Useful for testing with a real badger engine.
	InMemory bool

	// Logger sets the badger logger. If nil, a quiet default is used.
	Logger badger.Logger
}

// NewBadger creates a new BadgerDB-backed run store.
func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("runstore: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	if opts.Logger != nil {
		dbOpts = dbOpts.WithLogger(opts.Logger)
	} else {
		dbOpts = dbOpts.WithLogger(quietLogger{})
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	return &Badger{db: db}, nil
}

func runKey(id string) []byte {
	return append(append([]byte{}, runKeyPrefix...), id...)
}

// Save stores a snapshot of the session, overwriting any previous one.
func (b *Badger) Save(_ context.Context, s *game.Session) error {
	val, err := msgpack.Marshal(s)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(s.ID), val)
	})
}

// Get retrieves a run by ID.
func (b *Badger) Get(_ context.Context, id string) (*game.Session, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(id))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s game.Session
	if err := msgpack.Unmarshal(val, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all stored runs, newest first.
func (b *Badger) List(_ context.Context) ([]*game.Session, error) {
	var runs []*game.Session
	err := b.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = runKeyPrefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(runKeyPrefix); it.ValidForPrefix(runKeyPrefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var s game.Session
			if err := msgpack.Unmarshal(val, &s); err != nil {
				return err
			}
			runs = append(runs, &s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(runs)
	return runs, nil
}

// Delete removes a run. No error if the run does not exist.
func (b *Badger) Delete(_ context.Context, id string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(runKey(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

// Close closes the underlying database.
func (b *Badger) Close() error {
	return b.db.Close()
}

func sortNewestFirst(runs []*game.Session) {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
}

// quietLogger wraps the standard log package for badger, suppressing debug
// and info level messages.
type quietLogger struct{}

func (quietLogger) Errorf(f string, v ...interface{})   { log.Printf("[badger] ERROR: "+f, v...) }
func (quietLogger) Warningf(f string, v ...interface{}) { log.Printf("[badger] WARN: "+f, v...) }
func (quietLogger) Infof(string, ...interface{})        {}
func (quietLogger) Debugf(string, ...interface{})       {}
