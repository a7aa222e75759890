package runstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/driftworks/telephone/pkg/game"
)

// storeUnderTest builds each Store implementation against the same suite.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	b, err := NewBadger(BadgerOptions{InMemory: true})
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return map[string]Store{
		"badger": b,
		"memory": NewMemory(),
	}
}

func sampleSession(id string, startedAt time.Time) *game.Session {
	return &game.Session{
		ID:            id,
		Status:        game.StatusCompleted,
		InitialPrompt: "a cat wearing a wizard hat",
		TargetCycles:  3,
		StartedAt:     startedAt,
		FinishedAt:    startedAt.Add(time.Minute),
		LogPath:       "logs/game_log_1.txt",
		Cycles: []game.CycleRecord{
			{
				Cycle:       1,
				Prompt:      "a cat wearing a wizard hat",
				ImagePath:   "images/image_1.png",
				ImageURL:    "https://img.example/1",
				Description: "a feline in pointed headwear",
			},
		},
	}
}

func TestStore_SaveGet(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := sampleSession("run-1", time.Now().Truncate(time.Second))

			if err := store.Save(ctx, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := store.Get(ctx, "run-1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}

			if got.ID != want.ID || got.Status != want.Status {
				t.Errorf("got %+v, want %+v", got, want)
			}
			if got.InitialPrompt != want.InitialPrompt {
				t.Errorf("initial prompt = %q", got.InitialPrompt)
			}
			if len(got.Cycles) != 1 {
				t.Fatalf("len(cycles) = %d, want 1", len(got.Cycles))
			}
			if got.Cycles[0] != want.Cycles[0] {
				t.Errorf("cycle = %+v, want %+v", got.Cycles[0], want.Cycles[0])
			}
			if !got.StartedAt.Equal(want.StartedAt) {
				t.Errorf("started at = %v, want %v", got.StartedAt, want.StartedAt)
			}
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get missing = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Now().Truncate(time.Second)
			for i, id := range []string{"old", "mid", "new"} {
				s := sampleSession(id, base.Add(time.Duration(i)*time.Hour))
				if err := store.Save(ctx, s); err != nil {
					t.Fatalf("Save %s: %v", id, err)
				}
			}

			runs, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(runs) != 3 {
				t.Fatalf("len(runs) = %d, want 3", len(runs))
			}
			for i, want := range []string{"new", "mid", "old"} {
				if runs[i].ID != want {
					t.Errorf("runs[%d].ID = %q, want %q", i, runs[i].ID, want)
				}
			}
		})
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := sampleSession("run-1", time.Now())
			if err := store.Save(ctx, s); err != nil {
				t.Fatalf("Save: %v", err)
			}
			s.Status = game.StatusAborted
			s.Failure = "generation failed in cycle 2"
			if err := store.Save(ctx, s); err != nil {
				t.Fatalf("Save again: %v", err)
			}

			got, err := store.Get(ctx, "run-1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Status != game.StatusAborted || got.Failure == "" {
				t.Errorf("overwrite lost: %+v", got)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.Save(ctx, sampleSession("run-1", time.Now())); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := store.Delete(ctx, "run-1"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := store.Get(ctx, "run-1"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after delete = %v, want ErrNotFound", err)
			}
			// Deleting a missing run is not an error.
			if err := store.Delete(ctx, "run-1"); err != nil {
				t.Errorf("Delete missing: %v", err)
			}
		})
	}
}

func TestMemory_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	s := sampleSession("run-1", time.Now())
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutating the original after Save must not leak into the store.
	s.Cycles[0].Description = "mutated"
	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Cycles[0].Description == "mutated" {
		t.Error("store shares cycle slice with caller")
	}
}

func TestBadger_SatisfiesRecorder(t *testing.T) {
	var _ game.Recorder = (*Badger)(nil)
	var _ game.Recorder = (*Memory)(nil)
}

func TestBadger_RequiresDir(t *testing.T) {
	if _, err := NewBadger(BadgerOptions{}); err == nil {
		t.Error("NewBadger without dir succeeded")
	}
}
