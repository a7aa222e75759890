package game

import (
	"time"
)

// Status is the lifecycle state of a Session.
type Status string

const (
	// StatusIdle is a session that has been created but not started.
	StatusIdle Status = "idle"

	// StatusRunning is a session with a cycle loop in progress.
	StatusRunning Status = "running"

	// StatusCompleted is a session whose every cycle finished.
	StatusCompleted Status = "completed"

	// StatusAborted is a session stopped by a capability or I/O failure.
	StatusAborted Status = "aborted"
)

// Terminal reports whether the status is a terminal state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusAborted
}

// CycleRecord is one completed generation+analysis step of the chain.
//
// A record is appended to its Session only after both the generation and the
// analysis call succeeded, and is never mutated afterwards.
type CycleRecord struct {
	// Cycle is the 1-based position of this step in the run.
	Cycle int `json:"cycle" msgpack:"cycle"`

	// Prompt is the text the image was generated from. For cycle 1 this is
	// the initial prompt; for cycle k>1 it is cycle k-1's Description.
	Prompt string `json:"prompt" msgpack:"prompt"`

	// ImagePath is the local persisted copy of the generated image.
	ImagePath string `json:"image_path" msgpack:"image_path"`

	// ImageURL is the remote reference handed to the analyzer. May be empty
	// for providers that return raw bytes, and may expire upstream; the
	// local copy at ImagePath stays valid.
	ImageURL string `json:"image_url,omitempty" msgpack:"image_url,omitempty"`

	// Description is the analyzer's output for this cycle's image.
	Description string `json:"description" msgpack:"description"`
}

// Session is the state of one telephone game run.
//
// A Session is owned by the single Play call that created it. Concurrent
// readers (a UI polling progress) must treat it as read-only; Cycles only ever
// grows by appending.
type Session struct {
	// ID uniquely identifies the run.
	ID string `json:"id" msgpack:"id"`

	// Status is the lifecycle state. It moves idle -> running exactly once
	// and running -> completed|aborted exactly once.
	Status Status `json:"status" msgpack:"status"`

	// InitialPrompt is the prompt cycle 1 was generated from.
	InitialPrompt string `json:"initial_prompt" msgpack:"initial_prompt"`

	// TargetCycles is the requested cycle count, fixed at start.
	TargetCycles int `json:"target_cycles" msgpack:"target_cycles"`

	// Cycles holds the completed cycle records in completion order.
	// len(Cycles) < TargetCycles iff the run was aborted.
	Cycles []CycleRecord `json:"cycles" msgpack:"cycles"`

	// LogPath is the per-run game log file, set when the log is opened.
	LogPath string `json:"log_path,omitempty" msgpack:"log_path,omitempty"`

	// StartedAt is when the run entered the running state.
	StartedAt time.Time `json:"started_at" msgpack:"started_at"`

	// FinishedAt is when the run reached a terminal state.
	FinishedAt time.Time `json:"finished_at,omitzero" msgpack:"finished_at,omitempty"`

	// Failure is the user-visible failure message of an aborted run.
	Failure string `json:"failure,omitempty" msgpack:"failure,omitempty"`
}

// newSession creates an idle session for the given prompt and cycle count.
func newSession(id, initialPrompt string, cycles int) *Session {
	return &Session{
		ID:            id,
		Status:        StatusIdle,
		InitialPrompt: initialPrompt,
		TargetCycles:  cycles,
	}
}

// CurrentPrompt returns the prompt the next cycle would be generated from:
// the initial prompt before cycle 1, afterwards the latest description.
func (s *Session) CurrentPrompt() string {
	if len(s.Cycles) == 0 {
		return s.InitialPrompt
	}
	return s.Cycles[len(s.Cycles)-1].Description
}

// FailedCycle returns the 1-based index of the cycle that aborted the run,
// or 0 if the session is not aborted.
func (s *Session) FailedCycle() int {
	if s.Status != StatusAborted {
		return 0
	}
	return len(s.Cycles) + 1
}

// Duration returns the wall-clock duration of a terminal session, or the
// elapsed time so far for a running one.
func (s *Session) Duration() time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// appendCycle records a completed cycle.
func (s *Session) appendCycle(rec CycleRecord) {
	s.Cycles = append(s.Cycles, rec)
}

// finish moves the session to a terminal state. The failure message is only
// recorded for aborted sessions.
func (s *Session) finish(status Status, at time.Time, failure string) {
	s.Status = status
	s.FinishedAt = at
	if status == StatusAborted {
		s.Failure = failure
	}
}
