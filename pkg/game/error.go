package game

import (
	"errors"
	"fmt"
)

// Kind classifies a game error.
type Kind string

const (
	// KindConfig is a precondition failure: missing credential, empty
	// prompt, cycle count out of range. Raised before any cycle runs and
	// before the game log is created.
	KindConfig Kind = "config"

	// KindGeneration is a failure of the image generation capability.
	KindGeneration Kind = "generation"

	// KindAnalysis is a failure of the image analysis capability.
	KindAnalysis Kind = "analysis"

	// KindIO is a log or artifact persistence failure. Fatal to the run;
	// the loop does not continue without durable logging.
	KindIO Kind = "io"

	// KindCancelled is a run stopped cooperatively between cycles because
	// the caller's context ended.
	KindCancelled Kind = "cancelled"
)

// Error is the error type returned by the game package. All capability and
// I/O failures are converted into an *Error at the orchestrator boundary so
// callers can classify them without knowing the provider.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Op names the operation that failed, e.g. "generate" or "append log".
	Op string

	// Cycle is the 1-based cycle the failure occurred in, 0 for failures
	// outside the loop.
	Cycle int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cycle > 0 {
		return fmt.Sprintf("game: %s failed in cycle %d: %v", e.Op, e.Cycle, e.Err)
	}
	if e.Err == nil {
		return fmt.Sprintf("game: %s", e.Op)
	}
	return fmt.Sprintf("game: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsConfig reports whether this is a precondition failure.
func (e *Error) IsConfig() bool { return e.Kind == KindConfig }

// IsGeneration reports whether the generation capability failed.
func (e *Error) IsGeneration() bool { return e.Kind == KindGeneration }

// IsAnalysis reports whether the analysis capability failed.
func (e *Error) IsAnalysis() bool { return e.Kind == KindAnalysis }

// IsIO reports whether log or artifact persistence failed.
func (e *Error) IsIO() bool { return e.Kind == KindIO }

// IsCancelled reports whether the run was stopped by its context.
func (e *Error) IsCancelled() bool { return e.Kind == KindCancelled }

// AsError extracts *Error from an error.
//
// Example:
//
//	if e, ok := game.AsError(err); ok && e.IsConfig() {
//	    // missing credential, bad cycle count, ...
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// configErrorf builds a config-kind error.
func configErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Op: fmt.Sprintf(format, args...)}
}
