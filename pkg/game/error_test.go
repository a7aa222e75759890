package game

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Kinds(t *testing.T) {
	tests := []struct {
		kind  Kind
		check func(*Error) bool
	}{
		{KindConfig, (*Error).IsConfig},
		{KindGeneration, (*Error).IsGeneration},
		{KindAnalysis, (*Error).IsAnalysis},
		{KindIO, (*Error).IsIO},
		{KindCancelled, (*Error).IsCancelled},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			e := &Error{Kind: tt.kind, Op: "op"}
			if !tt.check(e) {
				t.Errorf("kind predicate false for %q", tt.kind)
			}
			for _, other := range tests {
				if other.kind == tt.kind {
					continue
				}
				if other.check(e) {
					t.Errorf("%q predicate true for %q error", other.kind, tt.kind)
				}
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	cause := errors.New("quota exceeded")

	e := &Error{Kind: KindGeneration, Op: "generate", Cycle: 2, Err: cause}
	if got := e.Error(); !strings.Contains(got, "cycle 2") || !strings.Contains(got, "quota exceeded") {
		t.Errorf("Error() = %q", got)
	}

	e = &Error{Kind: KindConfig, Op: "initial prompt must not be empty"}
	if got := e.Error(); !strings.Contains(got, "initial prompt") {
		t.Errorf("Error() = %q", got)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("call failed: %w", &Error{Kind: KindAnalysis, Op: "describe", Err: cause})

	e, ok := AsError(wrapped)
	if !ok {
		t.Fatal("AsError failed through wrapping")
	}
	if !e.IsAnalysis() {
		t.Errorf("kind = %q", e.Kind)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is does not reach the cause")
	}
}

func TestAsError_NotAGameError(t *testing.T) {
	if _, ok := AsError(errors.New("plain")); ok {
		t.Error("AsError matched a plain error")
	}
	if _, ok := AsError(nil); ok {
		t.Error("AsError matched nil")
	}
}
