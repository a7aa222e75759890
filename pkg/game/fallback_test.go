package game

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestTryEach_FirstSuccessWins(t *testing.T) {
	var tried []string
	res, opt, err := TryEach(context.Background(), []string{"baby", "highpitched-baby", "alloy"},
		func(_ context.Context, voice string) (string, error) {
			tried = append(tried, voice)
			if voice == "highpitched-baby" {
				return "audio-bytes", nil
			}
			return "", fmt.Errorf("voice %q rejected", voice)
		})
	if err != nil {
		t.Fatalf("TryEach: %v", err)
	}
	if res != "audio-bytes" {
		t.Errorf("result = %q", res)
	}
	if opt != "highpitched-baby" {
		t.Errorf("winning option = %q", opt)
	}
	// It must stop at the first success, never trying later options.
	if len(tried) != 2 {
		t.Errorf("tried %v, want first two only", tried)
	}
}

func TestTryEach_AllFailSurfacesLastError(t *testing.T) {
	lastErr := errors.New("last one")
	calls := 0
	_, _, err := TryEach(context.Background(), []int{1, 2, 3},
		func(_ context.Context, n int) (string, error) {
			calls++
			if n == 3 {
				return "", lastErr
			}
			return "", fmt.Errorf("option %d failed", n)
		})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if !errors.Is(err, lastErr) {
		t.Errorf("err = %v, want last failure", err)
	}
}

func TestTryEach_EmptyOptions(t *testing.T) {
	_, _, err := TryEach(context.Background(), nil,
		func(_ context.Context, _ string) (string, error) {
			t.Fatal("fn called with no options")
			return "", nil
		})
	if err == nil {
		t.Error("TryEach with no options succeeded")
	}
}

func TestTryEach_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, _, err := TryEach(ctx, []string{"a", "b"},
		func(_ context.Context, _ string) (string, error) {
			calls++
			return "", errors.New("nope")
		})
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
