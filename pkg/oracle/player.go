package oracle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrPlaybackUnavailable is returned when no audio player can run in this
// environment. Callers choose whether to skip playback or fail.
var ErrPlaybackUnavailable = errors.New("oracle: audio playback unavailable")

// Player plays an audio file. Playback is a best-effort subsystem: an
// implementation that cannot work in the current environment reports so
// through Available instead of silently doing nothing.
type Player interface {
	// Available reports whether playback can work at all.
	Available() bool

	// Play plays the file and blocks until playback finishes. Returns
	// ErrPlaybackUnavailable when Available is false.
	Play(ctx context.Context, path string) error
}

// DefaultPlayerCandidates are the command-line players probed in order.
var DefaultPlayerCandidates = []string{"afplay", "mpg123", "ffplay"}

// ExecPlayer plays audio through the first locatable command-line player.
type ExecPlayer struct {
	// Candidates defaults to DefaultPlayerCandidates.
	Candidates []string
}

// Available reports whether any candidate player is on PATH.
func (p *ExecPlayer) Available() bool {
	return p.lookup() != ""
}

// Play runs the resolved player on the file and waits for it to exit.
func (p *ExecPlayer) Play(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("oracle: audio file: %w", err)
	}
	bin := p.lookup()
	if bin == "" {
		return ErrPlaybackUnavailable
	}
	args := []string{path}
	if bin == "ffplay" {
		// ffplay opens a window and loops by default.
		args = []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("oracle: play audio: %w", err)
	}
	return nil
}

func (p *ExecPlayer) lookup() string {
	candidates := p.Candidates
	if len(candidates) == 0 {
		candidates = DefaultPlayerCandidates
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c); err == nil {
			return c
		}
	}
	return ""
}
