package game

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MinCycles is the smallest allowed cycle count.
	MinCycles = 1

	// MaxCycles is the largest allowed cycle count.
	MaxCycles = 5

	// DefaultCycleDelay is the courtesy pause between successive cycles,
	// a small rate-limiting gesture towards the backing service.
	DefaultCycleDelay = time.Second

	// DefaultCallTimeout bounds each individual capability call.
	DefaultCallTimeout = 120 * time.Second

	// DefaultLogDir is where per-run game logs are written.
	DefaultLogDir = "telephone_game"
)

// Game drives the telephone game loop: generate an image from the current
// prompt, describe it, feed the description back in as the next prompt.
type Game struct {
	generator Generator
	analyzer  Analyzer

	logDir      string
	cycleDelay  time.Duration
	callTimeout time.Duration
	recorder    Recorder
	logger      *slog.Logger
	sleep       func(time.Duration)
	now         func() time.Time
}

// Option configures a Game.
type Option func(*Game)

// WithLogDir sets the directory for per-run game logs.
func WithLogDir(dir string) Option {
	return func(g *Game) { g.logDir = dir }
}

// WithCycleDelay sets the pause between successive cycles. Zero disables it.
func WithCycleDelay(d time.Duration) Option {
	return func(g *Game) { g.cycleDelay = d }
}

// WithCallTimeout bounds each capability call. Zero leaves calls bounded only
// by the caller's context.
func WithCallTimeout(d time.Duration) Option {
	return func(g *Game) { g.callTimeout = d }
}

// WithRecorder registers a run-history store that receives terminal sessions.
func WithRecorder(r Recorder) Option {
	return func(g *Game) { g.recorder = r }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// New creates a Game over the two capabilities.
//
// Both capabilities are required: a missing one means the caller never had a
// valid configuration, and that must fail here rather than mid-run.
func New(gen Generator, an Analyzer, opts ...Option) (*Game, error) {
	if gen == nil {
		return nil, configErrorf("generation capability is required")
	}
	if an == nil {
		return nil, configErrorf("analysis capability is required")
	}
	g := &Game{
		generator:   gen,
		analyzer:    an,
		logDir:      DefaultLogDir,
		cycleDelay:  DefaultCycleDelay,
		callTimeout: DefaultCallTimeout,
		sleep:       time.Sleep,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g, nil
}

// Play runs one full game from initialPrompt over the given number of cycles.
//
// The returned session is always non-nil once preconditions pass and is in a
// terminal state: StatusCompleted with len(Cycles) == cycles, or
// StatusAborted at the first failing cycle, paired with a non-nil *Error.
// Precondition failures return (nil, *Error) with no log file created.
//
// The loop is strictly sequential and performs no retries; cancellation via
// ctx is cooperative and takes effect between cycles only.
func (g *Game) Play(ctx context.Context, initialPrompt string, cycles int) (*Session, error) {
	initialPrompt = strings.TrimSpace(initialPrompt)
	if initialPrompt == "" {
		return nil, configErrorf("initial prompt must not be empty")
	}
	if cycles < MinCycles || cycles > MaxCycles {
		return nil, configErrorf("cycle count %d out of range [%d, %d]", cycles, MinCycles, MaxCycles)
	}

	session := newSession(uuid.NewString(), initialPrompt, cycles)
	start := g.now()
	session.Status = StatusRunning
	session.StartedAt = start

	log, err := OpenLog(g.logDir, session.ID, start)
	if err != nil {
		return g.abort(ctx, session, &Error{Kind: KindIO, Op: "open log", Err: err})
	}
	defer log.Close()
	session.LogPath = log.Path()

	if err := log.AppendHeader(initialPrompt, start); err != nil {
		return g.abort(ctx, session, &Error{Kind: KindIO, Op: "append log header", Err: err})
	}

	g.logger.Info("game started",
		"run", session.ID,
		"cycles", cycles,
		"prompt", truncate(initialPrompt, 100))

	prompt := initialPrompt
	for cycle := 1; cycle <= cycles; cycle++ {
		if err := ctx.Err(); err != nil {
			return g.abort(ctx, session, &Error{Kind: KindCancelled, Op: "run cancelled", Cycle: cycle, Err: err})
		}

		g.logger.Info("generating image", "run", session.ID, "cycle", cycle, "prompt", truncate(prompt, 100))
		ref, err := g.generate(ctx, prompt)
		if err != nil {
			return g.abort(ctx, session, &Error{Kind: KindGeneration, Op: "generate", Cycle: cycle, Err: err})
		}
		g.logger.Info("image generated", "run", session.ID, "cycle", cycle, "path", ref.Path)

		g.logger.Info("analyzing image", "run", session.ID, "cycle", cycle)
		description, err := g.describe(ctx, ref)
		if err != nil {
			// The generated image stays persisted at ref.Path; it is
			// just never linked into a cycle record.
			return g.abort(ctx, session, &Error{Kind: KindAnalysis, Op: "describe", Cycle: cycle, Err: err})
		}
		g.logger.Info("image analyzed", "run", session.ID, "cycle", cycle, "description", truncate(description, 100))

		rec := CycleRecord{
			Cycle:       cycle,
			Prompt:      prompt,
			ImagePath:   ref.Path,
			ImageURL:    ref.URL,
			Description: description,
		}
		session.appendCycle(rec)
		if err := log.AppendCycle(rec, cycles); err != nil {
			return g.abort(ctx, session, &Error{Kind: KindIO, Op: "append log cycle", Cycle: cycle, Err: err})
		}

		prompt = description
		if cycle < cycles && g.cycleDelay > 0 {
			g.sleep(g.cycleDelay)
		}
	}

	end := g.now()
	if err := log.AppendFooter(end); err != nil {
		return g.abort(ctx, session, &Error{Kind: KindIO, Op: "append log footer", Err: err})
	}
	session.finish(StatusCompleted, end, "")
	g.logger.Info("game completed", "run", session.ID, "cycles", len(session.Cycles))
	g.record(ctx, session)
	return session, nil
}

// generate invokes the generation capability under the per-call timeout.
func (g *Game) generate(ctx context.Context, prompt string) (ImageRef, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()
	return g.generator.Generate(ctx, prompt)
}

// describe invokes the analysis capability under the per-call timeout.
func (g *Game) describe(ctx context.Context, ref ImageRef) (string, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()
	return g.analyzer.Describe(ctx, ref)
}

func (g *Game) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.callTimeout)
}

// abort ends the run in StatusAborted and returns the session with the error.
func (g *Game) abort(ctx context.Context, session *Session, gameErr *Error) (*Session, error) {
	session.finish(StatusAborted, g.now(), gameErr.Error())
	g.logger.Error("game aborted",
		"run", session.ID,
		"completed_cycles", len(session.Cycles),
		"error", gameErr)
	g.record(ctx, session)
	return session, gameErr
}

// record hands a terminal session to the run-history recorder, best-effort.
func (g *Game) record(ctx context.Context, session *Session) {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.Save(ctx, session); err != nil {
		g.logger.Warn("failed to record run", "run", session.ID, "error", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
