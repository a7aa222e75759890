package commands

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftworks/telephone/pkg/cli"
	"github.com/driftworks/telephone/pkg/game"
)

// PlayRequest is the request file format for the play command.
type PlayRequest struct {
	// Prompt is the initial prompt.
	Prompt string `yaml:"prompt" json:"prompt"`

	// Cycles is the number of cycles to play (1-5).
	Cycles int `yaml:"cycles,omitempty" json:"cycles,omitempty"`

	// DelaySeconds is the pause between cycles.
	DelaySeconds int `yaml:"delay_seconds,omitempty" json:"delay_seconds,omitempty"`
}

var playCmd = &cobra.Command{
	Use:   "play [prompt]",
	Short: "Run a telephone game from an initial prompt",
	Long: `Run a telephone game: the prompt becomes an image, the image becomes a
description, and the description seeds the next image.

The per-run log is written under ~/.telephone/logs/ and the finished run
is recorded in the run history (see 'telephone runs').

Example:
  telephone play "a serene mountain lake at sunset" --cycles 3
  telephone play -f request.yaml --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := PlayRequest{Cycles: 3}
		if f := getInputFile(); f != "" {
			if err := cli.LoadRequest(f, &req); err != nil {
				return err
			}
		}
		if len(args) > 0 {
			req.Prompt = args[0]
		}
		if cmd.Flags().Changed("cycles") {
			req.Cycles, _ = cmd.Flags().GetInt("cycles")
		}
		if req.Prompt == "" {
			return fmt.Errorf("an initial prompt is required (argument or -f request file)")
		}

		delay := game.DefaultCycleDelay
		if cmd.Flags().Changed("delay") {
			delay, _ = cmd.Flags().GetDuration("delay")
		} else if req.DelaySeconds > 0 {
			delay = time.Duration(req.DelaySeconds) * time.Second
		}
		noStore, _ := cmd.Flags().GetBool("no-store")

		cctx, err := getContext()
		if err != nil {
			return err
		}
		caps, err := buildCapabilities(cmd.Context(), cctx)
		if err != nil {
			return err
		}

		paths := getPaths()
		if err := paths.EnsureLogDir(); err != nil {
			return err
		}
		appLog, err := os.OpenFile(paths.LogPath("telephone.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		defer appLog.Close()

		opts := []game.Option{
			game.WithLogDir(paths.LogDir()),
			game.WithCycleDelay(delay),
			game.WithCallTimeout(callTimeout(cctx)),
			game.WithLogger(newRunLogger(appLog)),
		}
		if !noStore {
			store, err := openRunStore()
			if err != nil {
				return err
			}
			defer store.Close()
			opts = append(opts, game.WithRecorder(store))
		}

		g, err := game.New(caps.Generator, caps.Analyzer, opts...)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		styles := cli.NewStyles(cli.DefaultTheme)
		if !isJSONOutput() {
			fmt.Print(styles.RenderRunHeader(req.Prompt, req.Cycles))
			fmt.Println()
		}

		session, playErr := g.Play(ctx, req.Prompt, req.Cycles)
		if session == nil {
			return playErr
		}

		if isJSONOutput() || getOutputFile() != "" {
			if err := outputResult(session, getOutputFile(), isJSONOutput()); err != nil {
				return err
			}
		} else {
			for _, rec := range session.Cycles {
				fmt.Println(styles.RenderCycle(rec.Cycle, req.Cycles, rec.Prompt, rec.ImagePath, rec.Description))
			}
			if playErr == nil {
				cli.PrintSuccess("Game completed: %d cycles, log at %s", len(session.Cycles), session.LogPath)
			}
		}
		return playErr
	},
}

func init() {
	playCmd.Flags().Int("cycles", 3, "Number of cycles to play (1-5)")
	playCmd.Flags().Duration("delay", game.DefaultCycleDelay, "Pause between cycles")
	playCmd.Flags().Bool("no-store", false, "Do not record the run in the run history")
}
