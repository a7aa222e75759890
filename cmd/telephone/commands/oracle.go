package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftworks/telephone/pkg/cli"
	"github.com/driftworks/telephone/pkg/oracle"
)

// oracleResult is the machine-readable oracle output.
type oracleResult struct {
	Name         string `yaml:"name" json:"name"`
	Story        string `yaml:"story" json:"story"`
	PortraitPath string `yaml:"portrait_path,omitempty" json:"portrait_path,omitempty"`
	AudioPath    string `yaml:"audio_path,omitempty" json:"audio_path,omitempty"`
	Voice        string `yaml:"voice,omitempty" json:"voice,omitempty"`
}

var oracleCmd = &cobra.Command{
	Use:   "oracle <name>",
	Short: "Past-life fortune telling",
	Long: `Tell a humorous past-life story for a name, optionally with a portrait
of their past-life appearance and a spoken narration.

The story and narration use the OpenAI backend; the portrait goes through
the configured image provider.

Example:
  telephone oracle "Ada" --portrait
  telephone oracle "Ada" --narrate --play`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		wantPortrait, _ := cmd.Flags().GetBool("portrait")
		wantNarrate, _ := cmd.Flags().GetBool("narrate")
		wantPlay, _ := cmd.Flags().GetBool("play")
		if wantPlay {
			wantNarrate = true
		}

		cctx, err := getContext()
		if err != nil {
			return err
		}
		caps, err := buildCapabilities(cmd.Context(), cctx)
		if err != nil {
			return err
		}
		if caps.OpenAI == nil {
			return fmt.Errorf("the oracle needs an openai context (context %q uses %s)",
				cctx.Name, cctx.ResolvedProvider())
		}

		o := &oracle.Oracle{
			Client:    caps.OpenAI,
			Portraits: caps.Generator,
		}

		printVerbose("consulting the oracle for %q", name)
		story, err := o.Tell(cmd.Context(), name)
		if err != nil {
			return err
		}
		result := oracleResult{Name: name, Story: story}

		if wantPortrait {
			ref, err := o.Portrait(cmd.Context(), name)
			if err != nil {
				return err
			}
			result.PortraitPath = ref.Path
		}

		if wantNarrate {
			paths := getPaths()
			if err := paths.EnsureAudioDir(); err != nil {
				return err
			}
			n := &oracle.Narrator{
				Speech:   &oracle.OpenAISpeech{Client: caps.OpenAI},
				AudioDir: paths.AudioDir(),
			}
			audioPath, voice, err := n.Narrate(cmd.Context(), story)
			if err != nil {
				return err
			}
			result.AudioPath = audioPath
			result.Voice = voice
		}

		if isJSONOutput() || getOutputFile() != "" {
			if err := outputResult(result, getOutputFile(), isJSONOutput()); err != nil {
				return err
			}
		} else {
			styles := cli.NewStyles(cli.DefaultTheme)
			fmt.Println(styles.Title.Render(fmt.Sprintf("The past life of %s", name)))
			fmt.Println()
			fmt.Println(story)
			if result.PortraitPath != "" {
				cli.PrintSuccess("Portrait saved to %s", result.PortraitPath)
			}
			if result.AudioPath != "" {
				cli.PrintSuccess("Narration (%s) saved to %s", result.Voice, result.AudioPath)
			}
		}

		if wantPlay {
			player := &oracle.ExecPlayer{}
			if err := player.Play(cmd.Context(), result.AudioPath); err != nil {
				if errors.Is(err, oracle.ErrPlaybackUnavailable) {
					cli.PrintWarning("No audio player found; narration saved to %s", result.AudioPath)
					return nil
				}
				return err
			}
		}
		return nil
	},
}

func init() {
	oracleCmd.Flags().Bool("portrait", false, "Also generate a past-life portrait")
	oracleCmd.Flags().Bool("narrate", false, "Also synthesize a spoken narration")
	oracleCmd.Flags().Bool("play", false, "Play the narration (implies --narrate)")
}
