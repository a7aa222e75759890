package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/driftworks/telephone/pkg/cli"
	"github.com/driftworks/telephone/pkg/game"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "One-shot image generation and description",
}

var imageGenerateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a single image from a prompt",
	Long: `Generate one image from a prompt and persist it under
~/.telephone/images/.

Example:
  telephone image generate "a lighthouse in a storm"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cctx, err := getContext()
		if err != nil {
			return err
		}
		caps, err := buildCapabilities(cmd.Context(), cctx)
		if err != nil {
			return err
		}

		printVerbose("generating image with context %q", cctx.Name)
		ref, err := caps.Generator.Generate(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if isJSONOutput() || getOutputFile() != "" {
			return outputResult(ref, getOutputFile(), isJSONOutput())
		}
		cli.PrintSuccess("Image saved to %s", ref.Path)
		return nil
	},
}

var imageDescribeCmd = &cobra.Command{
	Use:   "describe <path-or-url>",
	Short: "Describe an image",
	Long: `Describe an image from a local file or an https URL, using the same
analysis capability the game uses.

Example:
  telephone image describe ./photo.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cctx, err := getContext()
		if err != nil {
			return err
		}
		caps, err := buildCapabilities(cmd.Context(), cctx)
		if err != nil {
			return err
		}

		ref := game.ImageRef{Path: args[0]}
		if strings.HasPrefix(args[0], "http://") || strings.HasPrefix(args[0], "https://") {
			ref = game.ImageRef{URL: args[0]}
		}

		description, err := caps.Analyzer.Describe(cmd.Context(), ref)
		if err != nil {
			return err
		}

		if isJSONOutput() || getOutputFile() != "" {
			return outputResult(map[string]string{"description": description}, getOutputFile(), isJSONOutput())
		}
		fmt.Println(description)
		return nil
	},
}

func init() {
	imageCmd.AddCommand(imageGenerateCmd)
	imageCmd.AddCommand(imageDescribeCmd)
}
