package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/driftworks/telephone/pkg/cli"
)

var (
	// Global flags
	cfgFile     string
	contextName string
	outputFile  string
	inputFile   string
	outputJSON  bool
	verbose     bool

	// Global configuration
	globalConfig *cli.Config
	globalPaths  *cli.Paths
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "telephone",
	Short: "AI telephone game CLI",
	Long: `Telephone - an AI variation of the telephone game, played with images.

An initial prompt becomes an image, the image becomes a description, and
the description seeds the next image. After a few cycles the idea has
drifted somewhere unexpected.

Commands:
  - play    run a game from an initial prompt
  - image   one-shot image generation and description
  - oracle  past-life fortune telling (story, portrait, narration)
  - runs    browse recorded game runs
  - config  manage provider contexts

Configuration is stored in ~/.telephone/ and supports multiple contexts,
similar to kubectl's context management. API keys can also come from the
OPENAI_API_KEY / GEMINI_API_KEY environment variables or a .env file.

Examples:
  # Set up a context
  telephone config add-context work --provider openai --api-key YOUR_API_KEY

  # Play a three cycle game
  telephone -c work play "a serene mountain lake at sunset" --cycles 3

  # Inspect past runs
  telephone runs list
  telephone runs log <run-id>
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.telephone/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "input request file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(oracleCmd)
	rootCmd.AddCommand(runsCmd)
}

func initConfig() {
	// .env files are a convenience for the environment key fallback.
	_ = godotenv.Load()

	var err error
	globalPaths, err = cli.NewPaths()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving home directory: %v\n", err)
		os.Exit(1)
	}
	globalConfig, err = cli.LoadConfigWithPath(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

// getConfig returns the global configuration
func getConfig() *cli.Config {
	return globalConfig
}

// getPaths returns the directory layout helper
func getPaths() *cli.Paths {
	return globalPaths
}

// getContext returns the context configuration to use
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	ctx, err := cfg.ResolveContext(contextName)
	if err != nil {
		return nil, err
	}

	return ctx, nil
}

// newRunLogger builds the structured logger for a game run. Progress records
// always land in the app log file; verbose mode tees them to stderr as well.
func newRunLogger(appLog io.Writer) *slog.Logger {
	w := appLog
	if verbose {
		w = io.MultiWriter(appLog, os.Stderr)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// getInputFile returns the input file path
func getInputFile() string {
	return inputFile
}

// getOutputFile returns the output file path
func getOutputFile() string {
	return outputFile
}

// isJSONOutput returns whether output should be JSON
func isJSONOutput() bool {
	return outputJSON
}

// outputResult outputs the result using cli package
func outputResult(result any, outputPath string, asJSON bool) error {
	format := cli.FormatYAML
	if asJSON {
		format = cli.FormatJSON
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		File:   outputPath,
	})
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
