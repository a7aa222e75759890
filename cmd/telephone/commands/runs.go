package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/driftworks/telephone/pkg/cli"
	"github.com/driftworks/telephone/pkg/game"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded game runs",
	Long: `Browse the run history recorded by 'telephone play'.

The history lives in ~/.telephone/data/.`,
}

var runsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRunStore()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if isJSONOutput() || getOutputFile() != "" {
			return outputResult(runs, getOutputFile(), isJSONOutput())
		}

		if len(runs) == 0 {
			fmt.Println("No recorded runs")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tCYCLES\tSTARTED\tDURATION\tPROMPT")
		for _, run := range runs {
			fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%s\t%s\n",
				run.ID,
				run.Status,
				len(run.Cycles), run.TargetCycles,
				cli.FormatTime(run.StartedAt),
				cli.FormatDuration(run.Duration()),
				shorten(run.InitialPrompt, 40))
		}
		w.Flush()
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRunStore()
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if isJSONOutput() || getOutputFile() != "" {
			return outputResult(run, getOutputFile(), isJSONOutput())
		}

		styles := cli.NewStyles(cli.DefaultTheme)
		fmt.Println(styles.Title.Render("Run " + run.ID))
		fmt.Printf("Status:   %s\n", run.Status)
		fmt.Printf("Prompt:   %s\n", run.InitialPrompt)
		fmt.Printf("Started:  %s\n", cli.FormatTime(run.StartedAt))
		fmt.Printf("Finished: %s\n", cli.FormatTime(run.FinishedAt))
		fmt.Printf("Log:      %s\n", run.LogPath)
		if run.Failure != "" {
			fmt.Printf("Failure:  %s\n", run.Failure)
		}
		fmt.Println()
		for _, rec := range run.Cycles {
			fmt.Println(styles.RenderCycle(rec.Cycle, run.TargetCycles, rec.Prompt, rec.ImagePath, rec.Description))
		}
		return nil
	},
}

var runsLogCmd = &cobra.Command{
	Use:   "log <run-id>",
	Short: "Print the raw game log of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRunStore()
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if run.LogPath == "" {
			return fmt.Errorf("run %s has no log file", run.ID)
		}
		content, err := game.ReadLog(run.LogPath)
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}

var runsDeleteCmd = &cobra.Command{
	Use:     "delete <run-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a recorded run",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRunStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Run %s deleted", args[0])
		return nil
	},
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func init() {
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsLogCmd)
	runsCmd.AddCommand(runsDeleteCmd)
}
