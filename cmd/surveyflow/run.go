package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/surveyflow/surveyflow/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run [graph]",
	Short: "Answer a survey interactively",
	Long: `Runs a survey session in the terminal. Progress is saved after every answer;
run again with the same --session and --resume to continue.

While answering, type :back, :summary, :quit or :help.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		graphArg(args)
		opts := cli.RunOptions{Config: cfg}
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Resume, _ = cmd.Flags().GetBool("resume")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.Debug, _ = cmd.Flags().GetBool("debug")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()
		return cli.Execute(sigCtx, opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("session", "s", "", "Session id (generated when empty)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("resume", false, "Continue from the first unanswered question")
	runCmd.Flags().BoolP("watch", "w", false, "Reload the survey when its files change")
	runCmd.Flags().Bool("fresh", false, "Delete the session before starting")
	runCmd.Flags().Bool("debug", false, "Log engine decisions to stderr")

	// 'surveyflow' alone runs the configured survey.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
