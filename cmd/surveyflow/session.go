package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/surveyflow/surveyflow"
	"github.com/surveyflow/surveyflow/internal/cli"
	"github.com/surveyflow/surveyflow/internal/logging"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persisted sessions",
	Long:  `List, inspect, and remove sessions in the configured store.`,
}

func openSurvey() (*surveyflow.Survey, func() error, error) {
	return cli.OpenSurvey(cfg, logging.NewNop())
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		survey, closeStore, err := openSurvey()
		if err != nil {
			return err
		}
		defer closeStore()

		ids, err := survey.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(ids) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}
		for _, id := range ids {
			st, err := survey.Status(cmd.Context(), id)
			if err != nil {
				fmt.Fprintf(out, "- %s (unreadable: %v)\n", id, err)
				continue
			}
			current := "-"
			if st.Current != nil {
				current = st.Current.ID
			}
			fmt.Fprintf(out, "- %s\t%s\t%s\t%d answers\n", id, st.State, current, len(st.Answers))
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		survey, closeStore, err := openSurvey()
		if err != nil {
			return err
		}
		defer closeStore()

		st, err := survey.Status(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error loading session '%s': %w", args[0], err)
		}
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args: func(cmd *cobra.Command, args []string) error {
		if all, _ := cmd.Flags().GetBool("all"); all {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		survey, closeStore, err := openSurvey()
		if err != nil {
			return err
		}
		defer closeStore()

		if all, _ := cmd.Flags().GetBool("all"); all {
			if args, err = survey.List(cmd.Context()); err != nil {
				return err
			}
		}

		failed := 0
		for _, id := range args {
			if err := survey.Delete(cmd.Context(), id); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", id, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", id)
		}
		if failed > 0 {
			return fmt.Errorf("%d session(s) could not be removed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)

	sessionRmCmd.Flags().Bool("all", false, "Remove every session")
}
