package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/surveyflow/surveyflow/internal/cli"
	"github.com/surveyflow/surveyflow/internal/config"
	"github.com/surveyflow/surveyflow/internal/logging"
	"github.com/surveyflow/surveyflow/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [graph]",
	Short: "Check the survey for consistency",
	Long:  `Reports missing references, bad option keys and questions unreachable from the start.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		graphArg(args)
		// Validation never touches sessions.
		cfg.Store.Kind = config.StoreMemory

		survey, closeStore, err := cli.OpenSurvey(cfg, logging.NewNop())
		if err != nil {
			return err
		}
		defer closeStore()

		if err := validator.ValidateGraph(survey.Graph()); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Survey is valid! %d questions.\n", survey.Graph().Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
