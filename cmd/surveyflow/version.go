package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/surveyflow/surveyflow"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of surveyflow",
	// Skip config loading so version works anywhere.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "surveyflow version %s\n", strings.TrimSpace(surveyflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
