package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/surveyflow/surveyflow/internal/config"
)

var (
	v   = config.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "surveyflow",
	Short: "Surveyflow runs branching questionnaires",
	Long: `Surveyflow runs questionnaires whose next question depends on the answers given:
yes/no and single choice branches, and multi-select questions that queue follow-up sub-flows.

Surveys come from a built-in sample, a YAML/JSON file, or a directory of markdown questions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(v, configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: ./surveyflow.yaml)")
	flags.StringP("graph", "g", "", "Sample name, survey file, or directory of questions")
	flags.String("store", "", "Session store: memory, file, redis or sqlite")
	flags.String("store-path", "", "Directory (file store) or database path (sqlite store)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")

	bind := map[string]string{
		"graph":      "graph",
		"store.kind": "store",
		"store.path": "store-path",
		"log_level":  "log-level",
	}
	for key, flag := range bind {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// graphArg lets the graph be given positionally: `surveyflow validate survey.yaml`.
func graphArg(args []string) {
	if len(args) > 0 {
		cfg.Graph = args[0]
	}
}
