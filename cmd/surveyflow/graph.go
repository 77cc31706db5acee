package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/surveyflow/surveyflow/internal/cli"
	"github.com/surveyflow/surveyflow/internal/config"
	"github.com/surveyflow/surveyflow/internal/logging"
	"github.com/surveyflow/surveyflow/internal/presentation/graph"
	"github.com/surveyflow/surveyflow/pkg/domain"
)

var graphCmd = &cobra.Command{
	Use:   "graph [graph]",
	Short: "Export the survey graph",
	Long: `Outputs a Mermaid diagram (graph TD) of the survey. With --session, the questions
visited by that session and its current question are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		graphArg(args)
		format, _ := cmd.Flags().GetString("format")
		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			cfg.Store.Kind = config.StoreMemory
		}

		survey, closeStore, err := cli.OpenSurvey(cfg, logging.NewNop())
		if err != nil {
			return err
		}
		defer closeStore()

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Start     string            `json:"start"`
				Questions []domain.Question `json:"questions"`
			}{survey.Graph().StartID(), survey.Graph().Questions()})
		case "mermaid":
			var overlay *graph.GraphOverlay
			if sessionID != "" {
				st, err := survey.Status(cmd.Context(), sessionID)
				if err != nil {
					return err
				}
				overlay = &graph.GraphOverlay{VisitedQuestions: st.Visited}
				if st.Current != nil {
					overlay.CurrentQuestion = st.Current.ID
				}
			}
			fmt.Fprint(out, graph.GenerateMermaid(survey.Graph(), overlay))
			return nil
		}
		return fmt.Errorf("unknown format %q (use mermaid or json)", format)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("format", "mermaid", "Output format: mermaid or json")
	graphCmd.Flags().StringP("session", "s", "", "Highlight the path of this session")
}
