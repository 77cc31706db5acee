/*
Package surveyflow is a deterministic navigation engine for branching
questionnaires.

A survey is a graph of typed questions. Yes/no and single choice questions
branch to a successor per answer, multi-select questions queue one sub-flow
per selected option, and everything else follows a static successor. The
engine keeps the answers, the visited log and the pending sub-flow queue of
each session and persists them through a pluggable store.

# Usage

	survey, err := surveyflow.New("./surveys/farm.yaml",
		surveyflow.WithStore(file.New(".surveyflow/sessions")),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	st, err := survey.Start(ctx, "respondent-42")
	if err != nil {
		log.Fatal(err)
	}

	for st.Current != nil {
		answer := ask(survey.Label(st.Current.Title))
		st, err = survey.Answer(ctx, st.SessionID, st.Current.ID, answer)
		if errors.Is(err, domain.ErrInvalidAnswer) {
			continue
		}
		if err != nil {
			log.Fatal(err)
		}
	}

Graphs come from a directory of markdown questions (one per file), a single
YAML or JSON file, the fluent builder in pkg/dsl, or the built-in samples.
*/
package surveyflow
