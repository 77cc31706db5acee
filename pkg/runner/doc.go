/*
Package runner implements the interactive question loop for a survey session.

The runner sits between a surveyflow.Survey and the respondent. It renders
each question through a pluggable IOHandler, reads the reply, cleans it with
a Sanitizer and submits it. Lines starting with ':' are commands (:back,
:summary, :quit, :help) rather than answers.

# Key Components

  - Runner: the loop. Progress is saved after every answer.
  - TextHandler: human friendly terminal IO.
  - JSONHandler: JSON-Lines IO for scripted or headless use.
  - Sanitizer: size, encoding and control character checks on raw input.

# Usage

	r := runner.NewRunner(survey,
		runner.WithSessionID("user-1"),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)
	if _, err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
