package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/surveyflow/surveyflow"
	"github.com/surveyflow/surveyflow/internal/config"
	"github.com/surveyflow/surveyflow/internal/presentation/tui"
	"github.com/surveyflow/surveyflow/pkg/observability"
	"github.com/surveyflow/surveyflow/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Config    *config.Config
	SessionID string
	JSON      bool
	Resume    bool
	Watch     bool
	// Fresh deletes the session before running it.
	Fresh bool
	Debug bool

	Stdin  io.Reader
	Stdout io.Writer
}

// Execute runs one interactive session.
func Execute(ctx context.Context, opts RunOptions) error {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Watch && opts.JSON {
		return fmt.Errorf("--watch and --json cannot be used together")
	}

	logger, err := CreateLogger(opts.Config.LogLevel, opts.Debug)
	if err != nil {
		return err
	}

	survey, closeStore, err := OpenSurvey(opts.Config, logger, observability.LoggingHooks(logger))
	if err != nil {
		return err
	}
	defer closeStore()

	if opts.Fresh && opts.SessionID != "" {
		if err := survey.Delete(ctx, opts.SessionID); err != nil && !surveyflow.IsNotFound(err) {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	}

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(opts.Stdin, opts.Stdout)
	} else {
		tui.PrintBanner(opts.Stdout)
		handler = runner.NewTextHandler(opts.Stdin, opts.Stdout,
			runner.WithTextHandlerRenderer(runner.ContentRenderer(tui.NewRenderer())))
	}

	if opts.Watch {
		watchCtx, stop := context.WithCancel(ctx)
		defer stop()
		go func() {
			err := WatchGraph(watchCtx, survey, logger, func(err error) {
				if err == nil {
					printSystemMessage(opts.Stdout, "Survey reloaded.")
				}
			})
			if err != nil {
				logger.Warn("Watch disabled", "err", err)
			}
		}()
	}

	r := runner.NewRunner(survey,
		runner.WithInputHandler(handler),
		runner.WithLogger(logger),
		runner.WithSessionID(opts.SessionID),
		runner.WithResume(opts.Resume),
	)
	st, err := r.Run(ctx)
	if !opts.JSON && st != nil {
		printSystemMessage(opts.Stdout, "Session '%s' is %s.", st.SessionID, st.State)
	}
	return handleExecutionError(err)
}
