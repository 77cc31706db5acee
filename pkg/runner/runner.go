package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/surveyflow/surveyflow"
	"github.com/surveyflow/surveyflow/internal/logging"
	"github.com/surveyflow/surveyflow/pkg/domain"
)

// Survey is the part of *surveyflow.Survey the runner drives.
type Survey interface {
	Labeler
	Start(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Answer(ctx context.Context, sessionID, questionID, answer string) (*surveyflow.Status, error)
	Back(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Resume(ctx context.Context, sessionID string) (*surveyflow.Status, error)
	Summary(ctx context.Context, sessionID string) ([]surveyflow.SummaryItem, error)
}

// Runner handles the question and answer loop of one session.
// Every step goes through the Survey, so progress is persisted after each
// answer and an interrupted run can be picked up again.
type Runner struct {
	Survey    Survey
	Handler   IOHandler
	Logger    *slog.Logger
	SessionID string
	// Resume jumps to the first unanswered question of an existing session.
	Resume    bool
	Sanitizer Sanitizer
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithSessionID sets the session to run. A new id is generated when empty.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithResume makes the runner continue from the first unanswered question.
func WithResume(resume bool) Option {
	return func(r *Runner) {
		r.Resume = resume
	}
}

// NewRunner creates a Runner over survey using text IO on Stdin/Stdout.
func NewRunner(survey Survey, opts ...Option) *Runner {
	r := &Runner{
		Survey:    survey,
		Logger:    logging.NewNop(),
		Sanitizer: NewSanitizer(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	return r
}

// Run drives the session until the flow ends, the respondent quits or the
// input is exhausted. It returns the final status.
func (r *Runner) Run(ctx context.Context) (*surveyflow.Status, error) {
	st, err := r.Survey.Start(ctx, r.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	if r.Resume {
		if st, err = r.Survey.Resume(ctx, st.SessionID); err != nil {
			return nil, fmt.Errorf("failed to resume session: %w", err)
		}
	}
	log := r.Logger.With("session_id", st.SessionID)
	log.Debug("Runner started", "current", currentID(st))

	for {
		if st.Current == nil {
			return st, r.finish(ctx, st)
		}

		if err := r.Handler.Output(ctx, Event{Type: EventQuestion, SessionID: st.SessionID, Prompt: promptPtr(NewPrompt(*st.Current, r.Survey))}); err != nil {
			return st, err
		}

		line, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info("Input closed, session left open", "current", st.Current.ID)
				return st, nil
			}
			return st, err
		}

		next, err := r.step(ctx, st, line)
		switch {
		case errors.Is(err, ErrQuit):
			log.Info("Respondent quit", "current", st.Current.ID)
			return st, nil
		case errors.Is(err, domain.ErrInvalidAnswer),
			errors.Is(err, ErrInputTooLarge),
			errors.Is(err, ErrInvalidUTF8):
			if err := r.notify(ctx, st, err.Error()); err != nil {
				return st, err
			}
		case err != nil:
			return st, err
		default:
			st = next
		}
	}
}

// step interprets one input line: a command or an answer to the current question.
func (r *Runner) step(ctx context.Context, st *surveyflow.Status, line string) (*surveyflow.Status, error) {
	switch strings.TrimSpace(line) {
	case CmdQuit:
		return nil, ErrQuit
	case CmdBack:
		return r.Survey.Back(ctx, st.SessionID)
	case CmdSummary:
		return st, r.summary(ctx, st)
	case CmdHelp:
		return st, r.notify(ctx, st, fmt.Sprintf("commands: %s, %s, %s", CmdBack, CmdSummary, CmdQuit))
	}

	answer, err := r.Sanitizer.Clean(line)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("Answer received", "session_id", st.SessionID, "question_id", st.Current.ID)
	return r.Survey.Answer(ctx, st.SessionID, st.Current.ID, answer)
}

func (r *Runner) finish(ctx context.Context, st *surveyflow.Status) error {
	if err := r.summary(ctx, st); err != nil {
		return err
	}
	msg := "Survey complete. Thank you!"
	if !st.Complete {
		msg = "Survey ended with unanswered questions. Run again with --resume to finish it."
	}
	return r.Handler.Output(ctx, Event{Type: EventDone, SessionID: st.SessionID, Message: msg, Complete: st.Complete})
}

func (r *Runner) summary(ctx context.Context, st *surveyflow.Status) error {
	items, err := r.Survey.Summary(ctx, st.SessionID)
	if err != nil {
		return err
	}
	return r.Handler.Output(ctx, Event{Type: EventSummary, SessionID: st.SessionID, Summary: NewSummary(items, r.Survey)})
}

func (r *Runner) notify(ctx context.Context, st *surveyflow.Status, msg string) error {
	return r.Handler.Output(ctx, Event{Type: EventError, SessionID: st.SessionID, Message: msg})
}

func promptPtr(p Prompt) *Prompt { return &p }

func currentID(st *surveyflow.Status) string {
	if st.Current == nil {
		return ""
	}
	return st.Current.ID
}
