package runner

import (
	"context"
	"errors"
)

// ErrQuit is returned by handlers when the respondent asks to stop.
var ErrQuit = errors.New("respondent quit")

// IOHandler is the strategy for talking to the respondent.
// Text and JSON-lines implementations are provided.
type IOHandler interface {
	// Output presents one event.
	Output(ctx context.Context, ev Event) error
	// Input reads the next raw line. It returns io.EOF when the source is exhausted.
	Input(ctx context.Context) (string, error)
}

// Commands typed instead of an answer.
const (
	CmdBack    = ":back"
	CmdSummary = ":summary"
	CmdQuit    = ":quit"
	CmdHelp    = ":help"
)
