package cli

import (
	"context"
	"log/slog"
	"time"
)

// Reloader is satisfied by *surveyflow.Survey.
type Reloader interface {
	Watch(ctx context.Context) (<-chan string, error)
	Reload(ctx context.Context) error
}

// reloadDebounce groups bursts of file events (editors often write twice).
const reloadDebounce = 200 * time.Millisecond

// WatchGraph reloads the survey every time its source changes, until ctx is
// done. Sessions in flight keep their answers and continue on the new graph.
// onReload is called after each reload attempt with its error, if any.
func WatchGraph(ctx context.Context, r Reloader, logger *slog.Logger, onReload func(error)) error {
	events, err := r.Watch(ctx)
	if err != nil {
		return err
	}

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			logger.Debug("Graph source changed", "event", ev)
			timer = time.After(reloadDebounce)
		case <-timer:
			timer = nil
			err := r.Reload(ctx)
			if err != nil {
				logger.Error("Reload failed, keeping previous graph", "err", err)
			} else {
				logger.Info("Graph reloaded")
			}
			if onReload != nil {
				onReload(err)
			}
		}
	}
}
