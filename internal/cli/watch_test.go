package cli

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyflow/surveyflow/internal/logging"
)

type fakeReloader struct {
	events  chan string
	reloads atomic.Int32
	err     error
}

func (f *fakeReloader) Watch(ctx context.Context) (<-chan string, error) {
	if f.events == nil {
		return nil, errors.New("not watchable")
	}
	return f.events, nil
}

func (f *fakeReloader) Reload(ctx context.Context) error {
	f.reloads.Add(1)
	return f.err
}

func TestWatchGraph_DebouncesBursts(t *testing.T) {
	f := &fakeReloader{events: make(chan string, 3)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan error, 1)
	go func() {
		_ = WatchGraph(ctx, f, logging.NewNop(), func(err error) { reloaded <- err })
	}()

	f.events <- "a.md"
	f.events <- "a.md"
	f.events <- "b.md"

	select {
	case err := <-reloaded:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload")
	}
	assert.Equal(t, int32(1), f.reloads.Load())
}

func TestWatchGraph_Unsupported(t *testing.T) {
	err := WatchGraph(context.Background(), &fakeReloader{}, logging.NewNop(), nil)
	require.Error(t, err)
}

func TestWatchGraph_StopsWhenClosed(t *testing.T) {
	f := &fakeReloader{events: make(chan string)}
	close(f.events)
	assert.NoError(t, WatchGraph(context.Background(), f, logging.NewNop(), nil))
}
