package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyflow/surveyflow/internal/config"
	"github.com/surveyflow/surveyflow/pkg/runner"
)

func TestExecute_JSONSession(t *testing.T) {
	cfg := testConfig(t, config.StoreMemory)
	cfg.LogLevel = "error"
	out := &bytes.Buffer{}

	err := Execute(context.Background(), RunOptions{
		Config:    cfg,
		SessionID: "j1",
		JSON:      true,
		Stdin:     strings.NewReader("no\nteacher\nPeru\n"),
		Stdout:    out,
	})
	require.NoError(t, err)

	var last runner.Event
	dec := json.NewDecoder(out)
	for dec.More() {
		require.NoError(t, dec.Decode(&last))
	}
	assert.Equal(t, runner.EventDone, last.Type)
	assert.True(t, last.Complete)
}

func TestExecute_TextSessionStopsOnEOF(t *testing.T) {
	cfg := testConfig(t, config.StoreFile)
	cfg.LogLevel = "error"
	out := &bytes.Buffer{}

	err := Execute(context.Background(), RunOptions{
		Config:    cfg,
		SessionID: "t1",
		Stdin:     strings.NewReader("yes\n"),
		Stdout:    out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "What is your main crop?")
	assert.Contains(t, out.String(), ">>> Session 't1' is active.")
}

func TestExecute_RejectsWatchWithJSON(t *testing.T) {
	err := Execute(context.Background(), RunOptions{Config: testConfig(t, config.StoreMemory), JSON: true, Watch: true})
	assert.ErrorContains(t, err, "cannot be used together")
}
