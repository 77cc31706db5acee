package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "surveyflow version ")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "all-components")
	require.NoError(t, err)
	assert.Contains(t, out, "Survey is valid!")
}

func TestValidateCommand_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`start: q1
questions:
  - id: q1
    kind: free
    required: true
    next_id: q_missing
`), 0o600))

	_, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "references missing question 'q_missing'")
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", "crop")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")

	out, err = execute(t, "graph", "crop", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"start": "q_start"`)
}
