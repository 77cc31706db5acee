package surveyfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/surveyflow/surveyflow/pkg/adapters/surveyfile"
	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/surveyflow/surveyflow/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlSurvey = `
start: crop
labels:
  q.crop: Which crop?
questions:
  - id: crop
    kind: single_branch
    title: q.crop
    required: true
    options:
      - key: corn
        label: opt.corn
      - key: wheat
    next_id_by_key:
      corn: pests
    next_id: notes
  - id: pests
    kind: multi_queue
    required: true
    options: [{key: insects}, {key: weeds}]
    subflow_start_id_by_key:
      insects: insects_detail
    priority: [weeds, insects]
    fallback_next_id: notes
  - id: insects_detail
    kind: free
    required: true
  - id: notes
`

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_Contract(t *testing.T) {
	loader := surveyfile.New(write(t, "survey.yaml", yamlSurvey))
	tests.GraphLoaderContractTest(t, loader, "crop", []string{"crop", "pests", "insects_detail", "notes"})
}

func TestLoader_YAML(t *testing.T) {
	loader := surveyfile.New(write(t, "survey.yml", yamlSurvey))

	g, err := loader.LoadGraph(context.Background())
	require.NoError(t, err)

	pests, ok := g.Lookup("pests")
	require.True(t, ok)
	assert.Equal(t, []string{"weeds", "insects"}, pests.Priority)
	assert.Equal(t, "notes", pests.FallbackNextID)

	notes, _ := g.Lookup("notes")
	assert.Equal(t, domain.KindFree, notes.Kind, "kind defaults to free")
	assert.False(t, notes.Required)

	assert.Equal(t, "Which crop?", loader.Labels()["q.crop"])
}

func TestLoader_JSON(t *testing.T) {
	loader := surveyfile.New(write(t, "survey.json", `{
  "questions": [
    {"id": "ok", "kind": "yes_no", "required": true, "next_id_if_yes": "done"},
    {"id": "done", "kind": "free"}
  ]
}`))

	g, err := loader.LoadGraph(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", g.StartID(), "start defaults to the first question")
}

func TestLoader_RejectsUnknownFields(t *testing.T) {
	loader := surveyfile.New(write(t, "survey.yaml", `
questions:
  - id: a
    kind: yes_no
    next_if_yes: b
`))
	_, err := loader.LoadGraph(context.Background())
	assert.Error(t, err)
}

func TestLoader_RejectsUnknownKind(t *testing.T) {
	loader := surveyfile.New(write(t, "survey.yaml", "questions:\n  - id: a\n    kind: slider\n"))
	_, err := loader.LoadGraph(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported kind")
}

func TestEncode_RoundTrip(t *testing.T) {
	loader := surveyfile.New(write(t, "survey.yaml", yamlSurvey))
	g, err := loader.LoadGraph(context.Background())
	require.NoError(t, err)

	for _, asJSON := range []bool{false, true} {
		data, err := surveyfile.Encode(g, loader.Labels(), asJSON)
		require.NoError(t, err)

		doc, err := surveyfile.Decode(data, asJSON)
		require.NoError(t, err)
		again, err := doc.Graph()
		require.NoError(t, err)
		assert.Equal(t, g.Questions(), again.Questions())
		assert.Equal(t, g.StartID(), again.StartID())
	}
}
