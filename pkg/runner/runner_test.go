package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyflow/surveyflow"
	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/surveyflow/surveyflow/pkg/dsl"
)

func newPetSurvey(t *testing.T) *surveyflow.Survey {
	t.Helper()
	b := dsl.New("q_name")
	b.Free("q_name", "name_title").Text("What is your name?").Next("q_pet")
	b.YesNo("q_pet", "pet_title").Text("Do you have a pet?").Yes("q_kind")
	b.Single("q_kind", "kind_title").Text("Which pet?").
		Option("cat", "opt_cat").Option("dog", "opt_dog")
	b.Label("opt_cat", "Cat").Label("opt_dog", "Dog")

	s, err := surveyflow.New("", surveyflow.WithGraph(b.MustBuild(), b.Labels()))
	require.NoError(t, err)
	return s
}

func runText(t *testing.T, s *surveyflow.Survey, input string, opts ...Option) (*surveyflow.Status, string) {
	t.Helper()
	out := &bytes.Buffer{}
	opts = append([]Option{WithInputHandler(NewTextHandler(strings.NewReader(input), out))}, opts...)
	st, err := NewRunner(s, opts...).Run(context.Background())
	require.NoError(t, err)
	return st, out.String()
}

func TestRunner_CompletesFlow(t *testing.T) {
	s := newPetSurvey(t)
	st, out := runText(t, s, "Ada\nyes\nbird\ncat\n", WithSessionID("s1"))

	assert.Equal(t, domain.StatusCompleted, st.State)
	assert.True(t, st.Complete)
	assert.Equal(t, map[string]string{"q_name": "Ada", "q_pet": "yes", "q_kind": "cat"}, st.Answers)

	assert.Contains(t, out, "What is your name?")
	assert.Contains(t, out, "[yes] Yes")
	assert.Contains(t, out, "[cat] Cat")
	assert.Contains(t, out, `! question 'q_kind' (single) does not accept answer "bird"`)
	assert.Contains(t, out, "- Which pet?: cat")
	assert.Contains(t, out, "Survey complete. Thank you!")
}

func TestRunner_EOFLeavesSessionOpen(t *testing.T) {
	s := newPetSurvey(t)
	st, _ := runText(t, s, "Ada\n", WithSessionID("s2"))

	assert.Equal(t, domain.StatusActive, st.State)
	require.NotNil(t, st.Current)
	assert.Equal(t, "q_pet", st.Current.ID)

	// A second run picks up where the first stopped.
	st, _ = runText(t, s, "no\n", WithSessionID("s2"))
	assert.Equal(t, domain.StatusCompleted, st.State)
	assert.Equal(t, "no", st.Answers["q_pet"])
}

func TestRunner_Commands(t *testing.T) {
	s := newPetSurvey(t)
	st, out := runText(t, s, "Ada\n:back\nGrace\n:summary\n:help\n:quit\n", WithSessionID("s3"))

	assert.Equal(t, "Grace", st.Answers["q_name"])
	require.NotNil(t, st.Current)
	assert.Equal(t, "q_pet", st.Current.ID)
	assert.Contains(t, out, "- What is your name?: Grace")
	assert.Contains(t, out, "commands: :back, :summary, :quit")
	assert.NotContains(t, out, "Survey complete")
}

func TestRunner_Resume(t *testing.T) {
	s := newPetSurvey(t)
	ctx := context.Background()
	_, err := s.Start(ctx, "s4")
	require.NoError(t, err)
	_, err = s.Answer(ctx, "s4", "q_name", "Ada")
	require.NoError(t, err)
	_, err = s.Back(ctx, "s4")
	require.NoError(t, err)

	// Resume goes to the first visited question left unanswered.
	st, out := runText(t, s, "yes\ndog\n", WithSessionID("s4"), WithResume(true))
	assert.Equal(t, domain.StatusCompleted, st.State)
	assert.Equal(t, "dog", st.Answers["q_kind"])
	assert.Contains(t, out, "Do you have a pet?")
}

func TestRunner_RejectsOversizedInput(t *testing.T) {
	s := newPetSurvey(t)
	out := &bytes.Buffer{}
	r := NewRunner(s, WithSessionID("s5"), WithInputHandler(NewTextHandler(strings.NewReader("way too long\nAda\n"), out)))
	r.Sanitizer.MaxSize = 5

	st, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", st.Answers["q_name"])
	assert.Contains(t, out.String(), "input exceeds maximum allowed size")
}

func TestRunner_JSONHandler(t *testing.T) {
	s := newPetSurvey(t)
	out := &bytes.Buffer{}
	in := strings.NewReader("\"Ada\"\nno\n")

	st, err := NewRunner(s, WithSessionID("s6"), WithInputHandler(NewJSONHandler(in, out))).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, st.State)

	var events []Event
	dec := json.NewDecoder(out)
	for dec.More() {
		var ev Event
		require.NoError(t, dec.Decode(&ev))
		events = append(events, ev)
	}
	require.Len(t, events, 4)
	assert.Equal(t, EventQuestion, events[0].Type)
	assert.Equal(t, "q_name", events[0].Prompt.QuestionID)
	assert.Equal(t, []Choice{{Key: "yes", Label: "Yes"}, {Key: "no", Label: "No"}}, events[1].Prompt.Choices)
	assert.Equal(t, EventSummary, events[2].Type)
	assert.Len(t, events[2].Summary, 2)
	assert.Equal(t, EventDone, events[3].Type)
	assert.True(t, events[3].Complete)
}

func TestRunner_ContextCancelled(t *testing.T) {
	s := newPetSurvey(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, _ := newBlockingReader()
	_, err := NewRunner(s, WithInputHandler(NewTextHandler(pr, &bytes.Buffer{}))).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
