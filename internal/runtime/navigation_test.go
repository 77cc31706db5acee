package runtime_test

import (
	"errors"
	"testing"

	"github.com/surveyflow/surveyflow/internal/runtime"
	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cropGraph() *domain.Graph {
	return domain.MustGraph("crop",
		domain.Question{
			ID: "crop", Kind: domain.KindSingleBranch, Required: true,
			Options:     opts("corn", "wheat"),
			NextIDByKey: map[string]string{"corn": "corn_area"},
			NextID:      "pests",
		},
		free("corn_area", "pests"),
		domain.Question{
			ID: "pests", Kind: domain.KindMultiQueue, Required: true,
			Options:             opts("insects", "weeds", "none"),
			SubflowStartIDByKey: map[string]string{"insects": "insects_detail", "weeds": "weeds_detail"},
			FallbackNextID:      "notes",
			NextID:              "notes",
		},
		free("insects_detail", ""),
		free("weeds_detail", ""),
		domain.Question{ID: "notes", Kind: domain.KindFree},
	)
}

func TestNavigate_FullTurnSequence(t *testing.T) {
	engine := runtime.NewEngine(cropGraph())
	st := domain.NewFlowState()

	current := engine.Start(st)
	assert.Equal(t, "crop", current)

	steps := []struct {
		answer string
		want   string
	}{
		{"corn", "corn_area"},
		{"12", "pests"},
		{"weeds,insects", "insects_detail"},
		{"aphids", "weeds_detail"},
	}
	for _, step := range steps {
		next, done, err := engine.Navigate(st, current, step.answer)
		require.NoError(t, err)
		require.False(t, done)
		assert.Equal(t, step.want, next)
		current = next
	}

	next, done, err := engine.Navigate(st, current, "ryegrass")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Empty(t, next)

	assert.Equal(t, []string{"crop", "corn_area", "pests", "insects_detail", "weeds_detail"}, st.Visited())
	assert.True(t, engine.Complete(st))
}

func TestNavigate_RejectsInvalidAnswer(t *testing.T) {
	engine := runtime.NewEngine(cropGraph())
	st := domain.NewFlowState()
	engine.Start(st)

	_, _, err := engine.Navigate(st, "crop", "rice")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidAnswer)

	var invalid *runtime.InvalidAnswerError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "crop", invalid.QuestionID)

	_, answered := st.Answer("crop")
	assert.False(t, answered, "state is untouched")
	assert.Equal(t, []string{"crop"}, st.Visited())
}

func TestNavigate_UnknownQuestion(t *testing.T) {
	engine := runtime.NewEngine(cropGraph())
	_, _, err := engine.Navigate(domain.NewFlowState(), "ghost", "x")
	assert.ErrorIs(t, err, domain.ErrUnknownQuestion)
}

func TestNavigate_OptionalQuestionAcceptsBlank(t *testing.T) {
	engine := runtime.NewEngine(cropGraph())
	st := domain.NewFlowState()

	_, done, err := engine.Navigate(st, "notes", "")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestResume(t *testing.T) {
	engine := runtime.NewEngine(cropGraph())
	st := domain.NewFlowState()
	assert.Equal(t, "crop", engine.Resume(st))

	current := engine.Start(st)
	current, _, err := engine.Navigate(st, current, "wheat")
	require.NoError(t, err)
	assert.Equal(t, "pests", current)

	assert.True(t, st.CanResume())
	assert.Equal(t, "pests", engine.Resume(st))
}

func TestPrevious(t *testing.T) {
	engine := runtime.NewEngine(cropGraph())
	st := domain.NewFlowState()
	current := engine.Start(st)
	current, _, _ = engine.Navigate(st, current, "corn")
	current, _, _ = engine.Navigate(st, current, "3")

	prev, ok := engine.Previous(st, current)
	require.True(t, ok)
	assert.Equal(t, "corn_area", prev)

	_, ok = engine.Previous(st, "crop")
	assert.False(t, ok)
}

func TestSummary(t *testing.T) {
	engine := runtime.NewEngine(cropGraph())
	st := domain.NewFlowState()
	current := engine.Start(st)
	current, _, _ = engine.Navigate(st, current, "wheat")
	st.MarkVisited("ghost")

	items := engine.Summary(st)
	require.Len(t, items, 2)

	assert.Equal(t, "crop", items[0].Question.ID)
	assert.Equal(t, "wheat", items[0].Answer)
	assert.True(t, items[0].Answered)
	assert.True(t, items[0].Valid)

	assert.Equal(t, current, items[1].Question.ID)
	assert.False(t, items[1].Answered)
	assert.False(t, items[1].Valid)
	assert.False(t, engine.Complete(st))
}

func TestScenario_BlankRequiredAnswerIsNotSatisfied(t *testing.T) {
	engine := runtime.NewEngine(cropGraph())
	st := domain.NewFlowState()
	st.MarkVisited("corn_area")
	st.SetAnswer("corn_area", "")

	assert.False(t, engine.Complete(st))
}
