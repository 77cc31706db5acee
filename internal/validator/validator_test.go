package validator

import (
	"errors"
	"testing"

	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/surveyflow/surveyflow/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGraph_Valid(t *testing.T) {
	b := dsl.New("start")
	b.YesNo("start", "").Yes("a").No("b")
	b.Free("a", "").Next("b")
	b.Free("b", "")

	assert.NoError(t, ValidateGraph(b.MustBuild()))
}

func TestValidateGraph_BrokenLink(t *testing.T) {
	g := domain.MustGraph("start",
		domain.Question{ID: "start", Kind: domain.KindFree, NextID: "ghost_node"},
	)

	err := ValidateGraph(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "references missing question 'ghost_node'")
}

func TestValidateGraph_MissingStart(t *testing.T) {
	g := domain.MustGraph("nowhere", domain.Question{ID: "a", Kind: domain.KindFree})

	err := ValidateGraph(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start question 'nowhere' not found")
}

func TestValidateGraph_Unreachable(t *testing.T) {
	g := domain.MustGraph("a",
		domain.Question{ID: "a", Kind: domain.KindFree},
		domain.Question{ID: "island", Kind: domain.KindFree},
	)

	err := ValidateGraph(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'island' is unreachable")
}

func TestValidateGraph_SubflowsAreReachable(t *testing.T) {
	b := dsl.New("m")
	b.MultiQueue("m", "").Options("x").Subflow("x", "sx").Fallback("end")
	b.Free("sx", "")
	b.Free("end", "")

	assert.NoError(t, ValidateGraph(b.MustBuild()))
}

func TestValidateGraph_ChoiceProblems(t *testing.T) {
	g := domain.MustGraph("yn",
		domain.Question{ID: "yn", Kind: domain.KindYesNo, YesKey: "ok", NoKey: "ok", NextID: "sb"},
		domain.Question{
			ID: "sb", Kind: domain.KindSingleBranch, NextID: "mq",
			Options:     []domain.Option{{Key: "a"}, {Key: "a"}},
			NextIDByKey: map[string]string{"z": "mq"},
		},
		domain.Question{
			ID: "mq", Kind: domain.KindMultiQueue,
			Options:             []domain.Option{{Key: "p,q"}, {Key: " "}},
			SubflowStartIDByKey: map[string]string{"r": "sb"},
			Priority:            []string{"s"},
		},
		domain.Question{ID: "single", Kind: domain.KindSingle},
	)

	err := ValidateGraph(g)
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{
		"question 'yn' uses the same key 'ok' for yes and no",
		"question 'sb' has duplicate option key 'a'",
		"question 'sb' branch key 'z' is not an option",
		"question 'mq' option key 'p,q' contains ','",
		"question 'mq' has an option with a blank key",
		"question 'mq' sub-flow key 'r' is not an option",
		"question 'mq' priority key 's' is not an option",
		"question 'single' has no options",
		"question 'single' is unreachable from 'yn'",
	}, verr.Problems)
	assert.Contains(t, err.Error(), "found 9 errors:")
}

func TestValidateGraph_UnknownKind(t *testing.T) {
	g := domain.MustGraph("a", domain.Question{ID: "a", Kind: "slider"})

	err := ValidateGraph(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind 'slider'")
}
