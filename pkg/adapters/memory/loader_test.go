package memory_test

import (
	"context"
	"testing"

	"github.com/surveyflow/surveyflow/pkg/adapters/memory"
	"github.com/surveyflow/surveyflow/pkg/domain"
	contract "github.com/surveyflow/surveyflow/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	loader := memory.NewLoader("start",
		domain.Question{ID: "start", Kind: domain.KindYesNo, NextIDIfYes: "end", NextIDIfNo: "end"},
		domain.Question{ID: "end", Kind: domain.KindFree},
	)

	contract.GraphLoaderContractTest(t, loader, "start", []string{"start", "end"})
}

func TestInMemoryLoader_DuplicateID(t *testing.T) {
	loader := memory.NewLoader("a",
		domain.Question{ID: "a", Kind: domain.KindFree},
		domain.Question{ID: "a", Kind: domain.KindFree},
	)

	_, err := loader.LoadGraph(context.Background())
	assert.ErrorIs(t, err, domain.ErrDuplicateQuestion)
}

func TestInMemoryLoader_Labels(t *testing.T) {
	g := domain.MustGraph("a", domain.Question{ID: "a", Kind: domain.KindFree, Title: "q.a"})
	loader := memory.NewFromGraph(g, map[string]string{"q.a": "First"}).
		WithLabels(map[string]string{"q.b": "Second"})

	labels := loader.Labels()
	assert.Equal(t, "First", labels["q.a"])
	assert.Equal(t, "Second", labels["q.b"])

	labels["q.a"] = "mutated"
	assert.Equal(t, "First", loader.Labels()["q.a"])

	loaded, err := loader.LoadGraph(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, loaded.IDs())
}
