package tests

import (
	"context"
	"testing"

	"github.com/surveyflow/surveyflow/pkg/ports"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphLoader.
// wantIDs lists every question id the loader is expected to produce, in any order.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, wantStart string, wantIDs []string) {
	t.Helper()

	t.Run("LoadGraph", func(t *testing.T) {
		g, err := loader.LoadGraph(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}

		if g.StartID() != wantStart {
			t.Errorf("start mismatch. got %q, want %q", g.StartID(), wantStart)
		}

		if g.Len() != len(wantIDs) {
			t.Errorf("expected %d questions, got %d (%v)", len(wantIDs), g.Len(), g.IDs())
		}

		for _, id := range wantIDs {
			q, ok := g.Lookup(id)
			if !ok {
				t.Errorf("expected question %s not found", id)
				continue
			}
			if !q.Kind.Valid() {
				t.Errorf("question %s has unsupported kind %q", id, q.Kind)
			}
		}
	})

	t.Run("LoadGraph_Stable", func(t *testing.T) {
		a, err := loader.LoadGraph(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		b, err := loader.LoadGraph(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		if len(a.IDs()) != len(b.IDs()) {
			t.Fatalf("two loads disagree: %v vs %v", a.IDs(), b.IDs())
		}
		for i, id := range a.IDs() {
			if b.IDs()[i] != id {
				t.Errorf("question order differs at %d: %s vs %s", i, id, b.IDs()[i])
			}
		}
	})
}
