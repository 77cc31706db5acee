package ports

import (
	"context"

	"github.com/surveyflow/surveyflow/pkg/domain"
)

// GraphLoader defines how a survey graph is obtained.
// This allows the storage layer (Loam, files, memory) to be decoupled from the engine.
type GraphLoader interface {
	// LoadGraph builds the complete, immutable graph.
	LoadGraph(ctx context.Context) (*domain.Graph, error)
}

// LabelSource is implemented by loaders that also carry display text.
// Keys are the opaque references used in titles and option labels.
type LabelSource interface {
	Labels() map[string]string
}

// ResolveLabel returns labels[ref], or ref itself when there is no entry.
func ResolveLabel(labels map[string]string, ref string) string {
	if text, ok := labels[ref]; ok && text != "" {
		return text
	}
	return ref
}

// Watchable defines an interface for loaders that can notify about backend changes.
// Each value sent is the id of the changed document; a reload of the whole graph is expected.
type Watchable interface {
	Watch(ctx context.Context) (<-chan string, error)
}
