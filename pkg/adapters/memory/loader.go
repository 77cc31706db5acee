package memory

import (
	"context"
	"fmt"

	"github.com/surveyflow/surveyflow/pkg/domain"
)

// Loader implements ports.GraphLoader over questions held in memory.
type Loader struct {
	startID   string
	questions []domain.Question
	labels    map[string]string
}

// NewLoader creates a Loader that builds a graph from the given questions.
func NewLoader(startID string, questions ...domain.Question) *Loader {
	return &Loader{
		startID:   startID,
		questions: append([]domain.Question(nil), questions...),
		labels:    map[string]string{},
	}
}

// NewFromGraph wraps an already built graph, e.g. one of the samples.
func NewFromGraph(g *domain.Graph, labels map[string]string) *Loader {
	l := NewLoader(g.StartID(), g.Questions()...)
	for k, v := range labels {
		l.labels[k] = v
	}
	return l
}

// WithLabels adds display text for title and option references.
func (l *Loader) WithLabels(labels map[string]string) *Loader {
	for k, v := range labels {
		l.labels[k] = v
	}
	return l
}

// LoadGraph builds the graph.
func (l *Loader) LoadGraph(ctx context.Context) (*domain.Graph, error) {
	g, err := domain.NewGraph(l.startID, l.questions...)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	return g, nil
}

// Labels returns a copy of the label catalog.
func (l *Loader) Labels() map[string]string {
	out := make(map[string]string, len(l.labels))
	for k, v := range l.labels {
		out[k] = v
	}
	return out
}
