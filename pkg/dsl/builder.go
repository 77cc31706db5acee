package dsl

import (
	"fmt"

	"github.com/surveyflow/surveyflow/pkg/adapters/memory"
	"github.com/surveyflow/surveyflow/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	startID   string
	order     []string
	questions map[string]*QuestionBuilder
	labels    map[string]string
}

// New creates a new graph builder whose flow begins at startID.
func New(startID string) *Builder {
	return &Builder{
		startID:   startID,
		questions: make(map[string]*QuestionBuilder),
		labels:    make(map[string]string),
	}
}

// Add creates a question of the given kind.
// If the question already exists, it returns the existing builder with its kind updated.
func (b *Builder) Add(id string, kind domain.Kind, title string) *QuestionBuilder {
	if qb, ok := b.questions[id]; ok {
		qb.q.Kind = kind
		if title != "" {
			qb.q.Title = title
		}
		return qb
	}
	if title == "" {
		title = id
	}
	qb := &QuestionBuilder{
		q: domain.Question{
			ID:       id,
			Kind:     kind,
			Title:    title,
			Required: true,
		},
		builder: b,
	}
	if kind == domain.KindFree {
		qb.q.SingleLine = true
		qb.q.InputType = domain.InputText
	}
	b.questions[id] = qb
	b.order = append(b.order, id)
	return qb
}

// Free adds an open text question.
func (b *Builder) Free(id, title string) *QuestionBuilder {
	return b.Add(id, domain.KindFree, title)
}

// Single adds a one-of-N question without branching.
func (b *Builder) Single(id, title string) *QuestionBuilder {
	return b.Add(id, domain.KindSingle, title)
}

// YesNo adds a yes/no question.
func (b *Builder) YesNo(id, title string) *QuestionBuilder {
	return b.Add(id, domain.KindYesNo, title)
}

// SingleBranch adds a one-of-N question with a successor per key.
func (b *Builder) SingleBranch(id, title string) *QuestionBuilder {
	return b.Add(id, domain.KindSingleBranch, title)
}

// MultiQueue adds a multi-select question whose keys enqueue sub-flows.
func (b *Builder) MultiQueue(id, title string) *QuestionBuilder {
	return b.Add(id, domain.KindMultiQueue, title)
}

// Voice adds a voice recording question.
func (b *Builder) Voice(id, title string) *QuestionBuilder {
	return b.Add(id, domain.KindVoice, title)
}

// Video adds a video recording question.
func (b *Builder) Video(id, title string) *QuestionBuilder {
	return b.Add(id, domain.KindVideo, title)
}

// Camera adds a photo capture question.
func (b *Builder) Camera(id, title string) *QuestionBuilder {
	return b.Add(id, domain.KindCamera, title)
}

// Label registers display text for a reference.
func (b *Builder) Label(ref, text string) *Builder {
	b.labels[ref] = text
	return b
}

// Labels returns a copy of the registered display text.
func (b *Builder) Labels() map[string]string {
	out := make(map[string]string, len(b.labels))
	for k, v := range b.labels {
		out[k] = v
	}
	return out
}

// Build creates the graph. Questions keep the order they were added in.
func (b *Builder) Build() (*domain.Graph, error) {
	questions := make([]domain.Question, 0, len(b.order))
	for _, id := range b.order {
		questions = append(questions, b.questions[id].q)
	}
	g, err := domain.NewGraph(b.startID, questions...)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	return g, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *domain.Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

// Loader compiles the graph into a memory loader carrying the labels.
func (b *Builder) Loader() (*memory.Loader, error) {
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return memory.NewFromGraph(g, b.labels), nil
}
