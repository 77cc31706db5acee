package domain

import "fmt"

// Graph is an immutable collection of questions with a designated start.
// References between questions are not checked here; see internal/validator.
type Graph struct {
	startID   string
	questions map[string]Question
	order     []string
}

// NewGraph builds a graph from questions in definition order.
// It rejects empty ids and duplicate ids.
func NewGraph(startID string, questions ...Question) (*Graph, error) {
	if startID == "" {
		return nil, fmt.Errorf("start id: %w", ErrEmptyID)
	}

	g := &Graph{
		startID:   startID,
		questions: make(map[string]Question, len(questions)),
		order:     make([]string, 0, len(questions)),
	}
	for i, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question #%d: %w", i, ErrEmptyID)
		}
		if _, exists := g.questions[q.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateQuestion, q.ID)
		}
		g.questions[q.ID] = cloneQuestion(q)
		g.order = append(g.order, q.ID)
	}
	return g, nil
}

// MustGraph is like NewGraph but panics on error. Intended for static fixtures.
func MustGraph(startID string, questions ...Question) *Graph {
	g, err := NewGraph(startID, questions...)
	if err != nil {
		panic(err)
	}
	return g
}

// StartID returns the entry question id.
func (g *Graph) StartID() string {
	return g.startID
}

// Lookup returns the question with the given id.
func (g *Graph) Lookup(id string) (Question, bool) {
	q, ok := g.questions[id]
	if !ok {
		return Question{}, false
	}
	return cloneQuestion(q), true
}

// Has reports whether id exists in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.questions[id]
	return ok
}

// IDs returns question ids in definition order.
func (g *Graph) IDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Questions returns copies of all questions in definition order.
func (g *Graph) Questions() []Question {
	out := make([]Question, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, cloneQuestion(g.questions[id]))
	}
	return out
}

// Len returns the number of questions.
func (g *Graph) Len() int {
	return len(g.order)
}

// cloneQuestion copies the reference typed fields so callers cannot mutate the graph.
func cloneQuestion(q Question) Question {
	if q.Options != nil {
		q.Options = append([]Option(nil), q.Options...)
	}
	if q.Priority != nil {
		q.Priority = append([]string{}, q.Priority...)
	}
	q.NextIDByKey = cloneStringMap(q.NextIDByKey)
	q.SubflowStartIDByKey = cloneStringMap(q.SubflowStartIDByKey)
	return q
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
