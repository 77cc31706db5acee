package domain

// FlowState is the mutable state of one survey session: the answers given,
// the questions shown, and the sub-flow entry points still waiting.
//
// A FlowState belongs to exactly one session. It is not safe for concurrent
// use; the owner serializes calls.
type FlowState struct {
	answers map[string]string
	visited []string
	pending []string
}

// NewFlowState creates an empty state.
func NewFlowState() *FlowState {
	return &FlowState{
		answers: make(map[string]string),
		visited: []string{},
		pending: []string{},
	}
}

// SetAnswer stores value for qid, replacing any previous answer.
// No validation happens here.
func (s *FlowState) SetAnswer(qid, value string) {
	s.answers[qid] = value
}

// Answer returns the stored answer and whether one exists.
func (s *FlowState) Answer(qid string) (string, bool) {
	v, ok := s.answers[qid]
	return v, ok
}

// Answers returns a copy of all answers.
func (s *FlowState) Answers() map[string]string {
	out := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// MarkVisited appends qid to the visited log unless it is already the last entry.
// Earlier occurrences are kept; use DistinctVisited for a deduplicated view.
func (s *FlowState) MarkVisited(qid string) {
	if n := len(s.visited); n > 0 && s.visited[n-1] == qid {
		return
	}
	s.visited = append(s.visited, qid)
}

// Visited returns a copy of the visited log.
func (s *FlowState) Visited() []string {
	return append([]string{}, s.visited...)
}

// DistinctVisited returns visited ids without repeats, in first-seen order.
func (s *FlowState) DistinctVisited() []string {
	seen := make(map[string]bool, len(s.visited))
	out := make([]string, 0, len(s.visited))
	for _, id := range s.visited {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// LastVisited returns the most recent visited id.
func (s *FlowState) LastVisited() (string, bool) {
	if len(s.visited) == 0 {
		return "", false
	}
	return s.visited[len(s.visited)-1], true
}

// Previous returns the id visited right before the latest occurrence of qid.
func (s *FlowState) Previous(qid string) (string, bool) {
	for i := len(s.visited) - 1; i > 0; i-- {
		if s.visited[i] == qid {
			return s.visited[i-1], true
		}
	}
	return "", false
}

// Enqueue appends ids to the pending queue in order. Blank ids are dropped.
func (s *FlowState) Enqueue(ids ...string) {
	for _, id := range ids {
		if IsBlank(id) {
			continue
		}
		s.pending = append(s.pending, id)
	}
}

// Dequeue pops the front of the pending queue.
func (s *FlowState) Dequeue() (string, bool) {
	if len(s.pending) == 0 {
		return "", false
	}
	next := s.pending[0]
	s.pending = s.pending[1:]
	return next, true
}

// Pending returns a copy of the pending queue, front first.
func (s *FlowState) Pending() []string {
	return append([]string{}, s.pending...)
}

// Reset clears answers, visited and the pending queue in one step.
func (s *FlowState) Reset() {
	s.answers = make(map[string]string)
	s.visited = []string{}
	s.pending = []string{}
}

// CanResume reports whether any non-blank answer has been given.
func (s *FlowState) CanResume() bool {
	for _, v := range s.answers {
		if !IsBlank(v) {
			return true
		}
	}
	return false
}

// FirstUnanswered returns the first visited question whose answer is absent
// or blank, or the graph start when every visited question has an answer.
func (s *FlowState) FirstUnanswered(g *Graph) string {
	for _, id := range s.visited {
		if v, ok := s.answers[id]; !ok || IsBlank(v) {
			return id
		}
	}
	return g.StartID()
}

// AllVisitedSatisfied reports whether every visited question exists in g and
// accepts its stored answer. Unknown ids count as unsatisfied.
func (s *FlowState) AllVisitedSatisfied(g *Graph) bool {
	for _, id := range s.visited {
		q, ok := g.Lookup(id)
		if !ok {
			return false
		}
		if !q.IsValid(s.answers[id]) {
			return false
		}
	}
	return true
}
