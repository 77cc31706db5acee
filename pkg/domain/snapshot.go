package domain

import (
	"encoding/json"
	"time"
)

// Snapshot is the serializable form of a FlowState.
type Snapshot struct {
	Answers map[string]string `json:"answers"`
	Visited []string          `json:"visited"`
	Queue   []string          `json:"queue"`
}

// UnmarshalJSON accepts null answers and treats them as blank.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Answers map[string]*string `json:"answers"`
		Visited []string           `json:"visited"`
		Queue   []string           `json:"queue"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Answers = make(map[string]string, len(raw.Answers))
	for k, v := range raw.Answers {
		if v == nil {
			s.Answers[k] = ""
			continue
		}
		s.Answers[k] = *v
	}
	s.Visited = raw.Visited
	s.Queue = raw.Queue
	return nil
}

// Snapshot captures the current state. The result shares nothing with s.
func (s *FlowState) Snapshot() Snapshot {
	return Snapshot{
		Answers: s.Answers(),
		Visited: s.Visited(),
		Queue:   s.Pending(),
	}
}

// RestoreFlowState rebuilds a FlowState from a snapshot, preserving the order
// of visited and queue exactly.
func RestoreFlowState(snap Snapshot) *FlowState {
	st := NewFlowState()
	for k, v := range snap.Answers {
		st.answers[k] = v
	}
	st.visited = append(st.visited, snap.Visited...)
	st.pending = append(st.pending, snap.Queue...)
	return st
}

// SessionStatus tells whether a session still has questions ahead.
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
)

// Session is the persisted record of one respondent's progress.
type Session struct {
	ID string `json:"id"`
	// CurrentID is the question being shown. Empty once the flow has ended.
	CurrentID string        `json:"current_id,omitempty"`
	Status    SessionStatus `json:"status"`
	State     Snapshot      `json:"state"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewSession creates an active session positioned at startID with empty state.
func NewSession(id, startID string) *Session {
	return &Session{
		ID:        id,
		CurrentID: startID,
		Status:    StatusActive,
		State:     NewFlowState().Snapshot(),
		UpdatedAt: time.Now().UTC(),
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.State = RestoreFlowState(s.State).Snapshot()
	return &out
}
