package domain

import (
	"context"
	"time"
)

// DecisionSource records which rule produced a navigation decision.
type DecisionSource string

const (
	SourceBranch     DecisionSource = "branch"      // yes/no or per-key branch
	SourceFallbackID DecisionSource = "fallback_id" // multi-select with nothing selected
	SourceQueue      DecisionSource = "queue"       // popped from the pending queue
	SourceNextID     DecisionSource = "next_id"     // static successor
	SourceEnd        DecisionSource = "end"         // nothing left
	SourceUnresolved DecisionSource = "unresolved"  // the question id is not in the graph
)

// Decision describes one navigation step.
type Decision struct {
	Timestamp  time.Time      `json:"timestamp"`
	QuestionID string         `json:"question_id"`
	Kind       Kind           `json:"kind,omitempty"`
	NextID     string         `json:"next_id,omitempty"`
	Source     DecisionSource `json:"source"`
	QueueDepth int            `json:"queue_depth"`
}

// End reports whether the decision terminates the flow.
func (d Decision) End() bool {
	return d.NextID == ""
}

// EnqueueEvent is emitted when a multi-select question schedules sub-flows.
type EnqueueEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	QuestionID string    `json:"question_id"`
	Targets    []string  `json:"targets"`
	QueueDepth int       `json:"queue_depth"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnDecision func(context.Context, *Decision)
	OnEnqueue  func(context.Context, *EnqueueEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnDecision: func(ctx context.Context, d *Decision) {
			if h.OnDecision != nil {
				h.OnDecision(ctx, d)
			}
			if other.OnDecision != nil {
				other.OnDecision(ctx, d)
			}
		},
		OnEnqueue: func(ctx context.Context, e *EnqueueEvent) {
			if h.OnEnqueue != nil {
				h.OnEnqueue(ctx, e)
			}
			if other.OnEnqueue != nil {
				other.OnEnqueue(ctx, e)
			}
		},
	}
}
