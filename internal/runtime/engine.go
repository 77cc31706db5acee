package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/surveyflow/surveyflow/pkg/domain"
)

// Engine decides where a survey goes next. It holds an immutable graph and
// no per-session data, so one Engine serves any number of sessions.
type Engine struct {
	graph  *domain.Graph
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers decision and enqueue observers.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the timestamp source used in emitted events.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine for graph.
func NewEngine(graph *domain.Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:  graph,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph the engine navigates.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// DecideNext computes the question that follows qid given the answers in
// state. It returns ok == false when the flow has ended.
//
// The only mutation is on the pending queue: multi-select answers append
// their sub-flow entry points, and any fallback pops the front.
// Answers that match nothing are treated as undecided, never as errors.
func (e *Engine) DecideNext(state *domain.FlowState, qid string) (string, bool) {
	ctx := context.Background()

	q, ok := e.graph.Lookup(qid)
	if !ok {
		e.logger.Warn("question not found, ending flow", "question", qid)
		e.emitDecision(ctx, state, qid, "", "", domain.SourceUnresolved)
		return "", false
	}

	ans, _ := state.Answer(qid)

	switch q.Kind {
	case domain.KindYesNo:
		switch ans {
		case q.Yes():
			if q.NextIDIfYes != "" {
				return e.decided(ctx, state, q, q.NextIDIfYes, domain.SourceBranch)
			}
		case q.No():
			if q.NextIDIfNo != "" {
				return e.decided(ctx, state, q, q.NextIDIfNo, domain.SourceBranch)
			}
		}

	case domain.KindSingleBranch:
		if next := q.NextIDByKey[ans]; next != "" {
			return e.decided(ctx, state, q, next, domain.SourceBranch)
		}

	case domain.KindMultiQueue:
		selected := domain.ParseSelection(ans)
		if len(selected) == 0 {
			if q.FallbackNextID != "" {
				return e.decided(ctx, state, q, q.FallbackNextID, domain.SourceFallbackID)
			}
			break
		}

		targets := subflowTargets(q, selected)
		if len(targets) > 0 {
			state.Enqueue(targets...)
			e.emitEnqueue(ctx, state, q.ID, targets)
		}
		if next, ok := state.Dequeue(); ok {
			return e.decided(ctx, state, q, next, domain.SourceQueue)
		}
	}

	return e.fallback(ctx, state, q)
}

// fallback pops the pending queue, then follows NextID, then ends the flow.
func (e *Engine) fallback(ctx context.Context, state *domain.FlowState, q domain.Question) (string, bool) {
	if next, ok := state.Dequeue(); ok {
		return e.decided(ctx, state, q, next, domain.SourceQueue)
	}
	if q.NextID != "" {
		return e.decided(ctx, state, q, q.NextID, domain.SourceNextID)
	}
	e.emitDecision(ctx, state, q.ID, q.Kind, "", domain.SourceEnd)
	return "", false
}

func (e *Engine) decided(ctx context.Context, state *domain.FlowState, q domain.Question, next string, source domain.DecisionSource) (string, bool) {
	e.emitDecision(ctx, state, q.ID, q.Kind, next, source)
	return next, true
}

// subflowTargets maps the selected keys to sub-flow entry points in
// evaluation order. Keys without a mapping contribute nothing.
func subflowTargets(q domain.Question, selected []string) []string {
	chosen := make(map[string]bool, len(selected))
	for _, key := range selected {
		chosen[key] = true
	}

	var targets []string
	for _, key := range q.EvaluationOrder() {
		if !chosen[key] {
			continue
		}
		if start := q.SubflowStartIDByKey[key]; start != "" {
			targets = append(targets, start)
		}
	}
	return targets
}

func (e *Engine) emitDecision(ctx context.Context, state *domain.FlowState, qid string, kind domain.Kind, next string, source domain.DecisionSource) {
	depth := len(state.Pending())
	e.logger.Debug("decision",
		"question", qid,
		"kind", kind,
		"next", next,
		"source", source,
		"queue_depth", depth,
	)
	if e.hooks.OnDecision == nil {
		return
	}
	e.hooks.OnDecision(ctx, &domain.Decision{
		Timestamp:  e.now(),
		QuestionID: qid,
		Kind:       kind,
		NextID:     next,
		Source:     source,
		QueueDepth: depth,
	})
}

func (e *Engine) emitEnqueue(ctx context.Context, state *domain.FlowState, qid string, targets []string) {
	depth := len(state.Pending())
	e.logger.Debug("subflows enqueued", "question", qid, "targets", targets, "queue_depth", depth)
	if e.hooks.OnEnqueue == nil {
		return
	}
	e.hooks.OnEnqueue(ctx, &domain.EnqueueEvent{
		Timestamp:  e.now(),
		QuestionID: qid,
		Targets:    append([]string{}, targets...),
		QueueDepth: depth,
	})
}
