package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/surveyflow/surveyflow/pkg/domain"
)

// Metrics holds the collectors fed by engine hooks.
type Metrics struct {
	Decisions  *prometheus.CounterVec
	Enqueued   *prometheus.CounterVec
	Unresolved prometheus.Counter
	QueueDepth prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "surveyflow_decisions_total",
				Help: "Navigation decisions by question kind and deciding rule",
			},
			[]string{"kind", "source"},
		),
		Enqueued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "surveyflow_subflows_enqueued_total",
				Help: "Sub-flow entry points queued by multi-select questions",
			},
			[]string{"question_id"},
		),
		Unresolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "surveyflow_unresolved_total",
			Help: "Decisions requested for question ids missing from the graph",
		}),
		QueueDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "surveyflow_queue_depth",
			Help:    "Pending sub-flow queue length after each decision",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Decisions, m.Enqueued, m.Unresolved, m.QueueDepth} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecision: func(_ context.Context, d *domain.Decision) {
			if d.Source == domain.SourceUnresolved {
				m.Unresolved.Inc()
			}
			m.Decisions.WithLabelValues(string(d.Kind), string(d.Source)).Inc()
			m.QueueDepth.Observe(float64(d.QueueDepth))
		},
		OnEnqueue: func(_ context.Context, e *domain.EnqueueEvent) {
			m.Enqueued.WithLabelValues(e.QuestionID).Add(float64(len(e.Targets)))
		},
	}
}
