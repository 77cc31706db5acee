package observability

import (
	"context"
	"log/slog"

	"github.com/surveyflow/surveyflow/pkg/domain"
)

// LoggingHooks logs every decision and enqueue at Info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecision: func(ctx context.Context, d *domain.Decision) {
			logger.InfoContext(ctx, "decision",
				"question_id", d.QuestionID,
				"kind", d.Kind,
				"next_id", d.NextID,
				"source", d.Source,
				"queue_depth", d.QueueDepth,
			)
		},
		OnEnqueue: func(ctx context.Context, e *domain.EnqueueEvent) {
			logger.InfoContext(ctx, "enqueue",
				"question_id", e.QuestionID,
				"targets", e.Targets,
				"queue_depth", e.QueueDepth,
			)
		},
	}
}
