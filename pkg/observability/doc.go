/*
Package observability turns engine lifecycle hooks into Prometheus metrics
and structured log lines.

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := m.Hooks().Merge(observability.LoggingHooks(logger))
*/
package observability
