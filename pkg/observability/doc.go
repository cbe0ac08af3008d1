/*
Package observability wires the wizard lifecycle hooks to structured logs and
Prometheus metrics.

	m := observability.NewMetrics(prometheus.NewRegistry())
	p, _ := wayfarer.New(wayfarer.WithHooks(observability.Hooks(logger, m)))

Either argument may be nil; hooks then only log or only count.
*/
package observability
