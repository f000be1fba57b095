// Package metrics exposes Prometheus instrumentation for rdom.
//
// A Collector implements the observer hooks of the reactive runtime, the job
// queue and the renderer, so wiring it in is a matter of passing it to each:
//
//	reg := prometheus.NewRegistry()
//	c := metrics.New(metrics.WithRegistry(reg))
//
//	rt := reactive.New(reactive.WithHooks(c))
//	q := scheduler.NewJobQueue(rt.Microtasks(), scheduler.WithHooks(c))
//	r := vdom.NewRenderer(c.InstrumentHost(dom.New()),
//	    vdom.WithRuntime(rt), vdom.WithJobQueue(q), vdom.WithHooks(c))
//
// Metrics collected (namespace "rdom" by default):
//   - rdom_effect_runs_total: Counter of effect body executions
//   - rdom_triggers_total: Counter of mutations by op type
//   - rdom_triggered_effects_total: Counter of effects notified by mutations
//   - rdom_queue_flushes_total: Counter of job queue flushes
//   - rdom_queue_jobs_total: Counter of jobs run by flushes
//   - rdom_queue_flush_duration_seconds: Histogram of flush duration
//   - rdom_renders_total: Counter of reconciliation passes
//   - rdom_render_duration_seconds: Histogram of pass duration
//   - rdom_vnodes_total: Counter of nodes by change (mounted, unmounted, patched, moved)
//   - rdom_host_ops_total: Counter of host operations by kind
//   - rdom_active_connections: Gauge of open websocket connections
//   - rdom_messages_total: Counter of websocket messages by op and status
package metrics
