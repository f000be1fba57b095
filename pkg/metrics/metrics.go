package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/rdom/pkg/reactive"
	"github.com/vango-dev/rdom/pkg/scheduler"
	"github.com/vango-dev/rdom/pkg/vdom"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "rdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush and render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "rdom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the Prometheus metrics for one registry.
type Collector struct {
	effectRuns       prometheus.Counter
	triggers         *prometheus.CounterVec
	triggeredEffects prometheus.Counter

	queueFlushes  prometheus.Counter
	queueJobs     prometheus.Counter
	flushDuration prometheus.Histogram

	renders        prometheus.Counter
	renderDuration prometheus.Histogram
	vnodes         *prometheus.CounterVec
	hostOps        *prometheus.CounterVec

	activeConnections prometheus.Gauge
	messages          *prometheus.CounterVec
}

var (
	_ reactive.Hooks  = (*Collector)(nil)
	_ scheduler.Hooks = (*Collector)(nil)
	_ vdom.Hooks      = (*Collector)(nil)
)

// New creates a Collector and registers its metrics. Registering two
// collectors with the same namespace on one registry panics.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}
	histogram := func(name, help string) prometheus.Histogram {
		return factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		})
	}

	return &Collector{
		effectRuns:       counter("effect_runs_total", "Total number of effect body executions"),
		triggers:         counterVec("triggers_total", "Total number of reactive mutations by op type", "op"),
		triggeredEffects: counter("triggered_effects_total", "Total number of effects notified by mutations"),

		queueFlushes:  counter("queue_flushes_total", "Total number of job queue flushes"),
		queueJobs:     counter("queue_jobs_total", "Total number of jobs run by queue flushes"),
		flushDuration: histogram("queue_flush_duration_seconds", "Job queue flush duration in seconds"),

		renders:        counter("renders_total", "Total number of reconciliation passes"),
		renderDuration: histogram("render_duration_seconds", "Reconciliation pass duration in seconds"),
		vnodes:         counterVec("vnodes_total", "Total number of virtual nodes by change", "change"),
		hostOps:        counterVec("host_ops_total", "Total number of host operations by kind", "op"),

		activeConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_connections",
			Help:        "Number of open websocket connections",
			ConstLabels: config.ConstLabels,
		}),
		messages: counterVec("messages_total", "Total number of websocket messages by op and status", "op", "status"),
	}
}

// EffectRun implements reactive.Hooks.
func (c *Collector) EffectRun() {
	c.effectRuns.Inc()
}

// Triggered implements reactive.Hooks.
func (c *Collector) Triggered(op reactive.OpType, n int) {
	c.triggers.WithLabelValues(op.String()).Inc()
	c.triggeredEffects.Add(float64(n))
}

// Flushed implements scheduler.Hooks.
func (c *Collector) Flushed(jobs int, elapsed time.Duration) {
	c.queueFlushes.Inc()
	c.queueJobs.Add(float64(jobs))
	c.flushDuration.Observe(elapsed.Seconds())
}

// Rendered implements vdom.Hooks.
func (c *Collector) Rendered(stats vdom.Stats, elapsed time.Duration) {
	c.renders.Inc()
	c.renderDuration.Observe(elapsed.Seconds())
	c.vnodes.WithLabelValues("mounted").Add(float64(stats.Mounted))
	c.vnodes.WithLabelValues("unmounted").Add(float64(stats.Unmounted))
	c.vnodes.WithLabelValues("patched").Add(float64(stats.Patched))
	c.vnodes.WithLabelValues("moved").Add(float64(stats.Moved))
}

// ConnectionOpened records a new websocket connection.
func (c *Collector) ConnectionOpened() {
	c.activeConnections.Inc()
}

// ConnectionClosed records a closed websocket connection.
func (c *Collector) ConnectionClosed() {
	c.activeConnections.Dec()
}

// Message records one inbound websocket message. status is "ok", "error"
// or "limited".
func (c *Collector) Message(op, status string) {
	c.messages.WithLabelValues(op, status).Inc()
}
