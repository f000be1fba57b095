package vdom

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/rdom/pkg/reactive"
	"github.com/vango-dev/rdom/pkg/scheduler"
)

// Default tracer name for the renderer.
const defaultTracerName = "github.com/vango-dev/rdom/pkg/vdom"

// Stats counts the work done by one render pass.
type Stats struct {
	Mounted   int `json:"mounted"`   // nodes created
	Unmounted int `json:"unmounted"` // nodes removed
	Patched   int `json:"patched"`   // nodes patched in place
	Moved     int `json:"moved"`     // nodes relocated by the keyed diff
}

// Hooks observes render passes. Implemented by the metrics package.
type Hooks interface {
	// Rendered is called after each top-level pass: a Render call or a
	// component update flushed from the job queue.
	Rendered(stats Stats, elapsed time.Duration)
}

type noopHooks struct{}

func (noopHooks) Rendered(Stats, time.Duration) {}

// Renderer reconciles virtual trees against a Host.
//
// A Renderer is not safe for concurrent use. It shares the single-threaded
// contract of the reactive runtime that drives its components.
type Renderer struct {
	host   Host
	logger *slog.Logger
	tracer trace.Tracer
	hooks  Hooks

	rt    *reactive.Runtime
	queue *scheduler.JobQueue

	// roots remembers the last tree rendered into each container.
	roots map[Handle]*VNode

	depth int
	stats Stats
	last  Stats
	start time.Time
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the renderer's logger.
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets the tracer used for render spans.
func WithTracer(tracer trace.Tracer) RendererOption {
	return func(r *Renderer) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithHooks installs render observers.
func WithHooks(h Hooks) RendererOption {
	return func(r *Renderer) {
		if h != nil {
			r.hooks = h
		}
	}
}

// WithRuntime sets the reactive runtime components are created in.
func WithRuntime(rt *reactive.Runtime) RendererOption {
	return func(r *Renderer) {
		r.rt = rt
	}
}

// WithJobQueue sets the queue component updates are scheduled on. It should
// share the runtime's microtask queue.
func WithJobQueue(q *scheduler.JobQueue) RendererOption {
	return func(r *Renderer) {
		r.queue = q
	}
}

// NewRenderer creates a renderer over host.
func NewRenderer(host Host, opts ...RendererOption) *Renderer {
	r := &Renderer{
		host:   host,
		logger: slog.Default().With("component", "vdom"),
		tracer: otel.Tracer(defaultTracerName),
		hooks:  noopHooks{},
		roots:  make(map[Handle]*VNode),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rt == nil {
		r.rt = reactive.New(reactive.WithLogger(r.logger))
	}
	if r.queue == nil {
		r.queue = scheduler.NewJobQueue(r.rt.Microtasks(), scheduler.WithLogger(r.logger))
	}
	return r
}

// Host returns the renderer's host.
func (r *Renderer) Host() Host {
	return r.host
}

// Runtime returns the reactive runtime components run in.
func (r *Renderer) Runtime() *reactive.Runtime {
	return r.rt
}

// Queue returns the job queue component updates are scheduled on.
func (r *Renderer) Queue() *scheduler.JobQueue {
	return r.queue
}

// LastStats returns the counts of the last completed pass.
func (r *Renderer) LastStats() Stats {
	return r.last
}

// Root returns the tree last rendered into container, or nil.
func (r *Renderer) Root(container Handle) *VNode {
	return r.roots[container]
}

// Render reconciles container with vnode. The first render mounts; later
// renders patch against the previous tree; a nil vnode unmounts everything.
func (r *Renderer) Render(vnode *VNode, container Handle) {
	r.RenderContext(context.Background(), vnode, container)
}

// RenderContext is Render with a parent context for tracing.
func (r *Renderer) RenderContext(ctx context.Context, vnode *VNode, container Handle) {
	_, span := r.tracer.Start(ctx, "vdom.Render")
	defer span.End()

	r.begin()
	prev := r.roots[container]
	switch {
	case vnode != nil:
		r.patch(prev, vnode, container, nil)
		r.roots[container] = vnode
	case prev != nil:
		r.unmount(prev)
		delete(r.roots, container)
	}
	stats := r.end()

	span.SetAttributes(
		attribute.Int("rdom.mounted", stats.Mounted),
		attribute.Int("rdom.unmounted", stats.Unmounted),
		attribute.Int("rdom.patched", stats.Patched),
		attribute.Int("rdom.moved", stats.Moved),
	)
}

// Patch reconciles old into next directly under container, inserting new
// nodes before anchor. It does not touch the per-container root.
func (r *Renderer) Patch(old, next *VNode, container, anchor Handle) {
	r.begin()
	defer r.end()
	if next == nil {
		if old != nil {
			r.unmount(old)
		}
		return
	}
	r.patch(old, next, container, anchor)
}

func (r *Renderer) begin() {
	if r.depth == 0 {
		r.stats = Stats{}
		r.start = time.Now()
	}
	r.depth++
}

func (r *Renderer) end() Stats {
	r.depth--
	stats := r.stats
	if r.depth == 0 {
		r.last = stats
		r.hooks.Rendered(stats, time.Since(r.start))
	}
	return stats
}
