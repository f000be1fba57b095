package server

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/vango-dev/rdom/internal/errors"
	"github.com/vango-dev/rdom/pkg/dom"
	"github.com/vango-dev/rdom/pkg/metrics"
	"github.com/vango-dev/rdom/pkg/reactive"
	"github.com/vango-dev/rdom/pkg/scheduler"
	"github.com/vango-dev/rdom/pkg/vdom"
)

// Message is one client request on a session.
type Message struct {
	// Op is add, remove, move, toggle or click.
	Op string `json:"op"`

	// Text is the new item's text for add.
	Text string `json:"text,omitempty"`

	// Index selects the item for remove and toggle.
	Index int `json:"index,omitempty"`

	// From and To are the positions for move.
	From int `json:"from,omitempty"`
	To   int `json:"to,omitempty"`

	// Target is the data-id of the element a click is dispatched on.
	Target string `json:"target,omitempty"`
}

// Frame is one server response on a session.
type Frame struct {
	Seq     uint64     `json:"seq"`
	Session string     `json:"session,omitempty"`
	Ops     []dom.Op   `json:"ops"`
	HTML    string     `json:"html"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the JSON form of an RdomError inside a Frame.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Session is the per-connection state: a runtime, a todo list model and the
// document the list is rendered into. A Session is not safe for concurrent
// use; the connection's read loop is its only caller.
type Session struct {
	ID string

	rt       *reactive.Runtime
	doc      *dom.Document
	recorder *dom.Recorder
	renderer *vdom.Renderer
	todos    *reactive.ArrayProxy
	limiter  *rate.Limiter

	nextID uint64
	seq    uint64

	tracer  trace.Tracer
	metrics *metrics.Collector
	logger  *slog.Logger

	closeOnce sync.Once
}

// newSession builds a session and mounts its todo list.
func newSession(cfg *ServerConfig, m *metrics.Collector, tracer trace.Tracer, logger *slog.Logger) *Session {
	id := uuid.NewString()
	logger = logger.With("session", id)

	rt := reactive.New(reactive.WithLogger(logger), reactive.WithHooks(m))
	queue := scheduler.NewJobQueue(rt.Microtasks(),
		scheduler.WithRecursionLimit(cfg.RecursionLimit),
		scheduler.WithLogger(logger),
		scheduler.WithHooks(m),
	)
	doc := dom.New(dom.WithLogger(logger))
	rec := dom.NewRecorder(doc)

	s := &Session{
		ID:       id,
		rt:       rt,
		doc:      doc,
		recorder: rec,
		renderer: vdom.NewRenderer(m.InstrumentHost(rec),
			vdom.WithRuntime(rt),
			vdom.WithJobQueue(queue),
			vdom.WithHooks(m),
			vdom.WithLogger(logger),
			vdom.WithTracer(tracer),
		),
		todos:   rt.ReactiveArray(reactive.NewArray()),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		tracer:  tracer,
		metrics: m,
		logger:  logger,
	}
	return s
}

// Mount renders the todo list and returns the initial frame.
func (s *Session) Mount(ctx context.Context) Frame {
	s.renderer.RenderContext(ctx, vdom.Comp(todoList(s.rt, s.todos, s.toggle)), s.doc.Root())
	s.rt.Microtasks().Drain()
	return s.frame()
}

// Handle applies msg and returns the frame describing its effect. Rejected
// messages produce a frame carrying the error and no ops.
func (s *Session) Handle(ctx context.Context, msg Message) Frame {
	_, span := s.tracer.Start(ctx, "server.Message",
		trace.WithAttributes(
			attribute.String("rdom.session", s.ID),
			attribute.String("rdom.op", msg.Op),
		))
	defer span.End()

	if !s.limiter.Allow() {
		s.metrics.Message(msg.Op, "limited")
		return s.errorFrame(errors.New(errors.CodeServerRateLimit))
	}

	s.recorder.Reset()
	if err := s.apply(msg); err != nil {
		span.RecordError(err)
		s.metrics.Message(msg.Op, "error")
		return s.errorFrame(err)
	}
	s.rt.Microtasks().Drain()
	s.metrics.Message(msg.Op, "ok")

	f := s.frame()
	span.SetAttributes(attribute.Int("rdom.ops", len(f.Ops)))
	return f
}

func (s *Session) apply(msg Message) error {
	n := s.todos.Raw().Len()
	switch msg.Op {
	case "add":
		if msg.Text == "" {
			return errors.New(errors.CodeServerMessage).WithDetail("add needs text")
		}
		s.nextID++
		s.todos.Push(reactive.NewObject().
			Put("id", strconv.FormatUint(s.nextID, 10)).
			Put("text", msg.Text).
			Put("done", false))

	case "remove":
		if err := checkIndex("index", msg.Index, n); err != nil {
			return err
		}
		s.todos.Splice(msg.Index, 1)

	case "move":
		if err := checkIndex("from", msg.From, n); err != nil {
			return err
		}
		if err := checkIndex("to", msg.To, n); err != nil {
			return err
		}
		if msg.From == msg.To {
			return nil
		}
		item := s.todos.Splice(msg.From, 1)
		s.todos.Splice(msg.To, 0, item...)

	case "toggle":
		if err := checkIndex("index", msg.Index, n); err != nil {
			return err
		}
		item := s.todos.Object(msg.Index)
		item.Set("done", item.Get("done") != true)

	case "click":
		el := s.doc.Root().ByAttr("data-id", msg.Target)
		if el == nil {
			return errors.New(errors.CodeServerMessage).WithDetailf("no element with data-id %q", msg.Target)
		}
		el.Dispatch("click", nil)

	default:
		return errors.New(errors.CodeServerMessage).WithDetailf("unknown op %q", msg.Op)
	}
	return nil
}

func (s *Session) toggle(id string) {
	for i := 0; i < s.todos.Len(); i++ {
		item := s.todos.Object(i)
		if item != nil && item.Get("id") == id {
			item.Set("done", item.Get("done") != true)
			return
		}
	}
}

func checkIndex(name string, i, n int) error {
	if i < 0 || i >= n {
		return errors.New(errors.CodeServerMessage).WithDetailf("%s %d out of range [0,%d)", name, i, n)
	}
	return nil
}

func (s *Session) frame() Frame {
	s.seq++
	return Frame{
		Seq:     s.seq,
		Session: s.ID,
		Ops:     s.recorder.Ops(),
		HTML:    s.doc.HTML(),
	}
}

func (s *Session) errorFrame(err error) Frame {
	e := errors.FromError(err, errors.CodeServerMessage)
	s.seq++
	return Frame{
		Seq:     s.seq,
		Session: s.ID,
		Ops:     []dom.Op{},
		HTML:    s.doc.HTML(),
		Error:   &ErrorBody{Code: e.Code, Message: e.Message, Detail: e.Detail},
	}
}

// Close unmounts the todo list, stopping its render effect.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.renderer.Render(nil, s.doc.Root())
		s.logger.Debug("session closed")
	})
}
