package scheduler

import (
	"log/slog"
	"time"

	"github.com/vango-dev/rdom/internal/errors"
)

// DefaultRecursionLimit bounds how many times one job may run in a single flush.
const DefaultRecursionLimit = 100

// Job is a unit of deferred work. Jobs are deduplicated by equality, so
// implementations should be pointers or small comparable structs.
type Job interface {
	Run()
}

// Hooks observes queue activity. Implemented by the metrics package.
type Hooks interface {
	// Flushed is called after every flush with the number of jobs run.
	Flushed(jobs int, elapsed time.Duration)
}

// JobQueue is a deduplicating set of pending jobs flushed once per microtask
// turn. See the package documentation for the flush boundary.
type JobQueue struct {
	micro *Microtasks

	pending []Job
	members map[Job]struct{}

	// scheduled is true from the first Add after idle until the flush ends.
	scheduled bool
	flushing  bool

	recursionLimit int
	logger         *slog.Logger
	hooks          Hooks
}

// QueueOption configures a JobQueue.
type QueueOption func(*JobQueue)

// WithRecursionLimit sets the per-flush run cap for a single job.
// Values <= 0 restore DefaultRecursionLimit.
func WithRecursionLimit(n int) QueueOption {
	return func(q *JobQueue) {
		if n <= 0 {
			n = DefaultRecursionLimit
		}
		q.recursionLimit = n
	}
}

// WithLogger sets the logger used for recursion warnings.
func WithLogger(logger *slog.Logger) QueueOption {
	return func(q *JobQueue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithHooks installs flush observers.
func WithHooks(h Hooks) QueueOption {
	return func(q *JobQueue) {
		q.hooks = h
	}
}

// NewJobQueue creates a queue that schedules its flushes on micro.
func NewJobQueue(micro *Microtasks, opts ...QueueOption) *JobQueue {
	if micro == nil {
		micro = NewMicrotasks()
	}
	q := &JobQueue{
		micro:          micro,
		members:        make(map[Job]struct{}),
		recursionLimit: DefaultRecursionLimit,
		logger:         slog.Default().With("component", "scheduler"),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Microtasks returns the microtask queue flushes are scheduled on.
func (q *JobQueue) Microtasks() *Microtasks {
	return q.micro
}

// Add inserts job unless it is already pending. The first insertion after an
// idle period schedules a flush on the microtask queue.
func (q *JobQueue) Add(job Job) {
	if job == nil {
		return
	}
	if _, ok := q.members[job]; ok {
		return
	}
	q.members[job] = struct{}{}
	q.pending = append(q.pending, job)

	if !q.scheduled {
		q.scheduled = true
		q.micro.Queue(q.flush)
	}
}

// Len returns the number of jobs waiting to run.
func (q *JobQueue) Len() int {
	return len(q.members)
}

// Has reports whether job is pending.
func (q *JobQueue) Has(job Job) bool {
	_, ok := q.members[job]
	return ok
}

// Flushing reports whether a flush is currently executing.
func (q *JobQueue) Flushing() bool {
	return q.flushing
}

func (q *JobQueue) flush() {
	start := time.Now()
	q.flushing = true

	runs := make(map[Job]int)
	ran := 0
	defer func() {
		q.pending = q.pending[:0]
		clear(q.members)
		q.flushing = false
		q.scheduled = false
		if q.hooks != nil {
			q.hooks.Flushed(ran, time.Since(start))
		}
	}()

	// pending may grow while iterating; the index walk picks up appended jobs.
	for i := 0; i < len(q.pending); i++ {
		job := q.pending[i]
		q.pending[i] = nil
		delete(q.members, job)

		runs[job]++
		if runs[job] > q.recursionLimit {
			q.logger.Warn("scheduler: job exceeded recursion limit, dropped",
				"code", errors.CodeRecursionLimit,
				"limit", q.recursionLimit)
			continue
		}

		job.Run()
		ran++
	}
}
