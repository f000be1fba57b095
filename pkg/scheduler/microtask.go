package scheduler

import "sync"

// Microtasks is a FIFO of deferred continuations drained explicitly by the
// owner of the current turn.
//
// Queue is safe to call from any goroutine. Drain must only be called by the
// goroutine that owns the reactive state the tasks touch.
type Microtasks struct {
	mu       sync.Mutex
	tasks    []func()
	draining bool
}

// NewMicrotasks creates an empty microtask queue.
func NewMicrotasks() *Microtasks {
	return &Microtasks{}
}

// Queue appends fn to the queue. It runs on the next Drain, or later in the
// current Drain if one is in progress.
func (m *Microtasks) Queue(fn func()) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.tasks = append(m.tasks, fn)
	m.mu.Unlock()
}

// Pending returns the number of queued tasks.
func (m *Microtasks) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Drain runs queued tasks until the queue is empty and returns how many ran.
// A nested call from inside a running task returns 0 immediately; the outer
// drain picks up anything queued.
func (m *Microtasks) Drain() int {
	m.mu.Lock()
	if m.draining {
		m.mu.Unlock()
		return 0
	}
	m.draining = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.draining = false
		m.mu.Unlock()
	}()

	ran := 0
	for {
		m.mu.Lock()
		if len(m.tasks) == 0 {
			m.mu.Unlock()
			return ran
		}
		task := m.tasks[0]
		m.tasks[0] = nil
		m.tasks = m.tasks[1:]
		m.mu.Unlock()

		task()
		ran++
	}
}

// Turn runs fn synchronously and then drains the queue, modeling one
// macrotask followed by its microtask checkpoint.
func (m *Microtasks) Turn(fn func()) int {
	if fn != nil {
		fn()
	}
	return m.Drain()
}
