// Package scheduler provides the deferred execution layer used by the
// reactive runtime and the renderer.
//
// There is no ambient event loop in Go, so a "microtask turn" is modeled
// explicitly by Microtasks: continuations are queued with Queue and run by
// whoever owns the turn, by calling Drain (or Turn, which runs a function and
// then drains). Tasks queued while a drain is running are executed by that
// same drain, mirroring a microtask checkpoint.
//
// JobQueue is a deduplicating, insertion-ordered set of jobs flushed once per
// microtask turn:
//
//	micro := scheduler.NewMicrotasks()
//	queue := scheduler.NewJobQueue(micro)
//
//	queue.Add(job)
//	queue.Add(job) // already pending, no-op
//	micro.Drain()  // job runs exactly once
//
// # Flush Boundary
//
// A flush walks the pending list in insertion order. A job is removed from the
// pending set immediately before it runs. Jobs added during a flush are
// appended and executed by the same flush; adding a job that is still pending
// is a no-op. A job that re-adds itself runs again in the same flush, up to
// the queue's recursion limit, after which it is dropped with a warning.
package scheduler
