// Package server provides the rdom inspector: an HTTP server that exposes
// the reconciler over JSON and a live websocket demo.
//
// # Routes
//
//   - GET /healthz: liveness probe
//   - GET /metrics: Prometheus metrics for every runtime the server hosts
//   - POST /diff: patch one tree document into another and return the trace
//   - GET /ws: websocket session driving a reactive todo list
//
// # Sessions
//
// Each websocket connection creates a Session that owns its own reactive
// Runtime, job queue and in-memory document. The session's todo list is a
// reactive array rendered by a component; client messages mutate the array,
// the session drains the microtask queue so the queued re-render runs, and
// the recorded host operations are sent back as a Frame:
//
//	-> {"op":"add","text":"write docs"}
//	<- {"seq":2,"ops":[{"kind":"create-element","node":9,"label":"li"}, ...],"html":"..."}
//
// Messages are handled on the connection's read goroutine, so a session's
// runtime is only ever touched by one goroutine. Inbound messages are rate
// limited per connection.
package server
