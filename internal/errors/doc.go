// Package errors provides structured, coded errors for rdom.
//
// The reactive core never fails: readonly writes, tracking outside an effect
// and reconciler lookup misses are all handled silently or with a logged
// warning. The codes below give those warnings a stable identifier, and the
// outer layers (configuration, tree decoding, CLI, server) return *RdomError
// values built from the same registry.
//
// # Error Categories
//
//   - reactive: readonly writes, runaway scheduling
//   - tree: malformed tree documents
//   - config: configuration loading and validation
//   - server: inspector HTTP and websocket failures
//   - cli: command line usage errors
//
// # Usage
//
//	err := errors.New(errors.CodeConfigInvalid).
//	    WithDetail("scheduler.recursionLimit must be positive").
//	    Wrap(cause)
//
//	fmt.Println(err.Format())
package errors
