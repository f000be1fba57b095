// Package vdom provides the virtual tree and the reconciler for rdom.
//
// A tree of *VNode values describes what a host should display. The Renderer
// mounts a tree into a container through the Host interface and, on later
// renders, diffs the new tree against the one it mounted before, emitting only
// the host operations needed to bring the host in line.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// comments, fragments and components. Props holds attributes and event
// handlers. Handle is the host's opaque node reference.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Ul(Class("todos"),
//	    Li(Key(1), "write"),
//	    Li(Key(2), "test"),
//	)
//
// # Reconciliation
//
// Sibling lists are reconciled with a keyed quick diff: matching prefixes and
// suffixes are patched in place, and the reordered middle section is resolved
// with a longest increasing subsequence so that only nodes outside it move.
// Nodes without keys share the empty key and are therefore matched by
// position. Duplicate keys among siblings are not supported; the outcome is
// unspecified.
//
// # Components
//
// A ComponentDef bundles reactive state, props, a setup function and a render
// function. Each mounted component owns a render effect whose re-runs are
// batched on the renderer's job queue.
package vdom
