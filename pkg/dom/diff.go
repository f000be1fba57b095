package dom

import "github.com/vango-dev/rdom/pkg/vdom"

// Trace is the record of patching one tree into another inside a fresh
// document.
type Trace struct {
	// Before is the HTML after mounting the old tree.
	Before string `json:"before"`

	// After is the HTML after patching to the new tree.
	After string `json:"after"`

	// Ops are the host operations the patch issued.
	Ops []Op `json:"ops"`

	// Stats are the renderer's counts for the patch pass. Queued component
	// updates that run afterwards are not included.
	Stats vdom.Stats `json:"stats"`
}

// Diff mounts old into a new document, then patches it to next and records
// the operations the patch issues. Both trees are consumed: the renderer
// binds their nodes to the document.
func Diff(old, next *vdom.VNode, opts ...vdom.RendererOption) Trace {
	doc := New()
	rec := NewRecorder(doc)
	r := vdom.NewRenderer(rec, opts...)

	if old != nil {
		r.Render(old, doc.Root())
		r.Runtime().Microtasks().Drain()
	}
	before := doc.HTML()
	rec.Reset()

	r.Render(next, doc.Root())
	stats := r.LastStats()
	r.Runtime().Microtasks().Drain()

	return Trace{
		Before: before,
		After:  doc.HTML(),
		Ops:    rec.Ops(),
		Stats:  stats,
	}
}
