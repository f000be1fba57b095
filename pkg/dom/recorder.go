package dom

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/rdom/pkg/vdom"
)

// OpKind names a host operation.
type OpKind string

const (
	OpCreateElement  OpKind = "create-element"
	OpCreateText     OpKind = "create-text"
	OpCreateComment  OpKind = "create-comment"
	OpSetElementText OpKind = "set-element-text"
	OpSetText        OpKind = "set-text"
	OpInsert         OpKind = "insert"
	OpMove           OpKind = "move"
	OpRemove         OpKind = "remove"
	OpPatchProp      OpKind = "patch-prop"
)

// Op is one recorded host operation. Node, Parent and Anchor are node IDs;
// zero means none.
type Op struct {
	Kind   OpKind `json:"kind"`
	Node   int    `json:"node"`
	Label  string `json:"label,omitempty"`
	Parent int    `json:"parent,omitempty"`
	Anchor int    `json:"anchor,omitempty"`
	Key    string `json:"key,omitempty"`
	Text   string `json:"text,omitempty"`
	Value  any    `json:"value,omitempty"`
}

// String formats the op for logs and golden files.
func (o Op) String() string {
	node := "#" + strconv.Itoa(o.Node)
	if o.Label != "" {
		node += "(" + o.Label + ")"
	}
	switch o.Kind {
	case OpCreateElement, OpCreateText, OpCreateComment:
		return fmt.Sprintf("%s %s", o.Kind, node)
	case OpSetElementText, OpSetText:
		return fmt.Sprintf("%s %s %q", o.Kind, node, o.Text)
	case OpInsert, OpMove:
		if o.Anchor == 0 {
			return fmt.Sprintf("%s %s into #%d", o.Kind, node, o.Parent)
		}
		return fmt.Sprintf("%s %s into #%d before #%d", o.Kind, node, o.Parent, o.Anchor)
	case OpPatchProp:
		if o.Value == nil {
			return fmt.Sprintf("%s %s %s removed", o.Kind, node, o.Key)
		}
		return fmt.Sprintf("%s %s %s=%s", o.Kind, node, o.Key, propLabel(o.Value))
	default:
		return fmt.Sprintf("%s %s", o.Kind, node)
	}
}

func propLabel(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return vdom.PropToString(v)
}

// Recorder wraps a Host and logs every operation passing through it. An
// insert of a node that is already attached is logged as a move.
type Recorder struct {
	host vdom.Host

	ops      []Op
	ids      map[vdom.Handle]int
	labels   map[int]string
	attached map[int]bool
	next     int

	// OnOp, when set, is called with each op after it is applied.
	OnOp func(Op)
}

var _ vdom.Host = (*Recorder)(nil)

// NewRecorder wraps host.
func NewRecorder(host vdom.Host) *Recorder {
	return &Recorder{
		host:     host,
		ids:      make(map[vdom.Handle]int),
		labels:   make(map[int]string),
		attached: make(map[int]bool),
	}
}

// Ops returns a copy of the recorded operations.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Strings returns the recorded operations formatted with Op.String.
func (r *Recorder) Strings() []string {
	out := make([]string, len(r.ops))
	for i, op := range r.ops {
		out[i] = op.String()
	}
	return out
}

// Count returns how many operations of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset clears the log. Node identities are kept.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// Label returns the label recorded for a node handle.
func (r *Recorder) Label(h vdom.Handle) string {
	return r.labels[r.id(h)]
}

func (r *Recorder) id(h vdom.Handle) int {
	if h == nil {
		return 0
	}
	if n, ok := h.(*Node); ok {
		return n.ID()
	}
	id, ok := r.ids[h]
	if !ok {
		r.next++
		id = r.next
		r.ids[h] = id
	}
	return id
}

func (r *Recorder) record(op Op) {
	if op.Label == "" {
		op.Label = r.labels[op.Node]
	}
	r.ops = append(r.ops, op)
	if r.OnOp != nil {
		r.OnOp(op)
	}
}

// CreateElement implements vdom.Host.
func (r *Recorder) CreateElement(tag string) vdom.Handle {
	h := r.host.CreateElement(tag)
	id := r.id(h)
	r.labels[id] = tag
	r.record(Op{Kind: OpCreateElement, Node: id})
	return h
}

// CreateText implements vdom.Host.
func (r *Recorder) CreateText(text string) vdom.Handle {
	h := r.host.CreateText(text)
	id := r.id(h)
	r.labels[id] = strconv.Quote(text)
	r.record(Op{Kind: OpCreateText, Node: id, Text: text})
	return h
}

// CreateComment implements vdom.Host.
func (r *Recorder) CreateComment(text string) vdom.Handle {
	h := r.host.CreateComment(text)
	id := r.id(h)
	r.labels[id] = "<!--" + text + "-->"
	r.record(Op{Kind: OpCreateComment, Node: id, Text: text})
	return h
}

// SetElementText implements vdom.Host.
func (r *Recorder) SetElementText(el vdom.Handle, text string) {
	r.host.SetElementText(el, text)
	r.record(Op{Kind: OpSetElementText, Node: r.id(el), Text: text})
}

// SetText implements vdom.Host.
func (r *Recorder) SetText(node vdom.Handle, text string) {
	r.host.SetText(node, text)
	r.record(Op{Kind: OpSetText, Node: r.id(node), Text: text})
}

// Insert implements vdom.Host.
func (r *Recorder) Insert(node, parent, anchor vdom.Handle) {
	r.host.Insert(node, parent, anchor)
	id := r.id(node)
	kind := OpInsert
	if r.attached[id] {
		kind = OpMove
	}
	r.attached[id] = true
	r.record(Op{Kind: kind, Node: id, Parent: r.id(parent), Anchor: r.id(anchor)})
}

// Remove implements vdom.Host.
func (r *Recorder) Remove(node vdom.Handle) {
	r.host.Remove(node)
	id := r.id(node)
	delete(r.attached, id)
	r.record(Op{Kind: OpRemove, Node: id})
}

// PatchProp implements vdom.Host.
func (r *Recorder) PatchProp(el vdom.Handle, key string, prev, next any) {
	r.host.PatchProp(el, key, prev, next)
	value := next
	switch next.(type) {
	case func(), func(any), func(*Event), func(...any):
		value = "<handler>"
	}
	r.record(Op{Kind: OpPatchProp, Node: r.id(el), Key: key, Value: value})
}
