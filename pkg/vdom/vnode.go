package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindComment                // Comment node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Handle is the host's reference to a realized node. The reconciler never
// inspects it.
type Handle any

// VNode is the virtual tree node.
type VNode struct {
	Kind     VKind         // Node type
	Tag      string        // Element tag name (e.g., "div")
	Key      string        // Reconciliation key
	Props    Props         // Attributes and event handlers
	Children []*VNode      // Child nodes
	Text     string        // Payload of text and comment nodes; text content of childless elements
	Comp     *ComponentDef // For KindComponent

	// El is the realized host node. For fragments it is the start anchor.
	El Handle

	// Anchor is a fragment's end anchor.
	Anchor Handle

	component *Instance
}

// Props holds attributes and event handlers.
type Props map[string]any

// Component returns the mounted instance of a component node, or nil.
func (v *VNode) Component() *Instance {
	if v == nil {
		return nil
	}
	return v.component
}

// sameType reports whether two nodes can be patched into each other.
func sameType(a, b *VNode) bool {
	return a.Kind == b.Kind && a.Tag == b.Tag && a.Key == b.Key && a.Comp == b.Comp
}

// childShape classifies a node's children for patchChildren.
type childShape uint8

const (
	shapeNone childShape = iota
	shapeText
	shapeList
)

func (v *VNode) childShape() childShape {
	switch {
	case len(v.Children) > 0:
		return shapeList
	case v.Kind == KindElement && v.Text != "":
		return shapeText
	default:
		return shapeNone
	}
}

// IsEventHandler returns true if the key names an event handler ("onClick").
func IsEventHandler(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// EventName converts a handler key to its event name: "onClick" -> "click".
func EventName(key string) string {
	if !IsEventHandler(key) {
		return ""
	}
	return strings.ToLower(key[2:])
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onClick", "onInput", etc.
	Handler any    // Function to call
}
