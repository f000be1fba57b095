package vdom

// Host is the platform the renderer drives. The renderer never touches a
// display surface directly; every change goes through these operations.
//
// Handles must be comparable: the renderer keys its per-container state by
// the container handle.
type Host interface {
	// CreateElement creates a detached element.
	CreateElement(tag string) Handle

	// CreateText creates a detached text node.
	CreateText(text string) Handle

	// CreateComment creates a detached comment node.
	CreateComment(text string) Handle

	// SetElementText replaces all children of el with text.
	SetElementText(el Handle, text string)

	// SetText sets the value of a text or comment node.
	SetText(node Handle, text string)

	// Insert places node in parent before anchor, or last when anchor is nil.
	// A node that is already attached is moved.
	Insert(node, parent, anchor Handle)

	// Remove detaches node from its parent, if any.
	Remove(node Handle)

	// PatchProp applies one property change. prev is nil for new properties
	// and next is nil for removed ones.
	PatchProp(el Handle, key string, prev, next any)
}
