package vdom

// patch reconciles n1 (nil to mount) into n2 under container. anchor is only
// used when n2 is mounted.
func (r *Renderer) patch(n1, n2 *VNode, container, anchor Handle) {
	if n1 == n2 {
		return
	}

	// Different types: mount the replacement where the old node sits, then
	// drop the old node.
	if n1 != nil && !sameType(n1, n2) {
		r.mount(n2, container, r.firstHandle(n1))
		r.unmount(n1)
		return
	}

	if n1 == nil {
		r.mount(n2, container, anchor)
		return
	}

	r.stats.Patched++
	switch n2.Kind {
	case KindElement:
		r.patchElement(n1, n2)
	case KindText, KindComment:
		n2.El = n1.El
		if n1.Text != n2.Text {
			r.host.SetText(n2.El, n2.Text)
		}
	case KindFragment:
		n2.El, n2.Anchor = n1.El, n1.Anchor
		r.patchChildren(n1, n2, container, n2.Anchor)
	case KindComponent:
		r.patchComponent(n1, n2)
	}
}

func (r *Renderer) mount(v *VNode, container, anchor Handle) {
	r.stats.Mounted++
	switch v.Kind {
	case KindElement:
		el := r.host.CreateElement(v.Tag)
		v.El = el
		switch v.childShape() {
		case shapeList:
			for _, child := range v.Children {
				r.mount(child, el, nil)
			}
		case shapeText:
			r.host.SetElementText(el, v.Text)
		}
		for _, key := range sortedKeys(v.Props) {
			r.host.PatchProp(el, key, nil, v.Props[key])
		}
		r.host.Insert(el, container, anchor)

	case KindText:
		v.El = r.host.CreateText(v.Text)
		r.host.Insert(v.El, container, anchor)

	case KindComment:
		v.El = r.host.CreateComment(v.Text)
		r.host.Insert(v.El, container, anchor)

	case KindFragment:
		// Empty text anchors delimit the fragment so it can be moved and
		// can receive appended children.
		v.El = r.host.CreateText("")
		v.Anchor = r.host.CreateText("")
		r.host.Insert(v.El, container, anchor)
		r.host.Insert(v.Anchor, container, anchor)
		for _, child := range v.Children {
			r.mount(child, container, v.Anchor)
		}

	case KindComponent:
		r.mountComponent(v, container, anchor)
	}
}

func (r *Renderer) patchElement(n1, n2 *VNode) {
	el := n1.El
	n2.El = el

	for _, key := range sortedKeys(n2.Props) {
		next := n2.Props[key]
		prev, ok := n1.Props[key]
		if !ok || !propsEqual(prev, next) {
			r.host.PatchProp(el, key, prev, next)
		}
	}
	for _, key := range sortedKeys(n1.Props) {
		if _, ok := n2.Props[key]; !ok {
			r.host.PatchProp(el, key, n1.Props[key], nil)
		}
	}

	r.patchChildren(n1, n2, el, nil)
}

// patchChildren handles every transition between the three child shapes.
// listEnd is the handle new trailing children are inserted before: nil for
// an element, the end anchor for a fragment.
func (r *Renderer) patchChildren(n1, n2 *VNode, container, listEnd Handle) {
	prev, next := n1.childShape(), n2.childShape()

	switch next {
	case shapeText:
		if prev == shapeList {
			r.unmountAll(n1.Children)
		}
		if prev != shapeText || n1.Text != n2.Text {
			r.host.SetElementText(container, n2.Text)
		}

	case shapeList:
		if prev == shapeList {
			r.patchKeyedChildren(n1.Children, n2.Children, container, listEnd)
			return
		}
		if prev == shapeText {
			r.host.SetElementText(container, "")
		}
		for _, child := range n2.Children {
			r.mount(child, container, listEnd)
		}

	default:
		switch prev {
		case shapeList:
			r.unmountAll(n1.Children)
		case shapeText:
			r.host.SetElementText(container, "")
		}
	}
}

// patchKeyedChildren is the quick diff over one sibling list.
func (r *Renderer) patchKeyedChildren(c1, c2 []*VNode, container, listEnd Handle) {
	// anchorAt returns the handle a node placed at c2[i] is inserted before.
	anchorAt := func(i int) Handle {
		if i+1 < len(c2) {
			return r.firstHandle(c2[i+1])
		}
		return listEnd
	}

	// 1. Common prefix.
	j := 0
	oldEnd, newEnd := len(c1)-1, len(c2)-1
	for j <= oldEnd && j <= newEnd && c1[j].Key == c2[j].Key {
		r.patch(c1[j], c2[j], container, nil)
		j++
	}

	// 2. Common suffix.
	for j <= oldEnd && j <= newEnd && c1[oldEnd].Key == c2[newEnd].Key {
		r.patch(c1[oldEnd], c2[newEnd], container, nil)
		oldEnd--
		newEnd--
	}

	switch {
	case j > oldEnd && j <= newEnd:
		// 3. Only new nodes remain.
		anchor := anchorAt(newEnd)
		for i := j; i <= newEnd; i++ {
			r.patch(nil, c2[i], container, anchor)
		}
		return

	case j > newEnd && j <= oldEnd:
		// 4. Only old nodes remain.
		r.unmountAll(c1[j : oldEnd+1])
		return

	case j > oldEnd && j > newEnd:
		return
	}

	// 5. Reordered overlap. source[i] is the old index that supplies new
	// slot newStart+i, or -1.
	oldStart, newStart := j, j
	count := newEnd - newStart + 1
	source := make([]int, count)
	for i := range source {
		source[i] = -1
	}

	keyIndex := make(map[string]int, count)
	for i := newStart; i <= newEnd; i++ {
		keyIndex[c2[i].Key] = i
	}

	moved := false
	pos := 0
	patched := 0
	for i := oldStart; i <= oldEnd; i++ {
		old := c1[i]
		if patched >= count {
			r.unmount(old)
			continue
		}
		k, ok := keyIndex[old.Key]
		if !ok {
			r.unmount(old)
			continue
		}
		r.patch(old, c2[k], container, nil)
		patched++
		source[k-newStart] = i
		if k < pos {
			moved = true
		} else {
			pos = k
		}
	}

	// 6. Walk the new slots right to left so every anchor is already placed.
	if moved {
		seq := LIS(source)
		s := len(seq) - 1
		for i := count - 1; i >= 0; i-- {
			idx := newStart + i
			switch {
			case source[i] == -1:
				r.patch(nil, c2[idx], container, anchorAt(idx))
			case s < 0 || i != seq[s]:
				r.move(c2[idx], container, anchorAt(idx))
				r.stats.Moved++
			default:
				s--
			}
		}
		return
	}

	for i := count - 1; i >= 0; i-- {
		if source[i] == -1 {
			idx := newStart + i
			r.patch(nil, c2[idx], container, anchorAt(idx))
		}
	}
}

// firstHandle returns the first host node v occupies.
func (r *Renderer) firstHandle(v *VNode) Handle {
	if v.Kind == KindComponent {
		if inst := v.component; inst != nil && inst.subTree != nil {
			return r.firstHandle(inst.subTree)
		}
		return nil
	}
	return v.El
}

// move reinserts every host node v occupies before anchor.
func (r *Renderer) move(v *VNode, container, anchor Handle) {
	switch v.Kind {
	case KindComponent:
		if inst := v.component; inst != nil && inst.subTree != nil {
			r.move(inst.subTree, container, anchor)
		}
	case KindFragment:
		r.host.Insert(v.El, container, anchor)
		for _, child := range v.Children {
			r.move(child, container, anchor)
		}
		r.host.Insert(v.Anchor, container, anchor)
	default:
		r.host.Insert(v.El, container, anchor)
	}
}

func (r *Renderer) unmountAll(nodes []*VNode) {
	for _, v := range nodes {
		r.unmount(v)
	}
}

func (r *Renderer) unmount(v *VNode) {
	r.stats.Unmounted++
	switch v.Kind {
	case KindFragment:
		r.unmountAll(v.Children)
		r.host.Remove(v.El)
		r.host.Remove(v.Anchor)
	case KindComponent:
		r.unmountComponent(v)
	case KindElement:
		// Descendants leave with the element; only components need
		// releasing.
		for _, child := range v.Children {
			r.release(child)
		}
		r.host.Remove(v.El)
	default:
		r.host.Remove(v.El)
	}
}

// release stops the components under v without issuing host operations.
func (r *Renderer) release(v *VNode) {
	switch v.Kind {
	case KindComponent:
		if inst := v.component; inst != nil {
			inst.stop(false)
		}
	case KindElement, KindFragment:
		for _, child := range v.Children {
			r.release(child)
		}
	}
}
