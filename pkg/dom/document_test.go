package dom

import (
	"testing"
)

func TestInsertAppendsAndAnchors(t *testing.T) {
	d := New()
	ul := d.CreateElement("ul")
	a := d.CreateElement("li")
	b := d.CreateElement("li")
	c := d.CreateElement("li")
	d.SetElementText(a, "a")
	d.SetElementText(b, "b")
	d.SetElementText(c, "c")

	d.Insert(ul, d.Root(), nil)
	d.Insert(a, ul, nil)
	d.Insert(c, ul, nil)
	d.Insert(b, ul, c)

	if got, want := d.HTML(), "<ul><li>a</li><li>b</li><li>c</li></ul>"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}

	// Re-inserting an attached node moves it.
	d.Insert(a, ul, nil)
	if got, want := d.HTML(), "<ul><li>b</li><li>c</li><li>a</li></ul>"; got != want {
		t.Errorf("after move HTML() = %q, want %q", got, want)
	}

	d.Remove(c)
	if got, want := d.HTML(), "<ul><li>b</li><li>a</li></ul>"; got != want {
		t.Errorf("after remove HTML() = %q, want %q", got, want)
	}
	if c.(*Node).Parent() != nil {
		t.Error("removed node still has a parent")
	}
}

func TestSetElementTextReplacesChildren(t *testing.T) {
	d := New()
	p := d.CreateElement("p")
	d.Insert(d.CreateElement("span"), p, nil)
	d.SetElementText(p, "<hi>")

	if got, want := p.(*Node).OuterHTML(), "<p>&lt;hi&gt;</p>"; got != want {
		t.Errorf("OuterHTML() = %q, want %q", got, want)
	}

	d.SetElementText(p, "")
	if n := len(p.(*Node).Children()); n != 0 {
		t.Errorf("expected no children, got %d", n)
	}
}

func TestPatchPropAttributes(t *testing.T) {
	d := New()
	in := d.CreateElement("input")
	d.PatchProp(in, "className", nil, "field")
	d.PatchProp(in, "disabled", nil, true)
	d.PatchProp(in, "checked", nil, false)
	d.PatchProp(in, "value", nil, `a"b`)

	if got, want := in.(*Node).OuterHTML(), `<input class="field" disabled value="a&quot;b">`; got != want {
		t.Errorf("OuterHTML() = %q, want %q", got, want)
	}

	d.PatchProp(in, "value", `a"b`, nil)
	if _, ok := in.(*Node).Attr("value"); ok {
		t.Error("nil next should remove the attribute")
	}
}

func TestHTMLEscaping(t *testing.T) {
	d := New()
	div := d.CreateElement("div")
	d.PatchProp(div, "title", nil, "a\tb\nc\r<'&'>")
	d.SetElementText(div, `<b>"x" & 'y'</b>`+"\n")

	want := `<div title="a&#9;b&#10;c&#13;&lt;&#39;&amp;&#39;&gt;">` +
		`&lt;b&gt;&quot;x&quot; &amp; &#39;y&#39;&lt;/b&gt;` + "\n</div>"
	if got := div.(*Node).OuterHTML(); got != want {
		t.Errorf("OuterHTML() = %q, want %q", got, want)
	}
}

func TestCommentAndText(t *testing.T) {
	d := New()
	text := d.CreateText("x")
	comment := d.CreateComment("note")
	d.Insert(text, d.Root(), nil)
	d.Insert(comment, d.Root(), nil)
	d.SetText(text, "y & z")

	if got, want := d.HTML(), "y &amp; z<!--note-->"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
	if got := d.Root().TextContent(); got != "y & z" {
		t.Errorf("TextContent() = %q", got)
	}
}

func TestDispatchBubbles(t *testing.T) {
	d := New()
	outer := d.CreateElement("div")
	button := d.CreateElement("button")
	d.Insert(button, outer, nil)

	var order []string
	d.PatchProp(outer, "onClick", nil, func() { order = append(order, "outer") })
	d.PatchProp(button, "onClick", nil, func(e any) {
		order = append(order, "button")
		if e.(*Event).Target != button.(*Node) {
			t.Error("event target is not the button")
		}
	})

	if n := button.(*Node).Dispatch("click", nil); n != 2 {
		t.Errorf("Dispatch() invoked %d handlers, want 2", n)
	}
	if len(order) != 2 || order[0] != "button" || order[1] != "outer" {
		t.Errorf("order = %v, want [button outer]", order)
	}
}

func TestDispatchStopPropagation(t *testing.T) {
	d := New()
	outer := d.CreateElement("div")
	inner := d.CreateElement("span")
	d.Insert(inner, outer, nil)

	outerCalled := false
	d.PatchProp(outer, "onClick", nil, func() { outerCalled = true })
	d.PatchProp(inner, "onClick", nil, func(e *Event) { e.StopPropagation() })

	inner.(*Node).Dispatch("click", nil)
	if outerCalled {
		t.Error("event propagated past StopPropagation")
	}
}

func TestListenerBoundDuringDispatchIsSkipped(t *testing.T) {
	d := New()
	outer := d.CreateElement("div")
	inner := d.CreateElement("span")
	d.Insert(inner, outer, nil)

	outerCalled := false
	d.PatchProp(inner, "onClick", nil, func() {
		d.PatchProp(outer, "onClick", nil, func() { outerCalled = true })
	})

	inner.(*Node).Dispatch("click", nil)
	if outerCalled {
		t.Error("listener attached during dispatch saw the same event")
	}

	inner.(*Node).Dispatch("click", nil)
	if !outerCalled {
		t.Error("listener should see later events")
	}
}

func TestListenerRebindKeepsInvoker(t *testing.T) {
	d := New()
	btn := d.CreateElement("button")

	calls := ""
	d.PatchProp(btn, "onClick", nil, func() { calls += "a" })
	d.PatchProp(btn, "onClick", nil, func() { calls += "b" })
	btn.(*Node).Dispatch("click", nil)

	if calls != "b" {
		t.Errorf("calls = %q, want b", calls)
	}

	d.PatchProp(btn, "onClick", nil, nil)
	if btn.(*Node).HasListener("click") {
		t.Error("listener not removed")
	}
	if got, want := btn.(*Node).OuterHTML(), "<button></button>"; got != want {
		t.Errorf("OuterHTML() = %q, want %q", got, want)
	}
}

func TestByAttr(t *testing.T) {
	d := New()
	div := d.CreateElement("div")
	btn := d.CreateElement("button")
	d.PatchProp(btn, "id", nil, "go")
	d.Insert(btn, div, nil)
	d.Insert(div, d.Root(), nil)

	if got := d.Root().ByAttr("id", "go"); got != btn.(*Node) {
		t.Errorf("ByAttr() = %v", got)
	}
	if d.Root().ByAttr("id", "missing") != nil {
		t.Error("ByAttr should return nil for a missing value")
	}
}
