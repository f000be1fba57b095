// Package dom is an in-memory document that implements vdom.Host.
//
// It keeps a real node tree with parent links, element attributes and event
// listeners, and serializes to HTML. The server streams its HTML to clients
// and the CLI prints it; tests use it to assert on the final shape of a
// reconciled tree.
//
//	doc := dom.New()
//	r := vdom.NewRenderer(doc)
//	r.Render(vdom.Ul(vdom.Li(vdom.Key(1), "a")), doc.Root())
//	doc.Root().InnerHTML() // <ul><li>a</li></ul>
package dom
