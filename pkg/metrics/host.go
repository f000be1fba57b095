package metrics

import "github.com/vango-dev/rdom/pkg/vdom"

// InstrumentHost wraps host so every operation is counted in
// rdom_host_ops_total.
func (c *Collector) InstrumentHost(host vdom.Host) vdom.Host {
	return &instrumentedHost{host: host, ops: c}
}

type instrumentedHost struct {
	host vdom.Host
	ops  *Collector
}

func (h *instrumentedHost) count(op string) {
	h.ops.hostOps.WithLabelValues(op).Inc()
}

func (h *instrumentedHost) CreateElement(tag string) vdom.Handle {
	h.count("create_element")
	return h.host.CreateElement(tag)
}

func (h *instrumentedHost) CreateText(text string) vdom.Handle {
	h.count("create_text")
	return h.host.CreateText(text)
}

func (h *instrumentedHost) CreateComment(text string) vdom.Handle {
	h.count("create_comment")
	return h.host.CreateComment(text)
}

func (h *instrumentedHost) SetElementText(el vdom.Handle, text string) {
	h.count("set_element_text")
	h.host.SetElementText(el, text)
}

func (h *instrumentedHost) SetText(node vdom.Handle, text string) {
	h.count("set_text")
	h.host.SetText(node, text)
}

func (h *instrumentedHost) Insert(node, parent, anchor vdom.Handle) {
	h.count("insert")
	h.host.Insert(node, parent, anchor)
}

func (h *instrumentedHost) Remove(node vdom.Handle) {
	h.count("remove")
	h.host.Remove(node)
}

func (h *instrumentedHost) PatchProp(el vdom.Handle, key string, prev, next any) {
	h.count("patch_prop")
	h.host.PatchProp(el, key, prev, next)
}
