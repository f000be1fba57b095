package reactive

import (
	"sort"
	"sync"
)

// OpType classifies a mutation relative to the target's current shape.
type OpType uint8

const (
	OpSet    OpType = iota // existing key replaced
	OpAdd                  // new key, or array index >= length
	OpDelete               // key removed
)

// String returns the string representation of the OpType.
func (op OpType) String() string {
	switch op {
	case OpSet:
		return "SET"
	case OpAdd:
		return "ADD"
	case OpDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

type lengthKeyType struct{}
type iterateKeyType struct{}

// Pseudo keys. Field keys are strings and array index keys are ints.
var (
	lengthKey  any = lengthKeyType{}
	iterateKey any = iterateKeyType{}
)

// dep is the set of effects subscribed to one (target, key) pair.
type dep struct {
	members map[*Effect]struct{}
}

func newDep() *dep {
	return &dep{members: make(map[*Effect]struct{})}
}

type depsMap map[any]*dep

// store maps target identity -> key -> subscribed effects. Targets are keyed
// by weak pointer; a GC cleanup removes a target's map once it is collected.
// The mutex serializes those cleanups, which run on a runtime goroutine,
// against the owning goroutine.
type store struct {
	mu      sync.Mutex
	targets map[any]depsMap
}

func newStore() *store {
	return &store{targets: make(map[any]depsMap)}
}

func (s *store) add(t target, key any, e *Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := t.weakRef()
	m, ok := s.targets[ref]
	if !ok {
		m = make(depsMap)
		s.targets[ref] = m
		t.onCollect(s.forget, ref)
	}
	d, ok := m[key]
	if !ok {
		d = newDep()
		m[key] = d
	}
	if _, ok := d.members[e]; ok {
		return
	}
	d.members[e] = struct{}{}
	e.deps = append(e.deps, d)
}

// remove detaches e from every dep it joined.
func (s *store) remove(e *Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range e.deps {
		delete(d.members, e)
	}
	e.deps = e.deps[:0]
}

func (s *store) forget(ref any) {
	s.mu.Lock()
	delete(s.targets, ref)
	s.mu.Unlock()
}

func (s *store) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.targets)
}

// collect selects the effects a mutation must notify. The running effect is
// never selected. Results are ordered by effect creation.
func (s *store) collect(t target, key any, op OpType, newValue any, active *Effect) []*Effect {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.targets[t.weakRef()]
	if !ok {
		return nil
	}

	seen := make(map[*Effect]struct{})
	var out []*Effect
	addAll := func(d *dep) {
		if d == nil {
			return
		}
		for e := range d.members {
			if e == active {
				continue
			}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}

	addAll(m[key])

	_, isArray := t.(*Array)
	if isArray && key == lengthKey {
		if newLen, ok := newValue.(int); ok {
			for k, d := range m {
				if idx, ok := k.(int); ok && idx >= newLen {
					addAll(d)
				}
			}
		}
	}
	if isArray && op == OpAdd {
		addAll(m[lengthKey])
	}
	if op == OpAdd || op == OpDelete {
		addAll(m[iterateKey])
	}

	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
