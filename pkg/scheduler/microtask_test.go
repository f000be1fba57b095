package scheduler

import "testing"

func TestMicrotasksFIFO(t *testing.T) {
	m := NewMicrotasks()
	var order []int
	m.Queue(func() { order = append(order, 1) })
	m.Queue(func() {
		order = append(order, 2)
		m.Queue(func() { order = append(order, 4) })
	})
	m.Queue(func() { order = append(order, 3) })

	if m.Pending() != 3 {
		t.Fatalf("Pending() = %d, want 3", m.Pending())
	}
	if ran := m.Drain(); ran != 4 {
		t.Errorf("Drain() = %d, want 4", ran)
	}
	want := []int{1, 2, 3, 4}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestMicrotasksNestedDrain(t *testing.T) {
	m := NewMicrotasks()
	inner := -1
	ranLater := false
	m.Queue(func() {
		m.Queue(func() { ranLater = true })
		inner = m.Drain()
	})
	m.Drain()

	if inner != 0 {
		t.Errorf("nested Drain() = %d, want 0", inner)
	}
	if !ranLater {
		t.Error("task queued during drain did not run")
	}
}

func TestMicrotasksTurn(t *testing.T) {
	m := NewMicrotasks()
	var order []string
	m.Turn(func() {
		m.Queue(func() { order = append(order, "micro") })
		order = append(order, "sync")
	})
	if len(order) != 2 || order[0] != "sync" || order[1] != "micro" {
		t.Errorf("order = %v, want [sync micro]", order)
	}
}
