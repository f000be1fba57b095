package vdom

import (
	"reflect"
	"testing"
)

func TestLIS(t *testing.T) {
	tests := []struct {
		name string
		seq  []int
		want []int
	}{
		{"empty", nil, []int{}},
		{"single", []int{4}, []int{0}},
		{"sorted", []int{0, 1, 2, 3}, []int{0, 1, 2, 3}},
		{"reversed", []int{3, 2, 1, 0}, []int{3}},
		{"swap pairs", []int{1, 3, 0, 2}, []int{2, 3}},
		{"skips unsourced", []int{2, -1, 3, -1, 4}, []int{0, 2, 4}},
		{"all unsourced", []int{-1, -1}, []int{}},
		{"mixed", []int{4, 2, 3, 1, 5}, []int{1, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LIS(tt.seq)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LIS(%v) = %v, want %v", tt.seq, got, tt.want)
			}
		})
	}
}

func TestLISIsIncreasing(t *testing.T) {
	seq := []int{9, 0, 8, -1, 1, 7, 2, 6, 3}
	idx := LIS(seq)
	if len(idx) != 4 {
		t.Fatalf("LIS length = %d, want 4 (%v)", len(idx), idx)
	}
	for i := 1; i < len(idx); i++ {
		if idx[i] <= idx[i-1] || seq[idx[i]] <= seq[idx[i-1]] {
			t.Errorf("not increasing at %d: %v", i, idx)
		}
	}
}
