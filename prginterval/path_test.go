package prginterval

import "testing"

func TestPathRecompute(t *testing.T) {
	p := NewPath([]Interval{{0, 5}, {10, 12}})
	if p.Start != 0 || p.End != 12 || p.Length != 7 {
		t.Fatalf("got start=%d end=%d length=%d", p.Start, p.End, p.Length)
	}
}

func TestPathLess(t *testing.T) {
	p1 := NewPath([]Interval{{0, 5}})
	p2 := NewPath([]Interval{{0, 7}})
	if !p1.Less(p2) {
		t.Errorf("expected %v < %v", p1, p2)
	}
}

func TestPathSubsetShortcut(t *testing.T) {
	// A path [0,5), B path [3,7), C path [0,7): B is a subset of union(A,C).
	a := NewPath([]Interval{{0, 5}})
	b := NewPath([]Interval{{3, 7}})
	c := NewPath([]Interval{{0, 7}})
	union := UnionIntervals(a.Intervals, c.Intervals)
	if !b.Subset(union) {
		t.Fatalf("expected path %v to be a subset of union %v", b, union)
	}
}

func TestPathEqual(t *testing.T) {
	a := NewPath([]Interval{{0, 5}, {10, 12}})
	b := NewPath([]Interval{{0, 5}, {10, 12}})
	if !a.Equal(b) {
		t.Errorf("expected %v to equal %v", a, b)
	}
}
