package prginterval

import "testing"

func TestIntervalLess(t *testing.T) {
	a := Interval{0, 5}
	b := Interval{0, 7}
	c := Interval{3, 7}
	if !a.Less(b) {
		t.Errorf("expected %v < %v", a, b)
	}
	if !b.Less(c) {
		t.Errorf("expected %v < %v", b, c)
	}
	if c.Less(a) {
		t.Errorf("did not expect %v < %v", c, a)
	}
}

func TestIntervalEmpty(t *testing.T) {
	e := Interval{4, 4}
	if !e.Empty() {
		t.Errorf("expected %v to be empty", e)
	}
	if e.Length() != 0 {
		t.Errorf("expected zero length, got %d", e.Length())
	}
}

func TestSortByStart(t *testing.T) {
	ivs := []Interval{{5, 8}, {0, 3}, {2, 4}}
	SortByStart(ivs)
	want := []Interval{{0, 3}, {2, 4}, {5, 8}}
	for i, w := range want {
		if ivs[i] != w {
			t.Fatalf("at %d: got %v, want %v", i, ivs[i], w)
		}
	}
}

func TestOverlaps(t *testing.T) {
	a := Interval{0, 5}
	b := Interval{4, 8}
	c := Interval{5, 8}
	if !a.Overlaps(b) {
		t.Errorf("expected overlap between %v and %v", a, b)
	}
	if a.Overlaps(c) {
		t.Errorf("did not expect overlap between %v and %v (half-open)", a, c)
	}
}
