package prginterval

// Path is an ordered sequence of Intervals through a PRG. Intervals must
// be in strictly increasing order along the reference; Start, End and
// Length are precomputed from the interval sequence. Two Paths are
// totally ordered, which is what lets a kmer-PRG topologically sort its
// nodes by the k-mer path they represent.
type Path struct {
	Intervals []Interval
	Start     int32
	End       int32
	Length    int32
}

// NewPath builds a Path from a sequence of intervals already in
// increasing order, precomputing Start/End/Length. An empty slice yields
// the empty path (Start == End == Length == 0).
func NewPath(intervals []Interval) Path {
	p := Path{Intervals: intervals}
	p.recompute()
	return p
}

func (p *Path) recompute() {
	if len(p.Intervals) == 0 {
		p.Start, p.End, p.Length = 0, 0, 0
		return
	}
	p.Start = p.Intervals[0].Start
	p.End = p.Intervals[len(p.Intervals)-1].End
	var length int32
	for _, iv := range p.Intervals {
		length += iv.Length()
	}
	p.Length = length
}

// AddStartInterval prepends an interval, keeping Start/End/Length
// consistent with the new leading interval.
func (p *Path) AddStartInterval(iv Interval) {
	p.Intervals = append([]Interval{iv}, p.Intervals...)
	p.recompute()
}

// AddEndInterval appends an interval, keeping Start/End/Length
// consistent with the new trailing interval.
func (p *Path) AddEndInterval(iv Interval) {
	p.Intervals = append(p.Intervals, iv)
	p.recompute()
}

// Empty reports whether the path contains no intervals.
func (p Path) Empty() bool {
	return len(p.Intervals) == 0
}

// Equal reports whether two paths cover the same interval sequence.
func (p Path) Equal(other Path) bool {
	if len(p.Intervals) != len(other.Intervals) {
		return false
	}
	for i, iv := range p.Intervals {
		if !iv.Equal(other.Intervals[i]) {
			return false
		}
	}
	return true
}

// Less orders paths by overall Start, then overall End, then
// lexicographically by interval sequence, then by interval count. This total
// order is what sorted_nodes in a KmerGraph relies on: an edge u->v is
// only legal when u.Path.Less(v.Path).
func (p Path) Less(other Path) bool {
	if p.Start != other.Start {
		return p.Start < other.Start
	}
	if p.End != other.End {
		return p.End < other.End
	}
	n := len(p.Intervals)
	if len(other.Intervals) < n {
		n = len(other.Intervals)
	}
	for i := 0; i < n; i++ {
		a, b := p.Intervals[i], other.Intervals[i]
		if !a.Equal(b) {
			return a.Less(b)
		}
	}
	return len(p.Intervals) < len(other.Intervals)
}

// Subset reports whether every base covered by p is also covered by
// union (as built by UnionIntervals from two paths), used by KmerGraph.RemoveShortcutEdges to test whether
// an intermediate node's path is subsumed by its neighbors' paths.
func (p Path) Subset(union []Interval) bool {
	for _, iv := range p.Intervals {
		if !intervalCovered(iv, union) {
			return false
		}
	}
	return true
}

func intervalCovered(iv Interval, union []Interval) bool {
	pos := iv.Start
	for pos < iv.End {
		advanced := false
		for _, u := range union {
			if u.Start <= pos && pos < u.End {
				pos = u.End
				advanced = true
				break
			}
		}
		if !advanced {
			return false
		}
	}
	return true
}

// UnionIntervals merges two sorted interval sequences into one sorted,
// non-overlapping sequence, used to build the (a ∪ b) argument to Subset.
func UnionIntervals(a, b []Interval) []Interval {
	all := make([]Interval, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	SortByStart(all)
	merged := all[:0]
	for _, iv := range all {
		if n := len(merged); n > 0 && merged[n-1].End >= iv.Start {
			if iv.End > merged[n-1].End {
				merged[n-1].End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
