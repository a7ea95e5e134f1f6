// pandora: a pangenome-guided variant-calling and de novo discovery engine.

// Package prginterval provides the half-open Interval and ordered Path
// types used to address positions in a PRG's linear coordinates.
//
// Grounded on github.com/exascience/elprep's intervals package (Flatten,
// Overlap, Intersect, parallel sort), generalized from elprep's genomic
// reference intervals to PRG-local coordinates, and on the C++ pandora
// prototype's interval.h/path.h for the exact field set.
package prginterval

import (
	"sort"

	psort "github.com/exascience/pargo/sort"
)

// Interval is a half-open range [Start, End) over a PRG's linear
// coordinates. A zero-length interval (Start == End) represents epsilon,
// used for variant sites that delete into nothing.
type Interval struct {
	Start, End int32
}

// NewInterval builds an Interval, panicking if end < start.
func NewInterval(start, end int32) Interval {
	if end < start {
		panic("prginterval: end before start")
	}
	return Interval{Start: start, End: end}
}

// Length returns End - Start.
func (i Interval) Length() int32 {
	return i.End - i.Start
}

// Empty reports whether the interval has zero length.
func (i Interval) Empty() bool {
	return i.Start == i.End
}

// Less orders intervals lexicographically by (Start, End).
func (i Interval) Less(other Interval) bool {
	if i.Start != other.Start {
		return i.Start < other.Start
	}
	return i.End < other.End
}

// Equal reports whether two intervals have the same bounds.
func (i Interval) Equal(other Interval) bool {
	return i.Start == other.Start && i.End == other.End
}

// Overlaps reports whether i and other share any coordinate.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// SortByStart sorts intervals in place by Start, stably.
func SortByStart(intervals []Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})
}

type stableIntervalSorter []Interval

func (s stableIntervalSorter) SequentialSort(i, j int) {
	SortByStart(s[i:j])
}

func (s stableIntervalSorter) NewTemp() psort.StableSorter {
	return stableIntervalSorter(make([]Interval, len(s)))
}

func (s stableIntervalSorter) Len() int {
	return len(s)
}

func (s stableIntervalSorter) Less(i, j int) bool {
	return s[i].Start < s[j].Start
}

func (s stableIntervalSorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(stableIntervalSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// ParallelSortByStart sorts intervals by Start using a parallel stable
// sort, for the large interval slices produced when sketching many loci.
func ParallelSortByStart(intervals []Interval) {
	psort.StableSort(stableIntervalSorter(intervals))
}
