// Package pangraph implements the read-hit graph over PRG loci: one node
// per locus a read was mapped against, edges between loci a single read
// spans, and the connected-component clustering that groups loci visited
// together by the same reads.
//
// Grounded on original_source/include/pangraph.h for the node/edge shape
// and on elprep's filters/graph.go union-find clustering (there used to
// group reads at the same optical distance; here repurposed to group
// PRG loci touched by the same reads).
package pangraph

import (
	"sort"

	"github.com/exascience/pandora-go/prginterval"
)

// Hit records that a read's minimizer matched a PRG at a given path,
// mirroring original_source's MinimizerHit.
type Hit struct {
	ReadID       uint32
	ReadInterval prginterval.Interval
	PrgID        uint32
	Path         prginterval.Path
	Strand       bool
}

// Less orders hits by (Path, ReadInterval, Strand), the ordering
// original_source's pComp_path comparator uses to keep a PanNode's hit
// set stable and deduplicated.
func (h Hit) Less(other Hit) bool {
	if !h.Path.Equal(other.Path) {
		return h.Path.Less(other.Path)
	}
	if !h.ReadInterval.Equal(other.ReadInterval) {
		return h.ReadInterval.Less(other.ReadInterval)
	}
	return !h.Strand && other.Strand
}

// Equal reports whether two hits describe the same read/PRG position.
func (h Hit) Equal(other Hit) bool {
	return h.ReadID == other.ReadID && h.PrgID == other.PrgID &&
		h.Strand == other.Strand && h.Path.Equal(other.Path) &&
		h.ReadInterval.Equal(other.ReadInterval)
}

// PanNode is one locus of the pan-genome read-hit graph: the PRG id it
// represents, every read id that was found to hit it (duplicates kept,
// mirroring original_source's foundReads — a read can contribute more
// than one hit), and the deduplicated, Path-ordered set of hits.
type PanNode struct {
	ID         uint32
	FoundReads []uint32
	FoundHits  []Hit
}

// NewPanNode allocates an empty node for PRG id.
func NewPanNode(id uint32) *PanNode {
	return &PanNode{ID: id}
}

// AddRead records one more read hitting this node. Not deduplicated:
// a read is recorded once per call, so a read added to the same node
// twice appears twice, matching original_source's plain append.
func (n *PanNode) AddRead(readID uint32) {
	n.FoundReads = append(n.FoundReads, readID)
}

// AddHits merges hits into the node's hit set, keeping it sorted by Hit
// ordering and free of exact duplicates.
func (n *PanNode) AddHits(hits []Hit) {
	for _, h := range hits {
		n.addHit(h)
	}
}

func (n *PanNode) addHit(h Hit) {
	i := sort.Search(len(n.FoundHits), func(i int) bool { return !n.FoundHits[i].Less(h) })
	if i < len(n.FoundHits) && n.FoundHits[i].Equal(h) {
		return
	}
	n.FoundHits = append(n.FoundHits, Hit{})
	copy(n.FoundHits[i+1:], n.FoundHits[i:])
	n.FoundHits[i] = h
}

// Equal reports node identity, matching original_source's id-only
// equality (PanNodeTest.equals compares nodes built with different read
// counts and considers them unequal only when their ids differ).
func (n *PanNode) Equal(other *PanNode) bool {
	return n.ID == other.ID
}
