package localprg

import (
	"github.com/exascience/pandora-go/kmer"
	"github.com/exascience/pandora-go/prginterval"
)

// LocalPRG is one locus of the pangenome: an identifier, a human-readable
// name, and the interval DAG describing its alleles.
type LocalPRG struct {
	ID    uint32
	Name  string
	Graph *LocalGraph
}

// NewLinearLocalPRG builds a single-node, variant-free PRG covering seq,
// the degenerate case used for loci with no known alternative alleles
// yet (e.g. a brand new reference contig before any sample has been
// genotyped against it).
func NewLinearLocalPRG(id uint32, name, seq string) *LocalPRG {
	g := NewLocalGraph()
	g.AddNode(0, seq, prginterval.NewInterval(0, int32(len(seq))))
	return &LocalPRG{ID: id, Name: name, Graph: g}
}

// MinimizingKmerWalks returns, for every source-to-sink walk through the
// PRG, the walk's concatenated sequence paired with its minimizer
// sketch, using window w and k-mer size k. This is the per-PRG sketching
// step driven in parallel by index.IndexPRGs.
func (p *LocalPRG) MinimizingKmerWalks(w, k uint32) []WalkSketch {
	walks := p.Graph.Walks()
	out := make([]WalkSketch, len(walks))
	for i, walk := range walks {
		seq := p.Graph.WalkSequence(walk)
		out[i] = WalkSketch{
			NodePath: walk,
			Sequence: seq,
			Sketch:   kmer.Sketch(seq, w, k),
		}
	}
	return out
}

// WalkSketch pairs one source-to-sink walk with the minimizer sketch of
// its sequence.
type WalkSketch struct {
	NodePath []uint32
	Sequence string
	Sketch   kmer.Seq
}

// TranslateWalkInterval maps an interval in the concatenated sequence of
// walk (as produced by WalkSequence, the coordinate space minimizer
// positions are reported in) back into the PRG's own linear coordinate
// space, as a Path: the sub-interval of each node on walk that the local
// interval overlaps, in walk order. A minimizer that spans more than one
// node yields a Path with more than one Interval, the mechanism by which
// a single k-mer can cross an allele boundary.
func (p *LocalPRG) TranslateWalkInterval(walk []uint32, local prginterval.Interval) prginterval.Path {
	var intervals []prginterval.Interval
	offset := int32(0)
	for _, nodeID := range walk {
		node := p.Graph.Nodes[nodeID]
		nodeLen := node.Pos.Length()
		nodeStart, nodeEnd := offset, offset+nodeLen

		s, e := local.Start, local.End
		if s < nodeStart {
			s = nodeStart
		}
		if e > nodeEnd {
			e = nodeEnd
		}
		if s < e {
			globalStart := node.Pos.Start + (s - nodeStart)
			globalEnd := node.Pos.Start + (e - nodeStart)
			intervals = append(intervals, prginterval.NewInterval(globalStart, globalEnd))
		}
		offset = nodeEnd
	}
	return prginterval.NewPath(intervals)
}
