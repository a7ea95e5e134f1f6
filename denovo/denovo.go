// Package denovo implements the candidate-region scanner and FASTA
// output side of local assembly (§4.8/§6): scanning a sample's coverage
// over a locus for gapped windows worth re-assembling is fully
// implemented here; the bounded-DFS walk between a region's anchor
// k-mers over an external de Bruijn graph is an injected collaborator
// (the Assembler interface), grounded on
// original_source/include/local_assembly.h's function boundary between
// get_paths_between (the DFS, owned by the caller's graph library) and
// local_assembly/write_paths_to_fasta (the glue this package owns).
package denovo

import (
	"errors"

	"github.com/exascience/pandora-go/kmergraph"
	"github.com/exascience/pandora-go/localprg"
	"github.com/exascience/pandora-go/prginterval"
)

// CandidateRegion is one contiguous span of low-coverage kmer-PRG nodes
// for one sample, flanked by the last well-covered node before the gap
// and the first well-covered node after it. StartKmer/EndKmer are the
// anchor sequences local assembly walks between.
type CandidateRegion struct {
	PrgID     uint32
	SampleID  int
	Path      prginterval.Path
	StartKmer string
	EndKmer   string
}

// FindCandidateRegions scans cg's SortedNodes (source/sink excluded) in
// path order for runs of consecutive nodes whose total coverage for
// sampleID falls below minCovg, spanning at least minGapLen bases, and
// returns one CandidateRegion per run. A run touching the graph's source
// or sink is discarded: local assembly needs two real flanking k-mers.
func FindCandidateRegions(cg *kmergraph.CoverageGraph, prg *localprg.LocalPRG, sampleID int, minCovg uint32, minGapLen int32) []CandidateRegion {
	nodes := cg.Graph.SortedNodes
	srcID, sinkID := cg.Graph.Source().ID, cg.Graph.Sink().ID

	var regions []CandidateRegion
	gapStart := -1
	for i, n := range nodes {
		if n.ID == srcID || n.ID == sinkID {
			continue
		}
		low := cg.CoverageAt(n.ID, sampleID).Total() < minCovg
		if low && gapStart == -1 {
			gapStart = i
		}
		if !low && gapStart != -1 {
			if r, ok := buildRegion(nodes, gapStart, i-1, prg, sampleID, srcID, sinkID, minGapLen); ok {
				regions = append(regions, r)
			}
			gapStart = -1
		}
	}
	if gapStart != -1 {
		if r, ok := buildRegion(nodes, gapStart, len(nodes)-1, prg, sampleID, srcID, sinkID, minGapLen); ok {
			regions = append(regions, r)
		}
	}
	return regions
}

// buildRegion turns the run nodes[lo..hi] (hi inclusive) into a CandidateRegion, pulling
// its flanking anchors from the node immediately before lo and
// immediately after hi. Both flanks must exist (the run must not touch
// source/sink) and the run's own span must clear minGapLen.
func buildRegion(nodes []*kmergraph.KmerNode, lo, hi int, prg *localprg.LocalPRG, sampleID int, srcID, sinkID uint32, minGapLen int32) (CandidateRegion, bool) {
	if lo == 0 || hi == len(nodes)-1 {
		return CandidateRegion{}, false
	}
	before, after := nodes[lo-1], nodes[hi+1]
	if before.ID == srcID || after.ID == sinkID {
		return CandidateRegion{}, false
	}

	var ivs []prginterval.Interval
	ivs = append(ivs, nodes[lo].Path.Intervals...)
	for i := lo + 1; i <= hi; i++ {
		ivs = append(ivs, nodes[i].Path.Intervals...)
	}
	path := prginterval.NewPath(ivs)
	if path.Length < minGapLen {
		return CandidateRegion{}, false
	}

	return CandidateRegion{
		PrgID:     prg.ID,
		SampleID:  sampleID,
		Path:      path,
		StartKmer: prg.Graph.SequenceAt(before.Path),
		EndKmer:   prg.Graph.SequenceAt(after.Path),
	}, true
}

// ErrTooManyPaths is returned when bounded DFS between a region's anchor
// k-mers would exceed the caller's maximum returned-path count.
var ErrTooManyPaths = errors.New("denovo: too many paths between anchor k-mers")

// ErrNoPath is returned when either anchor k-mer is absent from the
// assembly graph.
var ErrNoPath = errors.New("denovo: anchor k-mer not found in assembly graph")

// Assembler performs bounded local assembly between two anchor k-mers
// over a de Bruijn graph built from reads spanning a candidate region.
// Assemble returns every sequence of length <= maxLength connecting
// startKmer to endKmer, found by bounded depth-first search, up to
// maxPaths sequences. It returns ErrTooManyPaths if the search would
// exceed maxPaths, or ErrNoPath if either anchor is missing from the
// graph. Implementations own the graph construction and DFS; this
// package only drives them per candidate region and writes the results.
type Assembler interface {
	Assemble(startKmer, endKmer string, maxLength, maxPaths int) ([]string, error)
}
