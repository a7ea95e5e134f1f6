package kmergraph

import "math"

// Coverage is the strand-separated read count observed at one node for
// one sample.
type Coverage struct {
	Fwd, Rev uint32
}

// Total returns Fwd + Rev.
func (c Coverage) Total() uint32 {
	return c.Fwd + c.Rev
}

// CoverageGraph is a non-owning, per-sample coverage overlay over an
// immutable KmerGraph, plus the scalar parameters of the three scoring
// models (§4.5). Per §5, the graph itself never changes after
// construction; each sample's coverage entries are written only by that
// sample's worker, so concurrent per-sample updates need no locking as
// long as workers partition by sample.
type CoverageGraph struct {
	Graph *KmerGraph

	// covg[nodeID][sampleID]
	covg [][]Coverage

	P            float64 // binomial success probability, from error rate and k
	NbP, NbR     float64 // negative-binomial parameters
	NumReads     uint32
	ExpDepthCovg float64
	Thresh       float64
}

// NewCoverageGraph wraps graph with a coverage overlay sized for
// numSamples samples.
func NewCoverageGraph(graph *KmerGraph, numSamples int) *CoverageGraph {
	covg := make([][]Coverage, len(graph.Nodes))
	for i := range covg {
		covg[i] = make([]Coverage, numSamples)
	}
	return &CoverageGraph{Graph: graph, covg: covg}
}

// SetP derives the binomial success probability from a per-base error
// rate e and k-mer size k: p = 1 / exp(e*k).
func (cg *CoverageGraph) SetP(e float64, k uint32) {
	cg.P = 1 / math.Exp(e*float64(k))
}

// AddCoverage records one read's hit to a node for a sample, on the
// read's strand.
func (cg *CoverageGraph) AddCoverage(nodeID uint32, sampleID int, forward bool) {
	if forward {
		cg.covg[nodeID][sampleID].Fwd++
	} else {
		cg.covg[nodeID][sampleID].Rev++
	}
}

// CoverageAt returns the coverage recorded at nodeID for sampleID.
func (cg *CoverageGraph) CoverageAt(nodeID uint32, sampleID int) Coverage {
	return cg.covg[nodeID][sampleID]
}

// EnsureSamples grows the per-node sample slots to accommodate at least
// n samples.
func (cg *CoverageGraph) EnsureSamples(n int) {
	for i, row := range cg.covg {
		if len(row) < n {
			grown := make([]Coverage, n)
			copy(grown, row)
			cg.covg[i] = grown
		}
	}
}

// AllZero reports whether every node but source/sink carries zero
// coverage for sampleID, the degenerate case of §4.5 where the DP
// returns the sentinel score without attempting a walk.
func (cg *CoverageGraph) AllZero(sampleID int) bool {
	srcID, sinkID := cg.Graph.Source().ID, cg.Graph.Sink().ID
	for _, n := range cg.Graph.Nodes {
		if n.ID == srcID || n.ID == sinkID {
			continue
		}
		if cg.covg[n.ID][sampleID].Total() > 0 {
			return false
		}
	}
	return true
}
