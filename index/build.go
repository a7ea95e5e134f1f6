package index

import (
	"sort"

	"github.com/exascience/pargo/parallel"

	"github.com/exascience/pandora-go/kmergraph"
	"github.com/exascience/pandora-go/localprg"
	"github.com/exascience/pandora-go/prginterval"
)

// BuildKmerGraph builds the kmer-PRG for one LocalPRG (§4.4): every
// minimizer observed on any source-to-sink walk becomes a node keyed by
// its PRG-global Path (nodes with an equal Path are the same k-mer and
// collapse via KmerGraph.AddNode), edges link k-mers that appear
// consecutively, in walk order, on some walk, and a synthetic source and
// sink (kmergraph.SourcePath/SinkPath) tie every walk's ends together so
// the graph satisfies the single-source/single-sink invariant even
// though the underlying LocalGraph may have several alternative alleles.
func BuildKmerGraph(p *localprg.LocalPRG, w, k uint32) *kmergraph.KmerGraph {
	g := kmergraph.NewKmerGraph()
	srcID := g.AddNode(kmergraph.SourcePath())
	sinkID := g.AddNode(kmergraph.SinkPath())

	for _, ws := range p.MinimizingKmerWalks(w, k) {
		type placed struct {
			path prginterval.Path
			id   uint32
		}
		var onWalk []placed
		for _, m := range ws.Sketch.Minimizers {
			path := p.TranslateWalkInterval(ws.NodePath, m.Pos)
			id := g.AddNode(path)
			onWalk = append(onWalk, placed{path: path, id: id})
		}
		sort.Slice(onWalk, func(i, j int) bool { return onWalk[i].path.Less(onWalk[j].path) })

		prev := srcID
		for _, cur := range onWalk {
			if cur.id != prev {
				g.AddEdge(prev, cur.id)
				prev = cur.id
			}
		}
		if prev != sinkID {
			g.AddEdge(prev, sinkID)
		}
	}

	// A PRG with no walk producing any minimizer (too short a locus for
	// a full window) still needs a direct source->sink edge to remain a
	// valid DAG.
	if len(g.Nodes[srcID].Outs) == 0 {
		g.AddEdge(srcID, sinkID)
	}
	return g
}

// IndexPRG records every minimizer on prg's walks into idx, using kg
// (already built by BuildKmerGraph for the same prg/w/k) to assign each
// MiniRecord its stable KnodeID. Split out from IndexPRGs so a caller
// that also needs to keep the per-PRG kmer-PRGs around (the orchestrator
// does, for coverage and max-path inference) can build each graph once
// and reuse it here instead of paying for a second traversal.
func IndexPRG(p *localprg.LocalPRG, kg *kmergraph.KmerGraph, idx *Index, w, k uint32) {
	for _, ws := range p.MinimizingKmerWalks(w, k) {
		for _, m := range ws.Sketch.Minimizers {
			path := p.TranslateWalkInterval(ws.NodePath, m.Pos)
			knodeID, ok := kg.FindNode(path)
			if !ok {
				knodeID = kg.AddNode(path)
			}
			idx.AddRecord(m.Hash, p.ID, path, knodeID, m.Strand)
		}
	}
}

// IndexPRGs sketches every PRG in prgs and records each minimizer into
// idx, building (but discarding) a per-PRG kmer-PRG along the way purely
// to assign stable KnodeIDs to MiniRecords, per §4.3's "sketching step is
// parallel across PRGs with a single lock at index-insertion" contract.
func IndexPRGs(prgs []*localprg.LocalPRG, idx *Index, w, k uint32) error {
	minGrain := 1
	parallel.Range(0, len(prgs), minGrain, func(low, high int) {
		for i := low; i < high; i++ {
			p := prgs[i]
			kg := BuildKmerGraph(p, w, k)
			IndexPRG(p, kg, idx, w, k)
		}
	})
	return nil
}
