// Package orchestrator implements the fan-out driver of §5: building the
// global index and per-locus kmer-PRGs, aligning reads into the pan-
// genome read-hit graph, updating per-sample coverage, and calling
// variants from the resulting max-likelihood paths. Scheduling follows
// the spec's coarse-grained data parallelism over independent loci (and,
// for alignment/coverage, independent samples), fanned out with
// pargo/parallel the same way elprep's own filter pipeline fans out over
// independent read batches.
package orchestrator

import (
	"github.com/exascience/pargo/parallel"

	"github.com/exascience/pandora-go/genotype"
	"github.com/exascience/pandora-go/index"
	"github.com/exascience/pandora-go/kmergraph"
	"github.com/exascience/pandora-go/localprg"
	"github.com/exascience/pandora-go/pangraph"
)

// Locus bundles one PRG with the kmer-PRG built over it and that kmer-
// PRG's per-sample coverage overlay.
type Locus struct {
	PRG      *localprg.LocalPRG
	Kmer     *kmergraph.KmerGraph
	Coverage *kmergraph.CoverageGraph
}

// Orchestrator owns every piece of shared state a run threads through
// the pipeline: the PRG collection and its derived index/kmer-PRGs, the
// read-hit graph, and the sample roster each locus's CoverageGraph is
// sized for.
type Orchestrator struct {
	W, K    uint32
	Threads int

	Index   *index.Index
	Loci    map[uint32]*Locus
	Pan     *pangraph.PanGraph
	Samples []string
	Options *genotype.Options

	// ScoreModel selects the scoring model CallVariants' FindMaxPath call
	// uses: "prob" (default), "nbprob" or "linprob", matching the three
	// models kmergraph/scoring.go implements.
	ScoreModel string
}

// New allocates an Orchestrator over prgs, sized for the given sample
// roster; samples determines each locus's CoverageGraph width and the
// index a sample name resolves to throughout alignment/coverage/calling.
func New(prgs []*localprg.LocalPRG, w, k uint32, threads int, samples []string, opts *genotype.Options) *Orchestrator {
	loci := make(map[uint32]*Locus, len(prgs))
	for _, p := range prgs {
		loci[p.ID] = &Locus{PRG: p}
	}
	return &Orchestrator{
		W: w, K: k, Threads: threads,
		Index: index.New(), Loci: loci,
		Pan: pangraph.NewPanGraph(), Samples: samples, Options: opts,
	}
}

func (o *Orchestrator) sampleIndex(name string) int {
	for i, s := range o.Samples {
		if s == name {
			return i
		}
	}
	return -1
}

// BuildIndex builds every locus's kmer-PRG and records its minimizers
// into the global Index, fanning out across loci (§5: "the orchestrator
// fans out per-PRG work... to a worker pool sized by threads"). Each
// worker writes only its own slice slot, so the parallel phase needs no
// locking beyond Index.AddRecord's own bucket mutex; the per-locus
// CoverageGraph allocation is done in a second, sequential pass since it
// only touches the (already worker-exclusive) Loci map.
func (o *Orchestrator) BuildIndex() {
	prgs := make([]*localprg.LocalPRG, 0, len(o.Loci))
	for _, l := range o.Loci {
		prgs = append(prgs, l.PRG)
	}
	graphs := make([]*kmergraph.KmerGraph, len(prgs))

	minGrain := 1
	if o.Threads > 0 {
		minGrain = (len(prgs) + o.Threads - 1) / o.Threads
		if minGrain < 1 {
			minGrain = 1
		}
	}
	parallel.Range(0, len(prgs), minGrain, func(low, high int) {
		for i := low; i < high; i++ {
			p := prgs[i]
			kg := index.BuildKmerGraph(p, o.W, o.K)
			index.IndexPRG(p, kg, o.Index, o.W, o.K)
			graphs[i] = kg
		}
	})

	for i, p := range prgs {
		loc := o.Loci[p.ID]
		loc.Kmer = graphs[i]
		loc.Coverage = kmergraph.NewCoverageGraph(graphs[i], len(o.Samples))
	}
}
