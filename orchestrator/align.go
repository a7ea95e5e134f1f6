package orchestrator

import (
	"github.com/exascience/pargo/parallel"

	"github.com/exascience/pandora-go/kmer"
	"github.com/exascience/pandora-go/pangraph"
)

// Read is one sequenced read: a stable id (used to key PanNode.FoundReads
// and Hit.ReadID) and its base sequence.
type Read struct {
	ID  uint32
	Seq string
}

// AlignReads sketches every read in reads and looks each minimizer up in
// the Index, recording every hit into the read-hit graph and, for the
// loci it touches, into that sample's coverage. Per §5 ("the per-sample
// KmerGraphWithCoverage... one sample's entries are written only by that
// sample's worker"), callers must not invoke AlignReads for the same
// sampleName from more than one goroutine concurrently; AlignAllSamples
// partitions by sample to satisfy that for a whole read set.
func (o *Orchestrator) AlignReads(sampleName string, reads []Read) {
	sampleID := o.sampleIndex(sampleName)
	if sampleID < 0 {
		panic("orchestrator: unknown sample " + sampleName)
	}

	for _, read := range reads {
		sketch := kmer.Sketch(read.Seq, o.W, o.K)
		hitsByPRG := make(map[uint32][]pangraph.Hit)

		for _, m := range sketch.Minimizers {
			for _, rec := range o.Index.RecordsFor(m.Hash) {
				hit := pangraph.Hit{
					ReadID:       read.ID,
					ReadInterval: m.Pos,
					PrgID:        rec.PrgID,
					Path:         rec.Path,
					Strand:       rec.Strand == m.Strand,
				}
				hitsByPRG[rec.PrgID] = append(hitsByPRG[rec.PrgID], hit)

				if loc, ok := o.Loci[rec.PrgID]; ok && loc.Coverage != nil {
					loc.Coverage.AddCoverage(rec.KnodeID, sampleID, hit.Strand)
				}
			}
		}

		var touched []uint32
		for prgID, hits := range hitsByPRG {
			o.Pan.AddNode(prgID, read.ID, hits)
			touched = append(touched, prgID)
		}
		for i := 1; i < len(touched); i++ {
			o.Pan.AddEdge(touched[0], touched[i])
		}
	}
}

// AlignAllSamples runs AlignReads once per sample in reads, fanned out
// across samples (§5's "coarse-grained data parallelism over independent
// loci" applied at the sample granularity that keeps coverage writes
// lock-free: each worker owns one sample's slice of every locus's
// CoverageGraph).
func (o *Orchestrator) AlignAllSamples(reads map[string][]Read) {
	names := make([]string, 0, len(reads))
	for name := range reads {
		names = append(names, name)
	}
	parallel.Range(0, len(names), 1, func(low, high int) {
		for i := low; i < high; i++ {
			name := names[i]
			o.AlignReads(name, reads[name])
		}
	})
}
