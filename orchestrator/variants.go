package orchestrator

import (
	"errors"

	"github.com/exascience/pandora-go/kmergraph"
	"github.com/exascience/pandora-go/prginterval"
	"github.com/exascience/pandora-go/vcf"
)

// CallVariants computes sampleName's maximum-likelihood path at every
// locus that has coverage recorded and records a VCFRecord wherever that
// path's sequence differs from the reference span it covers, per
// §4.7/§4.8's data flow: "per-locus hits → kmer-PRG coverage →
// max-likelihood path → per-sample VCF records". Loci with no feasible
// path for this sample (kmergraph.ErrNoFeasiblePath) are skipped,
// matching §7's "caller skips the locus" contract; any other error from
// FindMaxPath aborts and is returned.
//
// The reference span's own sequence is read with LocalGraph.SequenceAt
// over the walk's overall coordinate span, rather than by diffing against a
// single designated reference walk node-by-node: the bubble-local
// traversal original_source's graph library used to identify "the
// other branch at this site" needs the external DFS this package
// already treats as an injected collaborator (see denovo.Assembler),
// so here a site is simply "the reference PRG's sequence under this
// coordinate span" versus "what the sample's path actually spells
// there". This is recorded as an open question in DESIGN.md.
func (o *Orchestrator) CallVariants(sampleName string, out *vcf.VCF) error {
	sampleID := o.sampleIndex(sampleName)
	if sampleID < 0 {
		panic("orchestrator: unknown sample " + sampleName)
	}
	out.GetSampleIndex(sampleName)

	for _, loc := range o.Loci {
		if loc.Coverage == nil || loc.Kmer == nil {
			continue
		}
		walk, _, err := loc.Coverage.FindMaxPath(scoreFuncFor(loc.Coverage, o.ScoreModel), sampleID)
		if errors.Is(err, kmergraph.ErrNoFeasiblePath) {
			continue
		}
		if err != nil {
			return err
		}
		if len(walk) == 0 {
			continue
		}

		altSeq, span := sampleAlleleSequence(loc.Kmer, loc.PRG.Graph, walk)
		refSeq := loc.PRG.Graph.SequenceAt(prginterval.NewPath([]prginterval.Interval{
			prginterval.NewInterval(span.Start, span.End),
		}))

		if refSeq == altSeq {
			out.AddSampleRefAlleles(sampleName, loc.PRG.Name, uint32(span.Start), uint32(span.End))
			continue
		}
		out.AddRecordFields(loc.PRG.Name, uint32(span.Start), refSeq, altSeq, vcf.SVNone, vcf.GraphSimple)
		out.AddSampleGT(sampleName, loc.PRG.Name, uint32(span.Start), refSeq, altSeq)
	}
	return nil
}

// sampleAlleleSequence reconstructs the nucleotide sequence a kmer walk
// represents by concatenating, in walk order, the part of each node's own
// underlying sequence that lies past the previous node's end (consecutive
// k-mers overlap, so only those bases are new) (via
// LocalGraph.SequenceAt on that node's own Path — each kmer node's Path
// was itself derived against one specific walk when the kmer-PRG was
// built, so it unambiguously identifies the alt-allele content at that
// sub-interval even where alternate alleles share overlapping
// coordinates), and returns the walk's overall coordinate span.
func sampleAlleleSequence(kg *kmergraph.KmerGraph, g sequenceAtGraph, walk []uint32) (string, prginterval.Interval) {
	var seq []byte
	var start, end int32
	for i, id := range walk {
		n := kg.Nodes[id]
		var fresh []prginterval.Interval
		for _, iv := range n.Path.Intervals {
			if i > 0 && iv.Start < end {
				if iv.End <= end {
					continue
				}
				iv.Start = end
			}
			fresh = append(fresh, iv)
		}
		seq = append(seq, g.SequenceAt(prginterval.NewPath(fresh))...)
		if i == 0 {
			start = n.Path.Start
		}
		end = n.Path.End
	}
	return string(seq), prginterval.NewInterval(start, end)
}

type sequenceAtGraph interface {
	SequenceAt(prginterval.Path) string
}

// scoreFuncFor resolves model ("prob", "nbprob", "linprob"; "" defaults
// to "prob") to one of CoverageGraph's three scoring models.
func scoreFuncFor(cg *kmergraph.CoverageGraph, model string) kmergraph.ScoreFunc {
	switch model {
	case "nbprob":
		return cg.NbProb
	case "linprob":
		return cg.LinProb
	default:
		return cg.Prob
	}
}
