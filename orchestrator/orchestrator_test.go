package orchestrator

import (
	"testing"

	"github.com/exascience/pandora-go/genotype"
	"github.com/exascience/pandora-go/localprg"
)

const testSeq = "ACGTACGTACGTACGTACGTACGT"

func testOptions() *genotype.Options {
	return &genotype.Options{
		SampleExpDepthCovg:  []float64{10, 10},
		ErrorRate:           0.1,
		ConfidenceThreshold: 1,
		MinKmerCovg:         1,
	}
}

func TestBuildIndexPopulatesLociAndIndex(t *testing.T) {
	prgs := []*localprg.LocalPRG{
		localprg.NewLinearLocalPRG(0, "locus0", testSeq),
		localprg.NewLinearLocalPRG(1, "locus1", testSeq),
	}
	o := New(prgs, 1, 3, 2, []string{"sampleA", "sampleB"}, testOptions())
	o.BuildIndex()

	for _, p := range prgs {
		loc := o.Loci[p.ID]
		if loc.Kmer == nil {
			t.Fatalf("locus %d: Kmer graph not built", p.ID)
		}
		if loc.Coverage == nil {
			t.Fatalf("locus %d: Coverage graph not built", p.ID)
		}
	}
}

func TestAlignReadsRecordsCoverageAndPanGraph(t *testing.T) {
	prg := localprg.NewLinearLocalPRG(0, "locus0", testSeq)
	o := New([]*localprg.LocalPRG{prg}, 1, 3, 1, []string{"sampleA"}, testOptions())
	o.BuildIndex()

	o.AlignReads("sampleA", []Read{{ID: 0, Seq: testSeq}})

	loc := o.Loci[prg.ID]
	found := false
	for _, n := range loc.Coverage.Graph.SortedNodes {
		if loc.Coverage.CoverageAt(n.ID, 0).Total() > 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("AlignReads recorded no coverage for sampleA")
	}
	if len(o.Pan.Nodes) == 0 {
		t.Fatal("AlignReads recorded no pan-graph nodes")
	}
}

func TestAlignReadsPanicsOnUnknownSample(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown sample")
		}
	}()
	prg := localprg.NewLinearLocalPRG(0, "locus0", testSeq)
	o := New([]*localprg.LocalPRG{prg}, 1, 3, 1, []string{"sampleA"}, testOptions())
	o.BuildIndex()
	o.AlignReads("nobody", []Read{{ID: 0, Seq: testSeq}})
}
