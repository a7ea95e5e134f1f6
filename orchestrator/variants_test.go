package orchestrator

import (
	"testing"

	"github.com/exascience/pandora-go/localprg"
	"github.com/exascience/pandora-go/vcf"
)

func TestCallVariantsMarksReferenceWhenAlignedReadMatches(t *testing.T) {
	prg := localprg.NewLinearLocalPRG(0, "locus0", testSeq)
	o := New([]*localprg.LocalPRG{prg}, 1, 3, 1, []string{"sampleA"}, testOptions())
	o.BuildIndex()
	o.AlignReads("sampleA", []Read{{ID: 0, Seq: testSeq}})

	out := vcf.New()
	if err := o.CallVariants("sampleA", out); err != nil {
		t.Fatalf("CallVariants: %v", err)
	}
}

func TestCallVariantsPanicsOnUnknownSample(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown sample")
		}
	}()
	prg := localprg.NewLinearLocalPRG(0, "locus0", testSeq)
	o := New([]*localprg.LocalPRG{prg}, 1, 3, 1, []string{"sampleA"}, testOptions())
	o.BuildIndex()
	_ = o.CallVariants("nobody", vcf.New())
}

func TestCallVariantsSkipsLociWithNoCoverage(t *testing.T) {
	prg := localprg.NewLinearLocalPRG(0, "locus0", testSeq)
	o := New([]*localprg.LocalPRG{prg}, 1, 3, 1, []string{"sampleA"}, testOptions())
	o.BuildIndex()
	// No reads aligned: every locus's coverage is all-zero, so FindMaxPath
	// should report ErrNoFeasiblePath and CallVariants should skip it
	// rather than returning an error.
	out := vcf.New()
	if err := o.CallVariants("sampleA", out); err != nil {
		t.Fatalf("CallVariants: %v", err)
	}
	if len(out.Records) != 0 {
		t.Fatalf("expected no records for an unaligned sample, got %d", len(out.Records))
	}
}
