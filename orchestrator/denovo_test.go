package orchestrator

import (
	"path/filepath"
	"testing"

	"github.com/exascience/pandora-go/localprg"
)

func TestFindCandidateRegionsSkipsFullyCoveredLocus(t *testing.T) {
	prg := localprg.NewLinearLocalPRG(0, "locus0", testSeq)
	o := New([]*localprg.LocalPRG{prg}, 1, 3, 1, []string{"sampleA"}, testOptions())
	o.BuildIndex()
	o.AlignReads("sampleA", []Read{{ID: 0, Seq: testSeq}})

	regions := o.FindCandidateRegions("sampleA", 1, 1)
	if len(regions) != 0 {
		t.Fatalf("expected no candidate regions for a fully covered locus, got %d", len(regions))
	}
}

func TestFindCandidateRegionsDiscardsBoundaryGapWhenUnaligned(t *testing.T) {
	prg := localprg.NewLinearLocalPRG(0, "locus0", testSeq)
	o := New([]*localprg.LocalPRG{prg}, 1, 3, 1, []string{"sampleA"}, testOptions())
	o.BuildIndex()
	// No reads aligned: every non-boundary node is below threshold, but a
	// gap touching both graph ends is discarded (no flanking anchor), so
	// this still yields no regions -- exercised mainly to confirm the
	// zero-coverage path does not panic.
	regions := o.FindCandidateRegions("sampleA", 1, 1)
	if regions != nil && len(regions) != 0 {
		t.Fatalf("boundary-touching gap should be discarded, got %d regions", len(regions))
	}
}

func TestWriteCandidateBedWritesFile(t *testing.T) {
	prg := localprg.NewLinearLocalPRG(0, "locus0", testSeq)
	o := New([]*localprg.LocalPRG{prg}, 1, 3, 1, []string{"sampleA"}, testOptions())
	o.BuildIndex()

	path := filepath.Join(t.TempDir(), "candidates.bed")
	if err := WriteCandidateBed(nil, o.Loci, path); err != nil {
		t.Fatalf("WriteCandidateBed: %v", err)
	}
}
