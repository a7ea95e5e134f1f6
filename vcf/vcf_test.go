package vcf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/exascience/pandora-go/localprg"
)

func TestClassifySVType(t *testing.T) {
	cases := []struct{ ref, alt string; want SVType }{
		{".", ".", SVNone},
		{".", "A", SVIndel},
		{"A", ".", SVIndel},
		{"A", "G", SVSNP},
		{"AG", "CT", SVPhSNPs},
		{"A", "ATT", SVIndel},
		{"ATT", "A", SVIndel},
		{"AC", "GT", SVPhSNPs},
		{"AC", "GTA", SVComplex},
	}
	for _, c := range cases {
		if got := classifySVType(c.ref, c.alt); got != c.want {
			t.Errorf("classifySVType(%q, %q) = %v, want %v", c.ref, c.alt, got, c.want)
		}
	}
}

func TestAddRecordDedupsBySiteKey(t *testing.T) {
	v := New()
	r1 := v.AddRecordFields("chr1", 10, "A", "G", SVNone, GraphNone)
	r2 := v.AddRecordFields("chr1", 10, "A", "G", SVNone, GraphNone)
	if r1 != r2 {
		t.Fatal("expected AddRecordFields to return the existing record for an equal site")
	}
	if len(v.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(v.Records))
	}
}

func TestGetSampleIndexBackfillsExistingRecords(t *testing.T) {
	v := New()
	v.AddRecordFields("chr1", 10, "A", "G", SVNone, GraphNone)
	idx := v.GetSampleIndex("sample1")
	if idx != 0 {
		t.Fatalf("idx = %d, want 0", idx)
	}
	if len(v.Records[0].Samples) != 1 {
		t.Fatalf("existing record should be backfilled with a new sample column")
	}
	if idx2 := v.GetSampleIndex("sample1"); idx2 != 0 {
		t.Fatalf("re-adding the same sample name should return its existing index, got %d", idx2)
	}
}

func TestAddSampleGTSetsGenotype(t *testing.T) {
	v := New()
	v.AddRecordFields("chr1", 10, "A", "G", SVNone, GraphNone)
	v.AddSampleGT("sample1", "chr1", 10, "A", "G")

	idx := v.GetSampleIndex("sample1")
	gt, ok := v.Records[0].Samples[idx].Get(GT)
	if !ok || gt != 1 {
		t.Fatalf("GT = %v, ok=%v, want 1, true", gt, ok)
	}
}

func TestAddSampleGTCreatesRecordForNewAllele(t *testing.T) {
	v := New()
	v.AddSampleGT("sample1", "chr1", 5, "A", "TTT")
	if len(v.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(v.Records))
	}
	if v.Records[0].GraphType != GraphTooManyAlts {
		t.Fatalf("GraphType = %v, want %v", v.Records[0].GraphType, GraphTooManyAlts)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	v := New()
	v.AddRecordFields("chr1", 20, "A", "G", SVNone, GraphNone)
	v.AddRecordFields("chr1", 10, "C", "T", SVNone, GraphNone)
	v.AddSampleGT("s1", "chr1", 10, "C", "T")
	v.AddSampleGT("s1", "chr1", 20, "A", "G")

	path := filepath.Join(t.TempDir(), "out.vcf")
	if err := v.Save(path, SaveFilter{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := New()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !v.Equal(loaded) {
		t.Fatalf("round-tripped VCF does not equal original")
	}
	// Save sorts in place, so records should already come back ordered.
	if loaded.Records[0].Pos != 10 || loaded.Records[1].Pos != 20 {
		t.Fatalf("expected records sorted by position after round trip, got %+v", loaded.Records)
	}
}

func TestSaveFilterBySVType(t *testing.T) {
	v := New()
	v.AddRecordFields("chr1", 10, "A", "G", SVSNP, GraphNone)
	v.AddRecordFields("chr1", 20, "A", "ATT", SVIndel, GraphNone)

	path := filepath.Join(t.TempDir(), "snp-only.vcf")
	if err := v.Save(path, SaveFilter{SNP: true}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded := New()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Records) != 1 || loaded.Records[0].SVType != SVSNP {
		t.Fatalf("expected only the SNP record to survive filtering, got %+v", loaded.Records)
	}
}

func TestWriteAlignedFasta(t *testing.T) {
	v := New()
	v.AddRecordFields("chr1", 4, "G", "T", SVSNP, GraphNone)
	v.AddSampleGT("s1", "chr1", 4, "G", "T")
	v.AddSampleRefAlleles("s2", "chr1", 0, 4)

	lmp := []*localprg.LocalNode{
		{ID: 0, Seq: "AAAA"},
		{ID: 1, Seq: "G"},
		{ID: 2, Seq: "CCCC"},
	}

	path := filepath.Join(t.TempDir(), "aligned.fasta")
	if err := v.WriteAlignedFasta(path, lmp); err != nil {
		t.Fatalf("WriteAlignedFasta: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty FASTA output")
	}
}
