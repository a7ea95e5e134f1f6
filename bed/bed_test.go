package bed

import (
	"path/filepath"
	"testing"

	"github.com/exascience/pandora-go/utils"
)

func TestWriteParseRoundTrip(t *testing.T) {
	b := NewBed()
	r1, err := NewRegion(utils.Intern("locus7"), 8, 20, []string{"gap1", "500", "+"})
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	r2, err := NewRegion(utils.Intern("locus7"), 0, 4, nil)
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	AddRegion(b, r1)
	AddRegion(b, r2)

	path := filepath.Join(t.TempDir(), "regions.bed")
	if err := WriteBed(b, path); err != nil {
		t.Fatalf("WriteBed: %v", err)
	}

	loaded, err := ParseBed(path)
	if err != nil {
		t.Fatalf("ParseBed: %v", err)
	}
	regions := loaded.RegionMap[utils.Intern("locus7")]
	if len(regions) != 2 {
		t.Fatalf("len(regions) = %d, want 2", len(regions))
	}
	if regions[0].Start != 0 || regions[1].Start != 8 {
		t.Fatalf("regions not sorted by start: %+v", regions)
	}
}

func TestNewRegionRejectsInvalidStrand(t *testing.T) {
	if _, err := NewRegion(utils.Intern("chr1"), 0, 10, []string{"name", "0", "x"}); err == nil {
		t.Fatal("expected error for invalid strand field")
	}
}
