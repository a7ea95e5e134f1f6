package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/exascience/pandora-go/prginterval"
)

func samplePath() prginterval.Path {
	return prginterval.NewPath([]prginterval.Interval{prginterval.NewInterval(10, 25)})
}

func TestAddRecordDedups(t *testing.T) {
	idx := New()
	idx.AddRecord(42, 1, samplePath(), 3, true)
	idx.AddRecord(42, 1, samplePath(), 3, true)
	if got := len(idx.RecordsFor(42)); got != 1 {
		t.Fatalf("len(RecordsFor(42)) = %d, want 1 (duplicate insert should be a no-op)", got)
	}
	idx.AddRecord(42, 1, samplePath(), 3, false)
	if got := len(idx.RecordsFor(42)); got != 2 {
		t.Fatalf("len(RecordsFor(42)) = %d, want 2 after a genuinely distinct record", got)
	}
}

func TestIndexEqualIgnoresBucketOrder(t *testing.T) {
	a, b := New(), New()
	a.AddRecord(1, 0, samplePath(), 0, true)
	a.AddRecord(2, 0, samplePath(), 1, false)
	b.AddRecord(2, 0, samplePath(), 1, false)
	b.AddRecord(1, 0, samplePath(), 0, true)
	if !a.Equal(b) {
		t.Fatal("expected equal indexes regardless of insertion order")
	}
	b.AddRecord(3, 0, samplePath(), 2, true)
	if a.Equal(b) {
		t.Fatal("expected inequality after adding an extra record to b")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	idx := New()
	idx.AddRecord(100, 0, prginterval.NewPath(nil), 0, true)
	idx.AddRecord(100, 1, samplePath(), 5, false)
	idx.AddRecord(200, 2, prginterval.NewPath([]prginterval.Interval{
		prginterval.NewInterval(0, 10),
		prginterval.NewInterval(20, 30),
	}), 9, true)

	path := filepath.Join(t.TempDir(), "index.kidx")
	if err := idx.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !idx.Equal(loaded) {
		t.Fatalf("round-tripped index does not equal original")
	}

	mmapped, closer, err := LoadMmap(path)
	if err != nil {
		t.Fatalf("LoadMmap: %v", err)
	}
	defer closer()
	if !idx.Equal(mmapped) {
		t.Fatalf("mmap-loaded index does not equal original")
	}
}

func TestLoadMmapEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.kidx")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	idx, closer, err := LoadMmap(path)
	if err != nil {
		t.Fatalf("LoadMmap on empty file: %v", err)
	}
	defer closer()
	if idx.Buckets() != 0 {
		t.Fatalf("Buckets() = %d, want 0", idx.Buckets())
	}
}
