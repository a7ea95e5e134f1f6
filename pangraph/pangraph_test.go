package pangraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/exascience/pandora-go/prginterval"
)

func TestPanNodeAddRead(t *testing.T) {
	n := NewPanNode(3)
	n.AddRead(0)
	if len(n.FoundReads) != 1 || n.FoundReads[0] != 0 {
		t.Fatalf("FoundReads = %v, want [0]", n.FoundReads)
	}
	n.AddRead(0)
	if len(n.FoundReads) != 2 {
		t.Fatalf("len(FoundReads) = %d, want 2 (duplicates are kept)", len(n.FoundReads))
	}
	n.AddRead(7)
	if len(n.FoundReads) != 3 || n.FoundReads[2] != 7 {
		t.Fatalf("FoundReads = %v, want [0 0 7]", n.FoundReads)
	}
}

func hit(readID uint32, start, end int32) Hit {
	return Hit{
		ReadID:       readID,
		ReadInterval: prginterval.NewInterval(1, 5),
		PrgID:        0,
		Path:         prginterval.NewPath([]prginterval.Interval{prginterval.NewInterval(start, end)}),
		Strand:       true,
	}
}

func TestPanNodeAddHitsDedupsAndSorts(t *testing.T) {
	n := NewPanNode(2)
	h0 := hit(0, 0, 3)
	h1 := hit(0, 4, 7)
	n.AddHits([]Hit{h0, h1})
	n.AddHits([]Hit{h0}) // exact duplicate, should not grow the set
	if len(n.FoundHits) != 2 {
		t.Fatalf("len(FoundHits) = %d, want 2", len(n.FoundHits))
	}
	if !n.FoundHits[0].Path.Less(n.FoundHits[1].Path) {
		t.Fatalf("FoundHits not sorted by Path: %+v", n.FoundHits)
	}
}

func TestPanNodeEqualityIsIDOnly(t *testing.T) {
	pn1, pn2, pn3 := NewPanNode(3), NewPanNode(2), NewPanNode(2)
	if !pn2.Equal(pn3) {
		t.Fatal("nodes with equal ids should be equal regardless of content")
	}
	if pn1.Equal(pn2) {
		t.Fatal("nodes with different ids should not be equal")
	}
}

func TestPanGraphClusterGroupsConnectedLoci(t *testing.T) {
	g := NewPanGraph()
	g.AddNode(1, 10, nil)
	g.AddNode(2, 10, nil)
	g.AddNode(3, 11, nil)
	g.AddEdge(1, 2)

	clusters := g.Cluster()
	if clusters[1] != clusters[2] {
		t.Fatalf("loci 1 and 2 should share a cluster: %v", clusters)
	}
	if clusters[3] == clusters[1] {
		t.Fatalf("locus 3 should be in its own cluster: %v", clusters)
	}
}

func TestPanGraphEqualIgnoresRepresentativeLabels(t *testing.T) {
	a, b := NewPanGraph(), NewPanGraph()
	for _, g := range []*PanGraph{a, b} {
		g.AddNode(5, 0, nil)
		g.AddNode(6, 0, nil)
		g.AddEdge(5, 6)
	}
	if !a.Equal(b) {
		t.Fatal("expected graphs built identically to be equal")
	}
	b.AddNode(7, 1, nil)
	if a.Equal(b) {
		t.Fatal("expected inequality after adding an extra node to b")
	}
}

func TestPanGraphWriteGFA(t *testing.T) {
	g := NewPanGraph()
	g.AddNode(1, 10, []Hit{hit(10, 0, 3)})
	g.AddNode(2, 10, []Hit{hit(10, 4, 7)})
	g.AddEdge(1, 2)

	path := filepath.Join(t.TempDir(), "pan.gfa")
	if err := g.WriteGFA(path); err != nil {
		t.Fatalf("WriteGFA: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty GFA output")
	}
}
