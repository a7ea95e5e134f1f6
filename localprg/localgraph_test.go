package localprg

import (
	"testing"

	"github.com/exascience/pandora-go/prginterval"
)

func buildBubble() *LocalGraph {
	g := NewLocalGraph()
	g.AddNode(0, "AA", prginterval.NewInterval(0, 2))
	g.AddNode(1, "C", prginterval.NewInterval(2, 3))
	g.AddNode(2, "G", prginterval.NewInterval(2, 3))
	g.AddNode(3, "TT", prginterval.NewInterval(3, 5))
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)
	return g
}

func TestWalksEnumeratesAllAlleles(t *testing.T) {
	g := buildBubble()
	walks := g.Walks()
	if len(walks) != 2 {
		t.Fatalf("expected 2 walks through a biallelic bubble, got %d", len(walks))
	}
	seqs := map[string]bool{}
	for _, w := range walks {
		seqs[g.WalkSequence(w)] = true
	}
	if !seqs["AACTT"] || !seqs["AAGTT"] {
		t.Fatalf("unexpected walk sequences: %v", seqs)
	}
}

func TestSourceAndSink(t *testing.T) {
	g := buildBubble()
	if g.Source().ID != 0 {
		t.Errorf("expected source 0, got %d", g.Source().ID)
	}
	if g.Sink().ID != 3 {
		t.Errorf("expected sink 3, got %d", g.Sink().ID)
	}
}
