package kmergraph

import (
	"math"
	"math/rand"
	"testing"

	"github.com/exascience/pandora-go/prginterval"
)

func linearKmerGraph(k int) (*KmerGraph, []uint32) {
	g := NewKmerGraph()
	ids := make([]uint32, 5)
	ids[0] = g.AddNode(SourcePath())
	for i := 1; i <= 3; i++ {
		ids[i] = g.AddNode(prginterval.NewPath([]prginterval.Interval{
			prginterval.NewInterval(int32(i*k), int32(i*k+k)),
		}))
	}
	ids[4] = g.AddNode(SinkPath())
	for i := 0; i < 4; i++ {
		g.AddEdge(ids[i], ids[i+1])
	}
	return g, ids
}

func TestFindMaxPathLinearLocus(t *testing.T) {
	const k = 15
	g, ids := linearKmerGraph(k)
	cg := NewCoverageGraph(g, 1)
	cg.NumReads = 10
	cg.SetP(0.01, k)
	cg.Thresh = -math.MaxFloat64 / 2 // never preferable to a real walk

	coverages := []uint32{0, 5, 5, 5, 0}
	for i, c := range coverages {
		for j := uint32(0); j < c; j++ {
			cg.AddCoverage(ids[i], 0, j%2 == 0)
		}
	}

	walk, mean, err := cg.FindMaxPath(cg.Prob, 0)
	if err != nil {
		t.Fatalf("FindMaxPath: %v", err)
	}
	if len(walk) != 3 || walk[0] != ids[1] || walk[1] != ids[2] || walk[2] != ids[3] {
		t.Fatalf("walk = %v, want [%d %d %d]", walk, ids[1], ids[2], ids[3])
	}

	want := (cg.Prob(ids[1], 0) + cg.Prob(ids[2], 0) + cg.Prob(ids[3], 0)) / 3
	if math.Abs(mean-want) > 1e-9 {
		t.Fatalf("mean = %v, want %v", mean, want)
	}
}

func TestFindMaxPathAllZeroCoverageIsInfeasible(t *testing.T) {
	g, _ := linearKmerGraph(15)
	cg := NewCoverageGraph(g, 1)
	cg.NumReads = 10
	cg.SetP(0.01, 15)

	_, mean, err := cg.FindMaxPath(cg.Prob, 0)
	if err != ErrNoFeasiblePath {
		t.Fatalf("err = %v, want ErrNoFeasiblePath", err)
	}
	if mean != -math.MaxFloat64 {
		t.Fatalf("mean = %v, want sentinel", mean)
	}
}

func TestRandomPathStaysWithinBounds(t *testing.T) {
	g, ids := linearKmerGraph(15)
	cg := NewCoverageGraph(g, 1)
	rng := rand.New(rand.NewSource(1))
	walk := cg.RandomPath(rng)
	if len(walk) != 4 {
		t.Fatalf("len(walk) = %d, want 4 (source + 3 interior)", len(walk))
	}
	if walk[0] != ids[0] {
		t.Fatalf("walk[0] = %d, want source id %d", walk[0], ids[0])
	}
	for _, id := range walk {
		if id == ids[4] {
			t.Fatalf("RandomPath must not include the sink, got walk %v", walk)
		}
	}
}
