package kmergraph

import (
	"errors"
	"math"
	"math/rand"
)

// ErrNoFeasiblePath is returned by FindMaxPath when the DP cannot reach
// the sink: every node's coverage is zero, or the graph is disconnected
// between source and sink. The caller should skip the locus for this
// sample (§7).
var ErrNoFeasiblePath = errors.New("kmergraph: no feasible source-to-sink path")

const tieEps = 1e-6

// ErrRunawayReconstruction is returned by FindMaxPath when path
// reconstruction exceeds a sanity bound, guarding the linear scoring
// model against the runaway walks a zero/near-zero score can produce.
var ErrRunawayReconstruction = errors.New("kmergraph: path reconstruction exceeded maximum length")

const maxReconstructionLength = 1_000_000

// FindMaxPath computes the maximum-likelihood source-to-sink walk for
// sampleID under the given per-node scoring function, by a DP over nodes
// in reverse topological (= reverse Path) order. The returned score is
// the mean per-node log-likelihood along the walk; ties between walks of
// equal mean are broken in favor of the longer walk. The returned node
// ids exclude the source and sink themselves.
func (cg *CoverageGraph) FindMaxPath(score ScoreFunc, sampleID int) (walk []uint32, meanScore float64, err error) {
	if cg.AllZero(sampleID) {
		return nil, -math.MaxFloat64, ErrNoFeasiblePath
	}

	n := len(cg.Graph.Nodes)
	m := make([]float64, n)
	length := make([]int, n)
	prev := make([]int64, n)
	for i := range prev {
		prev[i] = -1
	}

	sinkID := cg.Graph.Sink().ID
	srcID := cg.Graph.Source().ID
	m[sinkID] = 0
	length[sinkID] = 0

	for i := len(cg.Graph.SortedNodes) - 1; i >= 0; i-- {
		u := cg.Graph.SortedNodes[i]
		if u.ID == sinkID {
			continue
		}
		currentMaxMean := math.Inf(-1)
		currentMaxLen := -1
		for _, vID := range u.Outs {
			var vMean float64
			if vID == sinkID {
				vMean = cg.Thresh
			} else {
				vMean = m[vID] / float64(length[vID])
			}
			update := false
			switch {
			case vID == sinkID && cg.Thresh > currentMaxMean+tieEps:
				update = true
			case vMean > currentMaxMean+tieEps:
				update = true
			case math.Abs(vMean-currentMaxMean) <= tieEps && length[vID] > currentMaxLen:
				update = true
			}
			if !update {
				continue
			}
			inc := 1
			if cg.isBoundary(u.ID) {
				inc = 0
			}
			m[u.ID] = score(u.ID, sampleID) + m[vID]
			length[u.ID] = inc + length[vID]
			prev[u.ID] = int64(vID)
			currentMaxLen = length[vID]
			if vID == sinkID {
				currentMaxMean = cg.Thresh
			} else {
				currentMaxMean = vMean
			}
		}
	}

	if length[srcID] == 0 {
		return nil, -math.MaxFloat64, ErrNoFeasiblePath
	}

	for cur := prev[srcID]; cur >= 0 && uint32(cur) != sinkID; cur = prev[cur] {
		walk = append(walk, uint32(cur))
		if len(walk) > maxReconstructionLength {
			return nil, -math.MaxFloat64, ErrRunawayReconstruction
		}
	}
	return walk, m[srcID] / float64(length[srcID]), nil
}

// RandomPath samples a uniformly random source-to-sink walk, at each
// node choosing uniformly among its out-neighbors, dropping the sink
// from the returned walk. Grounded on elprep's internal.Rand (a
// math/rand-backed PRNG wrapper), reused here as the generator for this
// sampler instead of GATK-Java-compatible reproduction.
func (cg *CoverageGraph) RandomPath(rng *rand.Rand) []uint32 {
	sinkID := cg.Graph.Sink().ID
	var walk []uint32
	cur := cg.Graph.Source().ID
	for cur != sinkID {
		walk = append(walk, cur)
		outs := cg.Graph.Nodes[cur].Outs
		cur = outs[rng.Intn(len(outs))]
	}
	return walk
}
