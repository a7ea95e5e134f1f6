package kmergraph

import "math"

// lognchoosek2 is the log of the multinomial coefficient n!/(a!b!(n-a-b)!).
//
// No library in the retrieved pack (nor gonum v0.8.2's distuv, which has
// no Multinomial distribution) exposes a multinomial log-pmf helper; this
// is computed directly from the standard library's math.Lgamma, the same
// primitive gonum's own distuv implementations are built on.
func lognchoosek2(n, a, b uint32) float64 {
	if a+b > n {
		n = a + b
	}
	lg := func(x uint32) float64 {
		v, _ := math.Lgamma(float64(x) + 1)
		return v
	}
	return lg(n) - lg(a) - lg(b) - lg(n-a-b)
}

// ScoreFunc scores one node for one sample, returning a log-likelihood
// contribution used by the DP of FindMaxPath.
type ScoreFunc func(nodeID uint32, sampleID int) float64

func (cg *CoverageGraph) isBoundary(nodeID uint32) bool {
	return nodeID == cg.Graph.Source().ID || nodeID == cg.Graph.Sink().ID
}

// Prob is the binomial-with-error scoring model. Source and sink always
// score 0. When observed coverage c exceeds the number of reads n (the
// "degenerate case" noted in the specification), the multinomial
// coefficient is taken over c trials instead of n so the formula stays
// well defined.
func (cg *CoverageGraph) Prob(nodeID uint32, sampleID int) float64 {
	if cg.isBoundary(nodeID) {
		return 0
	}
	covg := cg.covg[nodeID][sampleID]
	c := covg.Total()
	n := cg.NumReads
	p := cg.P
	if c > n {
		return lognchoosek2(c, covg.Fwd, covg.Rev) + float64(c)*math.Log(p/2)
	}
	return lognchoosek2(n, covg.Fwd, covg.Rev) +
		float64(c)*math.Log(p/2) +
		float64(n-c)*math.Log(1-p)
}

// negBinomLogPMF is log(NegBin(r,p).pmf(c)) for a possibly non-integer r,
// via the gamma-function generalization
// pmf(c) = Gamma(c+r)/(Gamma(r)*c!) * p^r * (1-p)^c.
func negBinomLogPMF(c uint32, r, p float64) float64 {
	lgCR, _ := math.Lgamma(float64(c) + r)
	lgR, _ := math.Lgamma(r)
	lgC1, _ := math.Lgamma(float64(c) + 1)
	return lgCR - lgR - lgC1 + r*math.Log(p) + float64(c)*math.Log(1-p)
}

// NbProb is the negative-binomial scoring model, clamped above
// -math.MaxFloat64/1000 to keep the DP's arithmetic finite.
func (cg *CoverageGraph) NbProb(nodeID uint32, sampleID int) float64 {
	if cg.isBoundary(nodeID) {
		return 0
	}
	c := cg.covg[nodeID][sampleID].Total()
	v := negBinomLogPMF(c, cg.NbR, cg.NbP)
	floor := -math.MaxFloat64 / 1000
	if v < floor {
		return floor
	}
	return v
}

// LinProb is the linear scoring model: log(c / num_reads).
func (cg *CoverageGraph) LinProb(nodeID uint32, sampleID int) float64 {
	if cg.isBoundary(nodeID) {
		return 0
	}
	c := cg.covg[nodeID][sampleID].Total()
	return math.Log(float64(c) / float64(cg.NumReads))
}
