// Package genotype implements the per-site, per-sample genotyping state
// machine (§4.6): coverage bookkeeping per allele, the three scoring
// terms that feed compute_likelihood, confidence thresholding between
// the best and second-best allele, and the conflict-resolution rule used
// when two sites of different allele arity are merged.
//
// Grounded on original_source/test/sampleinfo_test.cpp, which exercises
// a SampleInfo type absent from the retrieved include/ headers; the
// field layout and arithmetic below are reconstructed from that test's
// expected values.
package genotype

// Options holds the population- and sample-level parameters a SampleInfo
// needs to compute coverage thresholds, likelihoods and confidence.
// Shared by reference across every SampleInfo in a run, mirroring the
// prototype's GenotypingOptions passed by pointer.
type Options struct {
	SampleExpDepthCovg    []float64
	ErrorRate             float64
	ConfidenceThreshold   float64
	MinAlleleCovg         float64
	MinFractionAlleleCovg float64
	MinSiteTotalCovg      float64
	MinSiteDiffCovg       float64
	MinKmerCovg           uint32
	IgnoreReadLength      bool
}

// ExpDepthCovgFor returns the expected per-base depth of coverage
// configured for sampleIndex.
func (o *Options) ExpDepthCovgFor(sampleIndex int) float64 {
	return o.SampleExpDepthCovg[sampleIndex]
}
