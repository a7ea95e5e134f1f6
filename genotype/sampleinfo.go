package genotype

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrNoGenotype is returned by accessors when the optional field they
// read has never been set (the prototype's boost::none / Option::None).
var ErrNoGenotype = errors.New("genotype: no valid genotype set")

// Likelihood pairs a chosen allele index with the log-likelihood that
// produced it.
type Likelihood struct {
	Index      uint32
	LogLikelihood float64
}

// Confidence is the result of comparing the best and second-best
// allele by likelihood: the best allele's index, the gap between the
// two likelihoods, and the best allele's own log-likelihood.
type Confidence struct {
	Index         uint32
	Value         float64
	MaxLikelihood float64
}

// SampleInfo is the per-site, per-sample genotyping state described in
// §4.6: per-allele, per-base strand-separated coverage, plus the two
// independently derived genotype calls (from the max-likelihood kmer-PRG
// path, and from coverage statistics) that get reconciled when sites of
// different allele arity are merged.
type SampleInfo struct {
	sampleIndex int
	options     *Options

	alleleForwardCovg [][]uint32
	alleleReverseCovg [][]uint32

	gtFromMaxLikelihoodPath *uint32
	gtFromCoverages         *Likelihood
	gtCoveragesCompatible   *uint32
}

// New creates an empty SampleInfo for sampleIndex, sharing options with
// every other sample in the run.
func New(sampleIndex int, options *Options) *SampleInfo {
	return &SampleInfo{sampleIndex: sampleIndex, options: options}
}

func (s *SampleInfo) GetSampleIndex() int { return s.sampleIndex }

func (s *SampleInfo) SetGtFromMaxLikelihoodPath(gt *uint32) {
	if gt == nil {
		s.gtFromMaxLikelihoodPath = nil
		return
	}
	v := *gt
	s.gtFromMaxLikelihoodPath = &v
}

func (s *SampleInfo) IsGtFromMaxLikelihoodPathValid() bool {
	return s.gtFromMaxLikelihoodPath != nil
}

func (s *SampleInfo) GetGtFromMaxLikelihoodPath() (uint32, error) {
	if s.gtFromMaxLikelihoodPath == nil {
		return 0, ErrNoGenotype
	}
	return *s.gtFromMaxLikelihoodPath, nil
}

func (s *SampleInfo) GtFromMaxLikelihoodPathToString() string {
	return optionalToString(s.gtFromMaxLikelihoodPath)
}

func optionalToString(v *uint32) string {
	if v == nil {
		return "."
	}
	return fmt.Sprintf("%d", *v)
}

func (s *SampleInfo) GetAlleleToForwardCoverages() [][]uint32 { return s.alleleForwardCovg }
func (s *SampleInfo) GetAlleleToReverseCoverages() [][]uint32 { return s.alleleReverseCovg }

func (s *SampleInfo) GetNumberOfAlleles() int { return len(s.alleleForwardCovg) }

// AddCoverageInformation records per-base forward and reverse coverage
// for every allele at this site. A contract violation (panic) if fewer
// than two alleles are given, the forward/reverse allele counts differ,
// or any allele's forward and reverse base counts differ.
func (s *SampleInfo) AddCoverageInformation(fwd, rev [][]uint32) {
	if len(fwd) < 2 {
		panic("genotype: add_coverage_information requires at least two alleles")
	}
	if len(fwd) != len(rev) {
		panic("genotype: forward and reverse coverage allele counts differ")
	}
	for a := range fwd {
		if len(fwd[a]) != len(rev[a]) {
			panic(fmt.Sprintf("genotype: allele %d forward/reverse base counts differ", a))
		}
	}
	s.alleleForwardCovg = fwd
	s.alleleReverseCovg = rev
}

// meanTotalCoverage is the mean, over an allele's bases, of forward+
// reverse coverage at that base.
func (s *SampleInfo) meanTotalCoverage(allele uint32) float64 {
	fwd, rev := s.alleleForwardCovg[allele], s.alleleReverseCovg[allele]
	total := make([]float64, len(fwd))
	for i := range fwd {
		total[i] = float64(fwd[i] + rev[i])
	}
	return stat.Mean(total, nil)
}

// GetGaps returns the fraction of allele's bases whose total coverage
// falls below the configured minimum k-mer coverage.
func (s *SampleInfo) GetGaps(allele uint32) float64 {
	fwd, rev := s.alleleForwardCovg[allele], s.alleleReverseCovg[allele]
	if len(fwd) == 0 {
		return 0
	}
	below := 0
	for i := range fwd {
		if fwd[i]+rev[i] < s.options.MinKmerCovg {
			below++
		}
	}
	return float64(below) / float64(len(fwd))
}

// GetMinCoverageThresholdForThisSample is
// max(min_allele_covg, ceil(min_fraction_allele_covg * expected_depth)).
func (s *SampleInfo) GetMinCoverageThresholdForThisSample() uint32 {
	fromFraction := math.Ceil(s.options.MinFractionAlleleCovg * s.options.ExpDepthCovgFor(s.sampleIndex))
	threshold := s.options.MinAlleleCovg
	if fromFraction > threshold {
		threshold = fromFraction
	}
	return uint32(threshold)
}

// ComputeLikelihood is the closed form of §4.6:
//
//	base = -λ + c_others·log(e) - λ·gaps + (1-gaps)·log(1-exp(-λ))
//	if threshold_met: base += c_this·log(λ) - logΓ(c_this+1)
func (s *SampleInfo) ComputeLikelihood(thresholdMet bool, expDepthCovg, cThis, cOthers, errorRate, gaps float64) float64 {
	base := -expDepthCovg +
		cOthers*math.Log(errorRate) -
		expDepthCovg*gaps +
		(1-gaps)*math.Log(1-math.Exp(-expDepthCovg))
	if thresholdMet {
		lgamma, _ := math.Lgamma(cThis + 1)
		base += cThis*math.Log(expDepthCovg) - lgamma
	}
	return base
}

// meanCoverageAboveThreshold returns allele's mean total coverage and
// whether it meets threshold.
func (s *SampleInfo) meanCoverageAboveThreshold(allele uint32, threshold uint32) (float64, bool) {
	mean := s.meanTotalCoverage(allele)
	return mean, mean >= float64(threshold)
}

// GetLikelihoodsForAllAlleles computes one likelihood per allele, using
// that allele's mean coverage as c_this and the sum of the mean
// coverages of the other alleles that meet the sample's coverage
// threshold as c_others (alleles below it contribute 0).
func (s *SampleInfo) GetLikelihoodsForAllAlleles() []float64 {
	n := s.GetNumberOfAlleles()
	threshold := s.GetMinCoverageThresholdForThisSample()

	means := make([]float64, n)
	met := make([]bool, n)
	gated := make([]float64, n)
	var total float64
	for a := 0; a < n; a++ {
		mean, ok := s.meanCoverageAboveThreshold(uint32(a), threshold)
		means[a] = mean
		met[a] = ok
		if ok {
			gated[a] = mean
		}
		total += gated[a]
	}

	expDepth := s.options.ExpDepthCovgFor(s.sampleIndex)
	likelihoods := make([]float64, n)
	for a := 0; a < n; a++ {
		cThis := 0.0
		if met[a] {
			cThis = means[a]
		}
		cOthers := total - gated[a]
		gaps := s.GetGaps(uint32(a))
		likelihoods[a] = s.ComputeLikelihood(met[a], expDepth, cThis, cOthers, s.options.ErrorRate, gaps)
	}
	return likelihoods
}

// GetMeanCoverageBothAlleles is the rounded mean total coverage of
// allele, used by GetConfidence to rank candidates by observed depth.
func (s *SampleInfo) GetMeanCoverageBothAlleles(allele uint32) uint32 {
	return uint32(math.Round(s.meanTotalCoverage(allele)))
}

// GetConfidence ranks alleles by likelihood and reports the gap between
// the best and second-best. Returns nil if both the best and second-best
// fall below the minimum site coverage, or if their coverage difference
// is too small to be informative.
func (s *SampleInfo) GetConfidence() *Confidence {
	likelihoods := s.GetLikelihoodsForAllAlleles()
	order := make([]int, len(likelihoods))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return likelihoods[order[i]] > likelihoods[order[j]] })
	if len(order) < 2 {
		return nil
	}
	best, second := order[0], order[1]
	bestCovg := s.GetMeanCoverageBothAlleles(uint32(best))
	secondCovg := s.GetMeanCoverageBothAlleles(uint32(second))

	if float64(bestCovg) < s.options.MinSiteTotalCovg && float64(secondCovg) < s.options.MinSiteTotalCovg {
		return nil
	}
	diff := math.Abs(float64(bestCovg) - float64(secondCovg))
	if diff < s.options.MinSiteDiffCovg {
		return nil
	}
	return &Confidence{
		Index:         uint32(best),
		Value:         likelihoods[best] - likelihoods[second],
		MaxLikelihood: likelihoods[best],
	}
}

func (s *SampleInfo) GetConfidenceToString() string {
	c := s.GetConfidence()
	if c == nil {
		return "."
	}
	return fmt.Sprintf("%g", c.Value)
}

// GetGenotypeFromCoverage returns the confidence's argmax allele only if
// its confidence clears the configured threshold.
func (s *SampleInfo) GetGenotypeFromCoverage() *Likelihood {
	c := s.GetConfidence()
	if c == nil || c.Value < s.options.ConfidenceThreshold {
		return nil
	}
	return &Likelihood{Index: c.Index, LogLikelihood: c.MaxLikelihood}
}

// GenotypeFromCoverage computes and stores the coverage-based genotype
// call, if the sample's coverage information is present.
func (s *SampleInfo) GenotypeFromCoverage() {
	if s.GetNumberOfAlleles() == 0 {
		return
	}
	s.gtFromCoverages = s.GetGenotypeFromCoverage()
}

func (s *SampleInfo) IsGtFromCoveragesValid() bool { return s.gtFromCoverages != nil }

func (s *SampleInfo) GetGtFromCoverages() (uint32, error) {
	if s.gtFromCoverages == nil {
		return 0, ErrNoGenotype
	}
	return s.gtFromCoverages.Index, nil
}

func (s *SampleInfo) GetLikelihoodOfGtFromCoverages() (float64, error) {
	if s.gtFromCoverages == nil {
		return 0, ErrNoGenotype
	}
	return s.gtFromCoverages.LogLikelihood, nil
}

func (s *SampleInfo) SetGtCoveragesCompatible(gt *uint32) {
	if gt == nil {
		s.gtCoveragesCompatible = nil
		return
	}
	v := *gt
	s.gtCoveragesCompatible = &v
}

func (s *SampleInfo) GetGtCoveragesCompatible() (uint32, error) {
	if s.gtCoveragesCompatible == nil {
		return 0, ErrNoGenotype
	}
	return *s.gtCoveragesCompatible, nil
}

func (s *SampleInfo) IsGtFromCoveragesCompatibleValid() bool { return s.gtCoveragesCompatible != nil }

func (s *SampleInfo) GtFromCoveragesCompatibleToString() string {
	return optionalToString(s.gtCoveragesCompatible)
}

// shiftMergedAlleleIndex maps an allele index from the right-hand side
// of a merge into the merged numbering: index 0 (the shared reference)
// never shifts, every other allele is appended after leftAlleleCount's
// existing alleles.
func shiftMergedAlleleIndex(otherIdx uint32, leftAlleleCount int) uint32 {
	if otherIdx == 0 {
		return 0
	}
	return uint32(leftAlleleCount) + otherIdx - 1
}

// MergeOtherSampleInfoIntoThis appends other's per-allele coverage for
// its non-reference alleles onto this SampleInfo's (other's allele 0 is
// the shared reference and is not appended) and reconciles the two
// gt_from_max_likelihood_path calls (§4.6):
//   - neither valid: stays invalid
//   - exactly one valid: adopt it (shifting the right-hand side's index)
//   - both valid and they agree on the merged index: keep it
//   - both valid and they disagree: fall back to the coverage-based call
func (s *SampleInfo) MergeOtherSampleInfoIntoThis(other *SampleInfo) {
	leftAlleleCount := s.GetNumberOfAlleles()
	if len(other.alleleForwardCovg) > 0 {
		s.alleleForwardCovg = append(s.alleleForwardCovg, other.alleleForwardCovg[1:]...)
		s.alleleReverseCovg = append(s.alleleReverseCovg, other.alleleReverseCovg[1:]...)
	}

	thisValid := s.gtFromMaxLikelihoodPath != nil
	otherValid := other.gtFromMaxLikelihoodPath != nil

	switch {
	case !thisValid && !otherValid:
		return
	case thisValid && !otherValid:
		return
	case !thisValid && otherValid:
		merged := shiftMergedAlleleIndex(*other.gtFromMaxLikelihoodPath, leftAlleleCount)
		s.gtFromMaxLikelihoodPath = &merged
	default:
		merged := shiftMergedAlleleIndex(*other.gtFromMaxLikelihoodPath, leftAlleleCount)
		if merged == *s.gtFromMaxLikelihoodPath {
			return
		}
		if s.gtFromCoverages == nil {
			s.GenotypeFromCoverage()
		}
		resolved, err := s.GetGtFromCoverages()
		if err != nil {
			return
		}
		s.gtFromMaxLikelihoodPath = &resolved
	}
}

// ToString renders the sample's FORMAT column. Exactly one of
// genotypingFromMaxLikelihood / genotypingFromCompatibleCoverage must be
// set, selecting which genotype call populates the leading GT field;
// requesting both or neither is a contract violation.
func (s *SampleInfo) ToString(genotypingFromMaxLikelihood, genotypingFromCompatibleCoverage bool) string {
	if genotypingFromMaxLikelihood == genotypingFromCompatibleCoverage {
		panic("genotype: ToString requires exactly one genotyping source")
	}
	var gt string
	if genotypingFromMaxLikelihood {
		gt = s.GtFromMaxLikelihoodPathToString()
	} else {
		gt = s.GtFromCoveragesCompatibleToString()
	}

	n := s.GetNumberOfAlleles()
	meanFwd := make([]string, n)
	meanRev := make([]string, n)
	medianFwd := make([]string, n)
	medianRev := make([]string, n)
	sumFwd := make([]string, n)
	sumRev := make([]string, n)
	gaps := make([]string, n)
	for a := 0; a < n; a++ {
		fwd, rev := s.alleleForwardCovg[a], s.alleleReverseCovg[a]
		var sf, sr float64
		ffwd := make([]float64, len(fwd))
		frev := make([]float64, len(rev))
		for i := range fwd {
			sf += float64(fwd[i])
			ffwd[i] = float64(fwd[i])
		}
		for i := range rev {
			sr += float64(rev[i])
			frev[i] = float64(rev[i])
		}
		meanFwd[a] = fmt.Sprintf("%d", int64(math.Round(stat.Mean(ffwd, nil))))
		meanRev[a] = fmt.Sprintf("%d", int64(math.Round(stat.Mean(frev, nil))))
		medianFwd[a] = fmt.Sprintf("%d", int64(math.Round(medianOf(ffwd))))
		medianRev[a] = fmt.Sprintf("%d", int64(math.Round(medianOf(frev))))
		sumFwd[a] = fmt.Sprintf("%d", int64(sf))
		sumRev[a] = fmt.Sprintf("%d", int64(sr))
		gaps[a] = fmt.Sprintf("%g", s.GetGaps(uint32(a)))
	}

	out := gt
	for _, col := range [][]string{meanFwd, meanRev, medianFwd, medianRev, sumFwd, sumRev, gaps} {
		out += ":" + joinComma(col)
	}

	if genotypingFromCompatibleCoverage {
		likelihoods := s.GetLikelihoodsForAllAlleles()
		ls := make([]string, len(likelihoods))
		for i, l := range likelihoods {
			ls[i] = fmt.Sprintf("%g", l)
		}
		out += ":" + joinComma(ls)
		out += ":" + s.GetConfidenceToString()
	}
	return out
}

// medianOf returns the median of values, via gonum's empirical quantile
// over a sorted copy (so the caller's slice order is left untouched).
func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

func joinComma(ss []string) string {
	out := ""
	for i, v := range ss {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out
}
