package genotype

import (
	"math"
	"testing"
)

func u32(v uint32) *uint32 { return &v }

func defaultOptions() *Options {
	return &Options{
		SampleExpDepthCovg: []float64{1, 1},
		ErrorRate:          0.01,
	}
}

func TestGtFromMaxLikelihoodPathLifecycle(t *testing.T) {
	s := New(0, defaultOptions())
	if s.IsGtFromMaxLikelihoodPathValid() {
		t.Fatal("fresh SampleInfo should have no max-likelihood genotype")
	}
	if _, err := s.GetGtFromMaxLikelihoodPath(); err != ErrNoGenotype {
		t.Fatalf("err = %v, want ErrNoGenotype", err)
	}
	if got := s.GtFromMaxLikelihoodPathToString(); got != "." {
		t.Fatalf("ToString() = %q, want %q", got, ".")
	}

	s.SetGtFromMaxLikelihoodPath(u32(5))
	if !s.IsGtFromMaxLikelihoodPathValid() {
		t.Fatal("should be valid after Set")
	}
	if got, _ := s.GetGtFromMaxLikelihoodPath(); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}

	s.SetGtFromMaxLikelihoodPath(nil)
	if s.IsGtFromMaxLikelihoodPathValid() {
		t.Fatal("should be invalid again after clearing")
	}
}

func TestAddCoverageInformationRejectsTooFewAlleles(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for fewer than two alleles")
		}
	}()
	New(0, defaultOptions()).AddCoverageInformation([][]uint32{{1, 2}}, [][]uint32{{1, 2}})
}

func TestAddCoverageInformationRejectsMismatchedBaseCounts(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for mismatched base counts")
		}
	}()
	New(0, defaultOptions()).AddCoverageInformation(
		[][]uint32{{1, 2}, {3, 4}},
		[][]uint32{{1, 2}, {3}},
	)
}

func TestComputeLikelihoodMatchesClosedForm(t *testing.T) {
	s := New(0, defaultOptions())
	const (
		expDepth = 10.0
		cThis    = 4.0
		cOthers  = 100.0
		errRate  = 0.05
		gaps     = 0.02
	)
	lgamma, _ := math.Lgamma(cThis + 1)

	wantMet := -expDepth + cThis*math.Log(expDepth) - lgamma +
		cOthers*math.Log(errRate) - expDepth*gaps + math.Log(1-math.Exp(-expDepth))*(1-gaps)
	if got := s.ComputeLikelihood(true, expDepth, cThis, cOthers, errRate, gaps); math.Abs(got-wantMet) > 1e-9 {
		t.Fatalf("threshold met: got %v, want %v", got, wantMet)
	}

	wantNotMet := -expDepth + cOthers*math.Log(errRate) - expDepth*gaps + math.Log(1-math.Exp(-expDepth))*(1-gaps)
	if got := s.ComputeLikelihood(false, expDepth, cThis, cOthers, errRate, gaps); math.Abs(got-wantNotMet) > 1e-9 {
		t.Fatalf("threshold not met: got %v, want %v", got, wantNotMet)
	}
}

func TestGetGapsFractionBelowThreshold(t *testing.T) {
	opts := &Options{SampleExpDepthCovg: []float64{1}, MinKmerCovg: 10}
	s := New(0, opts)
	s.AddCoverageInformation(
		[][]uint32{{0, 0, 0}, {9, 10, 11, 9, 10, 9}},
		[][]uint32{{9, 10, 11}, {0, 0, 0, 0, 0, 0}},
	)
	if got := s.GetGaps(0); math.Abs(got-1.0/3.0) > 1e-9 {
		t.Fatalf("allele 0 gaps = %v, want 1/3", got)
	}
	if got := s.GetGaps(1); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("allele 1 gaps = %v, want 0.5", got)
	}
}

func TestGetMinCoverageThresholdForThisSample(t *testing.T) {
	opts := &Options{SampleExpDepthCovg: []float64{10, 5}, MinAlleleCovg: 100, MinFractionAlleleCovg: 1.0}
	s := New(0, opts)
	if got := s.GetMinCoverageThresholdForThisSample(); got != 100 {
		t.Fatalf("min_allele_covg should dominate: got %d, want 100", got)
	}

	opts2 := &Options{SampleExpDepthCovg: []float64{10, 100}, MinAlleleCovg: 40, MinFractionAlleleCovg: 0.5}
	s2 := New(1, opts2)
	if got := s2.GetMinCoverageThresholdForThisSample(); got != 50 {
		t.Fatalf("min_fraction_allele_covg should dominate: got %d, want 50", got)
	}
}

func TestGetLikelihoodsForAllAllelesSimpleCase(t *testing.T) {
	s := New(0, defaultOptions())
	s.AddCoverageInformation([][]uint32{{1}, {2}}, [][]uint32{{1}, {2}})
	got := s.GetLikelihoodsForAllAlleles()

	want0 := -1.0 - math.Log(2.0) + 4.0*math.Log(0.01) + math.Log(1-math.Exp(-1.0))
	if math.Abs(got[0]-want0) > 1e-5 {
		t.Fatalf("likelihood[0] = %v, want %v", got[0], want0)
	}
	want1 := -1 - math.Log(4) - math.Log(3) - math.Log(2) + 2*math.Log(0.01) + math.Log(1-math.Exp(-1.0))
	if math.Abs(got[1]-want1) > 1e-5 {
		t.Fatalf("likelihood[1] = %v, want %v", got[1], want1)
	}
}

func TestGetConfidenceThresholdsOnTotalAndDifference(t *testing.T) {
	// Reconstructed by direct injection of pre-computed per-allele means,
	// mirroring the likelihood ranking the C++ mocks exercise directly.
	opts := &Options{SampleExpDepthCovg: []float64{1, 1, 1}, ErrorRate: 0.01, MinSiteTotalCovg: 50, MinSiteDiffCovg: 100}
	mk := func(fwd [][]uint32) *SampleInfo {
		s := New(0, opts)
		rev := make([][]uint32, len(fwd))
		for i := range fwd {
			rev[i] = make([]uint32, len(fwd[i]))
		}
		s.AddCoverageInformation(fwd, rev)
		return s
	}

	// Allele mean coverages 30 and 10: both below MinSiteTotalCovg.
	s := mk([][]uint32{{0}, {30}, {10}})
	if c := s.GetConfidence(); c != nil {
		t.Fatalf("expected no confidence when both candidates are below the site-total threshold, got %+v", c)
	}

	// 100/199: enough total coverage but too close together.
	s = mk([][]uint32{{0}, {100}, {199}})
	if c := s.GetConfidence(); c != nil {
		t.Fatalf("expected no confidence when coverage difference is below threshold, got %+v", c)
	}

	// 200/100: clears both thresholds.
	s = mk([][]uint32{{0}, {200}, {100}})
	if c := s.GetConfidence(); c == nil {
		t.Fatal("expected a confidence result")
	}
}

func TestGetGenotypeFromCoverageRequiresThreshold(t *testing.T) {
	opts := &Options{SampleExpDepthCovg: []float64{1, 1, 1}, ErrorRate: 0.01, ConfidenceThreshold: 1e9}
	s := New(0, opts)
	s.AddCoverageInformation([][]uint32{{0}, {200}, {1}}, [][]uint32{{0}, {0}, {0}})

	if c := s.GetConfidence(); c == nil {
		t.Fatal("expected confidence")
	}
	if got := s.GetGenotypeFromCoverage(); got != nil {
		t.Fatalf("expected nil genotype below an unreachably high confidence threshold, got %+v", got)
	}
}

func TestMergeAlleleIndexShift(t *testing.T) {
	cases := []struct {
		otherIdx        uint32
		leftAlleleCount int
		want            uint32
	}{
		{0, 2, 0},
		{1, 2, 2},
		{2, 2, 3},
	}
	for _, c := range cases {
		if got := shiftMergedAlleleIndex(c.otherIdx, c.leftAlleleCount); got != c.want {
			t.Errorf("shiftMergedAlleleIndex(%d, %d) = %d, want %d", c.otherIdx, c.leftAlleleCount, got, c.want)
		}
	}
}

func twoAndThreeAlleleSamples() (two, three *SampleInfo) {
	opts := defaultOptions()
	two = New(0, opts)
	two.AddCoverageInformation([][]uint32{{1, 2}, {3, 4}}, [][]uint32{{1, 2}, {3, 4}})
	three = New(0, opts)
	three.AddCoverageInformation([][]uint32{{1, 2}, {5, 6}, {7, 8}}, [][]uint32{{1, 2}, {5, 6}, {7, 8}})
	return
}

func TestMergeSameGenotypeStaysUnchanged(t *testing.T) {
	two, three := twoAndThreeAlleleSamples()
	two.SetGtFromMaxLikelihoodPath(u32(0))
	three.SetGtFromMaxLikelihoodPath(u32(0))

	two.MergeOtherSampleInfoIntoThis(three)

	wantCovg := [][]uint32{{1, 2}, {3, 4}, {5, 6}, {7, 8}}
	if !equalCovg(two.GetAlleleToForwardCoverages(), wantCovg) {
		t.Fatalf("merged forward coverage = %v, want %v", two.GetAlleleToForwardCoverages(), wantCovg)
	}
	if got, _ := two.GetGtFromMaxLikelihoodPath(); got != 0 {
		t.Fatalf("merged GT = %d, want 0", got)
	}
}

func TestMergeBothInvalidStaysInvalid(t *testing.T) {
	two, three := twoAndThreeAlleleSamples()
	two.MergeOtherSampleInfoIntoThis(three)
	if two.IsGtFromMaxLikelihoodPathValid() {
		t.Fatal("expected merged GT to remain invalid")
	}
}

func TestMergeOnlyLeftValidKeepsLeft(t *testing.T) {
	two, three := twoAndThreeAlleleSamples()
	two.SetGtFromMaxLikelihoodPath(u32(1))
	two.MergeOtherSampleInfoIntoThis(three)
	if got, _ := two.GetGtFromMaxLikelihoodPath(); got != 1 {
		t.Fatalf("merged GT = %d, want 1", got)
	}
}

func TestMergeOnlyRightValidShiftsIndex(t *testing.T) {
	for _, tc := range []struct{ otherIdx, want uint32 }{{0, 0}, {1, 2}, {2, 3}} {
		two, three := twoAndThreeAlleleSamples()
		three.SetGtFromMaxLikelihoodPath(u32(tc.otherIdx))
		two.MergeOtherSampleInfoIntoThis(three)
		if got, _ := two.GetGtFromMaxLikelihoodPath(); got != tc.want {
			t.Fatalf("otherIdx=%d: merged GT = %d, want %d", tc.otherIdx, got, tc.want)
		}
	}
}

func equalCovg(a, b [][]uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
