package genotype

// Samples is the per-site ordered collection of SampleInfo, one per
// sample column of a VCF record. Index in the slice is the sample's
// column index, mirroring the C++ prototype's SampleIndexToSampleInfo.
type Samples []*SampleInfo

// AppendEmpty appends n freshly constructed, empty SampleInfos sharing
// options, continuing the index numbering from the current length.
func (ss *Samples) AppendEmpty(n int, options *Options) {
	start := len(*ss)
	for i := 0; i < n; i++ {
		*ss = append(*ss, New(start+i, options))
	}
}

// MergeOtherSamplesInfosIntoThis merges other into this sample-by-sample
// by index; both collections must have the same number of samples.
func (ss Samples) MergeOtherSamplesInfosIntoThis(other Samples) {
	if len(ss) != len(other) {
		panic("genotype: cannot merge sample collections of different size")
	}
	for i := range ss {
		ss[i].MergeOtherSampleInfoIntoThis(other[i])
	}
}

// ToString renders every sample's FORMAT column, tab-separated.
func (ss Samples) ToString(genotypingFromMaxLikelihood, genotypingFromCompatibleCoverage bool) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += "\t"
		}
		out += s.ToString(genotypingFromMaxLikelihood, genotypingFromCompatibleCoverage)
	}
	return out
}
