package kmer

import "github.com/exascience/pandora-go/prginterval"

// Seq is the ordered set of minimizers sketched from one read or
// sequence. Grounded on the C++ prototype's seq.cpp.
type Seq struct {
	Minimizers []Minimizer
}

func kmerHashAndStrand(s string, pos int, k uint32) (hash uint64, strand bool) {
	sub := s[pos : pos+int(k)]
	var fwd, rev uint64
	for i := 0; i < len(sub); i++ {
		c := baseCode[sub[i]]
		if c < 0 {
			panic("kmer: non-ACGT base in k-mer")
		}
		fwd = (fwd << 2) | uint64(c)
		rev |= complementCode[c] << uint(2*i)
	}
	mask := uint64(1)<<(2*k) - 1
	hf := Hash64(fwd, mask)
	hr := Hash64(rev, mask)
	if hf <= hr {
		return hf, true
	}
	return hr, false
}

// Sketch computes the minimizer sketch of s for window size w and k-mer
// size k, per the window-minimizer algorithm: for every window of w
// consecutive k-mers, every k-mer achieving the window's minimum hash is
// emitted (ties all count), deduplicated across the whole sketch. If
// s is too short to contain a single window, the sketch is empty.
func Sketch(s string, w, k uint32) Seq {
	n := len(s)
	if n+1 < int(w+k) {
		return Seq{}
	}
	numKmers := n - int(k) + 1
	hashes := make([]uint64, numKmers)
	strands := make([]bool, numKmers)
	for i := 0; i < numKmers; i++ {
		hashes[i], strands[i] = kmerHashAndStrand(s, i, k)
	}

	seen := make(map[Minimizer]struct{})
	var result []Minimizer
	lastWindow := numKmers - int(w)
	for wpos := 0; wpos <= lastWindow; wpos++ {
		min := hashes[wpos]
		for i := 1; i < int(w); i++ {
			if h := hashes[wpos+i]; h < min {
				min = h
			}
		}
		for i := 0; i < int(w); i++ {
			if hashes[wpos+i] != min {
				continue
			}
			start := wpos + i
			m := Minimizer{
				Hash:   min,
				Pos:    prginterval.Interval{Start: int32(start), End: int32(start) + int32(k)},
				Strand: strands[start],
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			result = append(result, m)
		}
	}
	return Seq{Minimizers: result}
}
