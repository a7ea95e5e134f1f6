// Package kmer implements canonical k-mer hashing and the minimizer
// sketch used to anchor reads to PRGs.
//
// The mixing-hash idiom is grounded on elprep's internal.StringHash
// (a DJB-style string hash used to intern Symbols), generalized here to
// the invertible 64-bit integer mixer and 2-bit-per-base canonical k-mer
// hash described in the C++ pandora prototype's inthash.h.
package kmer

// hash64Mix is Thomas Wang's 64-bit integer hash, an invertible bit
// mixer. It is restricted to mask's low bits by the caller.
func hash64Mix(key uint64) uint64 {
	key = (^key) + (key << 21)
	key = key ^ (key >> 24)
	key = key + (key << 3) + (key << 8)
	key = key ^ (key >> 14)
	key = key + (key << 2) + (key << 4)
	key = key ^ (key >> 28)
	key = key + (key << 31)
	return key
}

// Hash64 is an invertible integer mixer restricted to mask's low bits.
func Hash64(key, mask uint64) uint64 {
	return hash64Mix(key) & mask
}

var baseCode = [256]int8{}

func init() {
	for i := range baseCode {
		baseCode[i] = -1
	}
	baseCode['A'], baseCode['a'] = 0, 0
	baseCode['C'], baseCode['c'] = 1, 1
	baseCode['G'], baseCode['g'] = 2, 2
	baseCode['T'], baseCode['t'] = 3, 3
}

// complementCode maps a 2-bit base code to the 2-bit code of its
// complement (A<->T, C<->G).
var complementCode = [4]uint64{3, 2, 1, 0}

// MaxK is the largest k supported: two bits per base must fit in 64 bits
// with room for the mask used by Hash64.
const MaxK = 32

// Kmerhash computes the canonical hash of the k-length sequence s: s and
// its reverse complement are each encoded 2 bits per base, hashed with
// Hash64, and the smaller of the two hashes is returned. Every base of s
// must be one of A/C/G/T (upper or lower case); it is a contract
// violation otherwise, and the caller is responsible for filtering.
func Kmerhash(s string, k uint32) uint64 {
	if len(s) != int(k) || k == 0 || k > MaxK {
		panic("kmer: invalid k-mer length")
	}
	var fwd, rev uint64
	for i := 0; i < len(s); i++ {
		c := baseCode[s[i]]
		if c < 0 {
			panic("kmer: non-ACGT base in k-mer")
		}
		fwd = (fwd << 2) | uint64(c)
		rc := complementCode[c]
		rev = rev | (rc << uint(2*i))
	}
	mask := uint64(1)<<(2*k) - 1
	hf := Hash64(fwd, mask)
	hr := Hash64(rev, mask)
	if hf < hr {
		return hf
	}
	return hr
}
