package kmer

import "testing"

func revcomp(s string) string {
	comp := map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = comp[s[i]]
	}
	return string(out)
}

func TestKmerhashCanonical(t *testing.T) {
	seqs := []string{"ACGTACGTACGTACGT", "AAAACCCCGGGGTTTT", "GATTACA"}
	for _, s := range seqs {
		k := uint32(len(s))
		h1 := Kmerhash(s, k)
		h2 := Kmerhash(revcomp(s), k)
		if h1 != h2 {
			t.Errorf("kmerhash(%q)=%d != kmerhash(revcomp)=%d", s, h1, h2)
		}
	}
}

func TestKmerhashPalindrome(t *testing.T) {
	// ACGT is its own reverse complement.
	h := Kmerhash("ACGT", 4)
	if h != Kmerhash(revcomp("ACGT"), 4) {
		t.Errorf("palindrome hash mismatch")
	}
}

func TestKmerhashPanicsOnNonACGT(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on non-ACGT base")
		}
	}()
	Kmerhash("ACGN", 4)
}
