// Package index implements the global minimizer index (§4.3): a
// mapping from canonical k-mer hash to every graph position at which
// that k-mer occurs, built once from a PRG collection and consulted on
// every read during alignment.
package index

import (
	"sync"

	"github.com/exascience/pandora-go/kmer"
	"github.com/exascience/pandora-go/prginterval"
)

// Index maps a canonical k-mer hash to the set of MiniRecords recorded
// under it. Per §5, the map itself is write-shared only during
// construction; a single mutex protects bucket insertion, matching the
// "single lock at index-insertion" concurrency contract of §4.3.
type Index struct {
	mu      sync.Mutex
	minhash map[uint64][]kmer.MiniRecord
}

// New returns an empty Index.
func New() *Index {
	return &Index{minhash: make(map[uint64][]kmer.MiniRecord)}
}

// Clear empties the index, releasing every bucket.
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.minhash = make(map[uint64][]kmer.MiniRecord)
}

// Buckets returns the number of distinct hashes recorded. Intended for
// diagnostics and tests, not the hot insertion path.
func (idx *Index) Buckets() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.minhash)
}

// RecordsFor returns a copy of the records stored under hash, or nil if
// hash was never recorded.
func (idx *Index) RecordsFor(hash uint64) []kmer.MiniRecord {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	recs := idx.minhash[hash]
	out := make([]kmer.MiniRecord, len(recs))
	copy(out, recs)
	return out
}

// AddRecord appends a MiniRecord under hash unless an equal record
// (same prg_id, path, knode_id, strand) is already present, per §4.3's
// add_record contract.
func (idx *Index) AddRecord(hash uint64, prgID uint32, path prginterval.Path, knodeID uint32, strand bool) {
	rec := kmer.MiniRecord{PrgID: prgID, Path: path, KnodeID: knodeID, Strand: strand}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	bucket := idx.minhash[hash]
	for _, existing := range bucket {
		if existing.Equal(rec) {
			return
		}
	}
	idx.minhash[hash] = append(bucket, rec)
}

// Equal reports bucket-by-bucket set equality with other, per §8's
// index round-trip invariant.
func (idx *Index) Equal(other *Index) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	other.mu.Lock()
	defer other.mu.Unlock()

	if len(idx.minhash) != len(other.minhash) {
		return false
	}
	for hash, recs := range idx.minhash {
		otherRecs, ok := other.minhash[hash]
		if !ok || len(recs) != len(otherRecs) {
			return false
		}
		for _, r := range recs {
			found := false
			for _, or := range otherRecs {
				if r.Equal(or) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}
