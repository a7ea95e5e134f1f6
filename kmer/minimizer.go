package kmer

import "github.com/exascience/pandora-go/prginterval"

// Minimizer is a minimizer sourced from a read, not from a PRG (compare
// MiniRecord, which additionally records where in a PRG's kmer-graph the
// same hash was seen). Grounded on the C++ prototype's minimizer.h.
type Minimizer struct {
	Hash   uint64
	Pos    prginterval.Interval
	Strand bool
}

// Less orders minimizers by (Hash, Pos, Strand), giving Seq's sketch a
// stable dedup/iteration order.
func (m Minimizer) Less(other Minimizer) bool {
	if m.Hash != other.Hash {
		return m.Hash < other.Hash
	}
	if !m.Pos.Equal(other.Pos) {
		return m.Pos.Less(other.Pos)
	}
	return !m.Strand && other.Strand
}

// MiniRecord records that a minimizer hash appears in PRG PrgID at Path,
// as k-mer-graph node KnodeID.
type MiniRecord struct {
	PrgID   uint32
	Path    prginterval.Path
	KnodeID uint32
	Strand  bool
}

// Equal reports whether two records describe the same PRG position, used
// by Index.AddRecord to dedup within a hash bucket.
func (r MiniRecord) Equal(other MiniRecord) bool {
	return r.PrgID == other.PrgID &&
		r.KnodeID == other.KnodeID &&
		r.Strand == other.Strand &&
		r.Path.Equal(other.Path)
}
