// Package config holds the option structs the cmd subcommands populate
// from flag.FlagSet and pass down to the orchestrator, the same shape
// elprep's cmd package uses to carry parsed flags into its filter
// pipeline (see cmd/filter.go's Options struct in the teacher).
package config

// IndexOptions configures the `index` subcommand: building the global
// minimizer index and per-locus kmer-PRGs from a PRG collection.
type IndexOptions struct {
	PRGFile   string
	IndexFile string
	W, K      uint32
	Threads   int
	LogPath   string
	Timed     bool
	Profile   string
}

// MapOptions configures the `map` subcommand: building the index from
// the PRG collection in the same run, aligning one sample's reads
// against it and reporting its calls. IndexFile is not read by map.
type MapOptions struct {
	PRGFile   string
	IndexFile string
	ReadFile  string
	Sample    string
	VCFFile   string
	W, K      uint32
	Threads   int
	ErrorRate float64
	ScoreModel string
	MinCovg    uint32
	MinGapLen  int32
	BedFile    string
	LogPath    string
	Timed      bool
	Profile    string
}

// CompareOptions configures the `compare` subcommand: jointly genotyping
// several samples against the same index into one multi-sample VCF,
// mirroring the original tool's own "compare" subcommand.
type CompareOptions struct {
	PRGFile    string
	IndexFile  string
	ReadFiles  []string
	Samples    []string
	VCFFile    string
	W, K       uint32
	Threads    int
	ErrorRate  float64
	ScoreModel string
	LogPath    string
	Timed      bool
	Profile    string
}
