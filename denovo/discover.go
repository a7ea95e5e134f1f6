package denovo

import "fmt"

// DiscoverOptions bounds one local-assembly attempt: MaxLength caps a
// returned sequence's length, MaxPaths caps how many sequences DFS may
// return before giving up with ErrTooManyPaths.
type DiscoverOptions struct {
	MaxLength int
	MaxPaths  int
}

// Discover runs asm.Assemble between region's anchor k-mers and writes
// every sequence DFS finds to a FASTA file under outDir, one record per
// discovered path named "<prg_id>_<index>". It returns the FASTA path on
// success. ErrNoPath/ErrTooManyPaths from the assembler propagate
// unchanged; the de novo layer is expected to skip the region on either
// and move on to the next, per §4.8.
func Discover(region CandidateRegion, asm Assembler, outDir string, opts DiscoverOptions) (string, error) {
	paths, err := asm.Assemble(region.StartKmer, region.EndKmer, opts.MaxLength, opts.MaxPaths)
	if err != nil {
		return "", err
	}

	sequences := make(map[string]string, len(paths))
	for i, seq := range paths {
		sequences[fmt.Sprintf("%d_%d", region.PrgID, i)] = seq
	}

	out := TempFastaName(outDir, region)
	if err := writeFasta(out, sequences); err != nil {
		return "", err
	}
	return out, nil
}
