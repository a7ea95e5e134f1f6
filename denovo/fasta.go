package denovo

import (
	"bufio"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// lineWidth is the FASTA line-wrap width local assembly output uses,
// matching original_source's write_paths_to_fasta default.
const lineWidth = 80

// writeFasta writes sequences (already labeled) to filename, wrapping
// each record's sequence at lineWidth columns, in the line-oriented
// style elprep's fasta package reads back with ParseFasta.
func writeFasta(filename string, sequences map[string]string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	for name, seq := range sequences {
		if _, err = fmt.Fprintf(w, ">%s\n", name); err != nil {
			return err
		}
		for i := 0; i < len(seq); i += lineWidth {
			end := i + lineWidth
			if end > len(seq) {
				end = len(seq)
			}
			if _, err = w.WriteString(seq[i:end]); err != nil {
				return err
			}
			if err = w.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// TempFastaName returns a UUID-keyed filename under dir for a candidate
// region's discovered sequences, so concurrent per-locus workers (§5:
// coarse-grained data parallelism over independent loci) never collide
// on output paths the way a counter or the region's own coordinates
// could under concurrent access.
func TempFastaName(dir string, region CandidateRegion) string {
	return fmt.Sprintf("%s/denovo.%d.%s.fasta", dir, region.PrgID, uuid.New().String())
}
