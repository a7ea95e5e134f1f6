package bed

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/exascience/pandora-go/utils"
)

// ParseBed parses a BED file. See
// https://genome.ucsc.edu/FAQ/FAQformat.html#format1
func ParseBed(filename string) (*Bed, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	bed := NewBed()
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") ||
			strings.HasPrefix(line, "browser") {
			continue
		}
		if line == "" {
			continue
		}
		data := strings.Split(line, "\t")
		if len(data) < 3 {
			return nil, fmt.Errorf("bed: malformed line %q", line)
		}
		chrom := utils.Intern(data[0])
		start, err := strconv.ParseInt(data[1], 10, 32)
		if err != nil {
			return nil, err
		}
		end, err := strconv.ParseInt(data[2], 10, 32)
		if err != nil {
			return nil, err
		}
		region, err := NewRegion(chrom, int32(start), int32(end), data[3:])
		if err != nil {
			return nil, err
		}
		AddRegion(bed, region)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sortRegions(bed)
	return bed, nil
}

// WriteBed writes bed's regions out in BED order (sorted by start within
// each chromosome), one region per line, chrom/start/end plus whatever
// optional fields each region carries rendered back to their string form.
// Used to export de novo candidate regions (§4.8) for external
// inspection alongside the FASTA sequences local assembly discovers.
func WriteBed(bed *Bed, filename string) (err error) {
	sortRegions(bed)

	chroms := make([]utils.Symbol, 0, len(bed.RegionMap))
	for chrom := range bed.RegionMap {
		chroms = append(chroms, chrom)
	}

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

	for _, chrom := range chroms {
		for _, r := range bed.RegionMap[chrom] {
			if _, err = fmt.Fprintf(w, "%s\t%d\t%d", *chrom, r.Start, r.End); err != nil {
				return err
			}
			for _, field := range r.OptionalFields {
				if sym, ok := field.(utils.Symbol); ok {
					field = *sym
				}
				if _, err = fmt.Fprintf(w, "\t%v", field); err != nil {
					return err
				}
			}
			if _, err = w.WriteString("\n"); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}
