package index

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/exascience/pandora-go/kmer"
	"github.com/exascience/pandora-go/prginterval"
)

// encodePath renders a Path as "start,end;start,end;…", the same
// interval-list dialect kmergraph's GFA encoder uses, since both are
// addressing the same PRG-global coordinate space.
func encodePath(p prginterval.Path) string {
	var b strings.Builder
	for i, iv := range p.Intervals {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%d,%d", iv.Start, iv.End)
	}
	return b.String()
}

func decodePath(s string) (prginterval.Path, error) {
	if s == "" {
		return prginterval.NewPath(nil), nil
	}
	parts := strings.Split(s, ";")
	ivs := make([]prginterval.Interval, len(parts))
	for i, part := range parts {
		se := strings.SplitN(part, ",", 2)
		if len(se) != 2 {
			return prginterval.Path{}, fmt.Errorf("index: malformed path interval %q", part)
		}
		start, err := strconv.ParseInt(se[0], 10, 32)
		if err != nil {
			return prginterval.Path{}, err
		}
		end, err := strconv.ParseInt(se[1], 10, 32)
		if err != nil {
			return prginterval.Path{}, err
		}
		ivs[i] = prginterval.Interval{Start: int32(start), End: int32(end)}
	}
	return prginterval.NewPath(ivs), nil
}

func encodeRecord(r kmer.MiniRecord) string {
	strand := 0
	if r.Strand {
		strand = 1
	}
	return fmt.Sprintf("%d,%d,%s,%d", r.PrgID, r.KnodeID, encodePath(r.Path), strand)
}

func decodeRecord(s string) (kmer.MiniRecord, error) {
	// The path itself contains commas, so split off prg and knode ids
	// first and take the strand from after the last comma.
	fields := strings.SplitN(s, ",", 3)
	if len(fields) != 3 {
		return kmer.MiniRecord{}, fmt.Errorf("index: malformed record %q", s)
	}
	cut := strings.LastIndexByte(fields[2], ',')
	if cut < 0 {
		return kmer.MiniRecord{}, fmt.Errorf("index: malformed record %q", s)
	}
	fields = append(fields[:2], fields[2][:cut], fields[2][cut+1:])
	prgID, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return kmer.MiniRecord{}, err
	}
	knodeID, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return kmer.MiniRecord{}, err
	}
	path, err := decodePath(fields[2])
	if err != nil {
		return kmer.MiniRecord{}, err
	}
	strandFlag, err := strconv.ParseUint(fields[3], 10, 8)
	if err != nil {
		return kmer.MiniRecord{}, err
	}
	return kmer.MiniRecord{
		PrgID:   uint32(prgID),
		Path:    path,
		KnodeID: uint32(knodeID),
		Strand:  strandFlag != 0,
	}, nil
}

// Save writes idx to path in the on-disk dialect of §6: one line per
// hash bucket, "hash\tcount\trecord\trecord\t…", each record encoded as
// "prg_id,knode_id,path,strand".
func (idx *Index) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)

	idx.mu.Lock()
	hashes := make([]uint64, 0, len(idx.minhash))
	for h := range idx.minhash {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	for _, h := range hashes {
		recs := idx.minhash[h]
		if _, err = fmt.Fprintf(w, "%d\t%d", h, len(recs)); err != nil {
			idx.mu.Unlock()
			return err
		}
		for _, r := range recs {
			if _, err = fmt.Fprintf(w, "\t%s", encodeRecord(r)); err != nil {
				idx.mu.Unlock()
				return err
			}
		}
		if _, err = w.WriteString("\n"); err != nil {
			idx.mu.Unlock()
			return err
		}
	}
	idx.mu.Unlock()
	return w.Flush()
}

// Load reads an Index previously written by Save.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loadFromScanner(bufio.NewScanner(f))
}

func loadFromScanner(scanner *bufio.Scanner) (*Index, error) {
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 4*1024*1024)
	idx := New()
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("index: malformed line %q", line)
		}
		hash, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, err
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, err
		}
		if len(fields)-2 != count {
			return nil, fmt.Errorf("index: hash %d declares %d records, found %d", hash, count, len(fields)-2)
		}
		for _, f := range fields[2:] {
			rec, err := decodeRecord(f)
			if err != nil {
				return nil, err
			}
			idx.AddRecord(hash, rec.PrgID, rec.Path, rec.KnodeID, rec.Strand)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}
