package kmergraph

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/exascience/pandora-go/prginterval"
)

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

func decodePath(s string) prginterval.Path {
	if s == "" {
		return prginterval.NewPath(nil)
	}
	parts := strings.Split(s, ";")
	ivs := make([]prginterval.Interval, len(parts))
	for i, part := range parts {
		se := strings.SplitN(part, ",", 2)
		start, _ := strconv.ParseInt(se[0], 10, 32)
		end, _ := strconv.ParseInt(se[1], 10, 32)
		ivs[i] = prginterval.Interval{Start: int32(start), End: int32(end)}
	}
	return prginterval.NewPath(ivs)
}

// WriteGFA serializes the graph as tab-separated GFA: one header line,
// one S line per node carrying its path encoding, its forward/reverse
// coverage (FC/RC, written as 0 when fwd/rev is nil) and its A/T count,
// and one L line per edge.
func (g *KmerGraph) WriteGFA(path string, fwd, rev []uint32) (err error) {
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
	if _, err = fmt.Fprintln(w, "H\tVN:Z:1.0\tbn:Z:--linear --singlearr"); err != nil {
		return err
	}
	for _, n := range g.Nodes {
		var fc, rc uint32
		if fwd != nil {
			fc = fwd[n.ID]
		}
		if rev != nil {
			rc = rev[n.ID]
		}
		if _, err = fmt.Fprintf(w, "S\t%d\t%s\tFC:i:%d\tRC:i:%d\t%d\n",
			n.ID, encodePath(n.Path), fc, rc, n.NumAT); err != nil {
			return err
		}
	}
	for _, n := range g.Nodes {
		for _, to := range n.Outs {
			if _, err = fmt.Fprintf(w, "L\t%d\t+\t%d\t+\t0M\n", n.ID, to); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// LoadGFA reads a kmer-PRG serialized by WriteGFA. It requires two
// passes over the S lines: the first counts nodes (to detect whether ids
// are stored ascending or descending) and reserves space, the second
// populates them. If ids are stored descending (id 0 reached last), the
// node slice is reversed after load so that Nodes[i].ID == i holds.
func LoadGFA(path string) (g *KmerGraph, fwdCovg, revCovg []uint32, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	type sLine struct {
		id         uint32
		path       prginterval.Path
		fc, rc, at uint32
	}
	var sLines []sLine
	var lLines [][2]uint32

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "H":
			continue
		case "S":
			if len(fields) < 3 {
				return nil, nil, nil, fmt.Errorf("kmergraph: malformed S line %q", scanner.Text())
			}
			id64, perr := strconv.ParseUint(fields[1], 10, 32)
			if perr != nil {
				return nil, nil, nil, fmt.Errorf("kmergraph: malformed node id %q", fields[1])
			}
			var fc, rc, at uint64
			for _, extra := range fields[3:] {
				switch {
				case strings.HasPrefix(extra, "FC:i:"):
					fc, _ = strconv.ParseUint(extra[5:], 10, 32)
				case strings.HasPrefix(extra, "RC:i:"):
					rc, _ = strconv.ParseUint(extra[5:], 10, 32)
				default:
					at, _ = strconv.ParseUint(extra, 10, 32)
				}
			}
			sLines = append(sLines, sLine{
				id: uint32(id64), path: decodePath(fields[2]),
				fc: uint32(fc), rc: uint32(rc), at: uint32(at),
			})
		case "L":
			if len(fields) < 5 {
				return nil, nil, nil, fmt.Errorf("kmergraph: malformed L line %q", scanner.Text())
			}
			from, _ := strconv.ParseUint(fields[1], 10, 32)
			to, _ := strconv.ParseUint(fields[3], 10, 32)
			lLines = append(lLines, [2]uint32{uint32(from), uint32(to)})
		default:
			return nil, nil, nil, fmt.Errorf("kmergraph: unexpected GFA record type %q", fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, err
	}

	descending := len(sLines) > 1 && sLines[0].id > sLines[len(sLines)-1].id

	g = NewKmerGraph()
	g.Nodes = make([]*KmerNode, len(sLines))
	fwdCovg = make([]uint32, len(sLines))
	revCovg = make([]uint32, len(sLines))
	for i, s := range sLines {
		n := &KmerNode{ID: s.id, Path: s.path, NumAT: s.at}
		g.Nodes[i] = n
		fwdCovg[i] = s.fc
		revCovg[i] = s.rc
		if s.path.Length > 0 {
			g.K = uint32(s.path.Length)
			g.kSet = true
		}
	}
	if descending {
		for i, j := 0, len(g.Nodes)-1; i < j; i, j = i+1, j-1 {
			g.Nodes[i], g.Nodes[j] = g.Nodes[j], g.Nodes[i]
			fwdCovg[i], fwdCovg[j] = fwdCovg[j], fwdCovg[i]
			revCovg[i], revCovg[j] = revCovg[j], revCovg[i]
		}
	}
	for _, n := range g.Nodes {
		g.pathIndex[pathKey(n.Path)] = n.ID
		g.insertSorted(n)
	}
	for _, l := range lLines {
		g.AddEdge(l[0], l[1])
	}
	return g, fwdCovg, revCovg, nil
}
