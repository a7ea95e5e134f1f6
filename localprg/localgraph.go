// Package localprg models a single locus as a DAG of sequence intervals:
// the "PRG" of the pangenome-guided caller. Grounded on the C++
// prototype's localgraph.h (add_node/add_edge/write_gfa) and, for the
// adjacency-list idiom itself, on elprep's filters/graph.go union-find
// duplicate-clustering graph (here generalized to an acyclic, sequence-
// bearing graph instead of an undirected clustering graph).
package localprg

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/exascience/pandora-go/prginterval"
)

// LocalNode is one node of a LocalGraph: an id, the sequence it carries,
// and the interval of the linearized PRG coordinate space it occupies.
type LocalNode struct {
	ID   uint32
	Seq  string
	Pos  prginterval.Interval
	Outs []uint32
	Ins  []uint32
}

// LocalGraph is a DAG whose source and sink nodes represent the
// boundaries of one locus.
type LocalGraph struct {
	Nodes map[uint32]*LocalNode
}

// NewLocalGraph allocates an empty graph.
func NewLocalGraph() *LocalGraph {
	return &LocalGraph{Nodes: make(map[uint32]*LocalNode)}
}

// AddNode inserts a node with the given id, sequence and interval. It is
// a contract violation to add the same id twice.
func (g *LocalGraph) AddNode(id uint32, seq string, pos prginterval.Interval) {
	if _, exists := g.Nodes[id]; exists {
		panic("localprg: duplicate node id")
	}
	g.Nodes[id] = &LocalNode{ID: id, Seq: seq, Pos: pos}
}

func containsID(ids []uint32, id uint32) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// AddEdge inserts a directed edge from -> to, idempotently.
func (g *LocalGraph) AddEdge(from, to uint32) {
	fromNode, ok := g.Nodes[from]
	if !ok {
		panic("localprg: unknown from node")
	}
	toNode, ok := g.Nodes[to]
	if !ok {
		panic("localprg: unknown to node")
	}
	if !containsID(fromNode.Outs, to) {
		fromNode.Outs = append(fromNode.Outs, to)
	}
	if !containsID(toNode.Ins, from) {
		toNode.Ins = append(toNode.Ins, from)
	}
}

// Source returns the node with no incoming edges. There must be exactly
// one; it is a contract violation otherwise.
func (g *LocalGraph) Source() *LocalNode {
	var src *LocalNode
	for _, n := range g.sortedNodes() {
		if len(n.Ins) == 0 {
			if src != nil {
				panic("localprg: multiple source nodes")
			}
			src = n
		}
	}
	if src == nil {
		panic("localprg: no source node")
	}
	return src
}

// Sink returns the node with no outgoing edges. There must be exactly
// one; it is a contract violation otherwise.
func (g *LocalGraph) Sink() *LocalNode {
	var sink *LocalNode
	for _, n := range g.sortedNodes() {
		if len(n.Outs) == 0 {
			if sink != nil {
				panic("localprg: multiple sink nodes")
			}
			sink = n
		}
	}
	if sink == nil {
		panic("localprg: no sink node")
	}
	return sink
}

func (g *LocalGraph) sortedNodes() []*LocalNode {
	ids := make([]uint32, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*LocalNode, len(ids))
	for i, id := range ids {
		out[i] = g.Nodes[id]
	}
	return out
}

// Walks enumerates every source-to-sink walk through the graph as a
// sequence of node ids, used by the index builder to sketch every
// possible allele combination at this locus.
func (g *LocalGraph) Walks() [][]uint32 {
	src := g.Source()
	sink := g.Sink()
	var walks [][]uint32
	var dfs func(id uint32, acc []uint32)
	dfs = func(id uint32, acc []uint32) {
		acc = append(acc, id)
		if id == sink.ID {
			walk := make([]uint32, len(acc))
			copy(walk, acc)
			walks = append(walks, walk)
			return
		}
		for _, next := range g.Nodes[id].Outs {
			dfs(next, acc)
		}
	}
	dfs(src.ID, nil)
	return walks
}

// WalkSequence concatenates the sequence of every node on a walk.
func (g *LocalGraph) WalkSequence(walk []uint32) string {
	var seq []byte
	for _, id := range walk {
		seq = append(seq, g.Nodes[id].Seq...)
	}
	return string(seq)
}

// SequenceAt concatenates, in interval order, the bases path's intervals
// cover in the graph's global coordinate space, used to recover the
// nucleotide sequence under a kmer-PRG node or a candidate-region span.
func (g *LocalGraph) SequenceAt(path prginterval.Path) string {
	var seq []byte
	for _, iv := range path.Intervals {
		for _, n := range g.sortedNodes() {
			lo, hi := n.Pos.Start, n.Pos.End
			s, e := iv.Start, iv.End
			if s < lo {
				s = lo
			}
			if e > hi {
				e = hi
			}
			if s < e {
				seq = append(seq, n.Seq[s-lo:e-lo]...)
			}
		}
	}
	return string(seq)
}

// WriteGFA serializes the graph in the same tab-separated GFA dialect
// used for the kmer-PRG (kmergraph.WriteGFA): one H header line, one S
// line per node (id, sequence), and one L line per edge.
func (g *LocalGraph) WriteGFA(path string) (err error) {
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
	for _, n := range g.sortedNodes() {
		if _, err = fmt.Fprintf(w, "S\t%d\t%s\n", n.ID, n.Seq); err != nil {
			return err
		}
	}
	for _, n := range g.sortedNodes() {
		for _, to := range n.Outs {
			if _, err = fmt.Fprintf(w, "L\t%d\t+\t%d\t+\t0M\n", n.ID, to); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}
