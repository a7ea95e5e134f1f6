package pangraph

import (
	"bufio"
	"fmt"
	"os"
	"sort"
)

// PanGraph is the pan-genome read-hit graph: one PanNode per PRG locus a
// read was mapped against, plus an adjacency relation over locus ids
// recording which loci a single read spans. Grounded on
// original_source/include/pangraph.h's nodes map and add_node/add_edge
// pair.
type PanGraph struct {
	Nodes map[uint32]*PanNode
	adj   adjacency
	idxOf map[uint32]int // PRG id -> dense adjacency index
}

// NewPanGraph allocates an empty graph.
func NewPanGraph() *PanGraph {
	return &PanGraph{Nodes: make(map[uint32]*PanNode), idxOf: make(map[uint32]int)}
}

// AddNode records readID hitting prgID via hits, creating the node if
// this is the first time prgID has been seen. Mirrors
// original_source's add_node(prg_id, read_id, hits) signature.
func (g *PanGraph) AddNode(prgID, readID uint32, hits []Hit) {
	n, ok := g.Nodes[prgID]
	if !ok {
		n = NewPanNode(prgID)
		g.Nodes[prgID] = n
		g.idxOf[prgID] = len(g.idxOf)
		g.adj = append(g.adj, nil)
	}
	n.AddRead(readID)
	n.AddHits(hits)
}

// AddEdge records that some read spans both PRG loci left and right.
// Both must already have been added via AddNode; contract violation
// otherwise, mirroring KmerGraph/LocalGraph's panic-on-unknown-node
// convention elsewhere in this module.
func (g *PanGraph) AddEdge(left, right uint32) {
	li, ok := g.idxOf[left]
	if !ok {
		panic("pangraph: unknown left node")
	}
	ri, ok := g.idxOf[right]
	if !ok {
		panic("pangraph: unknown right node")
	}
	g.adj.addEdge(li, ri)
}

// Cluster partitions locus ids into connected components (loci reached
// by a common chain of read-spanning edges), returning each locus's
// representative id.
func (g *PanGraph) Cluster() map[uint32]uint32 {
	repByIdx := g.adj.cluster()
	idToIdx := make(map[int]uint32, len(g.idxOf))
	for prgID, idx := range g.idxOf {
		idToIdx[idx] = prgID
	}
	result := make(map[uint32]uint32, len(g.idxOf))
	for prgID, idx := range g.idxOf {
		result[prgID] = idToIdx[repByIdx[idx]]
	}
	return result
}

// Equal reports whether two graphs have the same set of node ids and
// the same connected components — original_source's operator==. Node
// equality is by id only, so per-node read/hit content is not compared.
func (g *PanGraph) Equal(other *PanGraph) bool {
	if len(g.Nodes) != len(other.Nodes) {
		return false
	}
	for id, n := range g.Nodes {
		on, ok := other.Nodes[id]
		if !ok || !n.Equal(on) {
			return false
		}
	}
	// Representative ids are arbitrary (whichever id union-find happens
	// to settle on), so compare partitions by membership, not by raw
	// representative value.
	return sameComponents(g.Cluster(), other.Cluster())
}

func sameComponents(a, b map[uint32]uint32) bool {
	groupsA := make(map[uint32][]uint32)
	for id, rep := range a {
		groupsA[rep] = append(groupsA[rep], id)
	}
	groupsB := make(map[uint32][]uint32)
	for id, rep := range b {
		groupsB[rep] = append(groupsB[rep], id)
	}
	if len(groupsA) != len(groupsB) {
		return false
	}
	normalize := func(groups map[uint32][]uint32) []string {
		var sets []string
		for _, ids := range groups {
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
			sets = append(sets, fmt.Sprint(ids))
		}
		sort.Strings(sets)
		return sets
	}
	na, nb := normalize(groupsA), normalize(groupsB)
	if len(na) != len(nb) {
		return false
	}
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}
	return true
}

// WriteGFA serializes the graph in the same H/S/L tab-separated dialect
// as localprg.LocalGraph.WriteGFA and kmergraph.KmerGraph.WriteGFA: one S
// line per PanNode (id, number of reads found, number of distinct hits),
// one L line per read-spanning edge.
func (g *PanGraph) WriteGFA(path string) (err error) {
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

	ids := make([]uint32, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		n := g.Nodes[id]
		if _, err = fmt.Fprintf(w, "S\t%d\tRC:i:%d\tHC:i:%d\n", n.ID, len(n.FoundReads), len(n.FoundHits)); err != nil {
			return err
		}
	}
	idOf := make(map[int]uint32, len(g.idxOf))
	for id, idx := range g.idxOf {
		idOf[idx] = id
	}
	for _, from := range ids {
		fi := g.idxOf[from]
		for _, toIdx := range g.adj[fi] {
			if toIdx <= fi {
				continue
			}
			if _, err = fmt.Fprintf(w, "L\t%d\t+\t%d\t+\t0M\n", from, idOf[toIdx]); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}
