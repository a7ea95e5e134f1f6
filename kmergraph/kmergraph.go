// Package kmergraph implements the per-locus k-mer DAG layered on top of
// a LocalPRG (the "kmer-PRG"), its coverage overlay, and the three
// maximum-likelihood path scoring models that infer a sample's genotype
// at a locus.
//
// Grounded on the C++ prototype's kmergraph.cpp for the node/edge API
// shape (add_node reusing an existing node for an equal path, add_edge
// requiring from.Path < to.Path), generalized to the fuller contract of
// dense ids, a maintained path-ordered node list, shortcut-edge removal
// and GFA import/export described in the specification.
package kmergraph

import (
	"fmt"
	"sort"

	"github.com/exascience/pandora-go/prginterval"
)

// KmerNode is one node of a KmerGraph: a dense id, the k-mer path it
// represents, an optional A/T-content count carried through GFA
// round-trips, and its in/out neighbor ids.
type KmerNode struct {
	ID    uint32
	Path  prginterval.Path
	NumAT uint32
	Outs  []uint32
	Ins   []uint32
}

// KmerGraph is a DAG of KmerNodes. Node identifiers are a dense [0, N)
// range assigned in insertion order; SortedNodes maintains the nodes in
// Path order, which coincides with a topological order because AddEdge
// only permits edges from a lower-Path node to a higher-Path one.
type KmerGraph struct {
	Nodes       []*KmerNode
	SortedNodes []*KmerNode
	K           uint32
	kSet        bool

	pathIndex map[string]uint32 // Path string key -> node id, for O(1) AddNode

	longestWalk      int
	longestWalkValid bool
}

// NewKmerGraph allocates an empty graph.
func NewKmerGraph() *KmerGraph {
	return &KmerGraph{pathIndex: make(map[string]uint32)}
}

// sinkSentinelPos anchors SinkPath far past any real PRG coordinate, so
// the sink always sorts after every k-mer node regardless of the PRG's
// actual length, while SourcePath (the plain empty path) always sorts
// first.
const sinkSentinelPos = int32(1 << 30)

// SourcePath is the sentinel zero-length path marking a kmer-PRG's
// unique source node.
func SourcePath() prginterval.Path {
	return prginterval.NewPath(nil)
}

// SinkPath is the sentinel zero-length path marking a kmer-PRG's unique
// sink node. Distinct from SourcePath (which AddNode would otherwise
// dedup them against) by anchoring at sinkSentinelPos instead of 0.
func SinkPath() prginterval.Path {
	return prginterval.NewPath([]prginterval.Interval{
		prginterval.NewInterval(sinkSentinelPos, sinkSentinelPos),
	})
}

func pathKey(p prginterval.Path) string {
	var b []byte
	for _, iv := range p.Intervals {
		b = append(b, fmt.Sprintf("%d,%d;", iv.Start, iv.End)...)
	}
	return string(b)
}

// AddNode returns the id of the node with the given path, inserting a
// new node if none exists yet. The first node with a non-zero path
// length fixes k for the whole graph; every later such node must have
// the same path length. Zero-length paths (the SourcePath and SinkPath
// sentinels) neither fix nor check k.
func (g *KmerGraph) AddNode(path prginterval.Path) uint32 {
	key := pathKey(path)
	if id, ok := g.pathIndex[key]; ok {
		return id
	}
	return g.addNode(key, path)
}

// FindNode returns the id of the existing node for path, if any, without
// inserting one.
func (g *KmerGraph) FindNode(path prginterval.Path) (uint32, bool) {
	id, ok := g.pathIndex[pathKey(path)]
	return id, ok
}

func (g *KmerGraph) addNode(key string, path prginterval.Path) uint32 {
	if path.Length > 0 {
		if !g.kSet {
			g.K = uint32(path.Length)
			g.kSet = true
		} else if uint32(path.Length) != g.K {
			panic("kmergraph: node path length does not match graph k")
		}
	}
	id := uint32(len(g.Nodes))
	n := &KmerNode{ID: id, Path: path}
	g.Nodes = append(g.Nodes, n)
	g.pathIndex[key] = id
	g.insertSorted(n)
	g.invalidateCaches()
	return id
}

func (g *KmerGraph) insertSorted(n *KmerNode) {
	i := sort.Search(len(g.SortedNodes), func(i int) bool {
		return !g.SortedNodes[i].Path.Less(n.Path)
	})
	g.SortedNodes = append(g.SortedNodes, nil)
	copy(g.SortedNodes[i+1:], g.SortedNodes[i:])
	g.SortedNodes[i] = n
}

func (g *KmerGraph) invalidateCaches() {
	g.longestWalkValid = false
}

// AddEdge inserts a directed edge from -> to. from.Path must be strictly
// less than to.Path (acyclicity by construction); it is a contract
// violation otherwise. Idempotent.
func (g *KmerGraph) AddEdge(from, to uint32) {
	fromNode, toNode := g.Nodes[from], g.Nodes[to]
	if !fromNode.Path.Less(toNode.Path) {
		panic("kmergraph: edge violates path ordering")
	}
	if !containsID(fromNode.Outs, to) {
		fromNode.Outs = append(fromNode.Outs, to)
	}
	if !containsID(toNode.Ins, from) {
		toNode.Ins = append(toNode.Ins, from)
	}
	g.invalidateCaches()
}

func containsID(ids []uint32, id uint32) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// Source returns the node with no incoming edges. Contract violation if
// there isn't exactly one.
func (g *KmerGraph) Source() *KmerNode {
	return g.uniqueBoundary(func(n *KmerNode) bool { return len(n.Ins) == 0 }, "source")
}

// Sink returns the node with no outgoing edges. Contract violation if
// there isn't exactly one.
func (g *KmerGraph) Sink() *KmerNode {
	return g.uniqueBoundary(func(n *KmerNode) bool { return len(n.Outs) == 0 }, "sink")
}

func (g *KmerGraph) uniqueBoundary(pred func(*KmerNode) bool, what string) *KmerNode {
	var found *KmerNode
	for _, n := range g.Nodes {
		if pred(n) {
			if found != nil {
				panic("kmergraph: multiple " + what + " nodes")
			}
			found = n
		}
	}
	if found == nil {
		panic("kmergraph: no " + what + " node")
	}
	return found
}

// RemoveShortcutEdges drops any edge u->w for which there also exists a
// path u->v->w where v's path is a sub-path of the union of u's and w's
// paths: v already fully explains the bases w would otherwise seem to
// add beyond u. Returns the number of edges removed.
func (g *KmerGraph) RemoveShortcutEdges() int {
	removed := 0
	for _, u := range g.Nodes {
		var keep []uint32
		for _, wID := range u.Outs {
			w := g.Nodes[wID]
			shortcut := false
			for _, vID := range u.Outs {
				if vID == wID {
					continue
				}
				v := g.Nodes[vID]
				if !containsID(v.Outs, wID) {
					continue
				}
				union := prginterval.UnionIntervals(u.Path.Intervals, w.Path.Intervals)
				if v.Path.Subset(union) {
					shortcut = true
					break
				}
			}
			if shortcut {
				removed++
				removeID(&g.Nodes[wID].Ins, u.ID)
			} else {
				keep = append(keep, wID)
			}
		}
		u.Outs = keep
	}
	g.invalidateCaches()
	return removed
}

func removeID(ids *[]uint32, id uint32) {
	out := (*ids)[:0]
	for _, x := range *ids {
		if x != id {
			out = append(out, x)
		}
	}
	*ids = out
}

// LongestWalkLength returns the number of edges on the longest
// source-to-sink walk (its node count with the source included and the
// sink not), computed by a reverse topological DP. Historically named "min_path_length" in the C++ prototype; the
// value it computes is the maximum walk length, used as the DP's
// longest-path tie-break (§4.5). Cached until the graph is mutated.
func (g *KmerGraph) LongestWalkLength() int {
	if g.longestWalkValid {
		return g.longestWalk
	}
	length := make([]int, len(g.Nodes))
	for i := len(g.SortedNodes) - 1; i >= 0; i-- {
		n := g.SortedNodes[i]
		best := 0
		for _, out := range n.Outs {
			if l := length[out] + 1; l > best {
				best = l
			}
		}
		length[n.ID] = best
	}
	g.longestWalk = length[g.Source().ID]
	g.longestWalkValid = true
	return g.longestWalk
}

// Check asserts acyclicity (every edge respects the sorted Path order)
// and the leaf condition (exactly one source, one sink, every other node
// has both in- and out-neighbors).
func (g *KmerGraph) Check() error {
	for _, u := range g.Nodes {
		for _, vID := range u.Outs {
			if !u.Path.Less(g.Nodes[vID].Path) {
				return fmt.Errorf("kmergraph: edge %d->%d violates path order", u.ID, vID)
			}
		}
	}
	sources, sinks := 0, 0
	for _, n := range g.Nodes {
		switch {
		case len(n.Ins) == 0 && len(n.Outs) == 0:
			return fmt.Errorf("kmergraph: node %d is isolated", n.ID)
		case len(n.Ins) == 0:
			sources++
		case len(n.Outs) == 0:
			sinks++
		}
	}
	if sources != 1 {
		return fmt.Errorf("kmergraph: expected exactly one source, found %d", sources)
	}
	if sinks != 1 {
		return fmt.Errorf("kmergraph: expected exactly one sink, found %d", sinks)
	}
	return nil
}
