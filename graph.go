// graph.go: the SBN graph store.
//
// A Graph is a directed, multi-typed graph over the records in types.go.
// Nodes and edges keep their creation order, adjacency is queryable in both
// directions, and identities are issued by the per-kind allocator embedded
// in the graph. The store is not safe for concurrent mutation; the Penman
// serializer clones it before rewriting display tokens.
package sbn

import (
	"fmt"
	"sort"
	"strings"
)

// Graph is one parsed SBN document.
type Graph struct {
	nodes     map[NodeID]*Node
	nodeOrder []NodeID
	edges     []*Edge
	out       map[NodeID][]*Edge
	inDegree  map[NodeID]int

	nodeCounts map[NodeType]int
	edgeCounts map[EdgeType]int

	// IsDAG reflects the edge set as of the last CheckIsDAG call.
	IsDAG bool
	// IsPossiblyIllFormed is set when an index-shaped role target pointed
	// outside the valid synset range and was kept as a literal constant.
	IsPossiblyIllFormed bool
	// Source is the provenance of the document; output annotation only.
	Source Source
}

// NewGraph returns an empty graph with the given provenance tag.
func NewGraph(source Source) *Graph {
	return &Graph{
		nodes:      map[NodeID]*Node{},
		out:        map[NodeID][]*Edge{},
		inDegree:   map[NodeID]int{},
		nodeCounts: map[NodeType]int{},
		edgeCounts: map[EdgeType]int{},
		Source:     source,
	}
}

/* ---------- identity allocator ---------- */

func (g *Graph) allocateNodeID(t NodeType) NodeID {
	id := NodeID{Type: t, Index: g.nodeCounts[t]}
	g.nodeCounts[t]++
	return id
}

func (g *Graph) allocateEdgeID(t EdgeType) EdgeID {
	id := EdgeID{Type: t, Index: g.edgeCounts[t]}
	g.edgeCounts[t]++
	return id
}

// activeNodeID is the most recently allocated node identity of a kind: the
// implicit "current box" / "current synset" cursor the parser extends.
func (g *Graph) activeNodeID(t NodeType) NodeID {
	return NodeID{Type: t, Index: g.nodeCounts[t] - 1}
}

// activeBoxToken is the synthetic label of the box about to be created.
func (g *Graph) activeBoxToken() string {
	return fmt.Sprintf("B-%d", g.nodeCounts[NodeBox])
}

/* ---------- construction ---------- */

// createNode allocates an identity and returns a node record. An empty
// token defaults to the identity string.
func (g *Graph) createNode(t NodeType, token string) *Node {
	id := g.allocateNodeID(t)
	if token == "" {
		token = id.String()
	}
	return &Node{ID: id, Token: token}
}

// createEdge allocates an identity and returns an edge record. An empty
// token defaults to the identity string.
func (g *Graph) createEdge(from, to NodeID, t EdgeType, token string) *Edge {
	id := g.allocateEdgeID(t)
	if token == "" {
		token = id.String()
	}
	return &Edge{ID: id, Token: token, From: from, To: to}
}

func (g *Graph) addNode(n *Node) {
	if _, ok := g.nodes[n.ID]; ok {
		// Placeholder created by an earlier edge; keep the order slot and
		// take over the record.
		g.nodes[n.ID] = n
		return
	}
	g.nodes[n.ID] = n
	g.nodeOrder = append(g.nodeOrder, n.ID)
}

// ensureNode materializes a placeholder for an edge endpoint that was never
// created explicitly (a relative reference outside the document). The token
// is the identity string, which keeps serialization total and deterministic.
func (g *Graph) ensureNode(id NodeID) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &Node{ID: id, Token: id.String()}
	g.nodeOrder = append(g.nodeOrder, id)
}

func (g *Graph) addEdge(e *Edge) {
	g.ensureNode(e.From)
	g.ensureNode(e.To)
	g.edges = append(g.edges, e)
	g.out[e.From] = append(g.out[e.From], e)
	g.inDegree[e.To]++
}

/* ---------- queries ---------- */

// Node returns the node record for id, or nil.
func (g *Graph) Node(id NodeID) *Node { return g.nodes[id] }

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in creation order.
func (g *Graph) Edges() []*Edge { return g.edges }

// OutEdges returns the outgoing edges of a node in insertion order.
func (g *Graph) OutEdges(id NodeID) []*Edge { return g.out[id] }

// InDegree returns the number of incoming edges of a node.
func (g *Graph) InDegree(id NodeID) int { return g.inDegree[id] }

// Root returns the first node in creation order with no incoming edges.
// For a graph built by the parser this is the seed box.
func (g *Graph) Root() (NodeID, bool) {
	for _, id := range g.nodeOrder {
		if g.inDegree[id] == 0 {
			return id, true
		}
	}
	return NodeID{}, false
}

/* ---------- acyclicity ---------- */

// CheckIsDAG recomputes whether the current edge set is acyclic, stores the
// result on the graph and returns it. Kahn's algorithm.
func (g *Graph) CheckIsDAG() bool {
	indeg := make(map[NodeID]int, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		indeg[id] = g.inDegree[id]
	}
	queue := make([]NodeID, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		if indeg[id] == 0 {
			queue = append(queue, id)
		}
	}
	seen := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		seen++
		for _, e := range g.out[id] {
			indeg[e.To]--
			if indeg[e.To] == 0 {
				queue = append(queue, e.To)
			}
		}
	}
	g.IsDAG = seen == len(g.nodeOrder)
	return g.IsDAG
}

/* ---------- clone ---------- */

// Clone returns a deep copy sharing no records with the receiver.
func (g *Graph) Clone() *Graph {
	c := NewGraph(g.Source)
	c.IsDAG = g.IsDAG
	c.IsPossiblyIllFormed = g.IsPossiblyIllFormed
	for t, n := range g.nodeCounts {
		c.nodeCounts[t] = n
	}
	for t, n := range g.edgeCounts {
		c.edgeCounts[t] = n
	}
	for _, id := range g.nodeOrder {
		n := *g.nodes[id]
		c.nodes[id] = &n
		c.nodeOrder = append(c.nodeOrder, id)
	}
	for _, e := range g.edges {
		e2 := *e
		c.edges = append(c.edges, &e2)
		c.out[e2.From] = append(c.out[e2.From], &e2)
		c.inDegree[e2.To]++
	}
	return c
}

/* ---------- structural comparison ---------- */

// GraphsAreIsomorphic reports whether two graphs are isomorphic under a
// matching predicate that compares only the display tokens of nodes and
// edges. Kind and count are implied by the isomorphism search itself: two
// matched nodes must have identical token-labeled adjacency, so a mismatch
// in structure fails regardless of kinds.
func GraphsAreIsomorphic(a, b *Graph) bool {
	if len(a.nodeOrder) != len(b.nodeOrder) || len(a.edges) != len(b.edges) {
		return false
	}
	if !sameTokenMultiset(nodeTokens(a), nodeTokens(b)) {
		return false
	}
	if !sameTokenMultiset(edgeTokens(a), edgeTokens(b)) {
		return false
	}

	s := &isoSearch{
		a: a, b: b,
		aPairs:  pairTokens(a),
		bPairs:  pairTokens(b),
		mapping: map[NodeID]NodeID{},
		used:    map[NodeID]bool{},
	}
	return s.match(0)
}

type isoSearch struct {
	a, b    *Graph
	aPairs  map[NodeID]map[NodeID]string
	bPairs  map[NodeID]map[NodeID]string
	mapping map[NodeID]NodeID
	used    map[NodeID]bool
}

func (s *isoSearch) match(i int) bool {
	if i == len(s.a.nodeOrder) {
		return true
	}
	na := s.a.nodeOrder[i]
	for _, nb := range s.b.nodeOrder {
		if s.used[nb] || !s.compatible(na, nb) {
			continue
		}
		s.mapping[na] = nb
		s.used[nb] = true
		if s.match(i + 1) {
			return true
		}
		delete(s.mapping, na)
		delete(s.used, nb)
	}
	return false
}

func (s *isoSearch) compatible(na, nb NodeID) bool {
	if s.a.nodes[na].Token != s.b.nodes[nb].Token {
		return false
	}
	if len(s.a.out[na]) != len(s.b.out[nb]) || s.a.inDegree[na] != s.b.inDegree[nb] {
		return false
	}
	// Edges between na and every already-mapped node must agree token-wise
	// in both directions.
	for ma, mb := range s.mapping {
		if s.aPairs[na][ma] != s.bPairs[nb][mb] {
			return false
		}
		if s.aPairs[ma][na] != s.bPairs[mb][nb] {
			return false
		}
	}
	return true
}

// pairTokens precomputes, per ordered node pair, the sorted multiset of edge
// tokens between them (multi-edges are possible).
func pairTokens(g *Graph) map[NodeID]map[NodeID]string {
	tmp := map[NodeID]map[NodeID][]string{}
	for _, e := range g.edges {
		if tmp[e.From] == nil {
			tmp[e.From] = map[NodeID][]string{}
		}
		tmp[e.From][e.To] = append(tmp[e.From][e.To], e.Token)
	}
	out := map[NodeID]map[NodeID]string{}
	for from, m := range tmp {
		out[from] = map[NodeID]string{}
		for to, toks := range m {
			sort.Strings(toks)
			out[from][to] = strings.Join(toks, "\x00")
		}
	}
	return out
}

func nodeTokens(g *Graph) []string {
	out := make([]string, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id].Token)
	}
	return out
}

func edgeTokens(g *Graph) []string {
	out := make([]string, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e.Token)
	}
	return out
}

func sameTokenMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
