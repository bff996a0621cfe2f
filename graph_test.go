// graph_test.go
package sbn

import "testing"

func Test_Graph_Allocator_SequentialPerKind(t *testing.T) {
	g := NewGraph(SourceUnknown)

	b := g.createNode(NodeBox, g.activeBoxToken())
	s0 := g.createNode(NodeSynset, "cat.n.01")
	s1 := g.createNode(NodeSynset, "sit.v.01")
	c := g.createNode(NodeConstant, "now")

	if b.ID != (NodeID{Type: NodeBox, Index: 0}) || b.Token != "B-0" {
		t.Fatalf("seed box mis-allocated: %+v", b)
	}
	if s0.ID.Index != 0 || s1.ID.Index != 1 {
		t.Fatalf("synset indices not sequential: %d, %d", s0.ID.Index, s1.ID.Index)
	}
	if c.ID != (NodeID{Type: NodeConstant, Index: 0}) {
		t.Fatalf("constant counter should be independent: %+v", c.ID)
	}
	if got := g.activeNodeID(NodeSynset); got != s1.ID {
		t.Fatalf("active synset should be the last allocated, got %s", got)
	}

	e0 := g.createEdge(b.ID, s0.ID, EdgeBoxConnect, "")
	e1 := g.createEdge(b.ID, s1.ID, EdgeBoxConnect, "")
	if e0.ID.Index != 0 || e1.ID.Index != 1 {
		t.Fatalf("edge indices not sequential: %d, %d", e0.ID.Index, e1.ID.Index)
	}
	if e0.Token != "box-connect-0" {
		t.Fatalf("default edge token should be the identity string, got %q", e0.Token)
	}
}

func Test_Graph_CheckIsDAG_DetectsCycle(t *testing.T) {
	g := NewGraph(SourceUnknown)
	a := g.createNode(NodeSynset, "a.n.01")
	b := g.createNode(NodeSynset, "b.n.01")
	g.addNode(a)
	g.addNode(b)
	g.addEdge(g.createEdge(a.ID, b.ID, EdgeRole, "Theme"))

	if !g.CheckIsDAG() {
		t.Fatalf("single edge should be acyclic")
	}

	g.addEdge(g.createEdge(b.ID, a.ID, EdgeRole, "Theme"))
	if g.CheckIsDAG() {
		t.Fatalf("two-node cycle not detected")
	}
}

func Test_Graph_Clone_IsIndependent(t *testing.T) {
	g := mustParse(t, basicDoc)
	c := g.Clone()

	c.Node(NodeID{Type: NodeBox, Index: 0}).Token = "box"
	c.Edges()[0].Token = "member"

	if got := g.Node(NodeID{Type: NodeBox, Index: 0}).Token; got != "B-0" {
		t.Fatalf("clone mutation leaked into original node: %q", got)
	}
	if got := g.Edges()[0].Token; got == "member" {
		t.Fatalf("clone mutation leaked into original edge: %q", got)
	}
	if !GraphsAreIsomorphic(g, g.Clone()) {
		t.Fatalf("fresh clone should be isomorphic to the original")
	}
}

func Test_Graph_Root_IsSeedBox(t *testing.T) {
	g := mustParse(t, basicDoc)
	root, ok := g.Root()
	if !ok || root != (NodeID{Type: NodeBox, Index: 0}) {
		t.Fatalf("root should be the seed box, got %s (ok=%v)", root, ok)
	}
}

func Test_Graph_Isomorphic_IdenticalDocuments(t *testing.T) {
	a := mustParse(t, basicDoc)
	b := mustParse(t, basicDoc)
	if !GraphsAreIsomorphic(a, b) {
		t.Fatalf("token-identical documents must be isomorphic")
	}
}

func Test_Graph_Isomorphic_ConstantLiteralMatters(t *testing.T) {
	a := mustParse(t, "time.n.08 EQU now")
	b := mustParse(t, "time.n.08 EQU then")
	if GraphsAreIsomorphic(a, b) {
		t.Fatalf("changing one constant literal must break isomorphism")
	}
}

func Test_Graph_Isomorphic_EdgeTokenMatters(t *testing.T) {
	a := mustParse(t, "cat.n.01\nsee.v.01 Agent -1")
	b := mustParse(t, "cat.n.01\nsee.v.01 Theme -1")
	if GraphsAreIsomorphic(a, b) {
		t.Fatalf("changing an edge token must break isomorphism")
	}
}

func Test_Graph_Isomorphic_StructureMatters(t *testing.T) {
	// Same node and edge token multisets, different wiring.
	a := mustParse(t, "cat.n.01\nsee.v.01 Agent -1 Theme +1\ndog.n.01")
	b := mustParse(t, "cat.n.01\nsee.v.01 Agent +1 Theme -1\ndog.n.01")
	if GraphsAreIsomorphic(a, b) {
		t.Fatalf("swapped edge targets must break isomorphism")
	}
}
