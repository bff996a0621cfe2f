// penman_test.go
package sbn

import (
	"strings"
	"testing"
)

func mustPenman(t *testing.T, g *Graph, evaluateSense, strict bool) string {
	t.Helper()
	s, err := g.ToPenmanString(evaluateSense, strict)
	if err != nil {
		t.Fatalf("ToPenmanString error: %v", err)
	}
	return s
}

func Test_Penman_Basic_StrictOutput(t *testing.T) {
	g := mustParse(t, basicDoc)
	want := strings.Join([]string{
		`(b0 / "box"`,
		"\t" + `:member (s0 / "person.n.01")`,
		"\t" + `:member (s1 / "work.v.01"`,
		"\t\t" + `:Agent s0`,
		"\t\t" + `:Time (s2 / "time.n.08"`,
		"\t\t\t" + `:EQU "now"))`,
		"\t" + `:member s2)`,
	}, "\n")
	if got := mustPenman(t, g, false, true); got != want {
		t.Fatalf("penman output mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func Test_Penman_EdgeCountEqualsColonCount(t *testing.T) {
	g := mustParse(t, basicDoc)
	out := mustPenman(t, g, false, true)
	if got, want := strings.Count(out, ":"), len(g.Edges()); got != want {
		t.Fatalf("every edge should appear exactly once, %d colons for %d edges:\n%s",
			got, want, out)
	}
}

func Test_Penman_InverseRoleSpelling(t *testing.T) {
	g := mustParse(t, "person.n.01 AttributeOf +1\nhappy.a.01")
	out := mustPenman(t, g, false, true)
	if !strings.Contains(out, ":Attribute-of ") {
		t.Fatalf("AttributeOf should print as :Attribute-of, got:\n%s", out)
	}
	if strings.Contains(out, ":AttributeOf") {
		t.Fatalf("camel-case spelling leaked into output:\n%s", out)
	}
}

func Test_Penman_NegationBox(t *testing.T) {
	g := mustParse(t, "NEGATION -1\nwalk.v.01")
	out := mustPenman(t, g, false, true)
	if !strings.Contains(out, ":NEGATION (b1 / \"box\"") {
		t.Fatalf("box-box edge should keep its relation token, got:\n%s", out)
	}
}

func Test_Penman_Cyclic_NotSerializable(t *testing.T) {
	g := mustParse(t, "person.n.01 Part +0")
	out, err := g.ToPenmanString(false, true)
	wantKind(t, err, CyclicGraphNotSerializable)
	if out != "" {
		t.Fatalf("cyclic graph must serialize to nothing, got %q", out)
	}
}

func Test_Penman_Strict_RejectsIllFormed(t *testing.T) {
	g := mustParse(t, "person.n.01 Quantity -2")
	_, err := g.ToPenmanString(false, true)
	wantKind(t, err, IllFormedGraphRejected)
}

func Test_Penman_Permissive_DecomposesSynsets(t *testing.T) {
	g := mustParse(t, "person.n.01 Quantity -2")

	out := mustPenman(t, g, false, false)
	if !strings.Contains(out, `:lemma "person"`) || !strings.Contains(out, `:pos "n"`) {
		t.Fatalf("permissive mode should decompose the synset, got:\n%s", out)
	}
	if strings.Contains(out, ":sense") {
		t.Fatalf("sense emitted without being requested:\n%s", out)
	}

	out = mustPenman(t, g, true, false)
	if !strings.Contains(out, `:sense "01"`) {
		t.Fatalf("requested sense missing, got:\n%s", out)
	}
}

func Test_Penman_ReentrantConstant_InlinedAgain(t *testing.T) {
	g := mustParse(t, "walk.v.01")
	s0 := NodeID{Type: NodeSynset, Index: 0}
	c := g.createNode(NodeConstant, "now")
	g.addNode(c)
	g.addEdge(g.createEdge(s0, c.ID, EdgeDrsOperator, "EQU"))
	g.addEdge(g.createEdge(s0, c.ID, EdgeDrsOperator, "TPR"))

	out := mustPenman(t, g, false, true)
	if got := strings.Count(out, `"now"`); got != 2 {
		t.Fatalf("constant should be re-inlined per reference, got %d of 2:\n%s", got, out)
	}
	if strings.Contains(out, "c0") {
		t.Fatalf("constants must never be referenced by variable:\n%s", out)
	}
}

func Test_Penman_Permissive_PlaceholderSynset_NoEmptyFields(t *testing.T) {
	g := mustParse(t, "walk.v.01")
	s0 := NodeID{Type: NodeSynset, Index: 0}
	ghost := NodeID{Type: NodeSynset, Index: 7}
	g.addEdge(g.createEdge(s0, ghost, EdgeRole, "Theme"))

	out := mustPenman(t, g, true, false)
	if !strings.Contains(out, `:lemma "synset-7"`) {
		t.Fatalf("placeholder token should survive as the lemma, got:\n%s", out)
	}
	if strings.Contains(out, `:pos ""`) || strings.Contains(out, `:sense ""`) {
		t.Fatalf("undecomposable synset must not emit empty fields:\n%s", out)
	}
}

func Test_Penman_DoesNotMutateGraph(t *testing.T) {
	g := mustParse(t, basicDoc)
	mustPenman(t, g, false, true)

	if got := g.Node(NodeID{Type: NodeBox, Index: 0}).Token; got != "B-0" {
		t.Fatalf("box token rewritten in caller's graph: %q", got)
	}
	for _, e := range g.Edges() {
		if e.Token == "member" {
			t.Fatalf("box-connect token rewritten in caller's graph")
		}
	}
}
