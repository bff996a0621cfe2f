// penman.go: rewriting a graph into Penman (AMR-like) tree notation.
//
// The graph is a DAG, not a tree, so shared substructure is printed once
// and referenced by variable afterwards. Emission works on a private clone:
// box tokens are normalized to "box" and box-connect edges to "member", and
// the caller's graph must not observe either rewrite.
package sbn

import (
	"fmt"
	"os"
	"strings"
)

// ToPenmanString serializes the graph to Penman notation.
//
// strict rejects possibly ill-formed graphs and prints synset concepts as
// the full quoted lemma.pos.sense triple. Permissive mode decomposes a
// synset into :lemma and :pos children (plus :sense when evaluateSense is
// set), which keeps word-sense disambiguation out of downstream scoring.
// Cyclic graphs are never serializable, in either mode.
func (g *Graph) ToPenmanString(evaluateSense, strict bool) (string, error) {
	if !g.CheckIsDAG() {
		return "", sbnErrf(CyclicGraphNotSerializable,
			"exporting a cyclic SBN graph to Penman is not possible")
	}
	if strict && g.IsPossiblyIllFormed {
		return "", sbnErrf(IllFormedGraphRejected,
			"strict evaluation mode, possibly ill-formed graph not exported")
	}

	c := g.Clone()
	w := &penmanWalker{
		g:             c,
		vars:          map[NodeID]string{},
		state:         map[NodeID]visitState{},
		evaluateSense: evaluateSense,
		strict:        strict,
	}
	w.assignVariables()

	root, ok := c.Root()
	if !ok {
		return "", sbnErrf(CyclicGraphNotSerializable,
			"graph has no root node without incoming edges")
	}
	var b strings.Builder
	if err := w.emit(&b, root, 1); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ToPenmanFile writes the Penman serialization to path, appending the
// ".penman" extension when missing.
func (g *Graph) ToPenmanFile(path string, evaluateSense, strict bool) error {
	s, err := g.ToPenmanString(evaluateSense, strict)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(path, ".penman") {
		path += ".penman"
	}
	return os.WriteFile(path, []byte(s+"\n"), 0o644)
}

/* ---------- walker ---------- */

type visitState int

const (
	unvisited visitState = iota
	inProgress
	emitted
)

type penmanWalker struct {
	g             *Graph
	vars          map[NodeID]string
	state         map[NodeID]visitState
	evaluateSense bool
	strict        bool
}

// assignVariables gives every node a short variable in creation order: a
// single letter per kind plus a per-kind counter. Box and box-connect
// display tokens are normalized here; what a box *does* is expressed by its
// box-box connection (NEGATION, EXPLANATION, ...), not by its own concept.
func (w *penmanWalker) assignVariables() {
	prefixes := map[NodeType]string{
		NodeBox:      "b",
		NodeSynset:   "s",
		NodeConstant: "c",
	}
	counts := map[NodeType]int{}
	for _, n := range w.g.Nodes() {
		w.vars[n.ID] = fmt.Sprintf("%s%d", prefixes[n.ID.Type], counts[n.ID.Type])
		counts[n.ID.Type]++
		if n.ID.Type == NodeBox {
			n.Token = "box"
		}
	}
	for _, e := range w.g.Edges() {
		if e.ID.Type == EdgeBoxConnect {
			e.Token = "member"
		}
	}
}

func (w *penmanWalker) emit(b *strings.Builder, id NodeID, tabs int) error {
	switch w.state[id] {
	case emitted:
		// Re-entrant reference. Constants are leaves and are inlined again
		// instead of referenced by variable.
		if id.Type == NodeConstant {
			b.WriteString(Quote(w.g.Node(id).Token))
		} else {
			b.WriteString(w.vars[id])
		}
		return nil
	case inProgress:
		return sbnErrf(CyclicGraphNotSerializable,
			"cycle reached node %s during emission", id)
	}
	w.state[id] = inProgress

	node := w.g.Node(id)
	indents := strings.Repeat("\t", tabs)

	if id.Type == NodeConstant {
		b.WriteString(Quote(node.Token))
	} else if id.Type == NodeSynset && !w.strict {
		fmt.Fprintf(b, "(%s / %s", w.vars[id], Quote("synset"))
		if lemma, pos, sense, ok := SplitSynsetID(node.Token); ok {
			fmt.Fprintf(b, "\n%s:lemma %s", indents, Quote(lemma))
			fmt.Fprintf(b, "\n%s:pos %s", indents, Quote(pos))
			if w.evaluateSense {
				fmt.Fprintf(b, "\n%s:sense %s", indents, Quote(sense))
			}
		} else {
			// Placeholder synsets have an identity-string token with no
			// lemma.pos.sense shape to decompose.
			fmt.Fprintf(b, "\n%s:lemma %s", indents, Quote(node.Token))
		}
	} else {
		fmt.Fprintf(b, "(%s / %s", w.vars[id], Quote(node.Token))
	}

	for _, edge := range w.g.OutEdges(id) {
		name := edge.Token
		if InvertibleRole(name) {
			// The tree notation treats A -[AttributeOf]-> B and
			// B -[Attribute-of]-> A as the same triple; the inverse
			// spelling is required for that to work.
			name = strings.ReplaceAll(name, "Of", "-of")
		}
		fmt.Fprintf(b, "\n%s:%s ", indents, name)
		if err := w.emit(b, edge.To, tabs+1); err != nil {
			return err
		}
	}

	if id.Type != NodeConstant {
		b.WriteString(")")
	}
	w.state[id] = emitted
	return nil
}
