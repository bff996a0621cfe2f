// types.go: node and edge records of the SBN graph.
//
// Identities are (kind, index) pairs. The index is assigned monotonically
// per kind, starting at 0, and is scoped to a single document: parsing two
// token-for-token identical documents yields identical identities. Nothing
// here is ever mutated after parsing finishes, except by the Penman
// serializer, which works on a private clone.
package sbn

import "fmt"

// NodeType is the kind of a graph node.
type NodeType int

const (
	NodeBox NodeType = iota
	NodeSynset
	NodeConstant
)

func (t NodeType) String() string {
	switch t {
	case NodeBox:
		return "box"
	case NodeSynset:
		return "synset"
	case NodeConstant:
		return "constant"
	default:
		return fmt.Sprintf("node-type(%d)", int(t))
	}
}

// EdgeType is the kind of a graph edge.
type EdgeType int

const (
	EdgeRole EdgeType = iota
	EdgeDrsOperator
	EdgeBoxConnect    // a box owns a proposition (synset/constant)
	EdgeBoxBoxConnect // a box references another box
	EdgeSynBoxConnect // a role target resolved to a box instead of a synset
)

func (t EdgeType) String() string {
	switch t {
	case EdgeRole:
		return "role"
	case EdgeDrsOperator:
		return "drs-operator"
	case EdgeBoxConnect:
		return "box-connect"
	case EdgeBoxBoxConnect:
		return "box-box-connect"
	case EdgeSynBoxConnect:
		return "syn-box-connect"
	default:
		return fmt.Sprintf("edge-type(%d)", int(t))
	}
}

// NodeID uniquely identifies a node within one document.
type NodeID struct {
	Type  NodeType
	Index int
}

func (id NodeID) String() string { return fmt.Sprintf("%s-%d", id.Type, id.Index) }

// EdgeID uniquely identifies an edge within one document.
type EdgeID struct {
	Type  EdgeType
	Index int
}

func (id EdgeID) String() string { return fmt.Sprintf("%s-%d", id.Type, id.Index) }

// Node is a graph node. Lemma, Pos and Sense are populated for synsets only;
// Comment carries the source-line comment, when one was present.
type Node struct {
	ID      NodeID
	Token   string
	Lemma   string
	Pos     string
	Sense   string
	Comment string
}

// Edge is a directed graph edge. Token is the display token: the role or
// operator name, or the literal index text that produced a box-box link.
type Edge struct {
	ID    EdgeID
	Token string
	From  NodeID
	To    NodeID
}

// Source tags the provenance of a graph. It is exposed for output
// annotation only and never affects parsing or serialization.
type Source string

const (
	SourcePMB       Source = "PMB"       // straight from the Parallel Meaning Bank
	SourceGrew      Source = "GREW"      // produced by GREW graph rewriting
	SourceInference Source = "INFERENCE" // self-generated SBN file
	SourceSeq2Seq   Source = "SEQ2SEQ"   // seq2seq model output
	SourceUnknown   Source = "UNKNOWN"
)
