// parser.go: building an SBN graph from the linear token stream.
//
// One document is parsed to completion in a single pass. Each non-comment
// line is a "reading": normally a sense-tagged synset followed by role or
// operator tokens and their arguments, or a discourse relation opening a
// new box. The parser threads two cursors through the line loop, the active
// box and the active synset, both derived from the identity allocator.
//
// Nodes and edges accumulate per document and merge into the store after
// the last line; the acyclicity check runs once at the end. Errors are
// fatal for the whole parse. A batch driver should catch them per document
// and continue.
package sbn

import (
	"os"
	"strconv"
	"strings"
)

// FromString parses a multi-line SBN document.
func FromString(input string) (*Graph, error) {
	return FromStringSource(input, SourceUnknown)
}

// FromStringSource parses a multi-line SBN document with a provenance tag.
func FromStringSource(input string, source Source) (*Graph, error) {
	p := &parser{g: NewGraph(source)}
	return p.parse(input)
}

// FromSingleLine parses a whitespace-joined one-line SBN document, the form
// neural systems emit, by first splitting it back into reading lines.
func FromSingleLine(input string) (*Graph, error) {
	return FromSingleLineSource(input, SourceUnknown)
}

// FromSingleLineSource is FromSingleLine with a provenance tag.
func FromSingleLineSource(input string, source Source) (*Graph, error) {
	return FromStringSource(SplitSingle(input), source)
}

// FromPath parses the SBN document in the file at path.
func FromPath(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromString(string(data))
}

/* ---------- implementation ---------- */

var indexSigns = strings.NewReplacer("<", "-", ">", "+")

type parser struct {
	g        *Graph
	nodes    []*Node
	edges    []*Edge
	maxWNIdx int // highest line index a synset reference may point at
}

func (p *parser) parse(input string) (*Graph, error) {
	readings := SplitComments(input)
	if len(readings) == 0 {
		return nil, sbnErrf(EmptyDocument, "SBN document appears to be empty")
	}
	p.maxWNIdx = len(readings) - 1

	// Seed box; every document starts inside one.
	starting := p.g.createNode(NodeBox, p.g.activeBoxToken())
	p.nodes = append(p.nodes, starting)

	for i, reading := range readings {
		if err := p.parseLine(i+1, reading); err != nil {
			return nil, err
		}
	}

	for _, n := range p.nodes {
		p.g.addNode(n)
	}
	for _, e := range p.edges {
		p.g.addEdge(e)
	}
	p.g.CheckIsDAG()
	return p.g, nil
}

func (p *parser) parseLine(lineNo int, reading Reading) error {
	tokens := strings.Fields(reading.Line)
	for tokCount := 0; len(tokens) > 0; tokCount++ {
		token := tokens[0]
		tokens = tokens[1:]

		switch ClassifyToken(token, tokCount == 0) {
		case TokenSynset:
			p.addSynset(token, reading.Comment)

		case TokenNewBox:
			rest, err := p.addBox(lineNo, token, tokens, reading.Line)
			if err != nil {
				return err
			}
			tokens = rest

		case TokenRole, TokenDrsOperator:
			rest, err := p.addRelation(lineNo, token, tokens, reading)
			if err != nil {
				return err
			}
			tokens = rest

		default:
			// Stray token; tolerated.
		}
	}
	return nil
}

// addSynset creates a synset node for the head token of a reading and
// connects it to the active box.
func (p *parser) addSynset(token, comment string) {
	lemma, pos, sense, _ := SplitSynsetID(token)
	node := p.g.createNode(NodeSynset, token)
	node.Lemma, node.Pos, node.Sense = lemma, pos, sense
	node.Comment = comment

	edge := p.g.createEdge(
		p.g.activeNodeID(NodeBox),
		p.g.activeNodeID(NodeSynset),
		EdgeBoxConnect,
		"",
	)
	p.nodes = append(p.nodes, node)
	p.edges = append(p.edges, edge)
}

// addBox handles a new-box indicator and its required index argument. The
// relative offset is clamped to box 0: out-of-range offsets are silently
// reinterpreted rather than rejected, a leniency downstream scoring relies
// on.
func (p *parser) addBox(lineNo int, indicator string, tokens []string, line string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, sbnErrLine(MissingScopeIndex, lineNo, "missing box index in line: %s", line)
	}
	boxIndex := tokens[0]
	tokens = tokens[1:]

	if !IndexPattern.MatchString(boxIndex) {
		return nil, sbnErrLine(UnparsableIndex, lineNo, "invalid box index %q found", boxIndex)
	}
	idx, err := parseIdx(lineNo, indexSigns.Replace(boxIndex))
	if err != nil {
		return nil, err
	}

	currentBox := p.g.activeNodeID(NodeBox)
	newBox := p.g.createNode(NodeBox, p.g.activeBoxToken())
	p.nodes = append(p.nodes, newBox)

	if idx != 0 {
		linkFrom := currentBox.Index + idx + 1
		if linkFrom <= 0 {
			linkFrom = 0
		}
		edge := p.g.createEdge(
			NodeID{Type: NodeBox, Index: linkFrom},
			p.g.activeNodeID(NodeBox),
			EdgeBoxBoxConnect,
			indicator,
		)
		p.edges = append(p.edges, edge)
	}
	return tokens, nil
}

// addRelation handles a role or DRS operator and its required target.
func (p *parser) addRelation(lineNo int, token string, tokens []string, reading Reading) ([]string, error) {
	if len(tokens) == 0 {
		return nil, sbnErrLine(MissingEdgeTarget, lineNo, "missing target for %q in line: %s", token, reading.Line)
	}
	target := tokens[0]
	tokens = tokens[1:]

	isRole := Roles[token]
	var edgeType EdgeType
	switch {
	case isRole && strings.ContainsAny(target, "<>"):
		edgeType = EdgeSynBoxConnect
	case isRole:
		edgeType = EdgeRole
	default:
		edgeType = EdgeDrsOperator
	}

	switch {
	case IndexPattern.MatchString(target):
		if edgeType == EdgeSynBoxConnect {
			idx, err := parseIdx(lineNo, indexSigns.Replace(target))
			if err != nil {
				return nil, err
			}
			box := p.g.activeNodeID(NodeBox)
			edge := p.g.createEdge(
				p.g.activeNodeID(NodeSynset),
				NodeID{Type: NodeBox, Index: box.Index + idx},
				EdgeSynBoxConnect,
				token,
			)
			p.edges = append(p.edges, edge)
			return tokens, nil
		}

		idx, err := parseIdx(lineNo, target)
		if err != nil {
			return nil, err
		}
		active := p.g.activeNodeID(NodeSynset)
		targetIdx := active.Index + idx
		if MinSynsetIdx <= targetIdx && targetIdx <= p.maxWNIdx {
			edge := p.g.createEdge(
				active,
				NodeID{Type: NodeSynset, Index: targetIdx},
				edgeType,
				token,
			)
			p.edges = append(p.edges, edge)
			return tokens, nil
		}

		// The index points at an impossible reading: a constant that merely
		// looks like an index. Generators do this (too) often, so keep the
		// literal and flag the graph.
		p.g.IsPossiblyIllFormed = true
		p.addConstant(target, reading.Comment, token, edgeType)
		return tokens, nil

	case NameConstantPattern.MatchString(target):
		// Quoted names may contain whitespace; rejoin the pieces.
		parts := []string{target}
		for !strings.HasSuffix(target, `"`) {
			if len(tokens) == 0 {
				return nil, sbnErrLine(MissingEdgeTarget, lineNo, "unterminated name for %q in line: %s", token, reading.Line)
			}
			target = tokens[0]
			tokens = tokens[1:]
			parts = append(parts, target)
		}
		p.addConstant(strings.Join(parts, " "), reading.Comment, token, EdgeRole)
		return tokens, nil

	default:
		p.addConstant(target, reading.Comment, token, EdgeRole)
		return tokens, nil
	}
}

func (p *parser) addConstant(literal, comment, edgeToken string, edgeType EdgeType) {
	node := p.g.createNode(NodeConstant, literal)
	node.Comment = comment
	edge := p.g.createEdge(
		p.g.activeNodeID(NodeSynset),
		node.ID,
		edgeType,
		edgeToken,
	)
	p.nodes = append(p.nodes, node)
	p.edges = append(p.edges, edge)
}

func parseIdx(lineNo int, possible string) (int, error) {
	idx, err := strconv.Atoi(possible)
	if err != nil {
		return 0, sbnErrLine(UnparsableIndex, lineNo, "invalid index %q found", possible)
	}
	return idx, nil
}
