// sbn_printer.go: rewriting a graph back into linear SBN notation.
//
// Pass one walks every box in creation order and collects one reading per
// box-connected synset, with synset targets kept as unresolved references.
// Pass two rewrites each reference into a signed offset relative to the
// emitting reading (the PMB writes a zero offset as "+0"). The first column
// is padded so readings align vertically, as in the PMB files.
package sbn

import (
	"fmt"
	"os"
	"strings"
)

// ToSBNString serializes the graph to SBN. With addComments, a provenance
// line is prepended and reading comments are carried along.
func (g *Graph) ToSBNString(addComments bool) (string, error) {
	lines, idxMap, err := g.collectReadings()
	if err != nil {
		return "", err
	}
	return g.resolveReadings(lines, idxMap, addComments), nil
}

// ToSBNFile writes the SBN serialization to path, appending the ".sbn"
// extension when missing.
func (g *Graph) ToSBNFile(path string, addComments bool) error {
	s, err := g.ToSBNString(addComments)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(path, ".sbn") {
		path += ".sbn"
	}
	return os.WriteFile(path, []byte(s+"\n"), 0o644)
}

/* ---------- pass one: collect ---------- */

// sbnCell is one output field: either a literal or a synset reference that
// pass two resolves into a signed offset.
type sbnCell struct {
	lit   string
	ref   NodeID
	isRef bool
}

func litCell(s string) sbnCell  { return sbnCell{lit: s} }
func refCell(id NodeID) sbnCell { return sbnCell{ref: id, isRef: true} }

func (g *Graph) collectReadings() ([][]sbnCell, map[NodeID]int, error) {
	var lines [][]sbnCell
	idxMap := map[NodeID]int{}
	// Box-relation lines carry no synset; references count synset readings
	// only, so they get their own index.
	synLineIdx := 0

	for _, node := range g.Nodes() {
		if node.ID.Type != NodeBox {
			continue
		}
		boxBoxToken := ""
		for _, edge := range g.OutEdges(node.ID) {
			if edge.ID.Type == EdgeBoxBoxConnect {
				if boxBoxToken != "" {
					return nil, nil, sbnErrf(MultipleBoxBoxConnections,
						"box %s connected to multiple boxes", node.ID)
				}
				boxBoxToken = edge.Token
			}

			switch edge.To.Type {
			case NodeSynset, NodeConstant:
				if _, seen := idxMap[edge.To]; seen {
					return nil, nil, sbnErrf(AmbiguousSynsetOwnership,
						"synset %s claimed by two boxes", edge.To)
				}
				idxMap[edge.To] = synLineIdx
				synLineIdx++
				line, err := g.collectReading(edge.To)
				if err != nil {
					return nil, nil, err
				}
				lines = append(lines, line)
			case NodeBox:
				// box-box link, handled above
			}
		}
		if boxBoxToken != "" {
			lines = append(lines, []sbnCell{litCell(boxBoxToken), litCell("-1")})
		}
	}
	return lines, idxMap, nil
}

func (g *Graph) collectReading(head NodeID) ([]sbnCell, error) {
	line := []sbnCell{refCell(head)}
	for _, edge := range g.OutEdges(head) {
		if edge.ID.Type != EdgeRole && edge.ID.Type != EdgeDrsOperator {
			return nil, sbnErrf(InvalidSynsetEdgeShape,
				"invalid synset edge connect found: %s", edge.ID.Type)
		}
		line = append(line, litCell(edge.Token))

		target := g.Node(edge.To)
		switch target.ID.Type {
		case NodeSynset:
			line = append(line, refCell(target.ID))
		case NodeConstant:
			line = append(line, litCell(target.Token))
		default:
			return nil, sbnErrf(InvalidSynsetEdgeTargetShape,
				"invalid synset node connect found: %s", target.ID.Type)
		}
	}
	return line, nil
}

/* ---------- pass two: resolve & align ---------- */

func (g *Graph) resolveReadings(lines [][]sbnCell, idxMap map[NodeID]int, addComments bool) string {
	type row struct{ first, rest string }
	var rows []row

	if addComments {
		rows = append(rows, row{
			first: fmt.Sprintf("%s SBN source: %s", CommentLine, g.Source),
			rest:  " ",
		})
	}

	currentSynIdx := 0
	for _, line := range lines {
		var fields []string
		comment := ""

		for i, cell := range line {
			switch {
			case i == 0 && cell.isRef:
				node := g.Node(cell.ref)
				fields = append(fields, node.Token)
				comment = node.Comment
				currentSynIdx++
			case i == 0:
				fields = append(fields, cell.lit)
			case cell.isRef:
				// Offset is relative to the count of readings emitted so
				// far; same-or-later readings print with a '+'.
				target := idxMap[cell.ref] - currentSynIdx + 1
				if target >= 0 {
					fields = append(fields, fmt.Sprintf("+%d", target))
				} else {
					fields = append(fields, fmt.Sprintf("%d", target))
				}
			default:
				fields = append(fields, cell.lit)
			}
		}
		if addComments && comment != "" {
			fields = append(fields, Comment+comment)
		}

		if len(fields) == 1 {
			rows = append(rows, row{first: fields[0], rest: " "})
		} else {
			rows = append(rows, row{first: fields[0], rest: strings.Join(fields[1:], " ")})
		}
	}

	if len(rows) == 0 {
		return ""
	}

	maxLen := 0
	for _, r := range rows {
		if len(r.first) > maxLen {
			maxLen = len(r.first)
		}
	}
	maxLen++

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, strings.TrimRight(fmt.Sprintf("%-*s%s", maxLen, r.first, r.rest), " "))
	}
	return strings.Join(out, "\n")
}
