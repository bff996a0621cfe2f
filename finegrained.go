// finegrained.go: rewriting Penman text for coarser comparison.
//
// Downstream scoring sometimes wants to ignore a dimension of the notation:
// which role, which discourse relation, which operator, or which word
// sense. These rewrites blank the chosen dimension out of the Penman text
// so two serializations can be compared modulo that dimension.
package sbn

import "regexp"

// FineGrainedDetail selects which dimension to blank out.
type FineGrainedDetail string

const (
	DetailNone     FineGrainedDetail = "none"
	DetailRole     FineGrainedDetail = "role"     // :Agent, :Theme, ... -> :role
	DetailRelation FineGrainedDetail = "relation" // :NEGATION, ... -> :relation
	DetailOperator FineGrainedDetail = "operator" // :EQU, :TPR, ... -> :operator
	DetailSense    FineGrainedDetail = "sense"    // person.n.01 -> person
)

var (
	roleEdgeRE     = regexp.MustCompile(`:([A-Z][a-z]*)`)
	relationEdgeRE = regexp.MustCompile(`:([A-Z]{4,12}) `)
	operatorEdgeRE = regexp.MustCompile(`:([A-Z]{3}) `)
	senseRE        = regexp.MustCompile(`(.+)\.(n|v|a|r)\.\d+`)
)

// FineGrained rewrites one dimension of a Penman string. Unknown details
// leave the text unchanged.
func FineGrained(penman string, detail FineGrainedDetail) string {
	switch detail {
	case DetailRole:
		return roleEdgeRE.ReplaceAllString(penman, ":role")
	case DetailRelation:
		return relationEdgeRE.ReplaceAllString(penman, ":relation ")
	case DetailOperator:
		return operatorEdgeRE.ReplaceAllString(penman, ":operator ")
	case DetailSense:
		return senseRE.ReplaceAllString(penman, "$1")
	default:
		return penman
	}
}
