// spec.go: the fixed SBN vocabulary, token patterns and document splitting.
package sbn

import (
	"regexp"
	"strings"
)

// Version of the sbn package.
const Version = "0.2.0"

// Comment markers. A reading-level comment sits after " % " on a line, a
// document-level comment line starts with "%%%".
const (
	Comment     = " % "
	CommentLine = "%%%"
)

// MinSynsetIdx is the lowest line index a relative synset reference may
// resolve to.
const MinSynsetIdx = 0

var (
	// SynsetPattern matches a sense-tagged symbol: lemma.pos.senseid, with
	// pos one of n/v/a/r. Only the first token of a reading is tested.
	SynsetPattern = regexp.MustCompile(`^(.+)\.(n|v|a|r)\.(\d+)$`)

	// IndexPattern matches a relative reference: a sign (or the box-scoped
	// '<'/'>' variants introduced with PMB 5) followed by digits.
	IndexPattern = regexp.MustCompile(`^(-|\+|<|>)\d+$`)

	// NameConstantPattern matches (a fragment of) a quoted name constant.
	NameConstantPattern = regexp.MustCompile(`^"(.+)"$|^"(.+)$|^(.+)"$`)
)

// NewBoxIndicators are the discourse relations that open a new box.
var NewBoxIndicators = map[string]bool{
	"ALTERNATION":  true,
	"ATTRIBUTION":  true,
	"CONDITION":    true,
	"CONSEQUENCE":  true,
	"CONTINUATION": true,
	"CONTRAST":     true,
	"EXPLANATION":  true,
	"NECESSITY":    true,
	"NEGATION":     true,
	"POSSIBILITY":  true,
	"PRECONDITION": true,
	"RESULT":       true,
	"SOURCE":       true,
}

// DrsOperators are the temporal, spatial and ordering operators.
var DrsOperators = map[string]bool{
	"MOR": true, "LES": true, "TOP": true, "BOT": true, "ORD": true,
	"TSU": true,
	// temporal
	"EQU": true, "NEQ": true, "APX": true, "LEQ": true,
	"TPR": true, "TAB": true, "TIN": true,
	// spatial
	"SZP": true, "SZN": true, "SXP": true, "SXN": true,
	"STI": true, "STO": true, "SY1": true, "SY2": true, "SXY": true,
}

// Roles is the PMB thematic role inventory.
var Roles = map[string]bool{
	"InstanceOf": true, "Proposition": true, "Name": true,
	// event roles
	"Agent": true, "Asset": true, "Attribute": true, "AttributeOf": true,
	"Beneficiary": true, "Causer": true, "Co-Agent": true, "Co-Patient": true,
	"Co-Theme": true, "Consumer": true, "Destination": true, "Duration": true,
	"Experiencer": true, "Finish": true, "Frequency": true, "Goal": true,
	"Instrument": true, "Instance": true, "Location": true, "Manner": true,
	"Material": true, "Path": true, "Patient": true, "Pivot": true,
	"Product": true, "Recipient": true, "Result": true, "Source": true,
	"Start": true, "Stimulus": true, "Theme": true, "Time": true,
	"Topic": true, "Value": true,
	// concept roles
	"Bearer": true, "Colour": true, "ColourOf": true, "Content": true,
	"ContentOf": true, "Creator": true, "Degree": true, "MadeOf": true,
	"Of": true, "Operand": true, "Owner": true, "Part": true, "PartOf": true,
	"Quantity": true, "Role": true, "Sub": true, "SubOf": true,
	"Title": true, "Unit": true, "User": true,
	// time roles
	"ClockTime": true, "DayOfMonth": true, "DayOfWeek": true, "Decade": true,
	"MonthOfYear": true, "YearOfCentury": true,
	// other
	"Affector": true, "Context": true, "Equal": true, "Extent": true,
	"Precondition": true, "Measure": true, "Cause": true, "Order": true,
	"Participant": true,
}

// InvertibleRole reports whether a role can be printed in Penman's inverse
// spelling ("...Of" -> "...-of"). These are exactly the roles ending in "Of".
func InvertibleRole(role string) bool {
	return Roles[role] && strings.HasSuffix(role, "Of")
}

/* ---------- token classification ---------- */

// TokenKind is the lexical category of an SBN token.
type TokenKind int

const (
	TokenDefault TokenKind = iota // constants and everything unrecognized
	TokenSynset                   // lemma.pos.sense, head position only
	TokenNewBox                   // discourse relation opening a new box
	TokenRole
	TokenDrsOperator
	TokenIndex // relative reference, argument position only
)

func (k TokenKind) String() string {
	switch k {
	case TokenSynset:
		return "synset"
	case TokenNewBox:
		return "new-box"
	case TokenRole:
		return "role"
	case TokenDrsOperator:
		return "drs-operator"
	case TokenIndex:
		return "index"
	default:
		return "default"
	}
}

// ClassifyToken decides the lexical category of a token. Classification is
// context sensitive: a synset is only recognized in head position (first
// token of a reading) and an index only in argument position.
func ClassifyToken(token string, head bool) TokenKind {
	switch {
	case head && SynsetPattern.MatchString(token):
		return TokenSynset
	case NewBoxIndicators[token]:
		return TokenNewBox
	case Roles[token]:
		return TokenRole
	case DrsOperators[token]:
		return TokenDrsOperator
	case !head && IndexPattern.MatchString(token):
		return TokenIndex
	default:
		return TokenDefault
	}
}

// SplitSynsetID splits "lemma.pos.sense" into its components.
func SplitSynsetID(token string) (lemma, pos, sense string, ok bool) {
	m := SynsetPattern.FindStringSubmatch(token)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

/* ---------- document splitting ---------- */

// A Reading is one non-comment line of an SBN document together with its
// optional trailing comment.
type Reading struct {
	Line    string
	Comment string
}

// SplitComments splits a document into readings, dropping blank lines and
// whole-line comments and detaching " % " comments.
func SplitComments(doc string) []Reading {
	var out []Reading
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, CommentLine) {
			continue
		}
		if i := strings.Index(line, Comment); i >= 0 {
			out = append(out, Reading{
				Line:    strings.TrimSpace(line[:i]),
				Comment: strings.TrimSpace(line[i+len(Comment):]),
			})
			continue
		}
		out = append(out, Reading{Line: line})
	}
	return out
}

// SplitSingle reconstructs reading lines from a whitespace-joined one-line
// SBN document (the form neural systems emit). A new reading starts at every
// synset or new-box token, except when that token is consumed as the
// argument of the preceding role, operator or box indicator.
func SplitSingle(line string) string {
	tokens := strings.Fields(line)
	var (
		lines   []string
		current []string
		wasHead bool // previous token expects an argument next
	)
	for _, tok := range tokens {
		startsReading := SynsetPattern.MatchString(tok) || NewBoxIndicators[tok]
		if startsReading && !wasHead && len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
		}
		current = append(current, tok)
		wasHead = Roles[tok] || DrsOperators[tok] || NewBoxIndicators[tok]
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return strings.Join(lines, "\n")
}

// Quote wraps a value in double quotes unless it already is; single-quote
// wrapping is converted to double quotes.
func Quote(in string) string {
	if strings.HasPrefix(in, `"`) && strings.HasSuffix(in, `"`) {
		return in
	}
	if len(in) >= 2 && strings.HasPrefix(in, `'`) && strings.HasSuffix(in, `'`) {
		return `"` + in[1:len(in)-1] + `"`
	}
	return `"` + in + `"`
}
