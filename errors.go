// errors.go: the SBN error taxonomy and document-snippet rendering.
//
// Every failure in this package is an *SBNError carrying a Kind. Errors are
// fatal for the document being processed but are meant to be caught by a
// batch driver that records the failure and moves on to the next document.
//
// WrapErrorWithDocument augments an *SBNError that knows its reading index
// with a small numbered snippet of the offending document, in the spirit of
// compiler diagnostics:
//
//	SBN ERROR (missing-edge-target): missing target for 'Agent'
//
//	   1 | person.n.01
//	 > 2 | work.v.01  Agent
//	   3 | time.n.08  EQU now
package sbn

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies an SBN processing failure.
type ErrorKind int

const (
	// parse-time
	EmptyDocument ErrorKind = iota
	MissingScopeIndex
	MissingEdgeTarget
	UnparsableIndex

	// well-formedness, raised while serializing to SBN
	AmbiguousSynsetOwnership
	MultipleBoxBoxConnections
	InvalidSynsetEdgeShape
	InvalidSynsetEdgeTargetShape

	// tree (Penman) output only
	CyclicGraphNotSerializable
	IllFormedGraphRejected
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyDocument:
		return "empty-document"
	case MissingScopeIndex:
		return "missing-scope-index"
	case MissingEdgeTarget:
		return "missing-edge-target"
	case UnparsableIndex:
		return "unparsable-index"
	case AmbiguousSynsetOwnership:
		return "ambiguous-synset-ownership"
	case MultipleBoxBoxConnections:
		return "multiple-box-box-connections"
	case InvalidSynsetEdgeShape:
		return "invalid-synset-edge-shape"
	case InvalidSynsetEdgeTargetShape:
		return "invalid-synset-edge-target-shape"
	case CyclicGraphNotSerializable:
		return "cyclic-graph-not-serializable"
	case IllFormedGraphRejected:
		return "ill-formed-graph-rejected"
	default:
		return fmt.Sprintf("error-kind(%d)", int(k))
	}
}

// SBNError is the error type for everything in this package. Line is the
// 1-based reading index when the error is tied to a specific line, 0
// otherwise.
type SBNError struct {
	Kind ErrorKind
	Msg  string
	Line int
}

func (e *SBNError) Error() string {
	return fmt.Sprintf("SBN ERROR (%s): %s", e.Kind, e.Msg)
}

func sbnErrf(kind ErrorKind, format string, args ...interface{}) *SBNError {
	return &SBNError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func sbnErrLine(kind ErrorKind, line int, format string, args ...interface{}) *SBNError {
	return &SBNError{Kind: kind, Msg: fmt.Sprintf(format, args...), Line: line}
}

// IsKind reports whether err is an *SBNError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *SBNError
	return errors.As(err, &e) && e.Kind == kind
}

// WrapErrorWithDocument returns err augmented with a numbered snippet of the
// document's readings around the offending line. Non-SBN errors and errors
// without a line are returned unchanged.
func WrapErrorWithDocument(err error, doc string) error {
	var e *SBNError
	if !errors.As(err, &e) || e.Line < 1 {
		return err
	}
	readings := SplitComments(doc)
	if len(readings) == 0 {
		return err
	}

	line := e.Line
	if line > len(readings) {
		line = len(readings)
	}
	lo, hi := line-1, line+1
	if lo < 1 {
		lo = 1
	}
	if hi > len(readings) {
		hi = len(readings)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", e.Error())
	for i := lo; i <= hi; i++ {
		marker := "  "
		if i == line {
			marker = "> "
		}
		fmt.Fprintf(&b, " %s%2d | %s\n", marker, i, readings[i-1].Line)
	}
	return fmt.Errorf("%s", strings.TrimRight(b.String(), "\n"))
}
