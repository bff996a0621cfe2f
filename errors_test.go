// errors_test.go
package sbn

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func Test_Errors_Message(t *testing.T) {
	err := sbnErrf(MissingEdgeTarget, "missing target for %q", "Agent")
	want := `SBN ERROR (missing-edge-target): missing target for "Agent"`
	if err.Error() != want {
		t.Fatalf("want %q, got %q", want, err.Error())
	}
}

func Test_Errors_IsKind(t *testing.T) {
	err := fmt.Errorf("while parsing: %w", sbnErrLine(UnparsableIndex, 3, "bad index"))
	if !IsKind(err, UnparsableIndex) {
		t.Fatalf("IsKind should unwrap")
	}
	if IsKind(err, EmptyDocument) {
		t.Fatalf("kind mismatch not detected")
	}
	if IsKind(errors.New("plain"), UnparsableIndex) {
		t.Fatalf("plain errors have no kind")
	}
}

func Test_Errors_WrapWithDocument(t *testing.T) {
	doc := "person.n.01\nwork.v.01 Agent\ntime.n.08 EQU now"
	_, err := FromString(doc)
	wantKind(t, err, MissingEdgeTarget)

	wrapped := WrapErrorWithDocument(err, doc)
	msg := wrapped.Error()
	if !strings.Contains(msg, "SBN ERROR (missing-edge-target)") {
		t.Fatalf("original message lost:\n%s", msg)
	}
	if !strings.Contains(msg, ">  2 | work.v.01 Agent") {
		t.Fatalf("offending line not marked:\n%s", msg)
	}
	if !strings.Contains(msg, "   1 | person.n.01") || !strings.Contains(msg, "   3 | time.n.08 EQU now") {
		t.Fatalf("context lines missing:\n%s", msg)
	}
}

func Test_Errors_WrapWithDocument_Passthrough(t *testing.T) {
	plain := errors.New("plain")
	if got := WrapErrorWithDocument(plain, "person.n.01"); got != plain {
		t.Fatalf("non-SBN errors must pass through unchanged")
	}
	noLine := sbnErrf(EmptyDocument, "document contains no SBN readings")
	if got := WrapErrorWithDocument(noLine, ""); got != noLine {
		t.Fatalf("errors without a line must pass through unchanged")
	}
}
