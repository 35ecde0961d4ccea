package behavior

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind categorizes a diagnostic.
type Kind string

const (
	// KindUnexpected is an interaction with no matching expectation
	// reachable under the active mode (reported in strict mode only).
	KindUnexpected Kind = "UNEXPECTED_INTERACTION"

	// KindDisallowed is an interaction matching a negative expectation.
	KindDisallowed Kind = "DISALLOWED_INTERACTION"

	// KindOrderViolation is an interaction that arrived while an
	// earlier-registered ordered positive expectation was still
	// unfulfilled (reported in strict mode only).
	KindOrderViolation Kind = "ORDER_VIOLATION"

	// KindUnfulfilled is a positive expectation with no matching
	// interaction by the end of the pass.
	KindUnfulfilled Kind = "UNFULFILLED_EXPECTATION"
)

// Diagnostic is one verification failure. Failures are collected, never
// raised - Verify always runs to completion.
type Diagnostic struct {
	Kind    Kind
	Message string
}

// Report is the outcome of one verification pass. An empty report is
// success. A report is produced by every Verify call, violations or not.
type Report struct {
	Diagnostics []Diagnostic
}

// add appends a diagnostic. Message text is NFC-normalized so that
// renderings are byte-stable across equivalent Unicode spellings
// (matters for golden-file comparison of reports).
func (r *Report) add(k Kind, msg string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Kind: k, Message: norm.NFC.String(msg)})
}

// Empty reports whether the pass produced no diagnostics.
func (r *Report) Empty() bool {
	return len(r.Diagnostics) == 0
}

// Lines returns one message per diagnostic, in the order produced.
func (r *Report) Lines() []string {
	lines := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		lines[i] = d.Message
	}
	return lines
}

// Count returns the number of diagnostics of kind k.
func (r *Report) Count(k Kind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Render returns the full report as newline-terminated text, or "" for
// an empty (passing) report.
func (r *Report) Render() string {
	if r.Empty() {
		return ""
	}
	return strings.Join(r.Lines(), "\n") + "\n"
}
