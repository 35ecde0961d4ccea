package behavior

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/behaviorkit/behave/match"
	"github.com/behaviorkit/behave/record"
)

// Location is the source position an expectation was registered from,
// carried solely for diagnostics.
type Location struct {
	File string
	Line int
}

// IsZero reports whether no location was captured.
func (l Location) IsZero() bool {
	return l.File == ""
}

// String renders the location as "file.go:42" (base filename only).
func (l Location) String() string {
	return fmt.Sprintf("%s:%d", filepath.Base(l.File), l.Line)
}

// suffix returns " (file.go:42)" or "" when no location was captured.
func (l Location) suffix() string {
	if l.IsZero() {
		return ""
	}
	return " (" + l.String() + ")"
}

// callerLocation captures the caller's source position. skip counts
// frames above callerLocation itself, as in runtime.Caller.
func callerLocation(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	return Location{File: file, Line: line}
}

// expectation is a registered expectation with its value type erased:
// the registry holds expectations for logs of differing value types
// uniformly, and the only typed access happens inside the matches
// closure built at construction.
type expectation struct {
	desc     string
	source   record.Source
	negative bool
	loc      Location

	// matches evaluates the bound matcher against the value at index i
	// of the bound log. Pure: repeatable with identical results.
	matches func(i int) bool
}

// newExpectation erases the value type of (log, matcher) into a
// registry-storable expectation.
func newExpectation[V any](log *record.Log[V], m match.Matcher[V], negative bool, loc Location) *expectation {
	return &expectation{
		desc:     m.Describe(),
		source:   log,
		negative: negative,
		loc:      loc,
		matches: func(i int) bool {
			return m.Matches(log.ValueAt(i))
		},
	}
}

// Expect registers a positive expectation: log must record at least one
// interaction matching m. Each registered instance requires one matching
// interaction. The caller's source position is captured for diagnostics.
//
// Expect is a free function rather than a method because Go methods
// cannot introduce type parameters; the Behavior itself stores only the
// erased form.
func Expect[V any](b *Behavior, log *record.Log[V], m match.Matcher[V]) {
	b.add(newExpectation(log, m, false, callerLocation(1)))
}

// Never registers a negative expectation: log must never record an
// interaction matching m. Negative expectations are standing guards for
// the whole verification pass - every matching interaction is reported,
// and they are never consumed.
func Never[V any](b *Behavior, log *record.Log[V], m match.Matcher[V]) {
	b.add(newExpectation(log, m, true, callerLocation(1)))
}

// ExpectAt is Expect with an explicit source location (possibly zero,
// which omits the location from diagnostics). Used by drivers that
// register expectations on behalf of other code, such as the scenario
// runner, where the mechanical caller position would be misleading.
func ExpectAt[V any](b *Behavior, log *record.Log[V], m match.Matcher[V], loc Location) {
	b.add(newExpectation(log, m, false, loc))
}

// NeverAt is Never with an explicit source location.
func NeverAt[V any](b *Behavior, log *record.Log[V], m match.Matcher[V], loc Location) {
	b.add(newExpectation(log, m, true, loc))
}
