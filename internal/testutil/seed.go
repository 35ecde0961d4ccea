// Package testutil provides shared fixture helpers for tests.
package testutil

import "github.com/behaviorkit/behave/record"

// Seed appends values to l with consecutive explicit timestamps starting
// at start, and returns the first unused timestamp. Explicit timestamps
// keep merge order independent of append interleaving across logs, so
// fixtures stay deterministic.
func Seed[V any](l *record.Log[V], start int64, values ...V) int64 {
	at := start
	for _, v := range values {
		l.AppendAt(v, at)
		at++
	}
	return at
}
