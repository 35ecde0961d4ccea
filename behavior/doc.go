// Package behavior is the test-double verification engine: it owns an
// expectation registry, merges interaction logs into one chronological
// stream, and decides after the fact whether the recorded interactions
// satisfy the registered expectations.
//
// # Model
//
// Test code registers expectations against one or more record.Log values:
//
//	clock := record.NewClock()
//	calls := record.NewLog[string](clock)
//
//	b := behavior.New()
//	behavior.Expect(b, calls, match.Eq("open"))
//	behavior.Expect(b, calls, match.Eq("close"))
//	behavior.Never(b, calls, match.Eq("reset"))
//
// The code under test records interactions (directly or through a
// record.Stub), and the test finishes with:
//
//	report := b.Verify()
//	if !report.Empty() {
//	    t.Fatal(report.Render())
//	}
//
// # Modes
//
// Two independent switches select one of four behavioral modes:
//
//   - strict (default) vs nice: whether interactions with no matching
//     expectation are reported or silently ignored. Disallowed
//     interactions (negative expectation hits) are reported in both.
//   - ordered (default) vs unordered: whether expectations must be
//     satisfied in registration order. In ordered mode an interaction is
//     only matched against expectations reachable from the front of the
//     registry without skipping an unfulfilled positive expectation;
//     negative expectations never block the scan.
//
// # Algorithm
//
// Verify merges the target logs with a heap-based k-way merge keyed by
// interaction timestamp (O(n log k) for n interactions across k logs),
// then runs a greedy single-pass first-fit match of interactions against
// the pending expectation list. There is no backtracking: a positive
// expectation is consumed by the first interaction that matches it under
// the active mode. This keeps failures locally explainable at the cost
// of occasionally rejecting a valid-but-reorderable assignment.
//
// Verify always completes; violations are collected as diagnostics in
// the returned Report, never raised. An empty Report is success.
package behavior
