package behavior

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/behaviorkit/behave/record"
)

// Behavior owns the expectation registry and runs the verification pass.
//
// Thread-safety model:
//   - Expect/Never (via add): safe from any goroutine; appends serialize
//     under the write lock.
//   - Verify: safe from any goroutine; its registry snapshot takes the
//     read lock, so it never observes a partially-appended expectation.
//     Concurrent Verify calls are independent passes.
//
// INVARIANT: registry order never changes after append - registration
// order is the matching order in ordered mode.
type Behavior struct {
	mu      sync.RWMutex
	exps    []*expectation
	strict  bool
	ordered bool
}

// Option configures a Behavior at construction.
type Option func(*Behavior)

// Nice disables strict mode: interactions that match no expectation are
// silently ignored instead of reported. Disallowed interactions
// (negative expectation hits) are still reported.
func Nice() Option {
	return func(b *Behavior) { b.strict = false }
}

// Unordered disables ordered mode: any registered expectation may match
// any interaction regardless of registration order.
func Unordered() Option {
	return func(b *Behavior) { b.ordered = false }
}

// New creates a Behavior. Defaults: strict and ordered.
func New(opts ...Option) *Behavior {
	b := &Behavior{strict: true, ordered: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Strict reports whether unmatched interactions are failures.
func (b *Behavior) Strict() bool { return b.strict }

// Ordered reports whether registration order constrains matching.
func (b *Behavior) Ordered() bool { return b.ordered }

// add appends an expectation to the registry.
func (b *Behavior) add(e *expectation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exps = append(b.exps, e)
}

// Pending returns the number of registered expectations (positive and
// negative) not yet consumed by a verification pass.
func (b *Behavior) Pending() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.exps)
}

// Verify runs one full verification pass and returns its report.
//
// The pass takes a consistent snapshot of the registry, merges every
// referenced log into one chronological stream, and greedily matches
// interactions against the pending expectations in registration order.
// Positive expectations fulfilled during the pass are removed from the
// registry; negative expectations always remain. Verify never fails
// hard - all violations land in the report.
func (b *Behavior) Verify() *Report {
	b.mu.RLock()
	pending := make([]*expectation, len(b.exps))
	copy(pending, b.exps)
	b.mu.RUnlock()

	// Distinct target logs, in first-reference order. The merger
	// dedupes by ID as well; this keeps the slice minimal.
	var sources []record.Source
	seen := make(map[string]bool)
	for _, e := range pending {
		if !seen[e.source.ID()] {
			seen[e.source.ID()] = true
			sources = append(sources, e.source)
		}
	}

	slog.Debug("verify: pass starting",
		"expectations", len(pending),
		"logs", len(sources))

	rep := &Report{}
	consumed := make(map[*expectation]bool)

	m := newMerger(sources)
	for {
		src, idx, ok := m.next()
		if !ok {
			break
		}
		pending = b.consume(rep, consumed, pending, src, idx)
	}

	// Every surviving positive expectation went unmatched. Negatives
	// are standing guards - their silence is success.
	for _, e := range pending {
		if !e.negative {
			rep.add(KindUnfulfilled,
				fmt.Sprintf("Expectation not fulfilled: %s%s", e.desc, e.loc.suffix()))
		}
	}

	b.removeConsumed(consumed)

	slog.Debug("verify: pass finished", "diagnostics", len(rep.Diagnostics))
	return rep
}

// consume matches one interaction against the pending list and returns
// the list with any fulfilled expectation removed. The scan is greedy
// first-fit in registration order; see package docs for the mode rules.
func (b *Behavior) consume(rep *Report, consumed map[*expectation]bool, pending []*expectation, src record.Source, idx int) []*expectation {
	for i, e := range pending {
		if e.source.ID() == src.ID() && e.matches(idx) {
			if e.negative {
				// A standing guard fired. Report and keep it armed for
				// later interactions.
				rep.add(KindDisallowed,
					fmt.Sprintf("Disallowed interaction %s matches expectation %s%s",
						src.DescribeAt(idx), e.desc, e.loc.suffix()))
				return pending
			}

			// Fulfilled. Rebuild the pending list without this slot so
			// the registration-order invariant stays visibly intact.
			consumed[e] = true
			out := make([]*expectation, 0, len(pending)-1)
			out = append(out, pending[:i]...)
			out = append(out, pending[i+1:]...)
			return out
		}

		if b.ordered && !e.negative {
			// The currently-due positive expectation blocks the scan:
			// this interaction cannot be satisfied out of order.
			// Negative expectations are transparent to the ordered scan
			// and never block (nor produce a diagnostic when skipped).
			if b.strict {
				rep.add(KindOrderViolation,
					fmt.Sprintf("Interaction %s does not match expectation %s%s",
						src.DescribeAt(idx), e.desc, e.loc.suffix()))
			}
			return pending
		}
	}

	if b.strict {
		rep.add(KindUnexpected,
			fmt.Sprintf("Interaction %s not expected", src.DescribeAt(idx)))
	}
	return pending
}

// removeConsumed prunes expectations fulfilled during a pass from the
// live registry, preserving registration order of the remainder.
func (b *Behavior) removeConsumed(consumed map[*expectation]bool) {
	if len(consumed) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.exps[:0]
	for _, e := range b.exps {
		if !consumed[e] {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(b.exps); i++ {
		b.exps[i] = nil
	}
	b.exps = kept
}
