package behavior

import (
	"container/heap"

	"github.com/behaviorkit/behave/record"
)

// cursor tracks the merge position within one log.
// Invariant: 0 <= index <= source length; a cursor at length is retired.
type cursor struct {
	src   record.Source
	index int
}

// cursorHeap is a min-heap of cursors keyed by the timestamp of each
// log's current head interaction. Ties across logs break by log ID so
// the merge order is deterministic; ties within one log cannot reorder
// because each log has exactly one cursor.
type cursorHeap []*cursor

func (h cursorHeap) Len() int { return len(h) }

func (h cursorHeap) Less(i, j int) bool {
	ti := h[i].src.TimestampAt(h[i].index)
	tj := h[j].src.TimestampAt(h[j].index)
	if ti != tj {
		return ti < tj
	}
	return h[i].src.ID() < h[j].src.ID()
}

func (h cursorHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cursorHeap) Push(x any) { *h = append(*h, x.(*cursor)) }

func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return c
}

// merger produces a lazy, single-pass, globally timestamp-ordered
// sequence of (source, index) pairs drawn from a set of logs: a k-way
// merge with O(log k) work per yielded element.
//
// Logs are recorded independently, so no single log carries the global
// order; the merge reconstructs it from per-interaction timestamps.
// Purely reads the logs; never mutates them.
type merger struct {
	h cursorHeap
}

// newMerger builds a merger over sources. Duplicate identities are
// deduplicated by ID (not content); empty logs are dropped up front.
func newMerger(sources []record.Source) *merger {
	m := &merger{}
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		if seen[s.ID()] || s.Len() == 0 {
			continue
		}
		seen[s.ID()] = true
		m.h = append(m.h, &cursor{src: s})
	}
	heap.Init(&m.h)
	return m
}

// next yields the chronologically next (source, index) pair, or ok=false
// when every log is fully consumed. Each pair is yielded exactly once.
func (m *merger) next() (src record.Source, index int, ok bool) {
	if m.h.Len() == 0 {
		return nil, 0, false
	}

	c := m.h[0]
	src, index = c.src, c.index

	c.index++
	if c.index < c.src.Len() {
		// Head timestamp changed; restore the heap property in place.
		heap.Fix(&m.h, 0)
	} else {
		heap.Pop(&m.h)
	}
	return src, index, true
}
