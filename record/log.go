// Package record provides the interaction recorder side of the
// verification engine: logical clocks, identity-bearing append-only
// interaction logs, and the stub glue that records calls into them.
package record

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Source is the narrow read-only view of a log consumed by the
// verification engine. It deliberately erases the value type: the engine
// only needs identity, length, ordering keys, and a rendering of each
// value for diagnostics. Typed value access stays behind the generic Log.
type Source interface {
	// ID returns the log's stable identity. Two logs with equal content
	// but different identities are distinct sources.
	ID() string

	// Len returns the number of recorded interactions.
	Len() int

	// TimestampAt returns the ordering key of the interaction at index i.
	// Timestamps are non-decreasing within one log.
	TimestampAt(i int) int64

	// DescribeAt returns a human-readable rendering of the value at
	// index i, used only in diagnostic messages.
	DescribeAt(i int) string
}

// Entry is one recorded interaction: a value plus its ordering key.
// Immutable once appended.
type Entry[V any] struct {
	Value V
	Seq   int64
}

// Log is an identity-bearing, append-only, timestamped interaction log.
//
// Logs are owned by test code: recorders (stubs, mocks, hand-written
// doubles) append to them, the verification engine only reads them by
// index and never mutates them.
//
// Thread-safety: Append may be called from any goroutine; reads take the
// shared side of the lock. The log is append-only, so an index observed
// once stays valid for the log's lifetime.
type Log[V any] struct {
	mu      sync.RWMutex
	id      string
	clock   *Clock
	entries []Entry[V]
}

// NewLog creates an empty log stamped by clock, with a generated UUID
// identity.
func NewLog[V any](clock *Clock) *Log[V] {
	return NewLogWithID[V](clock, uuid.NewString())
}

// NewLogWithID creates an empty log with an explicit identity. Used for
// deterministic fixtures where generated identities would destabilize
// diagnostics or golden files.
func NewLogWithID[V any](clock *Clock, id string) *Log[V] {
	return &Log[V]{id: id, clock: clock}
}

// ID returns the log's stable identity.
func (l *Log[V]) ID() string {
	return l.id
}

// Append records v stamped with the next sequence number from the
// shared clock. The sequence is drawn inside the critical section so
// concurrent appends cannot land out of timestamp order within the log.
func (l *Log[V]) Append(v V) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry[V]{Value: v, Seq: l.clock.Next()})
}

// AppendAt records v with an explicit ordering key. Fixture use only:
// callers must keep seq non-decreasing within the log, or the
// chronological merge's ordering guarantee no longer holds.
func (l *Log[V]) AppendAt(v V, seq int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry[V]{Value: v, Seq: seq})
}

// Len returns the number of recorded interactions.
func (l *Log[V]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// TimestampAt returns the ordering key of the interaction at index i.
func (l *Log[V]) TimestampAt(i int) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries[i].Seq
}

// ValueAt returns the value recorded at index i.
func (l *Log[V]) ValueAt(i int) V {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries[i].Value
}

// DescribeAt renders the value at index i for diagnostics. Strings are
// quoted so empty and whitespace-only values stay visible.
func (l *Log[V]) DescribeAt(i int) string {
	v := l.ValueAt(i)
	if s, ok := any(v).(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", v)
}

// Snapshot returns a copy of all recorded entries. The copy is isolated:
// later appends do not affect it.
func (l *Log[V]) Snapshot() []Entry[V] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry[V], len(l.entries))
	copy(out, l.entries)
	return out
}
