package record

import "sync/atomic"

// Clock is a monotonic logical clock used to stamp interactions.
//
// All interactions recorded against logs sharing one Clock are stamped
// with strictly increasing sequence numbers. This ensures:
// - Deterministic global ordering (no wall-clock race conditions)
// - Interactions recorded on independent logs remain globally comparable
// - Verification reasons about chronological order without a real clock
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence number.
// Used to build fixtures that continue an earlier timeline.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
