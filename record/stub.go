package record

import "sync"

// Stub is call-interception glue for a test double: each Call records
// the request into the backing log and returns the next queued canned
// response, falling back to a fixed response when the queue is empty.
//
// Stub carries no verification logic of its own - expectations are
// registered against the backing log and checked by behavior.Verify.
//
// Thread-safety: Call, Return, and Fallback are safe for concurrent use.
type Stub[Req, Resp any] struct {
	mu       sync.Mutex
	log      *Log[Req]
	queued   []Resp
	fallback Resp
}

// NewStub creates a stub recording into log. The fallback response is
// the zero value of Resp until Fallback is called.
func NewStub[Req, Resp any](log *Log[Req]) *Stub[Req, Resp] {
	return &Stub[Req, Resp]{log: log}
}

// Return queues responses to hand out, one per Call, in order.
// Returns the stub for chaining.
func (s *Stub[Req, Resp]) Return(rs ...Resp) *Stub[Req, Resp] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = append(s.queued, rs...)
	return s
}

// Fallback sets the response handed out once the queue is drained.
// Returns the stub for chaining.
func (s *Stub[Req, Resp]) Fallback(r Resp) *Stub[Req, Resp] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = r
	return s
}

// Call records req into the backing log and returns the next queued
// response, or the fallback when none are queued.
func (s *Stub[Req, Resp]) Call(req Req) Resp {
	s.log.Append(req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queued) == 0 {
		return s.fallback
	}
	r := s.queued[0]

	// Nil out the slot so the underlying array does not retain the
	// response's pointers until reallocation.
	var zero Resp
	s.queued[0] = zero
	s.queued = s.queued[1:]
	return r
}

// Log returns the backing interaction log.
func (s *Stub[Req, Resp]) Log() *Log[Req] {
	return s.log
}
