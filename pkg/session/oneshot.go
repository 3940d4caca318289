package session

import (
	"context"
	"sync"
)

// result is the terminal outcome of one attempt.
type result struct {
	handle *Handle
	err    error
}

// oneshot delivers exactly one result. Resolve and reject report whether
// they won the race, making the exactly-once invariant checkable instead
// of informal.
type oneshot struct {
	mu   sync.Mutex
	done bool
	ch   chan result
}

func newOneshot() *oneshot {
	return &oneshot{ch: make(chan result, 1)}
}

// resolve delivers a success result. Returns false if a result was
// already delivered.
func (o *oneshot) resolve(h *Handle) bool {
	return o.deliver(result{handle: h})
}

// reject delivers a failure result. Returns false if a result was
// already delivered.
func (o *oneshot) reject(err error) bool {
	return o.deliver(result{err: err})
}

func (o *oneshot) deliver(r result) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done {
		return false
	}
	o.done = true
	o.ch <- r
	return true
}

// wait blocks until a result is delivered or ctx is cancelled.
func (o *oneshot) wait(ctx context.Context) (*Handle, error) {
	select {
	case r := <-o.ch:
		return r.handle, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
