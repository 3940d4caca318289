package appstate

import (
	"sync"
)

// Recorder is a Dispatcher test double that logs actions in dispatch
// order. It optionally forwards to an inner dispatcher.
type Recorder struct {
	mu      sync.Mutex
	actions []Action
	inner   Dispatcher
}

// NewRecorder creates a recorder. inner may be nil.
func NewRecorder(inner Dispatcher) *Recorder {
	return &Recorder{inner: inner}
}

// Dispatch logs the action and forwards it to the inner dispatcher.
func (r *Recorder) Dispatch(action Action) {
	r.mu.Lock()
	r.actions = append(r.actions, action)
	r.mu.Unlock()

	if r.inner != nil {
		r.inner.Dispatch(action)
	}
}

// Actions returns a copy of the dispatched actions in order.
func (r *Recorder) Actions() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// Names returns the dispatched action names in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.actions))
	for i, a := range r.actions {
		names[i] = a.Name()
	}
	return names
}

// Compile-time interface satisfaction check.
var _ Dispatcher = (*Recorder)(nil)
