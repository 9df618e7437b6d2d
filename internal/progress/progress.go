// Package progress reports percentage/message updates from long-running
// extraction and analysis to a caller-supplied sink.
package progress

import "sync"

// State is the observable pair plus visibility. It is forwarded whole on
// every change; rapid updates are last-write-wins, there is no buffering.
type State struct {
	Percent int
	Message string
	Visible bool
}

// Sink receives every state change synchronously.
type Sink func(State)

// Reporter tracks the current progress state and pushes changes to its
// sink. A nil sink makes every operation a cheap no-op on the output side.
type Reporter struct {
	mu    sync.Mutex
	state State
	sink  Sink
}

// NewReporter creates a reporter delivering updates to sink.
func NewReporter(sink Sink) *Reporter {
	return &Reporter{sink: sink}
}

// Show makes progress visible with the given status message.
func (r *Reporter) Show(message string) {
	r.mu.Lock()
	r.state.Message = message
	r.state.Visible = true
	r.publishLocked()
	r.mu.Unlock()
}

// Update sets the percentage, clamped to 0-100.
func (r *Reporter) Update(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	r.mu.Lock()
	r.state.Percent = percent
	r.publishLocked()
	r.mu.Unlock()
}

// Hide hides the progress display.
func (r *Reporter) Hide() {
	r.mu.Lock()
	r.state.Visible = false
	r.publishLocked()
	r.mu.Unlock()
}

// Current returns the latest state.
func (r *Reporter) Current() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Reporter) publishLocked() {
	if r.sink != nil {
		r.sink(r.state)
	}
}
