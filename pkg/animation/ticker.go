// Package animation provides the frame loop and easing primitives used by
// the sheet engine.
//
// # Core Components
//
//   - [Scheduler]: holds the active tickers for one host frame loop. The host
//     calls [Scheduler.Step] once per display frame.
//
//   - [Ticker]: an owned, cancelable frame callback. Start registers it with
//     its scheduler; Stop withdraws it. A stopped ticker never fires again
//     until restarted.
//
//   - [SpringParams] and [SpringEase]: the closed-form step response of a
//     damped harmonic oscillator, used as a transition curve.
//
// # Basic Usage
//
//	sched := animation.NewScheduler()
//	ticker := sched.NewTicker(func(elapsed time.Duration) {
//	    progress := animation.SpringEase(params, elapsed.Seconds()/duration.Seconds())
//	    _ = progress
//	})
//	ticker.Start()
//
//	// once per frame, from the host
//	sched.Step()
//
//	// on teardown
//	ticker.Stop()
package animation

import (
	"sync"
	"time"
)

// Scheduler drives the tickers registered with it. It is the cooperative
// suspension point of the engine: ticker callbacks only run inside Step.
type Scheduler struct {
	// Clock overrides the package clock for this scheduler when non-nil.
	Clock Clock

	mu     sync.Mutex
	active map[*Ticker]struct{}
}

// NewScheduler creates an empty scheduler using the package clock.
func NewScheduler() *Scheduler {
	return &Scheduler{active: make(map[*Ticker]struct{})}
}

// DefaultScheduler is shared by sheets that are not given their own.
var DefaultScheduler = NewScheduler()

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return Now()
}

// NewTicker creates a stopped ticker bound to this scheduler.
func (s *Scheduler) NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{scheduler: s, callback: callback}
}

// Step advances all active tickers once. Tickers started or stopped by a
// callback take effect on the next Step; a ticker stopped earlier in the
// same Step is skipped.
func (s *Scheduler) Step() {
	s.mu.Lock()
	if len(s.active) == 0 {
		s.mu.Unlock()
		return
	}
	// Copy to avoid holding the lock during callbacks
	tickers := make([]*Ticker, 0, len(s.active))
	for ticker := range s.active {
		tickers = append(tickers, ticker)
	}
	s.mu.Unlock()

	now := s.Now()
	for _, ticker := range tickers {
		if ticker.IsActive() && ticker.callback != nil {
			ticker.callback(now.Sub(ticker.start))
		}
	}
}

// HasActiveTickers returns true if any tickers are registered.
func (s *Scheduler) HasActiveTickers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active) > 0
}

// ActiveCount returns the number of registered tickers.
func (s *Scheduler) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (s *Scheduler) add(t *Ticker) {
	s.mu.Lock()
	s.active[t] = struct{}{}
	s.mu.Unlock()
}

func (s *Scheduler) remove(t *Ticker) {
	s.mu.Lock()
	delete(s.active, t)
	s.mu.Unlock()
}

// Ticker calls a callback on each frame while active.
//
// The callback receives the elapsed time since Start was called.
type Ticker struct {
	scheduler *Scheduler
	callback  func(elapsed time.Duration)
	isActive  bool
	start     time.Time
}

// Start activates the ticker and records its start time.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = t.scheduler.Now()
	t.scheduler.add(t)
}

// Stop deactivates the ticker and withdraws it from its scheduler.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.scheduler.remove(t)
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// StartTime returns when the ticker was last started.
func (t *Ticker) StartTime() time.Time {
	return t.start
}
