package sheet

import (
	"time"

	"github.com/go-drift/snapsheet/pkg/animation"
	"github.com/go-drift/snapsheet/pkg/responsive"
	"github.com/go-drift/snapsheet/pkg/snap"
)

// State is the animator state.
//
//	          RequestTransition
//	Idle ────────────────────────► Running
//	  ▲                               │
//	  └──── settle (linear == 1) ─────┤
//	  └──── Dispose ──────────────────┘
type State int

const (
	// Idle means no transition is running.
	Idle State = iota
	// Running means a transition owns the frame loop.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// State returns the animator state.
func (s *Sheet) State() State {
	if s.transition != nil {
		return Running
	}
	return Idle
}

// Transition is one spring-driven move between snap points.
type Transition struct {
	From  snap.Point
	To    snap.Point
	Start time.Time
	// Progress is the eased progress of the latest frame. It starts at 0 and
	// may overshoot 1 before the transition settles.
	Progress float64

	// release is the extent a gesture let go at, in the unit of To's
	// extent. Nil for command transitions, which start from From's extent.
	release *responsive.Length
}

// extent interpolates the displayed extent against the latest table so a
// viewport change mid-flight retargets without restarting.
func (t *Transition) extent(table responsive.Table) responsive.Length {
	to := table.Snap(t.To).Extent
	from := table.Snap(t.From).Extent
	if t.release != nil && t.release.Unit == to.Unit {
		from = *t.release
	}
	return responsive.Lerp(from, to, t.Progress)
}

// RequestTransition starts a spring transition from the current snap point to
// target. It returns false, changing nothing, when a transition or gesture is
// active, when target is the current point, when target is not in the
// sequence, or after Dispose.
func (s *Sheet) RequestTransition(target snap.Point) bool {
	return s.startTransition(target, nil)
}

func (s *Sheet) startTransition(target snap.Point, release *responsive.Length) bool {
	if s.rejectDisposed("sheet.RequestTransition") || s.transition != nil || s.session != nil {
		return false
	}
	if target == s.current || !s.seq.Contains(target) {
		return false
	}

	s.transition = &Transition{
		From:    s.current,
		To:      target,
		release: release,
	}
	s.ticker = s.scheduler.NewTicker(s.step)
	s.ticker.Start()
	s.transition.Start = s.ticker.StartTime()
	return true
}

// step is the frame callback of the running transition.
func (s *Sheet) step(elapsed time.Duration) {
	t := s.transition
	if t == nil {
		s.cancelTransition()
		return
	}

	linear := 1.0
	if d := s.table.Duration; d > 0 {
		linear = float64(elapsed) / float64(d)
	}
	if linear >= 1 {
		s.settle()
		return
	}
	if linear < 0 {
		linear = 0
	}
	t.Progress = animation.SpringEase(s.table.Spring, linear)
}

// settle commits the running transition. The ticker is released before
// listeners run so a listener may start the next transition.
func (s *Sheet) settle() {
	target := s.transition.To
	s.transition.Progress = 1
	s.cancelTransition()
	s.current = target
	s.estimator.Reset()
	s.notifySettled(target)
}

// cancelTransition withdraws the frame callback and drops the transition
// without settling. Safe to call when idle.
func (s *Sheet) cancelTransition() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	s.transition = nil
}
