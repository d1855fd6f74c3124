package sheet

import (
	"time"

	"github.com/go-drift/snapsheet/pkg/responsive"
	"github.com/go-drift/snapsheet/pkg/snap"
)

// session is one drag from pointer-down to pointer-up or cancel. Positions
// are pointer coordinates along the drag axis, growing downward.
type session struct {
	startPosition   float64
	currentPosition float64
	startExtent     float64 // pixels
}

// extent follows the pointer: dragging up by n pixels grows the sheet by n.
func (g *session) extent(viewport float64) float64 {
	px := g.startExtent + (g.startPosition - g.currentPosition)
	if px < 0 {
		return 0
	}
	if viewport > 0 && px > viewport {
		return viewport
	}
	return px
}

// PointerDown opens a gesture session at position. It is rejected while a
// transition runs or another session is open.
func (s *Sheet) PointerDown(position float64, at time.Time) bool {
	if s.rejectDisposed("sheet.PointerDown") || s.transition != nil || s.session != nil {
		return false
	}
	s.estimator.Reset()
	s.session = &session{
		startPosition:   position,
		currentPosition: position,
		startExtent:     s.DisplayedExtent().Pixels(s.height),
	}
	s.estimator.Observe(position, at)
	return true
}

// PointerMove updates the open session and feeds the velocity estimator. It
// is rejected without an open session or while a transition runs.
func (s *Sheet) PointerMove(position float64, at time.Time) bool {
	if s.rejectDisposed("sheet.PointerMove") || s.session == nil || s.transition != nil {
		return false
	}
	s.session.currentPosition = position
	s.estimator.Observe(position, at)
	return true
}

// PointerUp closes the session and settles the sheet. A slow release that
// lands on the first snap point while already resting there requests close
// instead of animating; a downward fling there only clamps. Returns false
// without an open session.
func (s *Sheet) PointerUp() bool {
	if s.rejectDisposed("sheet.PointerUp") || s.session == nil {
		return false
	}
	g := s.session
	v := s.estimator.Velocity()
	s.session = nil
	s.estimator.Reset()

	releasePx := g.extent(s.height)
	fraction := responsive.Px(releasePx).Fraction(s.height)
	decision := snap.Decide(s.seq, s.current, fraction, v, s.table.Criteria())

	first := s.seq.First()
	if decision.Rule == snap.ByPosition && decision.Target == first && s.current == first {
		s.requestClose()
		return true
	}
	if decision.Target != s.current {
		release := s.releaseExtent(releasePx, decision.Target)
		s.startTransition(decision.Target, &release)
	}
	return true
}

// PointerCancel abandons the session without choosing a snap point.
func (s *Sheet) PointerCancel() bool {
	if s.rejectDisposed("sheet.PointerCancel") || s.session == nil {
		return false
	}
	s.session = nil
	s.estimator.Reset()
	return true
}

// Velocity returns the current gesture velocity in pixels per millisecond,
// negative when expanding.
func (s *Sheet) Velocity() float64 {
	return s.estimator.Velocity()
}

// releaseExtent expresses a released pixel extent in the unit of target's
// extent so the transition continues from under the pointer.
func (s *Sheet) releaseExtent(px float64, target snap.Point) responsive.Length {
	if s.table.Snap(target).Extent.Unit == responsive.UnitPercent && s.height > 0 {
		return responsive.Percent(px / s.height * 100)
	}
	return responsive.Px(px)
}
