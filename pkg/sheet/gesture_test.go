package sheet

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/snapsheet/pkg/responsive"
	"github.com/go-drift/snapsheet/pkg/snap"
	sheettest "github.com/go-drift/snapsheet/pkg/testing"
)

func TestGesture_ExtentFollowsPointer(t *testing.T) {
	s, driver := newTestSheet(t, snap.Closed)
	if !s.PointerDown(820, driver.Now()) {
		t.Fatal("pointer down rejected")
	}
	if !s.IsDragging() {
		t.Fatal("expected open session")
	}
	s.PointerMove(720, driver.Clock().Advance(sheettest.FrameInterval))
	if got := s.DisplayedExtent(); got != responsive.Px(180) {
		t.Errorf("extent = %v, want 180px", got)
	}
	s.PointerMove(-500, driver.Clock().Advance(sheettest.FrameInterval))
	if got := s.DisplayedExtent(); got != responsive.Px(desktopHeight) {
		t.Errorf("extent = %v, want clamped to viewport", got)
	}
	s.PointerMove(2000, driver.Clock().Advance(sheettest.FrameInterval))
	if got := s.DisplayedExtent(); got != responsive.Px(0) {
		t.Errorf("extent = %v, want clamped to 0", got)
	}
	if !s.PointerCancel() {
		t.Error("cancel rejected")
	}
	if s.IsDragging() || s.IsTransitioning() {
		t.Error("cancel should leave the sheet idle")
	}
	if s.DisplayedExtent() != responsive.Px(80) {
		t.Errorf("extent after cancel = %v", s.DisplayedExtent())
	}
}

func TestGesture_RejectedWithoutSession(t *testing.T) {
	s, driver := newTestSheet(t, snap.Closed)
	if s.PointerMove(100, driver.Now()) {
		t.Error("move without session accepted")
	}
	if s.PointerUp() {
		t.Error("up without session accepted")
	}
	if s.PointerCancel() {
		t.Error("cancel without session accepted")
	}
}

func TestGesture_RejectedWhileRunning(t *testing.T) {
	s, driver := newTestSheet(t, snap.HalfOpen)
	s.RequestTransition(snap.FullyOpen)
	driver.Pump()
	if s.PointerDown(500, driver.Now()) {
		t.Error("pointer down accepted during transition")
	}
	if s.IsDragging() {
		t.Error("session opened during transition")
	}
}

func TestTransition_RejectedWhileDragging(t *testing.T) {
	s, driver := newTestSheet(t, snap.HalfOpen)
	s.PointerDown(500, driver.Now())
	if s.RequestTransition(snap.FullyOpen) {
		t.Error("transition accepted during gesture")
	}
	if s.Dispatch(Expand) {
		t.Error("command accepted during gesture")
	}
	if s.PointerDown(400, driver.Now()) {
		t.Error("second pointer down accepted")
	}
}

func TestGesture_SlowDragUsesPosition(t *testing.T) {
	s, driver := newTestSheet(t, snap.Closed)
	// 400px over 80 frames: 0.3 px/ms, under the desktop threshold.
	driver.Drag(s, 820, -400, 80)

	tr, ok := s.Transition()
	if !ok {
		t.Fatal("expected a transition after release")
	}
	// 80px + 400px = 480px of 900 = 0.53, under the fully-open threshold.
	if tr.To != snap.FullyOpen {
		t.Errorf("target = %q, want fully-open", tr.To)
	}
	ext := s.DisplayedExtent()
	if ext.Unit != responsive.UnitPercent || math.Abs(ext.Value-480.0/900*100) > 1e-9 {
		t.Errorf("transition should start from the release extent, got %v", ext)
	}
	if s.estimator.Len() != 0 {
		t.Error("velocity history should be cleared when the session ends")
	}

	if err := driver.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if s.CurrentSnapPoint() != snap.FullyOpen {
		t.Errorf("current = %q, want fully-open", s.CurrentSnapPoint())
	}
}

func TestGesture_FastFlingStepsOnce(t *testing.T) {
	s, driver := newTestSheet(t, snap.Closed)
	// 100px over 3 frames: 2 px/ms upward.
	driver.Drag(s, 820, -100, 3)

	tr, ok := s.Transition()
	if !ok || tr.To != snap.HalfOpen {
		t.Fatalf("fling from closed should target half-open, got %+v (running=%v)", tr, ok)
	}
}

func TestGesture_FastFlingDownFromFull(t *testing.T) {
	s, driver := newTestSheet(t, snap.FullyOpen)
	driver.Drag(s, 100, 100, 3)

	tr, ok := s.Transition()
	if !ok || tr.To != snap.HalfOpen {
		t.Fatalf("downward fling from fully-open should target half-open, got %+v", tr)
	}
}

func TestGesture_SlowReleaseUsesThresholdTable(t *testing.T) {
	s, driver := newTestSheet(t, snap.HalfOpen)
	// 20px down over 20 frames from 450px: 430/900 = 0.48, above the
	// half-open threshold of 0.35.
	driver.Drag(s, 450, 20, 20)
	tr, ok := s.Transition()
	if !ok || tr.To != snap.FullyOpen {
		t.Fatalf("expected fully-open by position, got %+v", tr)
	}
}

func TestGesture_SlowReleaseAtClosedRequestsClose(t *testing.T) {
	s, driver := newTestSheet(t, snap.Closed)
	closes := 0
	s.OnRequestClose(func() { closes++ })

	driver.Drag(s, 820, 0, 2)

	if closes != 1 {
		t.Errorf("close requested %d times, want 1", closes)
	}
	if s.IsTransitioning() {
		t.Error("close request should not animate")
	}
}

func TestGesture_FlingDownAtClosedClamps(t *testing.T) {
	s, driver := newTestSheet(t, snap.Closed)
	closes := 0
	s.OnRequestClose(func() { closes++ })

	driver.Drag(s, 820, 60, 2)

	if closes != 0 {
		t.Error("a downward fling at closed must clamp, not request close")
	}
	if s.IsTransitioning() || s.CurrentSnapPoint() != snap.Closed {
		t.Error("sheet should stay at closed")
	}
}

func TestGesture_MobileThresholds(t *testing.T) {
	driver := sheettest.NewFrameDriver()
	s, err := New(Config{
		Initial:        snap.Closed,
		Scheduler:      driver.Scheduler(),
		ViewportWidth:  375,
		ViewportHeight: 800,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Dispose()

	// 0.4 px/ms is a fling on mobile (0.3) but not on desktop (0.5).
	driver.Drag(s, 740, -120, 18)
	if v := 120.0 / (18 * float64(sheettest.FrameInterval) / float64(time.Millisecond)); v < 0.3 || v > 0.5 {
		t.Fatalf("test drag speed %v outside the intended band", v)
	}
	tr, ok := s.Transition()
	if !ok || tr.To != snap.HalfOpen {
		t.Fatalf("expected half-open fling on mobile, got %+v", tr)
	}
}
