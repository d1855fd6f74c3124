package sheet

import (
	stderrors "errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/go-drift/snapsheet/pkg/errors"
	"github.com/go-drift/snapsheet/pkg/responsive"
	"github.com/go-drift/snapsheet/pkg/snap"
	sheettest "github.com/go-drift/snapsheet/pkg/testing"
)

const (
	desktopWidth  = 1440
	desktopHeight = 900
)

func newTestSheet(t *testing.T, initial snap.Point) (*Sheet, *sheettest.FrameDriver) {
	t.Helper()
	driver := sheettest.NewFrameDriver()
	s, err := New(Config{
		Initial:        initial,
		Scheduler:      driver.Scheduler(),
		ViewportWidth:  desktopWidth,
		ViewportHeight: desktopHeight,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Dispose)
	return s, driver
}

func TestNew_Defaults(t *testing.T) {
	s, _ := newTestSheet(t, "")
	if s.CurrentSnapPoint() != snap.Closed {
		t.Errorf("initial point = %q, want closed", s.CurrentSnapPoint())
	}
	if s.Device() != responsive.Desktop {
		t.Errorf("device = %v, want desktop", s.Device())
	}
	if s.IsTransitioning() || s.IsDragging() {
		t.Error("new sheet should be idle")
	}
	if s.State() != Idle {
		t.Errorf("State() = %v", s.State())
	}
	if got := s.DisplayedExtent(); got != responsive.Px(80) {
		t.Errorf("DisplayedExtent() = %v, want 80px", got)
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	tests := map[string]Config{
		"initial not in sequence": {Initial: "peek"},
		"duplicate points":        {Sequence: snap.Sequence{snap.Closed, snap.Closed}},
	}
	for name, cfg := range tests {
		_, err := New(cfg)
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		var se *errors.SheetError
		if !stderrors.As(err, &se) || se.Kind != errors.KindConfig {
			t.Errorf("%s: expected config SheetError, got %v", name, err)
		}
	}
}

func TestRequestTransition_SettlesOnce(t *testing.T) {
	s, driver := newTestSheet(t, snap.HalfOpen)
	var settled []snap.Point
	s.OnStateSettled(func(p snap.Point) { settled = append(settled, p) })

	if !s.RequestTransition(snap.FullyOpen) {
		t.Fatal("transition rejected")
	}
	if !s.IsTransitioning() || s.State() != Running {
		t.Fatal("expected running transition")
	}
	if s.CurrentSnapPoint() != snap.HalfOpen {
		t.Error("current point should not change before settling")
	}

	if err := driver.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	driver.PumpFrames(10)

	if len(settled) != 1 || settled[0] != snap.FullyOpen {
		t.Errorf("settled = %v, want [fully-open]", settled)
	}
	if s.CurrentSnapPoint() != snap.FullyOpen {
		t.Errorf("current = %q, want fully-open", s.CurrentSnapPoint())
	}
	if s.IsTransitioning() {
		t.Error("transition should be cleared")
	}
	if s.estimator.Len() != 0 {
		t.Errorf("velocity history has %d samples after settle", s.estimator.Len())
	}
	if driver.Scheduler().HasActiveTickers() {
		t.Error("ticker still registered after settle")
	}
	if got := s.DisplayedExtent(); got != responsive.Percent(90) {
		t.Errorf("DisplayedExtent() = %v, want 90%%", got)
	}
}

func TestRequestTransition_SettlesAfterDuration(t *testing.T) {
	s, driver := newTestSheet(t, snap.HalfOpen)
	s.RequestTransition(snap.FullyOpen)

	driver.PumpAfter(399 * time.Millisecond)
	if !s.IsTransitioning() {
		t.Fatal("transition settled before its duration")
	}
	driver.PumpAfter(time.Millisecond)
	if s.IsTransitioning() {
		t.Error("transition should settle once the duration has elapsed")
	}
}

func TestRequestTransition_RejectedWhileRunning(t *testing.T) {
	s, driver := newTestSheet(t, snap.HalfOpen)
	s.RequestTransition(snap.FullyOpen)
	driver.PumpFrames(2)

	before, _ := s.Transition()
	if s.RequestTransition(snap.Closed) {
		t.Error("second transition should be rejected")
	}
	if s.Dispatch(ToFirst) {
		t.Error("command should be rejected while running")
	}
	after, _ := s.Transition()
	if after.From != before.From || after.To != before.To || !after.Start.Equal(before.Start) {
		t.Errorf("running transition changed: %+v -> %+v", before, after)
	}
	if driver.Scheduler().ActiveCount() != 1 {
		t.Errorf("expected exactly one ticker, got %d", driver.Scheduler().ActiveCount())
	}
}

func TestRequestTransition_RejectsCurrentAndStrangers(t *testing.T) {
	s, driver := newTestSheet(t, snap.HalfOpen)
	if s.RequestTransition(snap.HalfOpen) {
		t.Error("transition to current point should be rejected")
	}
	if s.RequestTransition("peek") {
		t.Error("transition to non-member should be rejected")
	}
	if driver.Scheduler().HasActiveTickers() {
		t.Error("rejected request scheduled a frame")
	}
}

func TestTransition_InterpolatesWithOvershoot(t *testing.T) {
	s, driver := newTestSheet(t, snap.HalfOpen)
	s.RequestTransition(snap.FullyOpen)

	if got := s.DisplayedExtent(); got != responsive.Percent(50) {
		t.Errorf("extent at start = %v, want 50%%", got)
	}

	peak := 0.0
	for s.IsTransitioning() {
		driver.Pump()
		if !s.IsTransitioning() {
			break
		}
		ext := s.DisplayedExtent()
		if ext.Unit != responsive.UnitPercent {
			t.Fatalf("extent unit = %v, want percent", ext.Unit)
		}
		peak = math.Max(peak, ext.Value)
		if want := 50 + 40*s.Progress(); math.Abs(ext.Value-want) > 1e-9 {
			t.Fatalf("extent %v does not match progress %v", ext, s.Progress())
		}
	}
	if peak <= 90 {
		t.Errorf("expected underdamped overshoot past 90%%, peak %v", peak)
	}
	if frac := s.DisplayedFraction(); frac != 0.9 {
		t.Errorf("DisplayedFraction() = %v, want 0.9", frac)
	}
}

func TestTransition_MixedUnitsSnapToTarget(t *testing.T) {
	s, driver := newTestSheet(t, snap.Closed)
	s.RequestTransition(snap.HalfOpen)
	driver.Pump()
	if got := s.DisplayedExtent(); got != responsive.Percent(50) {
		t.Errorf("px -> %% transition should show target extent, got %v", got)
	}
}

func TestSetViewport_MidTransitionKeepsProgress(t *testing.T) {
	s, driver := newTestSheet(t, snap.HalfOpen)
	s.RequestTransition(snap.FullyOpen)
	driver.PumpFrames(6)

	progress := s.Progress()
	before := s.DisplayedExtent()
	s.SetViewport(375, 800)

	if s.Progress() != progress {
		t.Errorf("progress changed on resize: %v -> %v", progress, s.Progress())
	}
	if s.Device() != responsive.Mobile {
		t.Errorf("device = %v, want mobile", s.Device())
	}
	after := s.DisplayedExtent()
	if after == before {
		t.Error("displayed extent should follow the new table")
	}
	if want := 60 + 35*progress; math.Abs(after.Value-want) > 1e-9 {
		t.Errorf("extent after resize = %v, want %v%%", after, want)
	}

	if err := driver.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if s.DisplayedExtent() != responsive.Percent(95) {
		t.Errorf("settled extent = %v, want 95%%", s.DisplayedExtent())
	}
}

func TestDispose_CancelsRunningTransition(t *testing.T) {
	s, driver := newTestSheet(t, snap.HalfOpen)
	settled := 0
	s.OnStateSettled(func(snap.Point) { settled++ })
	s.RequestTransition(snap.FullyOpen)
	driver.PumpFrames(3)

	s.Dispose()
	if driver.Scheduler().HasActiveTickers() {
		t.Fatal("frame callback not withdrawn on dispose")
	}
	driver.PumpFrames(60)

	if settled != 0 {
		t.Errorf("settle fired %d times after dispose", settled)
	}
	if s.CurrentSnapPoint() != snap.HalfOpen {
		t.Errorf("current changed after dispose: %q", s.CurrentSnapPoint())
	}
	if s.IsTransitioning() {
		t.Error("transition survived dispose")
	}
	if s.RequestTransition(snap.Closed) || s.PointerDown(100, driver.Now()) || s.Dispatch(Expand) {
		t.Error("disposed sheet accepted input")
	}
	s.Dispose()
}

func TestOnStateSettled_Unsubscribe(t *testing.T) {
	s, driver := newTestSheet(t, snap.HalfOpen)
	calls := 0
	remove := s.OnStateSettled(func(snap.Point) { calls++ })
	remove()
	remove()

	s.RequestTransition(snap.FullyOpen)
	if err := driver.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("removed listener called %d times", calls)
	}
}

func TestOnStateSettled_PanicIsContained(t *testing.T) {
	prev := errors.SetHandler(&errors.LogHandler{Out: io.Discard})
	defer errors.SetHandler(prev)

	s, driver := newTestSheet(t, snap.HalfOpen)
	var got snap.Point
	s.OnStateSettled(func(snap.Point) { panic("listener failure") })
	s.OnStateSettled(func(p snap.Point) { got = p })

	s.RequestTransition(snap.Closed)
	if err := driver.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if got != snap.Closed {
		t.Errorf("second listener got %q, want closed", got)
	}
	if s.CurrentSnapPoint() != snap.Closed {
		t.Errorf("current = %q, want closed", s.CurrentSnapPoint())
	}
}

func TestOnStateSettled_ListenerCanChain(t *testing.T) {
	s, driver := newTestSheet(t, snap.Closed)
	var settled []snap.Point
	s.OnStateSettled(func(p snap.Point) {
		settled = append(settled, p)
		if p == snap.HalfOpen {
			s.RequestTransition(snap.FullyOpen)
		}
	})
	s.Dispatch(Expand)
	if err := driver.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if len(settled) != 2 || settled[1] != snap.FullyOpen {
		t.Errorf("settled = %v", settled)
	}
}

func TestSnapshot(t *testing.T) {
	s, driver := newTestSheet(t, snap.Closed)
	snapshot := s.Snapshot()
	if snapshot.Config.ContentVisible || snapshot.Transitioning {
		t.Errorf("unexpected closed snapshot %+v", snapshot)
	}
	s.Dispatch(ToLast)
	driver.Pump()
	snapshot = s.Snapshot()
	if !snapshot.Transitioning || !snapshot.Config.ContentVisible || snapshot.Point != snap.Closed {
		t.Errorf("unexpected running snapshot %+v", snapshot)
	}
}

func TestCustomSequence(t *testing.T) {
	driver := sheettest.NewFrameDriver()
	s, err := New(Config{
		Sequence:       snap.Sequence{snap.Closed, "peek", snap.HalfOpen, snap.FullyOpen},
		Scheduler:      driver.Scheduler(),
		ViewportWidth:  desktopWidth,
		ViewportHeight: desktopHeight,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Dispose()

	s.Dispatch(Expand)
	if err := driver.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if s.CurrentSnapPoint() != "peek" {
		t.Errorf("current = %q, want peek", s.CurrentSnapPoint())
	}
	if s.DisplayedExtent() != responsive.Percent(50) {
		t.Errorf("peek extent = %v", s.DisplayedExtent())
	}
}

type recordingHandler struct {
	errs   []*errors.SheetError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.SheetError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *errors.PanicError) { h.panics = append(h.panics, err) }

func TestDispose_ReportsFirstLateCall(t *testing.T) {
	h := &recordingHandler{}
	prev := errors.SetHandler(h)
	defer errors.SetHandler(prev)

	s, driver := newTestSheet(t, snap.HalfOpen)
	s.Dispose()
	if len(h.errs) != 0 {
		t.Fatalf("dispose itself reported %d errors", len(h.errs))
	}

	if s.PointerDown(400, driver.Now()) {
		t.Error("disposed sheet accepted pointer down")
	}
	s.Dispatch(Collapse)
	s.SetViewport(375, 800)
	s.OnRequestClose(func() {})

	if len(h.errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(h.errs))
	}
	err := h.errs[0]
	if err.Kind != errors.KindLifecycle || err.Op != "sheet.PointerDown" {
		t.Errorf("error = %v", err)
	}
	if !stderrors.Is(err, ErrDisposed) {
		t.Errorf("error %v does not wrap ErrDisposed", err)
	}
	if s.Device() != responsive.Desktop {
		t.Error("viewport changed after dispose")
	}
}
