// Package sheet is a headless engine for a panel that rests at discrete snap
// points. It tracks drag gestures, decides where a released gesture should
// settle, and runs a spring transition to that snap point frame by frame.
//
// A Sheet is single-threaded: call its methods and step its scheduler from
// the same goroutine. The presentation layer feeds pointer, command and
// viewport events, reads DisplayedExtent each frame, and subscribes with
// OnStateSettled and OnRequestClose.
//
// Gestures and transitions are mutually exclusive and at most one transition
// runs at a time. Rejected requests return false and change nothing.
package sheet

import (
	stderrors "errors"
	"fmt"

	"github.com/go-drift/snapsheet/pkg/animation"
	"github.com/go-drift/snapsheet/pkg/errors"
	"github.com/go-drift/snapsheet/pkg/responsive"
	"github.com/go-drift/snapsheet/pkg/snap"
	"github.com/go-drift/snapsheet/pkg/velocity"
)

// Config configures a Sheet. The zero value is usable once a viewport is
// supplied.
type Config struct {
	// Sequence is the ordered list of snap points. Defaults to
	// snap.DefaultSequence.
	Sequence snap.Sequence
	// Initial is the starting snap point. Defaults to the first point.
	Initial snap.Point
	// Profile overrides the responsive configuration. Nil uses
	// responsive.DefaultProfile.
	Profile *responsive.Profile
	// Scheduler drives transitions. Nil uses animation.DefaultScheduler.
	Scheduler *animation.Scheduler
	// ViewportWidth and ViewportHeight are the initial viewport size.
	ViewportWidth  float64
	ViewportHeight float64
	// VelocityWindow caps the velocity sample window. Zero uses
	// velocity.DefaultWindow.
	VelocityWindow int
}

// Sheet owns the current snap point, at most one gesture session and at most
// one transition.
type Sheet struct {
	seq       snap.Sequence
	resolver  *responsive.Resolver
	table     responsive.Table
	scheduler *animation.Scheduler
	width     float64
	height    float64

	current    snap.Point
	transition *Transition
	ticker     *animation.Ticker

	session   *session
	estimator velocity.Estimator

	settleListeners []settleListener
	closeListeners  []closeListener
	nextListenerID  int

	disposed     bool
	lateReported bool
}

// ErrDisposed is reported, as a lifecycle error, the first time input
// reaches a disposed sheet.
var ErrDisposed = stderrors.New("sheet is disposed")

type settleListener struct {
	id int
	fn func(snap.Point)
}

type closeListener struct {
	id int
	fn func()
}

// New creates a sheet at rest on cfg.Initial.
func New(cfg Config) (*Sheet, error) {
	seq := cfg.Sequence
	if len(seq) == 0 {
		seq = snap.DefaultSequence
	}
	profile := responsive.DefaultProfile()
	if cfg.Profile != nil {
		profile = *cfg.Profile
	}
	resolver, err := responsive.NewResolver(profile, seq)
	if err != nil {
		return nil, errors.Config("sheet.New", err)
	}
	initial := cfg.Initial
	if initial == "" {
		initial = seq.First()
	}
	if !seq.Contains(initial) {
		return nil, errors.Config("sheet.New", fmt.Errorf("initial snap point %q is not in the sequence", initial))
	}
	scheduler := cfg.Scheduler
	if scheduler == nil {
		scheduler = animation.DefaultScheduler
	}

	s := &Sheet{
		seq:       resolver.Resolve(cfg.ViewportWidth).Sequence(),
		resolver:  resolver,
		scheduler: scheduler,
		current:   initial,
		estimator: velocity.Estimator{Window: cfg.VelocityWindow},
	}
	s.SetViewport(cfg.ViewportWidth, cfg.ViewportHeight)
	return s, nil
}

// Sequence returns the sheet's snap points.
func (s *Sheet) Sequence() snap.Sequence {
	return s.seq
}

// CurrentSnapPoint returns the snap point the sheet last settled on. During a
// transition it is still the starting point.
func (s *Sheet) CurrentSnapPoint() snap.Point {
	return s.current
}

// IsTransitioning reports whether a transition is running.
func (s *Sheet) IsTransitioning() bool {
	return s.transition != nil
}

// IsDragging reports whether a gesture session is open.
func (s *Sheet) IsDragging() bool {
	return s.session != nil
}

// IsDisposed reports whether Dispose has been called.
func (s *Sheet) IsDisposed() bool {
	return s.disposed
}

// Device returns the device class of the current viewport.
func (s *Sheet) Device() responsive.DeviceClass {
	return s.table.Device
}

// Table returns the configuration resolved for the current viewport.
func (s *Sheet) Table() responsive.Table {
	return s.table
}

// Viewport returns the current viewport size.
func (s *Sheet) Viewport() (width, height float64) {
	return s.width, s.height
}

// SetViewport records a new viewport size and re-resolves the responsive
// table. A running transition keeps its progress; its extents are read from
// the new table on the next frame.
func (s *Sheet) SetViewport(width, height float64) {
	if s.rejectDisposed("sheet.SetViewport") {
		return
	}
	s.width = width
	s.height = height
	s.table = s.resolver.Resolve(width)
}

// DisplayedExtent returns the extent the presentation layer should render
// this frame.
func (s *Sheet) DisplayedExtent() responsive.Length {
	switch {
	case s.session != nil:
		return responsive.Px(s.session.extent(s.height))
	case s.transition != nil:
		return s.transition.extent(s.table)
	default:
		return s.table.Snap(s.current).Extent
	}
}

// DisplayedFraction returns DisplayedExtent as a fraction of the viewport
// height.
func (s *Sheet) DisplayedFraction() float64 {
	return s.DisplayedExtent().Fraction(s.height)
}

// Progress returns the eased progress of the running transition, or 0 when
// idle. It may leave [0, 1] while an underdamped spring overshoots.
func (s *Sheet) Progress() float64 {
	if s.transition == nil {
		return 0
	}
	return s.transition.Progress
}

// Transition returns a copy of the running transition.
func (s *Sheet) Transition() (Transition, bool) {
	if s.transition == nil {
		return Transition{}, false
	}
	return *s.transition, true
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Point         snap.Point
	Device        responsive.DeviceClass
	Extent        responsive.Length
	Config        responsive.SnapConfig
	Progress      float64
	Transitioning bool
	Dragging      bool
}

// Snapshot captures the sheet's render state. Config is that of the point
// being rendered toward: the target while transitioning, else the current
// point.
func (s *Sheet) Snapshot() Snapshot {
	point := s.current
	if s.transition != nil {
		point = s.transition.To
	}
	return Snapshot{
		Point:         s.current,
		Device:        s.table.Device,
		Extent:        s.DisplayedExtent(),
		Config:        s.table.Snap(point),
		Progress:      s.Progress(),
		Transitioning: s.transition != nil,
		Dragging:      s.session != nil,
	}
}

// OnStateSettled registers fn to run once per completed transition with the
// new snap point. Returns an unsubscribe function.
func (s *Sheet) OnStateSettled(fn func(snap.Point)) func() {
	if fn == nil || s.rejectDisposed("sheet.OnStateSettled") {
		return func() {}
	}
	id := s.nextListenerID
	s.nextListenerID++
	s.settleListeners = append(s.settleListeners, settleListener{id: id, fn: fn})
	return func() {
		for i, l := range s.settleListeners {
			if l.id == id {
				s.settleListeners = append(s.settleListeners[:i:i], s.settleListeners[i+1:]...)
				return
			}
		}
	}
}

// OnRequestClose registers fn to run when a gesture or command would collapse
// below the first snap point while already resting there. The sheet does not
// close itself. Returns an unsubscribe function.
func (s *Sheet) OnRequestClose(fn func()) func() {
	if fn == nil || s.rejectDisposed("sheet.OnRequestClose") {
		return func() {}
	}
	id := s.nextListenerID
	s.nextListenerID++
	s.closeListeners = append(s.closeListeners, closeListener{id: id, fn: fn})
	return func() {
		for i, l := range s.closeListeners {
			if l.id == id {
				s.closeListeners = append(s.closeListeners[:i:i], s.closeListeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Sheet) notifySettled(p snap.Point) {
	listeners := append([]settleListener(nil), s.settleListeners...)
	for _, l := range listeners {
		func() {
			defer errors.Recover("sheet.OnStateSettled")
			l.fn(p)
		}()
	}
}

func (s *Sheet) requestClose() {
	listeners := append([]closeListener(nil), s.closeListeners...)
	for _, l := range listeners {
		func() {
			defer errors.Recover("sheet.OnRequestClose")
			l.fn()
		}()
	}
}

// rejectDisposed reports whether s is disposed. The first call after
// disposal reports ErrDisposed to the error handler.
func (s *Sheet) rejectDisposed(op string) bool {
	if !s.disposed {
		return false
	}
	if !s.lateReported {
		s.lateReported = true
		errors.Report(errors.Lifecycle(op, ErrDisposed))
	}
	return true
}

// Dispose withdraws any scheduled frame callback, ends any gesture session
// and drops all listeners. A running transition never settles. Further input
// is ignored; the first late call reports ErrDisposed. Dispose is idempotent.
func (s *Sheet) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.cancelTransition()
	s.session = nil
	s.estimator.Reset()
	s.settleListeners = nil
	s.closeListeners = nil
}
