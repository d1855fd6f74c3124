package testing

import (
	"fmt"
	"time"

	"github.com/go-drift/snapsheet/pkg/animation"
)

// FrameInterval is the frame spacing used by FrameDriver, 60 Hz.
const FrameInterval = time.Second / 60

// FrameDriver pairs a FakeClock with its own animation.Scheduler so tests
// can step frames without touching the package-level scheduler.
type FrameDriver struct {
	clock     *FakeClock
	scheduler *animation.Scheduler
	frames    int
}

// NewFrameDriver creates a driver at Epoch with no active tickers.
func NewFrameDriver() *FrameDriver {
	clk := NewFakeClock()
	sched := animation.NewScheduler()
	sched.Clock = clk
	return &FrameDriver{clock: clk, scheduler: sched}
}

// Clock returns the fake clock.
func (d *FrameDriver) Clock() *FakeClock {
	return d.clock
}

// Scheduler returns the driver's scheduler, to be passed to sheet.Config.
func (d *FrameDriver) Scheduler() *animation.Scheduler {
	return d.scheduler
}

// Now returns the fake time.
func (d *FrameDriver) Now() time.Time {
	return d.clock.Now()
}

// Frames returns how many frames have been pumped.
func (d *FrameDriver) Frames() int {
	return d.frames
}

// Pump advances the clock by one frame interval and steps the scheduler.
func (d *FrameDriver) Pump() {
	d.PumpAfter(FrameInterval)
}

// PumpAfter advances the clock by elapsed and steps the scheduler once.
func (d *FrameDriver) PumpAfter(elapsed time.Duration) {
	d.clock.Advance(elapsed)
	d.frames++
	d.scheduler.Step()
}

// PumpFrames pumps n frames.
func (d *FrameDriver) PumpFrames(n int) {
	for i := 0; i < n; i++ {
		d.Pump()
	}
}

// PumpAndSettle pumps frames until no tickers are active. It fails if the
// fake clock advances by more than timeout first.
func (d *FrameDriver) PumpAndSettle(timeout time.Duration) error {
	deadline := d.clock.Now().Add(timeout)
	for d.scheduler.HasActiveTickers() {
		if d.clock.Now().After(deadline) {
			return fmt.Errorf("tickers still active after %s", timeout)
		}
		d.Pump()
	}
	return nil
}

// Pointer is the gesture surface of a sheet.
type Pointer interface {
	PointerDown(position float64, at time.Time) bool
	PointerMove(position float64, at time.Time) bool
	PointerUp() bool
}

// Drag performs a full gesture: down at start, then steps evenly spaced moves
// totalling delta, one frame apart, then up. Negative delta drags upward.
// It reports whether the pointer-down was accepted.
func (d *FrameDriver) Drag(p Pointer, start, delta float64, steps int) bool {
	if !p.PointerDown(start, d.clock.Now()) {
		return false
	}
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		at := d.clock.Advance(FrameInterval)
		p.PointerMove(start+delta*float64(i)/float64(steps), at)
	}
	p.PointerUp()
	return true
}
