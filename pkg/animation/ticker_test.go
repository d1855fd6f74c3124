package animation

import (
	"testing"
	"time"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func TestScheduler_StepDeliversElapsed(t *testing.T) {
	clk := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	sched := NewScheduler()
	sched.Clock = clk

	var got []time.Duration
	ticker := sched.NewTicker(func(elapsed time.Duration) {
		got = append(got, elapsed)
	})
	ticker.Start()

	clk.now = clk.now.Add(16 * time.Millisecond)
	sched.Step()
	clk.now = clk.now.Add(16 * time.Millisecond)
	sched.Step()

	if len(got) != 2 || got[0] != 16*time.Millisecond || got[1] != 32*time.Millisecond {
		t.Errorf("unexpected elapsed values: %v", got)
	}
}

func TestTicker_StopWithdraws(t *testing.T) {
	sched := NewScheduler()
	calls := 0
	ticker := sched.NewTicker(func(time.Duration) { calls++ })
	ticker.Start()
	if !sched.HasActiveTickers() {
		t.Fatal("expected active ticker after Start")
	}

	ticker.Stop()
	ticker.Stop()
	if sched.HasActiveTickers() {
		t.Error("expected no active tickers after Stop")
	}
	sched.Step()
	if calls != 0 {
		t.Errorf("stopped ticker fired %d times", calls)
	}
}

func TestTicker_StopFromCallback(t *testing.T) {
	sched := NewScheduler()
	var ticker *Ticker
	calls := 0
	ticker = sched.NewTicker(func(time.Duration) {
		calls++
		ticker.Stop()
	})
	ticker.Start()
	sched.Step()
	sched.Step()
	if calls != 1 {
		t.Errorf("expected one call, got %d", calls)
	}
	if sched.ActiveCount() != 0 {
		t.Errorf("expected no active tickers, got %d", sched.ActiveCount())
	}
}

func TestSchedulersAreIndependent(t *testing.T) {
	a, b := NewScheduler(), NewScheduler()
	a.NewTicker(func(time.Duration) {}).Start()
	if b.HasActiveTickers() {
		t.Error("ticker leaked into another scheduler")
	}
}

func TestSetClock(t *testing.T) {
	fixed := &stepClock{now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := SetClock(fixed)
	defer SetClock(prev)
	if !Now().Equal(fixed.now) {
		t.Errorf("Now() = %v, want %v", Now(), fixed.now)
	}
	if !NewScheduler().Now().Equal(fixed.now) {
		t.Error("scheduler without clock should use package clock")
	}
}
