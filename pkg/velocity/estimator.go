// Package velocity estimates pointer velocity from a short window of recent
// samples.
package velocity

import "time"

// DefaultWindow is the number of samples an Estimator keeps.
const DefaultWindow = 5

// Sample is one observed pointer position.
type Sample struct {
	Position float64
	Time     time.Time
}

// Estimator keeps the most recent samples of a gesture and derives velocity
// from the oldest and newest of them. The zero value is ready to use with
// DefaultWindow.
type Estimator struct {
	// Window caps the number of retained samples. Values below 2 use
	// DefaultWindow.
	Window int

	samples []Sample
}

func (e *Estimator) window() int {
	if e.Window < 2 {
		return DefaultWindow
	}
	return e.Window
}

// Observe appends a sample, evicting the oldest once the window is full,
// and returns the velocity of the current window.
func (e *Estimator) Observe(position float64, at time.Time) float64 {
	e.samples = append(e.samples, Sample{Position: position, Time: at})
	if over := len(e.samples) - e.window(); over > 0 {
		e.samples = append(e.samples[:0], e.samples[over:]...)
	}
	return e.Velocity()
}

// Velocity returns position units per millisecond between the oldest and
// newest retained samples. It is 0 with fewer than two samples or when no
// time has elapsed between them.
func (e *Estimator) Velocity() float64 {
	if len(e.samples) < 2 {
		return 0
	}
	oldest := e.samples[0]
	newest := e.samples[len(e.samples)-1]
	elapsed := float64(newest.Time.Sub(oldest.Time)) / float64(time.Millisecond)
	if elapsed <= 0 {
		return 0
	}
	return (newest.Position - oldest.Position) / elapsed
}

// Reset discards all samples.
func (e *Estimator) Reset() {
	e.samples = e.samples[:0]
}

// Len returns the number of retained samples.
func (e *Estimator) Len() int {
	return len(e.samples)
}
