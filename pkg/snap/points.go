// Package snap defines snap points and the release-time decision of which
// snap point a sheet should settle into.
package snap

import (
	"errors"
	"fmt"
)

// Point names one discrete rest state of a sheet.
type Point string

// Default snap points.
const (
	Closed    Point = "closed"
	HalfOpen  Point = "half-open"
	FullyOpen Point = "fully-open"
)

// Sequence is an ordered list of snap points, lowest extent first.
// Adjacency defines what one step up or down means.
type Sequence []Point

// DefaultSequence is used when no sequence is supplied.
var DefaultSequence = Sequence{Closed, HalfOpen, FullyOpen}

// Validate reports an empty sequence or duplicate names.
func (s Sequence) Validate() error {
	if len(s) == 0 {
		return errors.New("snap sequence is empty")
	}
	seen := make(map[Point]bool, len(s))
	for _, p := range s {
		if p == "" {
			return errors.New("snap sequence contains an unnamed point")
		}
		if seen[p] {
			return fmt.Errorf("snap sequence contains %q twice", p)
		}
		seen[p] = true
	}
	return nil
}

// IndexOf returns the position of p, or -1 if p is not a member.
func (s Sequence) IndexOf(p Point) int {
	for i, candidate := range s {
		if candidate == p {
			return i
		}
	}
	return -1
}

// Contains reports whether p is a member of s.
func (s Sequence) Contains(p Point) bool {
	return s.IndexOf(p) >= 0
}

// First returns the lowest snap point.
func (s Sequence) First() Point {
	return s[0]
}

// Last returns the highest snap point.
func (s Sequence) Last() Point {
	return s[len(s)-1]
}

// Step returns the point delta positions away from p, clamped to the ends.
// A p outside the sequence is returned unchanged.
func (s Sequence) Step(p Point, delta int) Point {
	i := s.IndexOf(p)
	if i < 0 {
		return p
	}
	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(s) {
		i = len(s) - 1
	}
	return s[i]
}

// Next returns the point one step above p.
func (s Sequence) Next(p Point) Point { return s.Step(p, 1) }

// Previous returns the point one step below p.
func (s Sequence) Previous(p Point) Point { return s.Step(p, -1) }
