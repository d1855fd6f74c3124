package responsive

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is the measurement unit of a Length.
type Unit int

const (
	// UnitPixel measures in device-independent pixels.
	UnitPixel Unit = iota
	// UnitPercent measures in percent of the viewport extent.
	UnitPercent
)

func (u Unit) String() string {
	if u == UnitPercent {
		return "%"
	}
	return "px"
}

// Length is an extent in pixels or percent of the viewport.
type Length struct {
	Value float64
	Unit  Unit
}

// Px returns a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPixel} }

// Percent returns a percentage length.
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// ParseLength parses "60px", "60", or "50%".
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	unit := UnitPixel
	switch {
	case strings.HasSuffix(s, "%"):
		unit = UnitPercent
		s = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Length{}, fmt.Errorf("invalid length %q", s)
	}
	return Length{Value: v, Unit: unit}, nil
}

// Pixels converts to pixels against viewport, clamped to [0, viewport].
func (l Length) Pixels(viewport float64) float64 {
	if viewport <= 0 {
		return 0
	}
	px := l.Value
	if l.Unit == UnitPercent {
		px = l.Value / 100 * viewport
	}
	return clamp(px, 0, viewport)
}

// Fraction converts to a fraction of viewport, clamped to [0, 1].
func (l Length) Fraction(viewport float64) float64 {
	if l.Unit == UnitPercent {
		return clamp(l.Value/100, 0, 1)
	}
	if viewport <= 0 {
		return 0
	}
	return clamp(l.Value/viewport, 0, 1)
}

// Lerp interpolates the numeric value from a to b by t in b's unit. t is
// not clamped so spring overshoot carries through. When the units differ
// the result is b.
func Lerp(a, b Length, t float64) Length {
	if a.Unit != b.Unit {
		return b
	}
	return Length{Value: a.Value + (b.Value-a.Value)*t, Unit: b.Unit}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
