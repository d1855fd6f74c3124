// Package responsive maps a viewport width to the per-device configuration
// of a sheet: snap extents, visibility flags, thresholds, and spring physics.
package responsive

import (
	"fmt"
	"strings"
)

// DeviceClass is a coarse viewport-width category.
type DeviceClass int

const (
	// Mobile is for viewports narrower than the tablet breakpoint.
	Mobile DeviceClass = iota
	// Tablet is for viewports between the tablet and desktop breakpoints.
	Tablet
	// Desktop is for viewports at or above the desktop breakpoint.
	Desktop
)

// DeviceClasses lists every class in ascending width order.
var DeviceClasses = []DeviceClass{Mobile, Tablet, Desktop}

func (d DeviceClass) String() string {
	switch d {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	case Desktop:
		return "desktop"
	default:
		return fmt.Sprintf("DeviceClass(%d)", int(d))
	}
}

// ParseDeviceClass converts a name produced by String back into a class.
func ParseDeviceClass(name string) (DeviceClass, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mobile":
		return Mobile, nil
	case "tablet":
		return Tablet, nil
	case "desktop":
		return Desktop, nil
	}
	return 0, fmt.Errorf("unknown device class %q", name)
}

// Breakpoints are the minimum widths of the tablet and desktop classes.
type Breakpoints struct {
	Tablet  float64
	Desktop float64
}

// DefaultBreakpoints are 768 and 1024 pixels.
var DefaultBreakpoints = Breakpoints{Tablet: 768, Desktop: 1024}

// Classify returns the device class for a viewport width.
func (b Breakpoints) Classify(width float64) DeviceClass {
	switch {
	case width < b.Tablet:
		return Mobile
	case width < b.Desktop:
		return Tablet
	default:
		return Desktop
	}
}

// Validate reports breakpoints that are non-positive or out of order.
func (b Breakpoints) Validate() error {
	if !(b.Tablet > 0) || !(b.Desktop > b.Tablet) {
		return fmt.Errorf("breakpoints must satisfy 0 < tablet < desktop (tablet=%g desktop=%g)", b.Tablet, b.Desktop)
	}
	return nil
}

// Classify uses DefaultBreakpoints.
func Classify(width float64) DeviceClass {
	return DefaultBreakpoints.Classify(width)
}
