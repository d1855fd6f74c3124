package responsive

import (
	"fmt"
	"time"

	"github.com/go-drift/snapsheet/pkg/animation"
	"github.com/go-drift/snapsheet/pkg/snap"
)

// SnapConfig is the visual target of one snap point on one device class.
type SnapConfig struct {
	// Extent is the sheet height at rest.
	Extent Length
	// ContentVisible shows the sheet body.
	ContentVisible bool
	// ShowAuxiliaryControls shows snap-point buttons and secondary actions.
	ShowAuxiliaryControls bool
	// PositionThreshold is the largest extent fraction that still selects
	// this point on release.
	PositionThreshold float64
	// MaxExtent caps the sheet's cross-axis size.
	MaxExtent Length
}

// DeviceProfile is the full configuration for one device class.
type DeviceProfile struct {
	Snaps    map[snap.Point]SnapConfig
	Spring   animation.SpringParams
	Duration time.Duration
	// VelocityThreshold is the release speed, in pixels per millisecond,
	// above which a gesture moves one step in its direction.
	VelocityThreshold float64
}

// Profile holds breakpoints and a DeviceProfile per device class.
type Profile struct {
	Breakpoints Breakpoints
	Devices     map[DeviceClass]DeviceProfile
}

// DefaultProfile returns the built-in responsive configuration. Mobile uses
// a stiffer, shorter spring to cover its smaller travel distances.
func DefaultProfile() Profile {
	return Profile{
		Breakpoints: DefaultBreakpoints,
		Devices: map[DeviceClass]DeviceProfile{
			Mobile: {
				Snaps: map[snap.Point]SnapConfig{
					snap.Closed:    {Extent: Px(60), PositionThreshold: 0.1, MaxExtent: Percent(100)},
					snap.HalfOpen:  {Extent: Percent(60), ContentVisible: true, PositionThreshold: 0.3, MaxExtent: Percent(100)},
					snap.FullyOpen: {Extent: Percent(95), ContentVisible: true, PositionThreshold: 0.7, MaxExtent: Percent(100)},
				},
				Spring:            animation.SpringParams{Tension: 400, Friction: 30, Mass: 1},
				Duration:          300 * time.Millisecond,
				VelocityThreshold: 0.3,
			},
			Tablet: {
				Snaps: map[snap.Point]SnapConfig{
					snap.Closed:    {Extent: Px(70), PositionThreshold: 0.1, MaxExtent: Px(720)},
					snap.HalfOpen:  {Extent: Percent(55), ContentVisible: true, ShowAuxiliaryControls: true, PositionThreshold: 0.35, MaxExtent: Px(720)},
					snap.FullyOpen: {Extent: Percent(92), ContentVisible: true, ShowAuxiliaryControls: true, PositionThreshold: 0.75, MaxExtent: Px(720)},
				},
				Spring:            animation.SpringParams{Tension: 300, Friction: 28, Mass: 1},
				Duration:          350 * time.Millisecond,
				VelocityThreshold: 0.5,
			},
			Desktop: {
				Snaps: map[snap.Point]SnapConfig{
					snap.Closed:    {Extent: Px(80), PositionThreshold: 0.1, MaxExtent: Px(640)},
					snap.HalfOpen:  {Extent: Percent(50), ContentVisible: true, ShowAuxiliaryControls: true, PositionThreshold: 0.35, MaxExtent: Px(640)},
					snap.FullyOpen: {Extent: Percent(90), ContentVisible: true, ShowAuxiliaryControls: true, PositionThreshold: 0.75, MaxExtent: Px(640)},
				},
				Spring:            animation.SpringParams{Tension: 280, Friction: 28, Mass: 1},
				Duration:          400 * time.Millisecond,
				VelocityThreshold: 0.5,
			},
		},
	}
}

// Validate checks that every device class is present with usable physics.
func (p Profile) Validate() error {
	if err := p.Breakpoints.Validate(); err != nil {
		return err
	}
	for _, d := range DeviceClasses {
		dp, ok := p.Devices[d]
		if !ok {
			return fmt.Errorf("profile has no %s configuration", d)
		}
		if err := dp.Spring.Validate(); err != nil {
			return fmt.Errorf("%s: %w", d, err)
		}
		if dp.Duration <= 0 {
			return fmt.Errorf("%s: duration must be positive (got %s)", d, dp.Duration)
		}
		if dp.VelocityThreshold < 0 {
			return fmt.Errorf("%s: velocity threshold must not be negative", d)
		}
		for point, sc := range dp.Snaps {
			if sc.PositionThreshold < 0 || sc.PositionThreshold > 1 {
				return fmt.Errorf("%s/%s: position threshold %g outside [0, 1]", d, point, sc.PositionThreshold)
			}
		}
	}
	return nil
}

// ValidateSequence checks that, on every device class, the position
// thresholds of the points of seq that the profile names strictly ascend
// along seq. A point whose threshold does not exceed an earlier one could
// never be selected by position.
func (p Profile) ValidateSequence(seq snap.Sequence) error {
	for _, d := range DeviceClasses {
		snaps := p.Devices[d].Snaps
		var prev snap.Point
		for _, point := range seq {
			sc, ok := snaps[point]
			if !ok {
				continue
			}
			if prev != "" && sc.PositionThreshold <= snaps[prev].PositionThreshold {
				return fmt.Errorf("%s: threshold of %s (%g) must ascend past %s (%g)",
					d, point, sc.PositionThreshold, prev, snaps[prev].PositionThreshold)
			}
			prev = point
		}
	}
	return nil
}

// Clone returns a deep copy so overrides never alias the original maps.
func (p Profile) Clone() Profile {
	out := Profile{Breakpoints: p.Breakpoints, Devices: make(map[DeviceClass]DeviceProfile, len(p.Devices))}
	for d, dp := range p.Devices {
		snaps := make(map[snap.Point]SnapConfig, len(dp.Snaps))
		for k, v := range dp.Snaps {
			snaps[k] = v
		}
		dp.Snaps = snaps
		out.Devices[d] = dp
	}
	return out
}
