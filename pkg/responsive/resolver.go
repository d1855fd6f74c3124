package responsive

import (
	"time"

	"github.com/go-drift/snapsheet/pkg/animation"
	"github.com/go-drift/snapsheet/pkg/snap"
)

// Table is the resolved configuration for one viewport classification.
// Tables are immutable; the snap map is never handed out.
type Table struct {
	Device            DeviceClass
	Spring            animation.SpringParams
	Duration          time.Duration
	VelocityThreshold float64

	seq   snap.Sequence
	snaps map[snap.Point]SnapConfig
}

// Snap returns the configuration of p. Points the profile does not name get
// an evenly spaced percentage extent derived from their index in the
// sequence; points outside the sequence get the zero SnapConfig.
func (t Table) Snap(p snap.Point) SnapConfig {
	if sc, ok := t.snaps[p]; ok {
		return sc
	}
	return FallbackSnap(t.seq, p)
}

// Sequence returns the sequence the table was resolved for.
func (t Table) Sequence() snap.Sequence {
	return t.seq
}

// Criteria returns the selector thresholds for the table's sequence.
func (t Table) Criteria() snap.Criteria {
	thresholds := make([]float64, len(t.seq))
	for i, p := range t.seq {
		thresholds[i] = t.Snap(p).PositionThreshold
	}
	return snap.Criteria{VelocityThreshold: t.VelocityThreshold, Thresholds: thresholds}
}

// FallbackSnap is the configuration of a snap point the profile does not
// name: an extent of (i+1)/n of the viewport and a threshold halfway to the
// next point. Points outside seq get the zero SnapConfig.
func FallbackSnap(seq snap.Sequence, p snap.Point) SnapConfig {
	i := seq.IndexOf(p)
	if i < 0 {
		return SnapConfig{}
	}
	n := float64(len(seq))
	fraction := float64(i+1) / n
	threshold := 1.0
	if i < len(seq)-1 {
		threshold = (2*float64(i) + 3) / (2 * n)
	}
	return SnapConfig{
		Extent:            Percent(fraction * 100),
		ContentVisible:    i > 0,
		PositionThreshold: threshold,
		MaxExtent:         Percent(100),
	}
}

// Resolver classifies viewport widths and returns the matching Table. All
// tables are built once, so Resolve is a pure lookup.
type Resolver struct {
	breakpoints Breakpoints
	tables      map[DeviceClass]Table
}

// NewResolver validates profile and builds one table per device class for
// seq.
func NewResolver(profile Profile, seq snap.Sequence) (*Resolver, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	if err := profile.ValidateSequence(seq); err != nil {
		return nil, err
	}
	profile = profile.Clone()
	seq = append(snap.Sequence(nil), seq...)
	r := &Resolver{breakpoints: profile.Breakpoints, tables: make(map[DeviceClass]Table, len(DeviceClasses))}
	for _, d := range DeviceClasses {
		dp := profile.Devices[d]
		r.tables[d] = Table{
			Device:            d,
			Spring:            dp.Spring,
			Duration:          dp.Duration,
			VelocityThreshold: dp.VelocityThreshold,
			seq:               seq,
			snaps:             dp.Snaps,
		}
	}
	return r, nil
}

// Classify returns the device class of width.
func (r *Resolver) Classify(width float64) DeviceClass {
	return r.breakpoints.Classify(width)
}

// Resolve returns the table for width.
func (r *Resolver) Resolve(width float64) Table {
	return r.tables[r.Classify(width)]
}

// ForDevice returns the table for d.
func (r *Resolver) ForDevice(d DeviceClass) Table {
	return r.tables[d]
}
