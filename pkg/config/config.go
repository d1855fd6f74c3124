// Package config loads the optional snapsheet.yaml file that overrides the
// built-in responsive profile and snap sequence.
//
// Example:
//
//	version: v1
//	sequence: [closed, half-open, fully-open]
//	initial: half-open
//	breakpoints:
//	  tablet: 768
//	  desktop: 1024
//	devices:
//	  mobile:
//	    duration: 250ms
//	    velocity_threshold: 0.25
//	    spring: {tension: 420, friction: 30, mass: 1}
//	    snaps:
//	      half-open: {extent: 65%, threshold: 0.3}
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	sheeterrors "github.com/go-drift/snapsheet/pkg/errors"
	"github.com/go-drift/snapsheet/pkg/responsive"
	"github.com/go-drift/snapsheet/pkg/snap"
)

// FileName is the config file looked up in a project root.
const FileName = "snapsheet.yaml"

// SupportedMajor is the only schema major version accepted.
const SupportedMajor = "v1"

// File mirrors snapsheet.yaml.
type File struct {
	Version     string                `yaml:"version"`
	Sequence    []string              `yaml:"sequence,omitempty"`
	Initial     string                `yaml:"initial,omitempty"`
	Breakpoints *BreakpointsFile      `yaml:"breakpoints,omitempty"`
	Devices     map[string]DeviceFile `yaml:"devices,omitempty"`
}

// BreakpointsFile overrides device breakpoints.
type BreakpointsFile struct {
	Tablet  *float64 `yaml:"tablet,omitempty"`
	Desktop *float64 `yaml:"desktop,omitempty"`
}

// DeviceFile overrides one device class.
type DeviceFile struct {
	Duration          string              `yaml:"duration,omitempty"`
	VelocityThreshold *float64            `yaml:"velocity_threshold,omitempty"`
	Spring            *SpringFile         `yaml:"spring,omitempty"`
	Snaps             map[string]SnapFile `yaml:"snaps,omitempty"`
}

// SpringFile overrides spring parameters; zero fields keep the default.
type SpringFile struct {
	Tension  float64 `yaml:"tension,omitempty"`
	Friction float64 `yaml:"friction,omitempty"`
	Mass     float64 `yaml:"mass,omitempty"`
}

// SnapFile overrides one snap point on one device.
type SnapFile struct {
	Extent         string   `yaml:"extent,omitempty"`
	MaxExtent      string   `yaml:"max_extent,omitempty"`
	Threshold      *float64 `yaml:"threshold,omitempty"`
	ContentVisible *bool    `yaml:"content_visible,omitempty"`
	AuxControls    *bool    `yaml:"aux_controls,omitempty"`
}

// Parse decodes and version-checks a config document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}
	return &f, nil
}

func checkVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid version %q", v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return fmt.Errorf("unsupported config version %s (want %s.x)", v, SupportedMajor)
	}
	return nil
}

// Load reads and parses path. Errors are *errors.SheetError of kind config.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &sheeterrors.SheetError{Op: "config.Load", Kind: sheeterrors.KindConfig, Path: path, Err: err}
	}
	f, err := Parse(data)
	if err != nil {
		return nil, &sheeterrors.SheetError{Op: "config.Load", Kind: sheeterrors.KindConfig, Path: path, Err: err}
	}
	return f, nil
}

// LoadOptional reads FileName from dir if present; a missing file yields an
// empty File.
func LoadOptional(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	f, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, err
	}
	return f, nil
}

// SnapSequence returns the configured sequence or snap.DefaultSequence.
func (f *File) SnapSequence() snap.Sequence {
	if len(f.Sequence) == 0 {
		return snap.DefaultSequence
	}
	seq := make(snap.Sequence, len(f.Sequence))
	for i, name := range f.Sequence {
		seq[i] = snap.Point(strings.TrimSpace(name))
	}
	return seq
}

// InitialPoint returns the configured initial point, or "" for the default.
func (f *File) InitialPoint() snap.Point {
	return snap.Point(strings.TrimSpace(f.Initial))
}

// Profile overlays the file onto responsive.DefaultProfile and validates the
// result against SnapSequence. Snap overrides must name points of the
// sequence; a point the defaults do not cover starts from
// responsive.FallbackSnap.
func (f *File) Profile() (responsive.Profile, error) {
	seq := f.SnapSequence()
	if err := seq.Validate(); err != nil {
		return responsive.Profile{}, err
	}
	p := responsive.DefaultProfile()
	if b := f.Breakpoints; b != nil {
		if b.Tablet != nil {
			p.Breakpoints.Tablet = *b.Tablet
		}
		if b.Desktop != nil {
			p.Breakpoints.Desktop = *b.Desktop
		}
	}
	for name, df := range f.Devices {
		device, err := responsive.ParseDeviceClass(name)
		if err != nil {
			return responsive.Profile{}, err
		}
		dp, err := applyDevice(p.Devices[device], df, seq)
		if err != nil {
			return responsive.Profile{}, fmt.Errorf("%s: %w", device, err)
		}
		p.Devices[device] = dp
	}
	if err := p.Validate(); err != nil {
		return responsive.Profile{}, err
	}
	if err := p.ValidateSequence(seq); err != nil {
		return responsive.Profile{}, err
	}
	return p, nil
}

func applyDevice(dp responsive.DeviceProfile, df DeviceFile, seq snap.Sequence) (responsive.DeviceProfile, error) {
	if df.Duration != "" {
		d, err := time.ParseDuration(df.Duration)
		if err != nil {
			return dp, fmt.Errorf("invalid duration: %w", err)
		}
		dp.Duration = d
	}
	if df.VelocityThreshold != nil {
		dp.VelocityThreshold = *df.VelocityThreshold
	}
	if s := df.Spring; s != nil {
		if s.Tension != 0 {
			dp.Spring.Tension = s.Tension
		}
		if s.Friction != 0 {
			dp.Spring.Friction = s.Friction
		}
		if s.Mass != 0 {
			dp.Spring.Mass = s.Mass
		}
	}
	for name, sf := range df.Snaps {
		point := snap.Point(strings.TrimSpace(name))
		if !seq.Contains(point) {
			return dp, fmt.Errorf("snap %q is not in the sequence %v", point, seq)
		}
		sc, ok := dp.Snaps[point]
		if !ok {
			sc = responsive.FallbackSnap(seq, point)
		}
		if sf.Extent != "" {
			l, err := responsive.ParseLength(sf.Extent)
			if err != nil {
				return dp, fmt.Errorf("%s extent: %w", point, err)
			}
			sc.Extent = l
		}
		if sf.MaxExtent != "" {
			l, err := responsive.ParseLength(sf.MaxExtent)
			if err != nil {
				return dp, fmt.Errorf("%s max_extent: %w", point, err)
			}
			sc.MaxExtent = l
		}
		if sf.Threshold != nil {
			sc.PositionThreshold = *sf.Threshold
		}
		if sf.ContentVisible != nil {
			sc.ContentVisible = *sf.ContentVisible
		}
		if sf.AuxControls != nil {
			sc.ShowAuxiliaryControls = *sf.AuxControls
		}
		dp.Snaps[point] = sc
	}
	return dp, nil
}

// FindProjectRoot walks up from dir to the nearest directory holding go.mod.
func FindProjectRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// ModulePath returns the module path declared in dir/go.mod.
func ModulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// Project is a resolved configuration: the file in effect and the Go module
// it belongs to, if any.
type Project struct {
	// Root is the directory holding go.mod, or "" outside a module.
	Root       string
	ModulePath string
	// Name is the last element of the module path without a major version
	// suffix, or the working directory's base name.
	Name string
	// ConfigPath is the file that was loaded, or "" for built-in defaults.
	ConfigPath string
	File       *File
}

// Resolve loads configuration for a command run from dir. An explicit path
// must exist; otherwise FileName is read from the project root if present.
func Resolve(dir, explicit string) (*Project, error) {
	p := &Project{Name: filepath.Base(dir)}
	if root, err := FindProjectRoot(dir); err == nil {
		p.Root = root
		if path, err := ModulePath(root); err == nil {
			p.ModulePath = path
			p.Name = projectName(path, p.Name)
		}
	}

	switch {
	case explicit != "":
		f, err := Load(explicit)
		if err != nil {
			return nil, err
		}
		p.File, p.ConfigPath = f, explicit
	case p.Root != "":
		f, err := LoadOptional(p.Root)
		if err != nil {
			return nil, err
		}
		p.File = f
		if _, err := os.Stat(filepath.Join(p.Root, FileName)); err == nil {
			p.ConfigPath = filepath.Join(p.Root, FileName)
		}
	default:
		p.File = &File{}
	}
	return p, nil
}

func projectName(modulePath, fallback string) string {
	prefix, _, ok := module.SplitPathVersion(modulePath)
	if !ok {
		return fallback
	}
	parts := strings.Split(prefix, "/")
	if last := parts[len(parts)-1]; last != "" {
		return last
	}
	return fallback
}
