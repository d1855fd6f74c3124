// Package script replays scripted pointer, key and command events against a
// sheet on a fake 60 Hz clock.
//
// Scripts are YAML:
//
//	viewport: {width: 390, height: 844}
//	initial: closed
//	events:
//	  - drag: {from: 780, by: -300, frames: 12}
//	  - settle: true
//	  - key: ArrowDown
//	  - wait: 200ms
//	  - viewport: {width: 1280, height: 800}
package script

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/snapsheet/pkg/responsive"
	"github.com/go-drift/snapsheet/pkg/sheet"
	"github.com/go-drift/snapsheet/pkg/snap"
	sheettest "github.com/go-drift/snapsheet/pkg/testing"
)

// SettleTimeout bounds a settle event and the implicit settle at the end of
// a script.
const SettleTimeout = 5 * time.Second

// Script is a parsed simulation.
type Script struct {
	Viewport Viewport `yaml:"viewport"`
	Initial  string   `yaml:"initial,omitempty"`
	Events   []Event  `yaml:"events"`
}

// Viewport is a width/height pair in pixels.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Drag is a complete gesture spread over Frames frames.
type Drag struct {
	From   float64 `yaml:"from"`
	By     float64 `yaml:"by"`
	Frames int     `yaml:"frames"`
}

// Event is one script step. Exactly one field must be set.
type Event struct {
	Down     *float64  `yaml:"down,omitempty"`
	Move     *float64  `yaml:"move,omitempty"`
	Up       bool      `yaml:"up,omitempty"`
	Cancel   bool      `yaml:"cancel,omitempty"`
	Drag     *Drag     `yaml:"drag,omitempty"`
	Command  string    `yaml:"command,omitempty"`
	Key      string    `yaml:"key,omitempty"`
	Snap     string    `yaml:"snap,omitempty"`
	Wait     string    `yaml:"wait,omitempty"`
	Settle   bool      `yaml:"settle,omitempty"`
	Viewport *Viewport `yaml:"viewport,omitempty"`
}

func (e Event) kind() (string, error) {
	var kinds []string
	if e.Down != nil {
		kinds = append(kinds, "down")
	}
	if e.Move != nil {
		kinds = append(kinds, "move")
	}
	if e.Up {
		kinds = append(kinds, "up")
	}
	if e.Cancel {
		kinds = append(kinds, "cancel")
	}
	if e.Drag != nil {
		kinds = append(kinds, "drag")
	}
	if e.Command != "" {
		kinds = append(kinds, "command")
	}
	if e.Key != "" {
		kinds = append(kinds, "key")
	}
	if e.Snap != "" {
		kinds = append(kinds, "snap")
	}
	if e.Wait != "" {
		kinds = append(kinds, "wait")
	}
	if e.Settle {
		kinds = append(kinds, "settle")
	}
	if e.Viewport != nil {
		kinds = append(kinds, "viewport")
	}
	if len(kinds) != 1 {
		return "", fmt.Errorf("event must set exactly one action, got %v", kinds)
	}
	return kinds[0], nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return nil, fmt.Errorf("script viewport must be positive (got %gx%g)", s.Viewport.Width, s.Viewport.Height)
	}
	for i, ev := range s.Events {
		kind, err := ev.kind()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		switch kind {
		case "command":
			if _, err := sheet.ParseCommand(ev.Command); err != nil {
				return nil, fmt.Errorf("event %d: %w", i, err)
			}
		case "key":
			if _, ok := sheet.CommandForKey(ev.Key); !ok {
				return nil, fmt.Errorf("event %d: unbound key %q", i, ev.Key)
			}
		case "wait":
			if _, err := time.ParseDuration(ev.Wait); err != nil {
				return nil, fmt.Errorf("event %d: %w", i, err)
			}
		}
	}
	return &s, nil
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Entry is one timeline line.
type Entry struct {
	Frame  int
	At     time.Duration
	Kind   string
	Detail string
}

func (e Entry) String() string {
	return fmt.Sprintf("%5d  %8s  %-9s %s", e.Frame, e.At.Round(time.Millisecond), e.Kind, e.Detail)
}

// Options configures Run.
type Options struct {
	Sequence snap.Sequence
	Profile  *responsive.Profile
	// Initial is used when the script does not name an initial point.
	Initial snap.Point
}

type runner struct {
	driver   *sheettest.FrameDriver
	sheet    *sheet.Sheet
	timeline []Entry
}

func (r *runner) record(kind, format string, args ...any) {
	r.timeline = append(r.timeline, Entry{
		Frame:  r.driver.Frames(),
		At:     r.driver.Clock().Since(),
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	})
}

func (r *runner) accepted(ok bool) string {
	if ok {
		return "accepted"
	}
	return "rejected"
}

// Run replays sc and returns the timeline. The sheet is settled after the
// last event.
func Run(sc *Script, opts Options) ([]Entry, error) {
	initial := opts.Initial
	if sc.Initial != "" {
		initial = snap.Point(sc.Initial)
	}
	driver := sheettest.NewFrameDriver()
	s, err := sheet.New(sheet.Config{
		Sequence:       opts.Sequence,
		Initial:        initial,
		Profile:        opts.Profile,
		Scheduler:      driver.Scheduler(),
		ViewportWidth:  sc.Viewport.Width,
		ViewportHeight: sc.Viewport.Height,
	})
	if err != nil {
		return nil, err
	}
	defer s.Dispose()

	r := &runner{driver: driver, sheet: s}
	s.OnStateSettled(func(p snap.Point) {
		r.record("settled", "%s extent=%s", p, s.DisplayedExtent())
	})
	s.OnRequestClose(func() {
		r.record("close", "requested at %s", s.CurrentSnapPoint())
	})
	r.record("start", "%s device=%s extent=%s", s.CurrentSnapPoint(), s.Device(), s.DisplayedExtent())

	for i, ev := range sc.Events {
		if err := r.apply(ev); err != nil {
			return r.timeline, fmt.Errorf("event %d: %w", i, err)
		}
	}
	if err := driver.PumpAndSettle(SettleTimeout); err != nil {
		return r.timeline, err
	}
	r.record("end", "%s extent=%s", s.CurrentSnapPoint(), s.DisplayedExtent())
	return r.timeline, nil
}

func (r *runner) apply(ev Event) error {
	s, driver := r.sheet, r.driver
	kind, err := ev.kind()
	if err != nil {
		return err
	}
	switch kind {
	case "down":
		r.record("down", "y=%g %s", *ev.Down, r.accepted(s.PointerDown(*ev.Down, driver.Now())))
	case "move":
		at := driver.Clock().Advance(sheettest.FrameInterval)
		ok := s.PointerMove(*ev.Move, at)
		r.record("move", "y=%g extent=%s %s", *ev.Move, s.DisplayedExtent(), r.accepted(ok))
	case "up":
		v := s.Velocity()
		ok := s.PointerUp()
		r.record("up", "velocity=%.3fpx/ms %s%s", v, r.accepted(ok), r.target())
	case "cancel":
		r.record("cancel", "%s", r.accepted(s.PointerCancel()))
	case "drag":
		d := ev.Drag
		ok := driver.Drag(s, d.From, d.By, d.Frames)
		r.record("drag", "from=%g by=%g frames=%d %s%s", d.From, d.By, d.Frames, r.accepted(ok), r.target())
	case "command":
		cmd, _ := sheet.ParseCommand(ev.Command)
		r.record("command", "%s %s%s", cmd, r.accepted(s.Dispatch(cmd)), r.target())
	case "key":
		cmd, _ := sheet.CommandForKey(ev.Key)
		r.record("key", "%q -> %s %s%s", ev.Key, cmd, r.accepted(s.Dispatch(cmd)), r.target())
	case "snap":
		r.record("snap", "%s %s%s", ev.Snap, r.accepted(s.SnapTo(snap.Point(ev.Snap))), r.target())
	case "wait":
		d, err := time.ParseDuration(ev.Wait)
		if err != nil {
			return err
		}
		frames := int(math.Ceil(float64(d) / float64(sheettest.FrameInterval)))
		driver.PumpFrames(frames)
		r.record("wait", "%s extent=%s", d, s.DisplayedExtent())
	case "settle":
		if err := driver.PumpAndSettle(SettleTimeout); err != nil {
			return err
		}
	case "viewport":
		s.SetViewport(ev.Viewport.Width, ev.Viewport.Height)
		r.record("viewport", "%gx%g device=%s extent=%s", ev.Viewport.Width, ev.Viewport.Height, s.Device(), s.DisplayedExtent())
	}
	return nil
}

func (r *runner) target() string {
	if t, ok := r.sheet.Transition(); ok {
		return fmt.Sprintf(" -> %s", t.To)
	}
	return ""
}
