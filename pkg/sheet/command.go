package sheet

import (
	"fmt"

	"github.com/go-drift/snapsheet/pkg/snap"
)

// Command is a discrete request that bypasses gesture tracking.
type Command int

const (
	// Expand moves one snap point up.
	Expand Command = iota
	// Collapse moves one snap point down, or requests close from the first.
	Collapse
	// ToFirst moves to the first snap point.
	ToFirst
	// ToLast moves to the last snap point.
	ToLast
	// Toggle expands, wrapping from the last snap point to the first.
	Toggle
)

func (c Command) String() string {
	switch c {
	case Expand:
		return "expand"
	case Collapse:
		return "collapse"
	case ToFirst:
		return "to-first"
	case ToLast:
		return "to-last"
	case Toggle:
		return "toggle"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// ParseCommand converts a name produced by String back into a Command.
func ParseCommand(name string) (Command, error) {
	for c := Expand; c <= Toggle; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// CommandForKey maps a DOM-style key name to a command.
func CommandForKey(key string) (Command, bool) {
	switch key {
	case "ArrowUp":
		return Expand, true
	case "ArrowDown":
		return Collapse, true
	case "Home":
		return ToFirst, true
	case "End":
		return ToLast, true
	case "Enter", " ":
		return Toggle, true
	}
	return 0, false
}

// Dispatch applies cmd. Like RequestTransition it is rejected while a
// transition or gesture is active. Returns true if a transition started or
// close was requested.
func (s *Sheet) Dispatch(cmd Command) bool {
	if s.rejectDisposed("sheet.Dispatch") || s.transition != nil || s.session != nil {
		return false
	}
	switch cmd {
	case Expand:
		return s.RequestTransition(s.seq.Next(s.current))
	case Collapse:
		if s.current == s.seq.First() {
			s.requestClose()
			return true
		}
		return s.RequestTransition(s.seq.Previous(s.current))
	case ToFirst:
		return s.RequestTransition(s.seq.First())
	case ToLast:
		return s.RequestTransition(s.seq.Last())
	case Toggle:
		if s.current == s.seq.Last() {
			return s.RequestTransition(s.seq.First())
		}
		return s.RequestTransition(s.seq.Next(s.current))
	}
	return false
}

// SnapTo requests a transition to p. Points outside the sequence are
// ignored.
func (s *Sheet) SnapTo(p snap.Point) bool {
	return s.RequestTransition(p)
}
