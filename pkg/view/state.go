// Package view owns the mutable diagram view state: node positions after
// manual drag, the pan/zoom viewport, and the detail-modal selection. The
// topology itself is never mutated here; interactions only produce change
// lists that a reducer applies to the view state.
package view

import (
	"github.com/vatne/archmap/pkg/layout"
)

// Zoom bounds. The viewport scale is always clamped into this range so
// nodes never become illegibly small or large.
const (
	MinZoom     = 0.25
	MaxZoom     = 2.5
	DefaultZoom = 1.0
)

// Viewport is the pan/zoom transform applied to the whole diagram.
type Viewport struct {
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
	Zoom float64 `json:"zoom"`
}

// State is one client's view of the diagram. Positions start as the layout
// engine's output and are only changed by explicit move changes; Selected
// is the id of the node whose detail modal is open, or empty when closed.
type State struct {
	Positions map[string]layout.Point `json:"positions"`
	Viewport  Viewport                `json:"viewport"`
	Selected  string                  `json:"selected,omitempty"`
}

// NewState builds the initial view state from a layout result. The position
// map is copied: a fresh state never aliases the layout engine's output, so
// resetting a session restores pristine positions.
func NewState(l *layout.Result) State {
	positions := make(map[string]layout.Point, len(l.Positions))
	for id, p := range l.Positions {
		positions[id] = p
	}
	return State{
		Positions: positions,
		Viewport:  Viewport{Zoom: DefaultZoom},
	}
}

// clone returns a deep copy of the state. The reducer works on the copy so
// a failed change list leaves the original untouched.
func (s State) clone() State {
	positions := make(map[string]layout.Point, len(s.Positions))
	for id, p := range s.Positions {
		positions[id] = p
	}
	out := s
	out.Positions = positions
	return out
}
