package view

import (
	"fmt"

	"github.com/vatne/archmap/pkg/model"
)

// ChangeKind discriminates change records. The edge set has no change
// kinds: connections are read-only at the interaction layer.
type ChangeKind string

const (
	// ChangeMoveNode sets one node's position to (X, Y).
	ChangeMoveNode ChangeKind = "move-node"
	// ChangePan translates the viewport by (X, Y).
	ChangePan ChangeKind = "pan"
	// ChangeZoom sets the viewport scale, clamped to the zoom bounds.
	ChangeZoom ChangeKind = "zoom"
	// ChangeSelect opens the detail view for NodeID. Selecting a node
	// without a description is a deliberate no-op.
	ChangeSelect ChangeKind = "select"
	// ChangeDeselect closes the detail view.
	ChangeDeselect ChangeKind = "deselect"
)

// Change is one discrete view-state mutation. Interactions from any source
// (mouse, touch, programmatic) are expressed as change records and funneled
// through the one reducer, instead of mutating state directly.
type Change struct {
	Kind   ChangeKind `json:"kind"`
	NodeID string     `json:"nodeId,omitempty"`
	X      float64    `json:"x,omitempty"`
	Y      float64    `json:"y,omitempty"`
	Zoom   float64    `json:"zoom,omitempty"`
}

// Reducer applies change lists against a fixed topology. The topology is
// only consulted, never written.
type Reducer struct {
	topo *model.Topology
}

// NewReducer creates a reducer for the given topology.
func NewReducer(t *model.Topology) *Reducer {
	return &Reducer{topo: t}
}

// Apply produces the next state from a change list. The list is atomic:
// either every change applies and the new state is returned, or the input
// state is returned unchanged alongside the error. The input state is
// never mutated.
func (r *Reducer) Apply(s State, changes []Change) (State, error) {
	next := s.clone()
	for i, c := range changes {
		if err := r.applyOne(&next, c); err != nil {
			return s, fmt.Errorf("change %d (%s): %w", i, c.Kind, err)
		}
	}
	return next, nil
}

func (r *Reducer) applyOne(s *State, c Change) error {
	switch c.Kind {
	case ChangeMoveNode:
		if _, ok := s.Positions[c.NodeID]; !ok {
			return fmt.Errorf("unknown node %q", c.NodeID)
		}
		p := s.Positions[c.NodeID]
		p.X, p.Y = c.X, c.Y
		s.Positions[c.NodeID] = p

	case ChangePan:
		s.Viewport.PanX += c.X
		s.Viewport.PanY += c.Y

	case ChangeZoom:
		s.Viewport.Zoom = clampZoom(c.Zoom)

	case ChangeSelect:
		if _, ok := r.topo.Node(c.NodeID); !ok {
			return fmt.Errorf("unknown node %q", c.NodeID)
		}
		// No description means the node is not inspectable: the click is
		// ignored and the modal stays closed.
		if _, ok := r.topo.Describe(c.NodeID); ok {
			s.Selected = c.NodeID
		}

	case ChangeDeselect:
		s.Selected = ""

	default:
		return fmt.Errorf("unknown change kind %q", c.Kind)
	}
	return nil
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
