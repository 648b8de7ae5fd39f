// Package layout computes positions for a pipeline topology using a layered
// (Sugiyama-style) algorithm: rank assignment by longest path, crossing
// reduction by barycenter sweeps, and fixed-spacing coordinate assignment.
//
// The computation is a pure function of the topology and the configuration:
// no randomness and no dependence on map iteration order, so the same input
// always produces the same diagram.
package layout

import (
	"fmt"
	"strings"

	"github.com/vatne/archmap/pkg/model"
)

// Config holds the layout spacing parameters. Distances are in diagram
// units; the renderer treats them as pixels at zoom 1.
type Config struct {
	RankSep    float64 // vertical distance between rank baselines
	NodeSep    float64 // horizontal distance between slot centers in a rank
	NodeWidth  float64 // rendered node box width
	NodeHeight float64 // rendered node box height
	Sweeps     int     // barycenter ordering passes
}

// DefaultConfig returns the standard spacing.
func DefaultConfig() Config {
	return Config{
		RankSep:    120,
		NodeSep:    150,
		NodeWidth:  132,
		NodeHeight: 56,
		Sweeps:     4,
	}
}

// Point is a 2D diagram coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Route is the rendered path of one edge: a step polyline from the
// bottom-center of the source box to the top-center of the target box,
// with a midpoint for label placement.
type Route struct {
	EdgeID string  `json:"edgeId"`
	Points []Point `json:"points"`
	Mid    Point   `json:"mid"`
}

// Result is the computed layout. Positions are node box centers.
type Result struct {
	Positions map[string]Point `json:"positions"`
	Ranks     map[string]int   `json:"ranks"`
	Routes    []Route          `json:"routes"`
	Config    Config           `json:"config"`
}

// Engine computes layered layouts with a fixed configuration.
type Engine struct {
	cfg Config
}

// New creates a layout engine. Zero or negative spacing values fall back to
// the defaults.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.RankSep <= 0 {
		cfg.RankSep = def.RankSep
	}
	if cfg.NodeSep <= 0 {
		cfg.NodeSep = def.NodeSep
	}
	if cfg.NodeWidth <= 0 {
		cfg.NodeWidth = def.NodeWidth
	}
	if cfg.NodeHeight <= 0 {
		cfg.NodeHeight = def.NodeHeight
	}
	if cfg.Sweeps <= 0 {
		cfg.Sweeps = def.Sweeps
	}
	return &Engine{cfg: cfg}
}

// Compute lays out the topology. The topology must be acyclic; a cycle is
// rejected with an error naming it, the same way referential-integrity
// violations fail at construction.
func (e *Engine) Compute(t *model.Topology) (*Result, error) {
	d := t.Graph()

	if cycles := d.Cycles(); len(cycles) > 0 {
		return nil, fmt.Errorf("layout requires an acyclic topology, found cycle: %s",
			strings.Join(cycles[0], " -> "))
	}

	ranks, err := assignRanks(d)
	if err != nil {
		return nil, err
	}

	order := initialOrder(t, ranks)
	order = reduceCrossings(d, ranks, order, e.cfg.Sweeps)

	positions := e.assignCoordinates(order)
	routes := e.routeEdges(t, positions)

	return &Result{
		Positions: positions,
		Ranks:     ranks,
		Routes:    routes,
		Config:    e.cfg,
	}, nil
}
