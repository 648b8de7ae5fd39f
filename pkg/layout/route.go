package layout

import "github.com/vatne/archmap/pkg/model"

// routeEdges builds a step polyline per edge: out of the bottom-center of
// the source box, across at the vertical midpoint, into the top-center of
// the target box. The horizontal jog keeps edges from cutting straight
// through boxes in intervening ranks. Mid is where the renderer places the
// edge label plate.
func (e *Engine) routeEdges(t *model.Topology, positions map[string]Point) []Route {
	routes := make([]Route, 0, len(t.Edges))
	half := e.cfg.NodeHeight / 2

	for _, edge := range t.Edges {
		src := positions[edge.Source]
		dst := positions[edge.Target]

		start := Point{X: src.X, Y: src.Y + half}
		end := Point{X: dst.X, Y: dst.Y - half}
		midY := (start.Y + end.Y) / 2

		points := []Point{start}
		if start.X != end.X {
			points = append(points,
				Point{X: start.X, Y: midY},
				Point{X: end.X, Y: midY},
			)
		}
		points = append(points, end)

		routes = append(routes, Route{
			EdgeID: edge.ID,
			Points: points,
			Mid:    Point{X: (start.X + end.X) / 2, Y: midY},
		})
	}

	return routes
}
