// Package render draws a laid-out topology as a standalone SVG document.
// The markup is built directly; the diagram is small and the geometry is
// already computed, so rendering is plain string assembly.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/vatne/archmap/pkg/layout"
	"github.com/vatne/archmap/pkg/model"
	"github.com/vatne/archmap/pkg/view"
)

const diagramMargin = 80

// Renderer draws one topology with fixed layout spacing. The view state
// supplies positions, pan/zoom, and selection per render call.
type Renderer struct {
	topo *model.Topology
	cfg  layout.Config
}

// NewRenderer creates a renderer for the topology.
func NewRenderer(t *model.Topology, cfg layout.Config) *Renderer {
	return &Renderer{topo: t, cfg: cfg}
}

// Render produces the SVG document for the given view state. Edge paths are
// recomputed from the current positions here; this is per-edge arithmetic,
// not a re-run of the layout algorithm.
func (r *Renderer) Render(s view.State) []byte {
	var b strings.Builder

	minX, minY, maxX, maxY := r.bounds(s)
	width := maxX - minX + 2*diagramMargin
	height := maxY - minY + 2*diagramMargin

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="sans-serif">`+"\n",
		width, height, width, height)
	b.WriteString(`<defs><marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="#475569"/></marker></defs>` + "\n")
	b.WriteString(`<rect width="100%" height="100%" fill="#f8fafc"/>` + "\n")

	// Viewport transform: pan then zoom, with the diagram shifted so its
	// bounding box starts inside the margin.
	fmt.Fprintf(&b, `<g transform="translate(%.2f,%.2f) scale(%.3f) translate(%.2f,%.2f)">`+"\n",
		s.Viewport.PanX, s.Viewport.PanY, s.Viewport.Zoom,
		diagramMargin-minX, diagramMargin-minY)

	r.writeEdges(&b, s)
	r.writeNodes(&b, s)

	b.WriteString("</g>\n")
	r.writeLegend(&b)
	b.WriteString("</svg>\n")

	return []byte(b.String())
}

// bounds returns the diagram's bounding box in layout coordinates.
func (r *Renderer) bounds(s view.State) (minX, minY, maxX, maxY float64) {
	first := true
	for _, p := range s.Positions {
		if first {
			minX, maxX = p.X, p.X
			minY, maxY = p.Y, p.Y
			first = false
			continue
		}
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	halfW, halfH := r.cfg.NodeWidth/2, r.cfg.NodeHeight/2
	return minX - halfW, minY - halfH, maxX + halfW, maxY + halfH
}

func (r *Renderer) writeEdges(b *strings.Builder, s view.State) {
	halfH := r.cfg.NodeHeight / 2

	for _, e := range r.topo.Edges {
		src, okS := s.Positions[e.Source]
		dst, okT := s.Positions[e.Target]
		if !okS || !okT {
			continue
		}

		startX, startY := src.X, src.Y+halfH
		endX, endY := dst.X, dst.Y-halfH
		midY := (startY + endY) / 2

		var path string
		if startX == endX {
			path = fmt.Sprintf("M %.1f %.1f L %.1f %.1f", startX, startY, endX, endY)
		} else {
			path = fmt.Sprintf("M %.1f %.1f L %.1f %.1f L %.1f %.1f L %.1f %.1f",
				startX, startY, startX, midY, endX, midY, endX, endY)
		}
		fmt.Fprintf(b, `<path d="%s" fill="none" stroke="#475569" stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n", path)

		if e.Label != "" {
			labelX, labelY := (startX+endX)/2, midY
			plateW := float64(len(e.Label))*7 + 12
			fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="18" rx="4" fill="#ffffff" stroke="#cbd5e1"/>`+"\n",
				labelX-plateW/2, labelY-9, plateW)
			fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="11" fill="#334155">%s</text>`+"\n",
				labelX, labelY+4, html.EscapeString(e.Label))
		}
	}
}

func (r *Renderer) writeNodes(b *strings.Builder, s view.State) {
	halfW, halfH := r.cfg.NodeWidth/2, r.cfg.NodeHeight/2

	for _, n := range r.topo.Nodes {
		p, ok := s.Positions[n.ID]
		if !ok {
			continue
		}

		stroke := "#1e293b"
		strokeWidth := 1.0
		if n.ID == s.Selected {
			stroke = "#0ea5e9"
			strokeWidth = 3
		}

		fmt.Fprintf(b, `<g data-node-id="%s">`+"\n", html.EscapeString(n.ID))
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			p.X-halfW, p.Y-halfH, r.cfg.NodeWidth, r.cfg.NodeHeight, n.Category.Color(), stroke, strokeWidth)

		labelY := p.Y + 4.0
		if n.Subtitle != "" {
			labelY = p.Y - 4
		}
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="12" font-weight="bold" fill="#ffffff">%s</text>`+"\n",
			p.X, labelY, html.EscapeString(n.Label))
		if n.Subtitle != "" {
			fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="10" fill="#f1f5f9">%s</text>`+"\n",
				p.X, p.Y+12.0, html.EscapeString(n.Subtitle))
		}
		b.WriteString("</g>\n")
	}
}

// writeLegend draws the fixed category legend in the top-left corner,
// outside the viewport transform so it never pans or scales.
func (r *Renderer) writeLegend(b *strings.Builder) {
	entries := model.Legend()
	boxH := float64(len(entries))*20 + 16

	fmt.Fprintf(b, `<g transform="translate(12,12)">`+"\n")
	fmt.Fprintf(b, `<rect width="170" height="%.0f" rx="6" fill="#ffffff" stroke="#cbd5e1"/>`+"\n", boxH)
	for i, entry := range entries {
		y := float64(i)*20 + 16
		fmt.Fprintf(b, `<rect x="10" y="%.0f" width="12" height="12" rx="3" fill="%s"/>`+"\n", y-9, entry.Color)
		fmt.Fprintf(b, `<text x="30" y="%.0f" font-size="11" fill="#334155">%s</text>`+"\n", y+1, html.EscapeString(entry.Label))
	}
	b.WriteString("</g>\n")
}
