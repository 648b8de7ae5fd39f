package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vatne/archmap/pkg/layout"
	"github.com/vatne/archmap/pkg/model"
	"github.com/vatne/archmap/pkg/view"
)

func renderDefault(t *testing.T, mutate func(*view.State)) string {
	t.Helper()
	topo := model.DefaultTopology()
	result, err := layout.New(layout.DefaultConfig()).Compute(topo)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	state := view.NewState(result)
	if mutate != nil {
		mutate(&state)
	}
	return string(NewRenderer(topo, result.Config).Render(state))
}

func TestRenderContainsEveryNode(t *testing.T) {
	svg := renderDefault(t, nil)

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("output is not a complete SVG document")
	}
	for _, n := range model.DefaultTopology().Nodes {
		if !strings.Contains(svg, fmt.Sprintf(`data-node-id="%s"`, n.ID)) {
			t.Errorf("node %q missing from output", n.ID)
		}
		if !strings.Contains(svg, ">"+n.Label+"<") {
			t.Errorf("label %q missing from output", n.Label)
		}
	}
}

func TestRenderLegendListsAllCategories(t *testing.T) {
	// The legend is fixed: every registered category appears whether or not
	// the topology uses it.
	topo := &model.Topology{
		Name:  "single",
		Nodes: []model.Node{{ID: "only", Label: "Only", Category: model.CategoryUtilities}},
	}
	result, err := layout.New(layout.DefaultConfig()).Compute(topo)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	svg := string(NewRenderer(topo, result.Config).Render(view.NewState(result)))

	for _, entry := range model.Legend() {
		if !strings.Contains(svg, ">"+entry.Label+"<") {
			t.Errorf("legend entry %q missing", entry.Label)
		}
		if !strings.Contains(svg, entry.Color) {
			t.Errorf("legend swatch color %q missing", entry.Color)
		}
	}
}

func TestRenderSelectionHighlight(t *testing.T) {
	plain := renderDefault(t, nil)
	if strings.Contains(plain, "#0ea5e9") {
		t.Error("highlight stroke present without a selection")
	}

	selected := renderDefault(t, func(s *view.State) {
		s.Selected = "scheduler"
	})
	if !strings.Contains(selected, "#0ea5e9") {
		t.Error("selected node is not highlighted")
	}
}

func TestRenderViewportTransform(t *testing.T) {
	svg := renderDefault(t, func(s *view.State) {
		s.Viewport.PanX = 40
		s.Viewport.PanY = -10
		s.Viewport.Zoom = 1.5
	})
	if !strings.Contains(svg, `translate(40.00,-10.00) scale(1.500)`) {
		t.Error("viewport transform does not reflect pan and zoom")
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	topo := &model.Topology{
		Name: "escape",
		Nodes: []model.Node{
			{ID: "x", Label: "<script>alert(1)</script>", Category: model.CategoryUtilities},
		},
	}
	result, err := layout.New(layout.DefaultConfig()).Compute(topo)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	svg := string(NewRenderer(topo, result.Config).Render(view.NewState(result)))

	if strings.Contains(svg, "<script>") {
		t.Error("label markup not escaped")
	}
	if !strings.Contains(svg, "&lt;script&gt;") {
		t.Error("escaped label missing")
	}
}

func TestRenderEdgeLabels(t *testing.T) {
	svg := renderDefault(t, nil)
	topo := model.DefaultTopology()

	var labeled int
	for _, e := range topo.Edges {
		if e.Label == "" {
			continue
		}
		labeled++
		if !strings.Contains(svg, ">"+e.Label+"<") {
			t.Errorf("edge label %q missing", e.Label)
		}
	}
	if labeled == 0 {
		t.Fatal("fixture has no labeled edges")
	}
}
