package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/vatne/archmap/pkg/model"
)

func chainTopology() *model.Topology {
	return &model.Topology{
		Name: "chain",
		Nodes: []model.Node{
			{ID: "a", Label: "A", Category: model.CategoryIdeation},
			{ID: "b", Label: "B", Category: model.CategoryGeneration},
			{ID: "c", Label: "C", Category: model.CategoryAnalysis},
		},
		Edges: []model.Edge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "bc", Source: "b", Target: "c"},
		},
	}
}

func diamondTopology() *model.Topology {
	return &model.Topology{
		Name: "diamond",
		Nodes: []model.Node{
			{ID: "a", Label: "A", Category: model.CategoryIdeation},
			{ID: "b", Label: "B", Category: model.CategoryGeneration},
			{ID: "c", Label: "C", Category: model.CategoryGeneration},
			{ID: "d", Label: "D", Category: model.CategoryAnalysis},
		},
		Edges: []model.Edge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "ac", Source: "a", Target: "c"},
			{ID: "bd", Source: "b", Target: "d"},
			{ID: "cd", Source: "c", Target: "d"},
		},
	}
}

func TestChainRanks(t *testing.T) {
	result, err := New(DefaultConfig()).Compute(chainTopology())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	want := map[string]int{"a": 0, "b": 1, "c": 2}
	if !reflect.DeepEqual(result.Ranks, want) {
		t.Errorf("ranks = %v, want %v", result.Ranks, want)
	}

	// One node per rank: all on the center line, one rank separation apart.
	cfg := DefaultConfig()
	for id, rank := range want {
		p := result.Positions[id]
		if p.X != 0 {
			t.Errorf("%s.X = %v, want 0", id, p.X)
		}
		if p.Y != float64(rank)*cfg.RankSep {
			t.Errorf("%s.Y = %v, want %v", id, p.Y, float64(rank)*cfg.RankSep)
		}
	}
}

func TestDiamondRanks(t *testing.T) {
	result, err := New(DefaultConfig()).Compute(diamondTopology())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	want := map[string]int{"a": 0, "b": 1, "c": 1, "d": 2}
	if !reflect.DeepEqual(result.Ranks, want) {
		t.Errorf("ranks = %v, want %v", result.Ranks, want)
	}

	b, c := result.Positions["b"], result.Positions["c"]
	if b.Y != c.Y {
		t.Errorf("b and c share a rank but Y differs: %v vs %v", b.Y, c.Y)
	}
	if b.X == c.X {
		t.Error("b and c share a rank but occupy the same slot")
	}
	if d := result.Positions["d"]; d.Y <= b.Y {
		t.Errorf("d.Y = %v must exceed its predecessors' %v", d.Y, b.Y)
	}
}

func TestRankMonotonicity(t *testing.T) {
	topo := model.DefaultTopology()
	result, err := New(DefaultConfig()).Compute(topo)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	for _, e := range topo.Edges {
		if result.Ranks[e.Target] <= result.Ranks[e.Source] {
			t.Errorf("edge %s: rank(%s)=%d not above rank(%s)=%d",
				e.ID, e.Target, result.Ranks[e.Target], e.Source, result.Ranks[e.Source])
		}
	}
}

func TestRankZeroCompleteness(t *testing.T) {
	topo := model.DefaultTopology()
	result, err := New(DefaultConfig()).Compute(topo)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	incoming := make(map[string]bool)
	for _, e := range topo.Edges {
		incoming[e.Target] = true
	}
	for _, n := range topo.Nodes {
		rank := result.Ranks[n.ID]
		if !incoming[n.ID] && rank != 0 {
			t.Errorf("source node %s has rank %d, want 0", n.ID, rank)
		}
		if incoming[n.ID] && rank == 0 {
			t.Errorf("node %s has incoming edges but rank 0", n.ID)
		}
	}
}

func TestDeterminism(t *testing.T) {
	topo := model.DefaultTopology()
	engine := New(DefaultConfig())

	first, err := engine.Compute(topo)
	if err != nil {
		t.Fatalf("first Compute failed: %v", err)
	}
	second, err := engine.Compute(topo)
	if err != nil {
		t.Fatalf("second Compute failed: %v", err)
	}

	if !reflect.DeepEqual(first.Positions, second.Positions) {
		t.Error("positions differ between identical runs")
	}
	if !reflect.DeepEqual(first.Routes, second.Routes) {
		t.Error("routes differ between identical runs")
	}
}

func TestNoWithinRankOverlap(t *testing.T) {
	topo := model.DefaultTopology()
	cfg := DefaultConfig()
	result, err := New(cfg).Compute(topo)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	byRank := make(map[int][]string)
	for id, r := range result.Ranks {
		byRank[r] = append(byRank[r], id)
	}
	for rank, ids := range byRank {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := result.Positions[ids[i]], result.Positions[ids[j]]
				if gap := math.Abs(a.X - b.X); gap < cfg.NodeSep {
					t.Errorf("rank %d: %s and %s only %.0f apart, want >= %.0f",
						rank, ids[i], ids[j], gap, cfg.NodeSep)
				}
			}
		}
	}
}

func TestIsolatedNode(t *testing.T) {
	topo := chainTopology()
	topo.Nodes = append(topo.Nodes, model.Node{ID: "lone", Label: "Lone", Category: model.CategoryUtilities})

	result, err := New(DefaultConfig()).Compute(topo)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if result.Ranks["lone"] != 0 {
		t.Errorf("isolated node rank = %d, want 0", result.Ranks["lone"])
	}
	if _, ok := result.Positions["lone"]; !ok {
		t.Error("isolated node has no position")
	}
}

func TestCycleRejected(t *testing.T) {
	topo := chainTopology()
	// Bypass model validation to hit the engine's own check.
	topo.Edges = append(topo.Edges, model.Edge{ID: "ca", Source: "c", Target: "a"})

	if _, err := New(DefaultConfig()).Compute(topo); err == nil {
		t.Fatal("expected cyclic input to be rejected")
	}
}

func TestRoutesAnchors(t *testing.T) {
	cfg := DefaultConfig()
	result, err := New(cfg).Compute(chainTopology())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(result.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(result.Routes))
	}

	half := cfg.NodeHeight / 2
	for _, route := range result.Routes {
		start := route.Points[0]
		end := route.Points[len(route.Points)-1]

		var src, dst string
		switch route.EdgeID {
		case "ab":
			src, dst = "a", "b"
		case "bc":
			src, dst = "b", "c"
		default:
			t.Fatalf("unexpected route %s", route.EdgeID)
		}

		if start.Y != result.Positions[src].Y+half {
			t.Errorf("%s: start not at source bottom-center", route.EdgeID)
		}
		if end.Y != result.Positions[dst].Y-half {
			t.Errorf("%s: end not at target top-center", route.EdgeID)
		}
	}
}

func TestRouteJogForOffsetNodes(t *testing.T) {
	result, err := New(DefaultConfig()).Compute(diamondTopology())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	for _, route := range result.Routes {
		start := route.Points[0]
		end := route.Points[len(route.Points)-1]
		if start.X != end.X && len(route.Points) != 4 {
			t.Errorf("%s: offset edge should be a 4-point step, got %d points",
				route.EdgeID, len(route.Points))
		}
	}
}

func TestBarycenterReducesCrossing(t *testing.T) {
	// Two parallel chains declared interleaved: without crossing reduction
	// the second rank would keep the interleaved order and cross both
	// edges; the sweeps must align each child under its parent.
	topo := &model.Topology{
		Name: "parallel",
		Nodes: []model.Node{
			{ID: "p1", Label: "P1", Category: model.CategoryIdeation},
			{ID: "p2", Label: "P2", Category: model.CategoryIdeation},
			{ID: "c2", Label: "C2", Category: model.CategoryAnalysis},
			{ID: "c1", Label: "C1", Category: model.CategoryAnalysis},
		},
		Edges: []model.Edge{
			{ID: "e1", Source: "p1", Target: "c1"},
			{ID: "e2", Source: "p2", Target: "c2"},
		},
	}

	result, err := New(DefaultConfig()).Compute(topo)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	p1, p2 := result.Positions["p1"], result.Positions["p2"]
	c1, c2 := result.Positions["c1"], result.Positions["c2"]
	if (p1.X < p2.X) != (c1.X < c2.X) {
		t.Errorf("children not aligned under parents: p1=%v p2=%v c1=%v c2=%v", p1, p2, c1, c2)
	}
}

func TestConfigFallbacks(t *testing.T) {
	e := New(Config{})
	if e.cfg.RankSep != DefaultConfig().RankSep || e.cfg.Sweeps != DefaultConfig().Sweeps {
		t.Errorf("zero config should fall back to defaults, got %+v", e.cfg)
	}
}
