package layout

import (
	"sort"

	"github.com/vatne/archmap/pkg/graph"
	"github.com/vatne/archmap/pkg/model"
)

// initialOrder groups nodes by rank in topology declaration order, which is
// the deterministic starting point for crossing reduction.
func initialOrder(t *model.Topology, ranks map[string]int) [][]string {
	order := make([][]string, maxRank(ranks)+1)
	for _, n := range t.Nodes {
		r := ranks[n.ID]
		order[r] = append(order[r], n.ID)
	}
	return order
}

// reduceCrossings reorders nodes within each rank by the median position of
// their neighbors in the adjacent rank. Sweeps alternate downward (ordering
// by predecessors) and upward (by successors); a fixed number of passes is
// enough for the small graphs this serves. Stable sorting breaks ties by
// the previous order, which keeps the result deterministic.
func reduceCrossings(d *graph.Diagram, ranks map[string]int, order [][]string, sweeps int) [][]string {
	if len(order) < 2 {
		return order
	}

	pos := make(map[string]int)
	rebuildPositions := func() {
		for _, rank := range order {
			for i, id := range rank {
				pos[id] = i
			}
		}
	}
	rebuildPositions()

	for sweep := 0; sweep < sweeps; sweep++ {
		if sweep%2 == 0 {
			// Downward: order each rank by neighbor positions above.
			for r := 1; r < len(order); r++ {
				sortRankByMedian(order[r], pos, d.Predecessors)
				rebuildPositions()
			}
		} else {
			// Upward: order each rank by neighbor positions below.
			for r := len(order) - 2; r >= 0; r-- {
				sortRankByMedian(order[r], pos, d.Successors)
				rebuildPositions()
			}
		}
	}

	return order
}

// sortRankByMedian stably sorts one rank by each node's median neighbor
// position. Nodes without neighbors in the adjacent rank keep their current
// slot as the sort key, so they stay roughly where they were.
func sortRankByMedian(rank []string, pos map[string]int, neighbors func(string) []string) {
	medians := make(map[string]float64, len(rank))
	for i, id := range rank {
		medians[id] = neighborMedian(neighbors(id), pos, float64(i))
	}
	sort.SliceStable(rank, func(i, j int) bool {
		return medians[rank[i]] < medians[rank[j]]
	})
}

// neighborMedian returns the median of the neighbors' slot positions, or
// fallback when there are none. An even count averages the two middle
// values.
func neighborMedian(neighbors []string, pos map[string]int, fallback float64) float64 {
	if len(neighbors) == 0 {
		return fallback
	}
	slots := make([]int, 0, len(neighbors))
	for _, n := range neighbors {
		slots = append(slots, pos[n])
	}
	sort.Ints(slots)
	mid := len(slots) / 2
	if len(slots)%2 == 1 {
		return float64(slots[mid])
	}
	return float64(slots[mid-1]+slots[mid]) / 2
}
