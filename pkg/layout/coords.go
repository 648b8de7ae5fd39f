package layout

// assignCoordinates converts the per-rank ordering into node center
// positions. Ranks map to Y at a fixed separation; within a rank, slots map
// to X at a fixed separation with the whole rank centered on X = 0, so
// ranks of different widths align on their midpoints.
func (e *Engine) assignCoordinates(order [][]string) map[string]Point {
	positions := make(map[string]Point)
	for r, rank := range order {
		offset := float64(len(rank)-1) / 2
		for slot, id := range rank {
			positions[id] = Point{
				X: (float64(slot) - offset) * e.cfg.NodeSep,
				Y: float64(r) * e.cfg.RankSep,
			}
		}
	}
	return positions
}
