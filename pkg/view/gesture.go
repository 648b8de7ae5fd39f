package view

import "math"

// DragThreshold is the pointer travel, in screen pixels, below which a
// press-release pair counts as a click rather than a drag.
const DragThreshold = 5.0

// Gesture classifies a completed pointer interaction.
type Gesture string

const (
	// GestureSelect is a click: the pointer stayed within the threshold.
	GestureSelect Gesture = "select"
	// GestureMove is a drag: the pointer travelled beyond the threshold.
	GestureMove Gesture = "move"
)

// Classify compares pointer-down and pointer-up positions against the
// movement threshold. The comparison happens before any change is
// dispatched, so a drag can never double as a selection.
func Classify(downX, downY, upX, upY, threshold float64) Gesture {
	if threshold <= 0 {
		threshold = DragThreshold
	}
	if math.Hypot(upX-downX, upY-downY) <= threshold {
		return GestureSelect
	}
	return GestureMove
}
