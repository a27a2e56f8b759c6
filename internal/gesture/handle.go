// Package gesture converts raw pointer events into canvas operations: tile
// drags, handle resizes, viewport pans, pinch zooms, and taps.
package gesture

// Handle identifies one of the four corner resize grips. Each handle owns
// the pair of edges adjacent to it; the opposite corner stays anchored.
type Handle int

const (
	HandleNW Handle = iota
	HandleNE
	HandleSW
	HandleSE
)

// String returns the conventional short name (nw, ne, sw, se).
func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleNE:
		return "ne"
	case HandleSW:
		return "sw"
	case HandleSE:
		return "se"
	}
	return "unknown"
}

// left reports whether the handle owns the left edge (moves x on resize).
func (h Handle) left() bool {
	return h == HandleNW || h == HandleSW
}

// top reports whether the handle owns the top edge (moves y on resize).
func (h Handle) top() bool {
	return h == HandleNW || h == HandleNE
}
